package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"safepost/internal/domain/entity"
	domainerrors "safepost/internal/domain/errors"
	"safepost/internal/domain/repository"
	"safepost/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		txManager: txManager,
		logger:    logger,
	}
}

// GetPublicProfile retrieves a user's public profile including the derived
// post count.
func (srv *profileService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		found, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("profile lookup failed")
			}

			return errors.Wrap(err, "failed to find user")
		}

		postCount, err := userRepo.CountPostsByAuthor(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to count posts")
		}
		found.PostCount = postCount
		user = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to get public profile")
	}

	return user, nil
}

// UpdateProfile updates the actor's own profile. Nil input fields are left
// unchanged; the first complete update stamps ProfileCompletedAt.
func (srv *profileService) UpdateProfile(ctx context.Context, actor *usecase.Actor, input *usecase.UpdateProfileInput) (*entity.User, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("profile update requires a signed-in user")
	}
	srv.logger.Info("Updating profile", "userID", actor.ID)

	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		found, err := userRepo.FindByID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUnauthenticated.WrapMessage("account no longer exists")
			}

			return errors.Wrap(err, "failed to find user")
		}

		applyProfileInput(found, input)

		if found.ProfileCompletedAt == nil && isProfileComplete(found) {
			now := time.Now()
			found.ProfileCompletedAt = &now
		}

		if err := userRepo.Update(ctx, found); err != nil {
			return errors.WithStack(err)
		}
		user = found

		return nil
	})

	if err != nil {
		srv.logger.Warn("Profile update failed", "userID", actor.ID, "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	return user, nil
}

// applyProfileInput copies the non-nil input fields onto the user.
func applyProfileInput(user *entity.User, input *usecase.UpdateProfileInput) {
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.TwitterURL != nil {
		user.TwitterURL = *input.TwitterURL
	}
	if input.GithubURL != nil {
		user.GithubURL = *input.GithubURL
	}
	if input.LinkedinURL != nil {
		user.LinkedinURL = *input.LinkedinURL
	}
	if input.WebsiteURL != nil {
		user.WebsiteURL = *input.WebsiteURL
	}
}

// isProfileComplete reports whether the descriptive profile fields are filled in.
func isProfileComplete(user *entity.User) bool {
	return user.Bio != "" && user.Location != "" && user.AvatarURL != ""
}
