package impl

import (
	"context"
	"log/slog"

	"safepost/internal/domain/entity"
	domainerrors "safepost/internal/domain/errors"
	"safepost/internal/domain/repository"
	"safepost/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// likeService implements the LikeUsecase interface.
type likeService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewLikeService is the constructor for likeService.
func NewLikeService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.LikeUsecase {
	return &likeService{
		txManager: txManager,
		logger:    logger,
	}
}

// ToggleLike flips the actor's like on a post. The like row and the post's
// maintained counter change in the same transaction, so the two never drift.
func (srv *likeService) ToggleLike(ctx context.Context, actor *usecase.Actor, postID uuid.UUID) (*usecase.LikeStatusOutput, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("liking requires a signed-in user")
	}

	var output *usecase.LikeStatusOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.NewPostRepository()
		likeRepo := repoFactory.NewLikeRepository()

		post, err := postRepo.FindByID(ctx, postID)
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return domainerrors.ErrPostNotFound.WrapMessage("like toggle failed")
			}

			return errors.Wrap(err, "failed to find post")
		}

		existing, err := likeRepo.FindByPostAndUser(ctx, post.ID, actor.ID)
		liked := false
		switch {
		case err == nil:
			// Already liked: remove.
			if err := likeRepo.Delete(ctx, existing.ID); err != nil {
				return errors.WithStack(err)
			}
		case errors.Is(err, repository.ErrLikeNotFound):
			// Not yet liked: add.
			if err := likeRepo.Create(ctx, &entity.PostLike{PostID: post.ID, UserID: actor.ID}); err != nil {
				return errors.WithStack(err)
			}
			liked = true
		default:
			return errors.Wrap(err, "failed to find like")
		}

		count, err := likeRepo.CountByPost(ctx, post.ID)
		if err != nil {
			return errors.Wrap(err, "failed to count likes")
		}
		if err := postRepo.SetLikesCount(ctx, post.ID, count); err != nil {
			return errors.WithStack(err)
		}

		output = &usecase.LikeStatusOutput{Liked: liked, LikesCount: count}

		return nil
	})

	if err != nil {
		srv.logger.Warn("Like toggle failed", "postID", postID, "userID", actor.ID, "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute like toggle transaction")
	}

	return output, nil
}

// GetLikeStatus returns the like state of a post for the given viewer.
func (srv *likeService) GetLikeStatus(ctx context.Context, actor *usecase.Actor, postID uuid.UUID) (*usecase.LikeStatusOutput, error) {
	var output *usecase.LikeStatusOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// An unknown post is a 404, not a zero-like status.
		if _, err := repoFactory.NewPostRepository().FindByID(ctx, postID); err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return domainerrors.ErrPostNotFound.WrapMessage("like status lookup failed")
			}

			return errors.Wrap(err, "failed to find post")
		}

		likeRepo := repoFactory.NewLikeRepository()

		count, err := likeRepo.CountByPost(ctx, postID)
		if err != nil {
			return errors.Wrap(err, "failed to count likes")
		}

		liked := false
		if actor != nil {
			liked, err = likeRepo.ExistsByPostAndUser(ctx, postID, actor.ID)
			if err != nil {
				return errors.Wrap(err, "failed to check like existence")
			}
		}

		output = &usecase.LikeStatusOutput{Liked: liked, LikesCount: count}

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to get like status")
	}

	return output, nil
}
