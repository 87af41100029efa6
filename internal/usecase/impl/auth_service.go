// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"safepost/internal/domain/entity"
	domainerrors "safepost/internal/domain/errors"
	"safepost/internal/domain/repository"
	"safepost/internal/domain/service"
	"safepost/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager:    txManager,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register orchestrates the complete account registration process.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.logger.Info("Starting registration", "email", input.Email)

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, errors.Wrap(err, "registration rejected")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", "error", err)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("registration failed")
	}

	var registeredUser *entity.User

	// Execute the uniqueness check and the insert within a single database
	// transaction to ensure atomicity.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		// 1. Check if an account with this email already exists. The email
		// is stored and matched exactly as submitted.
		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrDuplicateEmail.WrapMessage("registration failed")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email uniqueness")
		}

		// 2. Create the account with the regular role.
		newUser := &entity.User{
			Name:         strings.TrimSpace(input.Name),
			Email:        input.Email,
			PasswordHash: hashedPassword,
			Role:         entity.RoleUser,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.WithStack(err)
		}
		registeredUser = newUser

		return nil
	})

	if err != nil {
		srv.logger.Warn("Registration failed", "email", input.Email, "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	// 3. Log the new account in right away.
	token, expiresIn, err := srv.tokenService.Issue(registeredUser.ID, registeredUser.Role, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token after registration")
	}
	srv.logger.Debug("User registered successfully", "userID", registeredUser.ID)

	return &usecase.AuthOutput{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      registeredUser,
	}, nil
}

// Login orchestrates the login process. Unknown email and wrong password take
// the same path out so response content never reveals which one happened.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.logger.Debug("Starting login", "email", input.Email)

	var loggedInUser *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		// 1. Find the account. Exact match on the stored email: a different
		// casing is a different identifier and fails like any unknown email.
		user, err := userRepo.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
			}

			return errors.Wrap(err, "failed to find user by email")
		}

		// 2. Check the password.
		if !srv.hasher.Check(input.Password, user.PasswordHash) {
			return domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}
		loggedInUser = user

		return nil
	})

	if err != nil {
		srv.logger.Warn("Login failed", "email", input.Email, "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute login transaction")
	}

	// 3. Issue the token outside the transaction; it touches no persistent state.
	token, expiresIn, err := srv.tokenService.Issue(loggedInUser.ID, loggedInUser.Role, input.RememberMe)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}
	srv.logger.Debug("User logged in successfully", "userID", loggedInUser.ID)

	return &usecase.AuthOutput{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      loggedInUser,
	}, nil
}

// GetProfile returns the account behind a verified token subject.
func (srv *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		foundUser, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				// The token outlived its account; the caller maps this to an
				// authentication failure, not a 404.
				return domainerrors.ErrUnauthenticated.WrapMessage("account no longer exists")
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = foundUser

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to get profile")
	}

	return user, nil
}

// ResolveIdentity maps a verified token subject to a live account. The actor
// reflects the account's current role so demotions take effect on the next
// request, not the next login.
func (srv *authService) ResolveIdentity(ctx context.Context, userID uuid.UUID) (*usecase.Actor, error) {
	user, err := srv.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &usecase.Actor{ID: user.ID, Role: user.Role}, nil
}
