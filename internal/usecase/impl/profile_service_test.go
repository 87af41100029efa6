package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"safepost/internal/domain/entity"
	domainerrors "safepost/internal/domain/errors"
	"safepost/internal/domain/repository"
	mockRepo "safepost/internal/mocks/repository"
	"safepost/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestProfileService(t *testing.T) (usecase.ProfileUsecase, *mockRepo.MockUserRepository) {
	userRepo := mockRepo.NewMockUserRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.On("NewUserRepository").Return(repository.UserRepository(userRepo)).Maybe()

	txManager := &mockRepo.PassthroughTransactionManager{Factory: factory}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewProfileService(txManager, logger), userRepo
}

func TestProfileService_GetPublicProfile_IncludesPostCount(t *testing.T) {
	service, userRepo := createTestProfileService(t)
	ctx := context.Background()

	userID := uuid.New()
	userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Name: "Jordan Writer"}, nil)
	userRepo.On("CountPostsByAuthor", ctx, userID).Return(5, nil)

	user, err := service.GetPublicProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 5, user.PostCount)
}

func TestProfileService_GetPublicProfile_Missing(t *testing.T) {
	service, userRepo := createTestProfileService(t)
	ctx := context.Background()

	userID := uuid.New()
	userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	user, err := service.GetPublicProfile(ctx, userID)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestProfileService_UpdateProfile_PartialUpdate(t *testing.T) {
	service, userRepo := createTestProfileService(t)
	ctx := context.Background()

	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}
	existing := &entity.User{
		ID:       actor.ID,
		Name:     "Old Name",
		Bio:      "old bio",
		Location: "Berlin",
	}

	userRepo.On("FindByID", ctx, actor.ID).Return(existing, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	bio := "new bio"
	user, err := service.UpdateProfile(ctx, actor, &usecase.UpdateProfileInput{Bio: &bio})

	require.NoError(t, err)
	assert.Equal(t, "new bio", user.Bio)
	// Untouched fields survive.
	assert.Equal(t, "Old Name", user.Name)
	assert.Equal(t, "Berlin", user.Location)
}

func TestProfileService_UpdateProfile_StampsCompletion(t *testing.T) {
	service, userRepo := createTestProfileService(t)
	ctx := context.Background()

	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}
	existing := &entity.User{ID: actor.ID, Bio: "bio", Location: "Berlin"}

	userRepo.On("FindByID", ctx, actor.ID).Return(existing, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	avatar := "/files/avatars/abc.png"
	user, err := service.UpdateProfile(ctx, actor, &usecase.UpdateProfileInput{AvatarURL: &avatar})

	require.NoError(t, err)
	// Filling in the last descriptive field stamps the completion time once.
	require.NotNil(t, user.ProfileCompletedAt)

	stamped := *user.ProfileCompletedAt
	userRepo.On("FindByID", ctx, actor.ID).Return(user, nil)

	location := "Hamburg"
	again, err := service.UpdateProfile(ctx, actor, &usecase.UpdateProfileInput{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, stamped, *again.ProfileCompletedAt)
}

func TestProfileService_UpdateProfile_Anonymous(t *testing.T) {
	service, _ := createTestProfileService(t)

	user, err := service.UpdateProfile(context.Background(), nil, &usecase.UpdateProfileInput{})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}
