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

type likeServiceFixtures struct {
	service  usecase.LikeUsecase
	postRepo *mockRepo.MockPostRepository
	likeRepo *mockRepo.MockLikeRepository
}

func createTestLikeService(t *testing.T) likeServiceFixtures {
	postRepo := mockRepo.NewMockPostRepository(t)
	likeRepo := mockRepo.NewMockLikeRepository(t)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.On("NewPostRepository").Return(repository.PostRepository(postRepo)).Maybe()
	factory.On("NewLikeRepository").Return(repository.LikeRepository(likeRepo)).Maybe()

	txManager := &mockRepo.PassthroughTransactionManager{Factory: factory}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return likeServiceFixtures{
		service:  NewLikeService(txManager, logger),
		postRepo: postRepo,
		likeRepo: likeRepo,
	}
}

func TestLikeService_ToggleLike_AddsWhenMissing(t *testing.T) {
	fx := createTestLikeService(t)
	ctx := context.Background()

	postID := uuid.New()
	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}

	fx.postRepo.On("FindByID", ctx, postID).
		Return(&entity.Post{ID: postID, Status: entity.PostStatusPublished}, nil)
	fx.likeRepo.On("FindByPostAndUser", ctx, postID, actor.ID).
		Return(nil, repository.ErrLikeNotFound)
	fx.likeRepo.On("Create", ctx, mock.AnythingOfType("*entity.PostLike")).Return(nil)
	fx.likeRepo.On("CountByPost", ctx, postID).Return(8, nil)
	fx.postRepo.On("SetLikesCount", ctx, postID, 8).Return(nil)

	status, err := fx.service.ToggleLike(ctx, actor, postID)

	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, 8, status.LikesCount)
}

func TestLikeService_ToggleLike_RemovesWhenPresent(t *testing.T) {
	fx := createTestLikeService(t)
	ctx := context.Background()

	postID := uuid.New()
	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}
	existing := &entity.PostLike{ID: uuid.New(), PostID: postID, UserID: actor.ID}

	fx.postRepo.On("FindByID", ctx, postID).
		Return(&entity.Post{ID: postID, Status: entity.PostStatusPublished}, nil)
	fx.likeRepo.On("FindByPostAndUser", ctx, postID, actor.ID).Return(existing, nil)
	fx.likeRepo.On("Delete", ctx, existing.ID).Return(nil)
	fx.likeRepo.On("CountByPost", ctx, postID).Return(7, nil)
	fx.postRepo.On("SetLikesCount", ctx, postID, 7).Return(nil)

	status, err := fx.service.ToggleLike(ctx, actor, postID)

	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, 7, status.LikesCount)
}

func TestLikeService_ToggleLike_Anonymous(t *testing.T) {
	fx := createTestLikeService(t)

	status, err := fx.service.ToggleLike(context.Background(), nil, uuid.New())

	assert.Nil(t, status)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestLikeService_ToggleLike_MissingPost(t *testing.T) {
	fx := createTestLikeService(t)
	ctx := context.Background()

	postID := uuid.New()
	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}

	fx.postRepo.On("FindByID", ctx, postID).Return(nil, repository.ErrPostNotFound)

	status, err := fx.service.ToggleLike(ctx, actor, postID)

	assert.Nil(t, status)
	assert.ErrorIs(t, err, domainerrors.ErrPostNotFound)
}

func TestLikeService_GetLikeStatus_AnonymousNeverLiked(t *testing.T) {
	fx := createTestLikeService(t)
	ctx := context.Background()

	postID := uuid.New()
	fx.postRepo.On("FindByID", ctx, postID).
		Return(&entity.Post{ID: postID, Status: entity.PostStatusPublished}, nil)
	fx.likeRepo.On("CountByPost", ctx, postID).Return(12, nil)

	status, err := fx.service.GetLikeStatus(ctx, nil, postID)

	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, 12, status.LikesCount)
	fx.likeRepo.AssertNotCalled(t, "ExistsByPostAndUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestLikeService_GetLikeStatus_SignedIn(t *testing.T) {
	fx := createTestLikeService(t)
	ctx := context.Background()

	postID := uuid.New()
	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}

	fx.postRepo.On("FindByID", ctx, postID).
		Return(&entity.Post{ID: postID, Status: entity.PostStatusPublished}, nil)
	fx.likeRepo.On("CountByPost", ctx, postID).Return(3, nil)
	fx.likeRepo.On("ExistsByPostAndUser", ctx, postID, actor.ID).Return(true, nil)

	status, err := fx.service.GetLikeStatus(ctx, actor, postID)

	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, 3, status.LikesCount)
}

func TestLikeService_GetLikeStatus_MissingPost(t *testing.T) {
	fx := createTestLikeService(t)
	ctx := context.Background()

	postID := uuid.New()

	fx.postRepo.On("FindByID", ctx, postID).Return(nil, repository.ErrPostNotFound)

	status, err := fx.service.GetLikeStatus(ctx, nil, postID)

	assert.Nil(t, status)
	assert.ErrorIs(t, err, domainerrors.ErrPostNotFound)
	fx.likeRepo.AssertNotCalled(t, "CountByPost", mock.Anything, mock.Anything)
}
