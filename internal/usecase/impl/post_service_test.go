package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
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

// postServiceFixtures holds all test dependencies for post service tests.
type postServiceFixtures struct {
	service      usecase.PostUsecase
	postRepo     *mockRepo.MockPostRepository
	categoryRepo *mockRepo.MockCategoryRepository
	tagRepo      *mockRepo.MockTagRepository
}

func createTestPostService(t *testing.T) postServiceFixtures {
	postRepo := mockRepo.NewMockPostRepository(t)
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	tagRepo := mockRepo.NewMockTagRepository(t)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.On("NewPostRepository").Return(repository.PostRepository(postRepo)).Maybe()
	factory.On("NewCategoryRepository").Return(repository.CategoryRepository(categoryRepo)).Maybe()
	factory.On("NewTagRepository").Return(repository.TagRepository(tagRepo)).Maybe()

	txManager := &mockRepo.PassthroughTransactionManager{Factory: factory}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return postServiceFixtures{
		service:      NewPostService(txManager, logger),
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

func TestEstimateReadingTime(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		want    int
	}{
		{"empty content", "", 1},
		{"single word", "hello", 1},
		{"exactly one minute", strings.Repeat("word ", 200), 1},
		{"just over one minute", strings.Repeat("word ", 201), 2},
		{"five minutes", strings.Repeat("word ", 1000), 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, estimateReadingTime(tc.content))
		})
	}
}

func TestPostService_GetPost_PublishedIncrementsViews(t *testing.T) {
	fx := createTestPostService(t)
	ctx := context.Background()

	postID := uuid.New()
	stored := &entity.Post{
		ID:        postID,
		Status:    entity.PostStatusPublished,
		ViewCount: 41,
	}

	fx.postRepo.On("FindByID", ctx, postID).Return(stored, nil)
	fx.postRepo.On("IncrementViewCount", ctx, postID).Return(nil)

	post, err := fx.service.GetPost(ctx, postID, nil)

	require.NoError(t, err)
	assert.Equal(t, 42, post.ViewCount)
}

func TestPostService_GetPost_DraftVisibility(t *testing.T) {
	authorID := uuid.New()
	draft := &entity.Post{
		ID:       uuid.New(),
		Status:   entity.PostStatusDraft,
		AuthorID: authorID,
	}

	testCases := []struct {
		name    string
		actor   *usecase.Actor
		visible bool
	}{
		{"anonymous", nil, false},
		{"other user", &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}, false},
		{"author", &usecase.Actor{ID: authorID, Role: entity.RoleUser}, true},
		{"admin", &usecase.Actor{ID: uuid.New(), Role: entity.RoleAdmin}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fx := createTestPostService(t)
			ctx := context.Background()

			fx.postRepo.On("FindByID", ctx, draft.ID).Return(draft, nil)

			post, err := fx.service.GetPost(ctx, draft.ID, tc.actor)

			if tc.visible {
				require.NoError(t, err)
				assert.Equal(t, draft.ID, post.ID)
				// Draft reads never count as views.
				fx.postRepo.AssertNotCalled(t, "IncrementViewCount", ctx, draft.ID)
			} else {
				assert.Nil(t, post)
				// A hidden draft is indistinguishable from a missing post.
				assert.ErrorIs(t, err, domainerrors.ErrPostNotFound)
			}
		})
	}
}

func TestPostService_CreatePost_Success(t *testing.T) {
	fx := createTestPostService(t)
	ctx := context.Background()

	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}
	categoryID := uuid.New()
	tagID := uuid.New()
	postID := uuid.New()

	input := &usecase.CreatePostInput{
		Title:      "  Go for Bloggers  ",
		Content:    strings.Repeat("word ", 500),
		Status:     entity.PostStatusPublished,
		CategoryID: categoryID,
		TagIDs:     []uuid.UUID{tagID},
	}

	fx.categoryRepo.On("FindByID", ctx, categoryID).
		Return(&entity.Category{ID: categoryID, Name: "Engineering"}, nil)
	fx.tagRepo.On("FindByIDs", ctx, []uuid.UUID{tagID}).
		Return([]entity.Tag{{ID: tagID, Name: "go"}}, nil)
	fx.postRepo.On("Create", ctx, mock.AnythingOfType("*entity.Post")).
		Run(func(args mock.Arguments) {
			post := args.Get(1).(*entity.Post)
			assert.Equal(t, "Go for Bloggers", post.Title)
			assert.Equal(t, actor.ID, post.AuthorID)
			assert.Equal(t, 3, post.ReadingTime) // 500 words at 200 wpm, rounded up.
			post.ID = postID
		}).
		Return(nil)
	fx.postRepo.On("FindByID", ctx, postID).
		Return(&entity.Post{ID: postID, Title: "Go for Bloggers"}, nil)

	post, err := fx.service.CreatePost(ctx, actor, input)

	require.NoError(t, err)
	assert.Equal(t, postID, post.ID)
}

func TestPostService_CreatePost_RepeatedTagID(t *testing.T) {
	fx := createTestPostService(t)
	ctx := context.Background()

	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}
	categoryID := uuid.New()
	tagID := uuid.New()
	postID := uuid.New()

	input := &usecase.CreatePostInput{
		Title:      "Tagged twice",
		Content:    "short content",
		Status:     entity.PostStatusPublished,
		CategoryID: categoryID,
		TagIDs:     []uuid.UUID{tagID, tagID},
	}

	fx.categoryRepo.On("FindByID", ctx, categoryID).
		Return(&entity.Category{ID: categoryID, Name: "Engineering"}, nil)
	// The lookup sees each distinct ID once, so the existence check cannot
	// mistake a repeated ID for a missing tag.
	fx.tagRepo.On("FindByIDs", ctx, []uuid.UUID{tagID}).
		Return([]entity.Tag{{ID: tagID, Name: "go"}}, nil)
	fx.postRepo.On("Create", ctx, mock.AnythingOfType("*entity.Post")).
		Run(func(args mock.Arguments) {
			post := args.Get(1).(*entity.Post)
			require.Len(t, post.Tags, 1)
			post.ID = postID
		}).
		Return(nil)
	fx.postRepo.On("FindByID", ctx, postID).
		Return(&entity.Post{ID: postID, Title: "Tagged twice"}, nil)

	post, err := fx.service.CreatePost(ctx, actor, input)

	require.NoError(t, err)
	assert.Equal(t, postID, post.ID)
}

func TestPostService_CreatePost_Anonymous(t *testing.T) {
	fx := createTestPostService(t)

	post, err := fx.service.CreatePost(context.Background(), nil, &usecase.CreatePostInput{})

	assert.Nil(t, post)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestPostService_CreatePost_UnknownCategory(t *testing.T) {
	fx := createTestPostService(t)
	ctx := context.Background()

	actor := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}
	categoryID := uuid.New()

	fx.categoryRepo.On("FindByID", ctx, categoryID).
		Return(nil, repository.ErrCategoryNotFound)

	post, err := fx.service.CreatePost(ctx, actor, &usecase.CreatePostInput{
		Title:      "Title",
		Content:    "content",
		Status:     entity.PostStatusDraft,
		CategoryID: categoryID,
	})

	assert.Nil(t, post)
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestPostService_UpdatePost_OwnershipGate(t *testing.T) {
	fx := createTestPostService(t)
	ctx := context.Background()

	authorID := uuid.New()
	postID := uuid.New()
	stored := &entity.Post{ID: postID, AuthorID: authorID, Status: entity.PostStatusPublished}

	fx.postRepo.On("FindByID", ctx, postID).Return(stored, nil)

	other := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}
	post, err := fx.service.UpdatePost(ctx, other, postID, &usecase.UpdatePostInput{})

	assert.Nil(t, post)
	assert.ErrorIs(t, err, domainerrors.ErrNotPostAuthor)
}

func TestPostService_DeletePost_AdminOverride(t *testing.T) {
	fx := createTestPostService(t)
	ctx := context.Background()

	authorID := uuid.New()
	postID := uuid.New()
	stored := &entity.Post{ID: postID, AuthorID: authorID, Status: entity.PostStatusPublished}

	fx.postRepo.On("FindByID", ctx, postID).Return(stored, nil)
	fx.postRepo.On("Delete", ctx, postID).Return(nil)

	admin := &usecase.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	err := fx.service.DeletePost(ctx, admin, postID)

	require.NoError(t, err)
}

func TestPostService_ListDrafts_Anonymous(t *testing.T) {
	fx := createTestPostService(t)

	posts, err := fx.service.ListDrafts(context.Background(), nil)

	assert.Nil(t, posts)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestPostService_ListPublished_PassesFilter(t *testing.T) {
	fx := createTestPostService(t)
	ctx := context.Background()

	categoryID := uuid.New()
	expectedFilter := repository.PostFilter{CategoryID: &categoryID, Query: "gopher"}

	fx.postRepo.On("FindPublished", ctx, expectedFilter).
		Return([]*entity.Post{{ID: uuid.New()}}, nil)

	posts, err := fx.service.ListPublished(ctx, &usecase.ListPostsInput{
		CategoryID: &categoryID,
		Query:      "gopher",
	})

	require.NoError(t, err)
	assert.Len(t, posts, 1)
}
