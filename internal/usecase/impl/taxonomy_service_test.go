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

func createTestCategoryService(t *testing.T) (usecase.CategoryUsecase, *mockRepo.MockCategoryRepository) {
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.On("NewCategoryRepository").Return(repository.CategoryRepository(categoryRepo)).Maybe()

	txManager := &mockRepo.PassthroughTransactionManager{Factory: factory}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewCategoryService(txManager, logger), categoryRepo
}

func createTestTagService(t *testing.T) (usecase.TagUsecase, *mockRepo.MockTagRepository) {
	tagRepo := mockRepo.NewMockTagRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.On("NewTagRepository").Return(repository.TagRepository(tagRepo)).Maybe()

	txManager := &mockRepo.PassthroughTransactionManager{Factory: factory}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewTagService(txManager, logger), tagRepo
}

func TestCategoryService_CreateCategory_Success(t *testing.T) {
	service, categoryRepo := createTestCategoryService(t)
	ctx := context.Background()

	categoryRepo.On("ExistsByName", ctx, "Engineering").Return(false, nil)
	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Category).ID = uuid.New()
		}).
		Return(nil)

	category, err := service.CreateCategory(ctx, &usecase.CategoryInput{Name: "  Engineering  "})

	require.NoError(t, err)
	assert.Equal(t, "Engineering", category.Name)
	assert.NotEqual(t, uuid.Nil, category.ID)
}

func TestCategoryService_CreateCategory_DuplicateName(t *testing.T) {
	service, categoryRepo := createTestCategoryService(t)
	ctx := context.Background()

	// The check is case-insensitive at the repository level.
	categoryRepo.On("ExistsByName", ctx, "engineering").Return(true, nil)

	category, err := service.CreateCategory(ctx, &usecase.CategoryInput{Name: "engineering"})

	assert.Nil(t, category)
	assert.ErrorIs(t, err, domainerrors.ErrCategoryAlreadyExists)
}

func TestCategoryService_UpdateCategory_SameNameDifferentCase(t *testing.T) {
	service, categoryRepo := createTestCategoryService(t)
	ctx := context.Background()

	categoryID := uuid.New()
	categoryRepo.On("FindByID", ctx, categoryID).
		Return(&entity.Category{ID: categoryID, Name: "engineering"}, nil)
	// Renaming only in case does not trip the uniqueness check.
	categoryRepo.On("Update", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)

	category, err := service.UpdateCategory(ctx, categoryID, &usecase.CategoryInput{Name: "Engineering"})

	require.NoError(t, err)
	assert.Equal(t, "Engineering", category.Name)
	categoryRepo.AssertNotCalled(t, "ExistsByName", ctx, "Engineering")
}

func TestCategoryService_DeleteCategory_RefusedWithPosts(t *testing.T) {
	service, categoryRepo := createTestCategoryService(t)
	ctx := context.Background()

	categoryID := uuid.New()
	categoryRepo.On("CountPosts", ctx, categoryID).Return(3, nil)

	err := service.DeleteCategory(ctx, categoryID)

	assert.ErrorIs(t, err, domainerrors.ErrCategoryHasPosts)
	categoryRepo.AssertNotCalled(t, "Delete", ctx, categoryID)
}

func TestCategoryService_DeleteCategory_Empty(t *testing.T) {
	service, categoryRepo := createTestCategoryService(t)
	ctx := context.Background()

	categoryID := uuid.New()
	categoryRepo.On("CountPosts", ctx, categoryID).Return(0, nil)
	categoryRepo.On("Delete", ctx, categoryID).Return(nil)

	assert.NoError(t, service.DeleteCategory(ctx, categoryID))
}

func TestTagService_CreateTags_MixesExistingAndNew(t *testing.T) {
	service, tagRepo := createTestTagService(t)
	ctx := context.Background()

	existing := entity.Tag{ID: uuid.New(), Name: "go"}
	created := entity.Tag{ID: uuid.New(), Name: "testing"}

	tagRepo.On("FindByNames", ctx, []string{"go", "testing"}).
		Return([]entity.Tag{existing}, nil)
	tagRepo.On("Create", ctx, []entity.Tag{{Name: "testing"}}).
		Return([]entity.Tag{created}, nil)

	tags, err := service.CreateTags(ctx, &usecase.CreateTagsInput{
		// Duplicates and blanks in the request collapse away.
		Names: []string{"go", "", "testing", "go"},
	})

	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "go", tags[0].Name)
	assert.Equal(t, "testing", tags[1].Name)
}

func TestTagService_CreateTags_EmptyInput(t *testing.T) {
	service, _ := createTestTagService(t)

	tags, err := service.CreateTags(context.Background(), &usecase.CreateTagsInput{Names: []string{"  ", ""}})

	assert.Nil(t, tags)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestTagService_DeleteTag_RefusedWithPosts(t *testing.T) {
	service, tagRepo := createTestTagService(t)
	ctx := context.Background()

	tagID := uuid.New()
	tagRepo.On("CountPosts", ctx, tagID).Return(1, nil)

	err := service.DeleteTag(ctx, tagID)

	assert.ErrorIs(t, err, domainerrors.ErrTagHasPosts)
	tagRepo.AssertNotCalled(t, "Delete", ctx, tagID)
}

func TestTagService_DeleteTag_Unused(t *testing.T) {
	service, tagRepo := createTestTagService(t)
	ctx := context.Background()

	tagID := uuid.New()
	tagRepo.On("CountPosts", ctx, tagID).Return(0, nil)
	tagRepo.On("Delete", ctx, tagID).Return(nil)

	assert.NoError(t, service.DeleteTag(ctx, tagID))
}
