package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"safepost/internal/domain/entity"
	domainerrors "safepost/internal/domain/errors"
	"safepost/internal/domain/repository"
	"safepost/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.CategoryUsecase {
	return &categoryService{
		txManager: txManager,
		logger:    logger,
	}
}

// ListCategories returns all categories with their post counts.
func (srv *categoryService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	var categories []*entity.Category

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewCategoryRepository().FindAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list categories")
		}
		categories = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// CreateCategory adds a new category. Names are unique case-insensitively.
func (srv *categoryService) CreateCategory(ctx context.Context, input *usecase.CategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	srv.logger.Info("Creating category", "name", name)

	var category *entity.Category

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.NewCategoryRepository()

		exists, err := categoryRepo.ExistsByName(ctx, name)
		if err != nil {
			return errors.Wrap(err, "failed to check category name")
		}
		if exists {
			return domainerrors.ErrCategoryAlreadyExists.WrapMessage("category creation failed")
		}

		newCategory := &entity.Category{Name: name}
		if err := categoryRepo.Create(ctx, newCategory); err != nil {
			return errors.WithStack(err)
		}
		category = newCategory

		return nil
	})

	if err != nil {
		srv.logger.Warn("Category creation failed", "name", name, "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute category creation transaction")
	}

	return category, nil
}

// UpdateCategory renames a category.
func (srv *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, input *usecase.CategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	srv.logger.Info("Renaming category", "categoryID", id, "name", name)

	var category *entity.Category

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.NewCategoryRepository()

		existing, err := categoryRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrCategoryNotFound.WrapMessage("category rename failed")
			}

			return errors.Wrap(err, "failed to find category")
		}

		// Renaming to the same name (modulo case) is allowed; any other
		// collision is not.
		if !strings.EqualFold(existing.Name, name) {
			exists, err := categoryRepo.ExistsByName(ctx, name)
			if err != nil {
				return errors.Wrap(err, "failed to check category name")
			}
			if exists {
				return domainerrors.ErrCategoryAlreadyExists.WrapMessage("category rename failed")
			}
		}

		existing.Name = name
		if err := categoryRepo.Update(ctx, existing); err != nil {
			return errors.WithStack(err)
		}
		category = existing

		return nil
	})

	if err != nil {
		srv.logger.Warn("Category rename failed", "categoryID", id, "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute category rename transaction")
	}

	return category, nil
}

// DeleteCategory removes a category. Refused while posts still use it.
func (srv *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	srv.logger.Info("Deleting category", "categoryID", id)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.NewCategoryRepository()

		count, err := categoryRepo.CountPosts(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to count posts in category")
		}
		if count > 0 {
			return domainerrors.ErrCategoryHasPosts.WrapMessage("category deletion refused")
		}

		if err := categoryRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrCategoryNotFound.WrapMessage("category deletion failed")
			}

			return errors.WithStack(err)
		}

		return nil
	})

	if err != nil {
		srv.logger.Warn("Category deletion failed", "categoryID", id, "error", err.Error())

		return errors.Wrap(err, "failed to execute category deletion transaction")
	}

	return nil
}

// tagService implements the TagUsecase interface.
type tagService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewTagService is the constructor for tagService.
func NewTagService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.TagUsecase {
	return &tagService{
		txManager: txManager,
		logger:    logger,
	}
}

// ListTags returns all tags with their post counts.
func (srv *tagService) ListTags(ctx context.Context) ([]*entity.Tag, error) {
	var tags []*entity.Tag

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewTagRepository().FindAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list tags")
		}
		tags = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to list tags")
	}

	return tags, nil
}

// CreateTags ensures a tag exists for each given name and returns the full
// resulting set, sorted by name. Existing tags are reused, never duplicated.
func (srv *tagService) CreateTags(ctx context.Context, input *usecase.CreateTagsInput) ([]entity.Tag, error) {
	names := normalizeTagNames(input.Names)
	if len(names) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("no tag names given")
	}
	srv.logger.Info("Creating tags", "count", len(names))

	var result []entity.Tag

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tagRepo := repoFactory.NewTagRepository()

		existing, err := tagRepo.FindByNames(ctx, names)
		if err != nil {
			return errors.Wrap(err, "failed to find existing tags")
		}

		have := make(map[string]struct{}, len(existing))
		for _, tag := range existing {
			have[tag.Name] = struct{}{}
		}

		var missing []entity.Tag
		for _, name := range names {
			if _, ok := have[name]; !ok {
				missing = append(missing, entity.Tag{Name: name})
			}
		}

		created, err := tagRepo.Create(ctx, missing)
		if err != nil {
			return errors.WithStack(err)
		}

		result = append(existing, created...)
		sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

		return nil
	})

	if err != nil {
		srv.logger.Warn("Tag creation failed", "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute tag creation transaction")
	}

	return result, nil
}

// DeleteTag removes a tag. Refused while posts still use it.
func (srv *tagService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	srv.logger.Info("Deleting tag", "tagID", id)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tagRepo := repoFactory.NewTagRepository()

		count, err := tagRepo.CountPosts(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to count posts with tag")
		}
		if count > 0 {
			return domainerrors.ErrTagHasPosts.WrapMessage("tag deletion refused")
		}

		if err := tagRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrTagNotFound) {
				return domainerrors.ErrTagNotFound.WrapMessage("tag deletion failed")
			}

			return errors.WithStack(err)
		}

		return nil
	})

	if err != nil {
		srv.logger.Warn("Tag deletion failed", "tagID", id, "error", err.Error())

		return errors.Wrap(err, "failed to execute tag deletion transaction")
	}

	return nil
}

// normalizeTagNames trims, drops empties and deduplicates while keeping the
// first-seen order.
func normalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}

	return result
}
