package postgres

import (
	"context"

	"safepost/internal/domain/entity"
	domainerrors "safepost/internal/domain/errors"
	"safepost/internal/domain/repository"
	"safepost/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// tagRepository implements the domain.TagRepository interface using GORM.
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository is the constructor for tagRepository.
func NewTagRepository(db *gorm.DB) repository.TagRepository {
	return &tagRepository{db: db}
}

// FindAll lists all tags with their derived post counts, sorted by name.
func (repo *tagRepository) FindAll(ctx context.Context) ([]*entity.Tag, error) {
	var tagMs []*model.TagModel
	if err := repo.db.WithContext(ctx).
		Model(&model.TagModel{}).
		Select("tags.*, COUNT(post_tags.post_model_id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_model_id = tags.id").
		Group("tags.id").
		Order("tags.name ASC").
		Find(&tagMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tags")
	}

	tags := make([]*entity.Tag, 0, len(tagMs))
	for _, tagM := range tagMs {
		tags = append(tags, toTagDomainPtr(tagM))
	}

	return tags, nil
}

// FindByIDs retrieves the tags for all given IDs. Any missing ID yields
// ErrTagNotFound so post writes never attach dangling tags.
func (repo *tagRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var tagMs []model.TagModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Find(&tagMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find tags by ids")
	}
	if len(tagMs) != len(ids) {
		return nil, repository.ErrTagNotFound
	}

	return toTagDomains(tagMs), nil
}

// FindByNames retrieves the tags whose names are in the given set.
func (repo *tagRepository) FindByNames(ctx context.Context, names []string) ([]entity.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var tagMs []model.TagModel
	if err := repo.db.WithContext(ctx).Where("name IN ?", names).Find(&tagMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find tags by names")
	}

	return toTagDomains(tagMs), nil
}

// Create persists the given new tags and returns them with generated IDs.
func (repo *tagRepository) Create(ctx context.Context, tags []entity.Tag) ([]entity.Tag, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	tagMs := make([]model.TagModel, 0, len(tags))
	for _, tag := range tags {
		tagMs = append(tagMs, model.TagModel{Name: tag.Name})
	}

	if err := repo.db.WithContext(ctx).Create(&tagMs).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("tag name already exists")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create tags")
	}

	return toTagDomains(tagMs), nil
}

// FindByID retrieves a single tag by its unique ID.
func (repo *tagRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	var tagM model.TagModel
	if err := repo.db.WithContext(ctx).First(&tagM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTagNotFound
		}

		return nil, errors.Wrap(err, "failed to find tag by id")
	}

	return toTagDomainPtr(&tagM), nil
}

// Delete removes a tag. Callers must check for attached posts first.
func (repo *tagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.TagModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete tag")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTagNotFound
	}

	return nil
}

// CountPosts returns the number of posts attached to the tag.
func (repo *tagRepository) CountPosts(ctx context.Context, id uuid.UUID) (int, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Table("post_tags").
		Where("tag_model_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count posts with tag")
	}

	return int(count), nil
}

// --- Mapper Functions ---

// toTagDomainPtr converts a GORM TagModel to a domain Tag entity.
func toTagDomainPtr(data *model.TagModel) *entity.Tag {
	if data == nil {
		return nil
	}

	return &entity.Tag{
		ID:        data.ID,
		Name:      data.Name,
		PostCount: data.PostCount,
	}
}

// toTagDomains converts a slice of GORM TagModels to domain Tag entities.
func toTagDomains(data []model.TagModel) []entity.Tag {
	tags := make([]entity.Tag, 0, len(data))
	for _, tagM := range data {
		tags = append(tags, entity.Tag{
			ID:        tagM.ID,
			Name:      tagM.Name,
			PostCount: tagM.PostCount,
		})
	}

	return tags
}
