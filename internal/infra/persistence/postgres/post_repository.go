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

// postRepository implements the domain.PostRepository interface using GORM.
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepository{db: db}
}

// FindByID retrieves a single post with its author, category and tags preloaded.
func (repo *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var postM model.PostModel
	if err := repo.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		First(&postM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to find post by id")
	}

	return toPostDomain(&postM), nil
}

// FindPublished lists published posts matching the filter, newest first.
func (repo *postRepository) FindPublished(ctx context.Context, filter repository.PostFilter) ([]*entity.Post, error) {
	query := repo.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Where("posts.status = ?", entity.PostStatusPublished.String())

	if filter.CategoryID != nil {
		query = query.Where("posts.category_id = ?", *filter.CategoryID)
	}
	if filter.TagID != nil {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_model_id = posts.id").
			Where("post_tags.tag_model_id = ?", *filter.TagID)
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("posts.title ILIKE ? OR posts.content ILIKE ?", pattern, pattern)
	}

	var postMs []*model.PostModel
	if err := query.Order("posts.created_at DESC").Find(&postMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list published posts")
	}

	return toPostDomains(postMs), nil
}

// FindDraftsByAuthor lists the given author's draft posts, newest first.
func (repo *postRepository) FindDraftsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Post, error) {
	var postMs []*model.PostModel
	if err := repo.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Where("status = ? AND author_id = ?", entity.PostStatusDraft.String(), authorID).
		Order("created_at DESC").
		Find(&postMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list drafts by author")
	}

	return toPostDomains(postMs), nil
}

// Create persists a new post together with its tag associations.
func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postM := fromPostDomain(post)

	if err := repo.db.WithContext(ctx).Create(postM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCategoryNotFound.WrapMessage("invalid category or tag reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required post fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create post")
	}

	post.ID = postM.ID
	post.CreatedAt = postM.CreatedAt
	post.UpdatedAt = postM.UpdatedAt

	return nil
}

// Update modifies an existing post, replacing its tag associations.
func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	postM := fromPostDomain(post)

	tx := repo.db.WithContext(ctx)

	// Replace the tag set explicitly; Save alone only appends to many2many.
	if err := tx.Model(&model.PostModel{ID: postM.ID}).
		Association("Tags").
		Replace(postM.Tags); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update post tags")
	}

	if err := tx.Omit("Tags", "Author", "Category").Save(postM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCategoryNotFound.WrapMessage("invalid category reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update post")
	}

	post.UpdatedAt = postM.UpdatedAt

	return nil
}

// Delete removes a post and its tag/like associations.
func (repo *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := repo.db.WithContext(ctx)

	if err := tx.Model(&model.PostModel{ID: id}).Association("Tags").Clear(); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear post tags")
	}

	if err := tx.Where("post_id = ?", id).Delete(&model.PostLikeModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete post likes")
	}

	result := tx.Delete(&model.PostModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// IncrementViewCount bumps the view counter without a full entity round trip.
func (repo *postRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to increment view count")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// SetLikesCount stores the maintained like counter for a post.
func (repo *postRepository) SetLikesCount(ctx context.Context, id uuid.UUID, count int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", id).
		UpdateColumn("likes_count", count)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set likes count")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toPostDomain converts a GORM PostModel to a domain Post entity.
func toPostDomain(data *model.PostModel) *entity.Post {
	if data == nil {
		return nil
	}

	tags := make([]entity.Tag, 0, len(data.Tags))
	for _, tagM := range data.Tags {
		tags = append(tags, entity.Tag{ID: tagM.ID, Name: tagM.Name})
	}

	return &entity.Post{
		ID:                    data.ID,
		Title:                 data.Title,
		Content:               data.Content,
		Status:                entity.PostStatus(data.Status),
		ReadingTime:           data.ReadingTime,
		ViewCount:             data.ViewCount,
		LikesCount:            data.LikesCount,
		CoverImageURL:         data.CoverImageURL,
		CoverImageFilename:    data.CoverImageFilename,
		CoverImageSize:        data.CoverImageSize,
		CoverImageContentType: data.CoverImageContentType,
		AuthorID:              data.AuthorID,
		Author:                toUserDomain(data.Author),
		CategoryID:            data.CategoryID,
		Category:              toCategoryDomain(data.Category),
		Tags:                  tags,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}
}

// toPostDomains converts a slice of GORM PostModels to domain Post entities.
func toPostDomains(data []*model.PostModel) []*entity.Post {
	posts := make([]*entity.Post, 0, len(data))
	for _, postM := range data {
		posts = append(posts, toPostDomain(postM))
	}

	return posts
}

// fromPostDomain converts a domain Post entity to a GORM PostModel for persistence.
// Associations carry only their IDs; the loaded Author/Category are never written back.
func fromPostDomain(data *entity.Post) *model.PostModel {
	if data == nil {
		return nil
	}

	tags := make([]model.TagModel, 0, len(data.Tags))
	for _, tag := range data.Tags {
		tags = append(tags, model.TagModel{ID: tag.ID})
	}

	return &model.PostModel{
		ID:                    data.ID,
		Title:                 data.Title,
		Content:               data.Content,
		Status:                data.Status.String(),
		ReadingTime:           data.ReadingTime,
		ViewCount:             data.ViewCount,
		LikesCount:            data.LikesCount,
		CoverImageURL:         data.CoverImageURL,
		CoverImageFilename:    data.CoverImageFilename,
		CoverImageSize:        data.CoverImageSize,
		CoverImageContentType: data.CoverImageContentType,
		AuthorID:              data.AuthorID,
		CategoryID:            data.CategoryID,
		Tags:                  tags,
		CreatedAt:             data.CreatedAt,
	}
}
