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

// likeRepository implements the domain.LikeRepository interface using GORM.
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository is the constructor for likeRepository.
func NewLikeRepository(db *gorm.DB) repository.LikeRepository {
	return &likeRepository{db: db}
}

// FindByPostAndUser retrieves the like a user placed on a post.
func (repo *likeRepository) FindByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*entity.PostLike, error) {
	var likeM model.PostLikeModel
	if err := repo.db.WithContext(ctx).
		First(&likeM, "post_id = ? AND user_id = ?", postID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLikeNotFound
		}

		return nil, errors.Wrap(err, "failed to find like")
	}

	return toLikeDomain(&likeM), nil
}

// ExistsByPostAndUser reports whether the user has liked the post.
func (repo *likeRepository) ExistsByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.PostLikeModel{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check like existence")
	}

	return count > 0, nil
}

// Create persists a new like. The unique (post, user) index makes double
// likes a constraint violation rather than a duplicate row.
func (repo *likeRepository) Create(ctx context.Context, like *entity.PostLike) error {
	likeM := fromLikeDomain(like)

	if err := repo.db.WithContext(ctx).Create(likeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("post already liked")
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPostNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create like")
	}

	like.ID = likeM.ID
	like.CreatedAt = likeM.CreatedAt

	return nil
}

// Delete removes an existing like.
func (repo *likeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.PostLikeModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete like")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLikeNotFound
	}

	return nil
}

// CountByPost returns the number of likes a post has received.
func (repo *likeRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.PostLikeModel{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count likes")
	}

	return int(count), nil
}

// --- Mapper Functions ---

// toLikeDomain converts a GORM PostLikeModel to a domain PostLike entity.
func toLikeDomain(data *model.PostLikeModel) *entity.PostLike {
	if data == nil {
		return nil
	}

	return &entity.PostLike{
		ID:        data.ID,
		PostID:    data.PostID,
		UserID:    data.UserID,
		CreatedAt: data.CreatedAt,
	}
}

// fromLikeDomain converts a domain PostLike entity to a GORM PostLikeModel.
func fromLikeDomain(data *entity.PostLike) *model.PostLikeModel {
	if data == nil {
		return nil
	}

	return &model.PostLikeModel{
		ID:     data.ID,
		PostID: data.PostID,
		UserID: data.UserID,
	}
}
