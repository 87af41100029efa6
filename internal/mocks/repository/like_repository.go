package repository

import (
	"context"

	"safepost/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockLikeRepository mocks repository.LikeRepository.
type MockLikeRepository struct {
	mock.Mock
}

// NewMockLikeRepository creates a mock with cleanup-time expectation checks.
func NewMockLikeRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLikeRepository {
	m := &MockLikeRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockLikeRepository) FindByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*entity.PostLike, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.PostLike), args.Error(1)
}

func (m *MockLikeRepository) ExistsByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, postID, userID)

	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) Create(ctx context.Context, like *entity.PostLike) error {
	return m.Called(ctx, like).Error(0)
}

func (m *MockLikeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLikeRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int, error) {
	args := m.Called(ctx, postID)

	return args.Int(0), args.Error(1)
}
