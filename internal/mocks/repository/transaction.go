// Package repository provides testify mocks for the domain repository interfaces.
package repository

import (
	"context"

	"safepost/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager mocks repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a mock with cleanup-time expectation checks.
func NewMockTransactionManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	return args.Error(0)
}

// PassthroughTransactionManager runs the callback directly against a fixed
// factory and returns its error, skipping any real transaction handling.
// Most service tests want exactly this.
type PassthroughTransactionManager struct {
	Factory repository.RepositoryFactory
}

func (p *PassthroughTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(p.Factory)
}

// MockRepositoryFactory mocks repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates a mock with cleanup-time expectation checks.
func NewMockRepositoryFactory(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) NewUserRepository() repository.UserRepository {
	return m.Called().Get(0).(repository.UserRepository)
}

func (m *MockRepositoryFactory) NewPostRepository() repository.PostRepository {
	return m.Called().Get(0).(repository.PostRepository)
}

func (m *MockRepositoryFactory) NewCategoryRepository() repository.CategoryRepository {
	return m.Called().Get(0).(repository.CategoryRepository)
}

func (m *MockRepositoryFactory) NewTagRepository() repository.TagRepository {
	return m.Called().Get(0).(repository.TagRepository)
}

func (m *MockRepositoryFactory) NewLikeRepository() repository.LikeRepository {
	return m.Called().Get(0).(repository.LikeRepository)
}
