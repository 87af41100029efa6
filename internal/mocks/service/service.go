// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"
	"io"

	"safepost/internal/domain/entity"
	"safepost/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock with cleanup-time expectation checks.
func NewMockPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

func (m *MockPasswordHasher) ValidatePasswordStrength(password string) error {
	return m.Called(password).Error(0)
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock with cleanup-time expectation checks.
func NewMockTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) Issue(userID uuid.UUID, role entity.Role, rememberMe bool) (string, int64, error) {
	args := m.Called(userID, role, rememberMe)

	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockTokenService) Parse(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

// MockFileStorage mocks service.FileStorage.
type MockFileStorage struct {
	mock.Mock
}

// NewMockFileStorage creates a mock with cleanup-time expectation checks.
func NewMockFileStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFileStorage {
	m := &MockFileStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFileStorage) Store(ctx context.Context, kind service.FileKind, originalFilename, contentType string, size int64, content io.Reader) (*service.StoredFile, error) {
	args := m.Called(ctx, kind, originalFilename, contentType, size, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.StoredFile), args.Error(1)
}

func (m *MockFileStorage) Open(ctx context.Context, kind service.FileKind, filename string) (io.ReadCloser, error) {
	args := m.Called(ctx, kind, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, kind service.FileKind, filename string) error {
	return m.Called(ctx, kind, filename).Error(0)
}
