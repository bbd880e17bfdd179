// Package mocks provides mock implementations for testing the admin API.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockAdminUserRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(user, nil)
package mocks

// Generate mocks for the administrator directory interfaces from internal/core.
// This creates MockAdminUserRepository (Create, GetByUID, GetByEmail, List,
// Update, Deactivate, Delete) and MockAdminUserRepositoryListWithOptions.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=admin_user_repository_mock.go github.com/nftheater/admin-api/internal/core AdminUserRepository,AdminUserRepositoryListWithOptions
