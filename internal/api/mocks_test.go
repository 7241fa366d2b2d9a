package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"orchestra-platform/internal/dto"
	"orchestra-platform/internal/service"
)

// nil-safe accessors for pointer results
func userArg(args mock.Arguments, i int) *dto.User {
	u, _ := args.Get(i).(*dto.User)
	return u
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) List(ctx context.Context) ([]dto.User, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]dto.User)
	return out, args.Error(1)
}

func (m *mockUsers) Get(ctx context.Context, id int) (*dto.User, error) {
	args := m.Called(ctx, id)
	return userArg(args, 0), args.Error(1)
}

func (m *mockUsers) GetByName(ctx context.Context, name string) (*dto.User, error) {
	args := m.Called(ctx, name)
	return userArg(args, 0), args.Error(1)
}

func (m *mockUsers) Create(ctx context.Context, in dto.CreateUser) (*dto.User, error) {
	args := m.Called(ctx, in)
	return userArg(args, 0), args.Error(1)
}

func (m *mockUsers) Update(ctx context.Context, id int, in dto.UpdateUser) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockUsers) UpdateImage(ctx context.Context, id int, image string) error {
	return m.Called(ctx, id, image).Error(0)
}

func (m *mockUsers) Delete(ctx context.Context, id int, actor *int) error {
	return m.Called(ctx, id, actor).Error(0)
}

func (m *mockUsers) Authenticate(ctx context.Context, username, password string) (*dto.User, error) {
	args := m.Called(ctx, username, password)
	return userArg(args, 0), args.Error(1)
}

func (m *mockUsers) Role(code int) (string, error) {
	args := m.Called(code)
	return args.String(0), args.Error(1)
}

type mockLookups struct{ mock.Mock }

func (m *mockLookups) List(ctx context.Context) ([]dto.Lookup, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]dto.Lookup)
	return out, args.Error(1)
}

func (m *mockLookups) Get(ctx context.Context, id int) (*dto.Lookup, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*dto.Lookup)
	return l, args.Error(1)
}

func (m *mockLookups) GetByName(ctx context.Context, name string) (*dto.Lookup, error) {
	args := m.Called(ctx, name)
	l, _ := args.Get(0).(*dto.Lookup)
	return l, args.Error(1)
}

func (m *mockLookups) Create(ctx context.Context, in dto.SaveLookup) (*dto.Lookup, error) {
	args := m.Called(ctx, in)
	l, _ := args.Get(0).(*dto.Lookup)
	return l, args.Error(1)
}

func (m *mockLookups) Update(ctx context.Context, id int, in dto.SaveLookup) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockLookups) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockEnrollments struct{ mock.Mock }

func (m *mockEnrollments) Enroll(ctx context.Context, actorUserID int, t service.EnrollTarget) (*dto.Enrollment, error) {
	args := m.Called(ctx, actorUserID, t)
	e, _ := args.Get(0).(*dto.Enrollment)
	return e, args.Error(1)
}

func (m *mockEnrollments) Accept(ctx context.Context, actorUserID, playerID, orchestraID int) (*dto.Enrollment, error) {
	args := m.Called(ctx, actorUserID, playerID, orchestraID)
	e, _ := args.Get(0).(*dto.Enrollment)
	return e, args.Error(1)
}

func (m *mockEnrollments) Reject(ctx context.Context, actorUserID, playerID, orchestraID int) (*dto.Enrollment, error) {
	args := m.Called(ctx, actorUserID, playerID, orchestraID)
	e, _ := args.Get(0).(*dto.Enrollment)
	return e, args.Error(1)
}

func (m *mockEnrollments) ListByPlayer(ctx context.Context, playerID int) ([]dto.Enrollment, error) {
	args := m.Called(ctx, playerID)
	out, _ := args.Get(0).([]dto.Enrollment)
	return out, args.Error(1)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }
