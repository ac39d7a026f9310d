package mocks

import (
	"context"

	"github.com/bnema/todo-cli/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// MockProfileRepository is a testify mock of ports.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

type MockProfileRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockProfileRepository) EXPECT() *MockProfileRepository_Expecter {
	return &MockProfileRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockProfileRepository) Load(ctx context.Context) (domain.Profile, error) {
	ret := _m.Called(ctx)
	if len(ret) == 0 {
		panic("no return value specified for Load")
	}
	return ret.Get(0).(domain.Profile), ret.Error(1)
}

type MockProfileRepository_Load_Call struct {
	*mock.Call
}

func (_e *MockProfileRepository_Expecter) Load(ctx interface{}) *MockProfileRepository_Load_Call {
	return &MockProfileRepository_Load_Call{Call: _e.mock.On("Load", ctx)}
}

func (_c *MockProfileRepository_Load_Call) Return(profile domain.Profile, err error) *MockProfileRepository_Load_Call {
	_c.Call.Return(profile, err)
	return _c
}

func (_m *MockProfileRepository) Save(ctx context.Context, profile domain.Profile) error {
	ret := _m.Called(ctx, profile)
	if len(ret) == 0 {
		panic("no return value specified for Save")
	}
	return ret.Error(0)
}

type MockProfileRepository_Save_Call struct {
	*mock.Call
}

func (_e *MockProfileRepository_Expecter) Save(ctx interface{}, profile interface{}) *MockProfileRepository_Save_Call {
	return &MockProfileRepository_Save_Call{Call: _e.mock.On("Save", ctx, profile)}
}

func (_c *MockProfileRepository_Save_Call) Return(err error) *MockProfileRepository_Save_Call {
	_c.Call.Return(err)
	return _c
}

func NewMockProfileRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProfileRepository {
	m := &MockProfileRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
