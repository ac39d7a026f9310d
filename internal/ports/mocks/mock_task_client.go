package mocks

import (
	"context"

	"github.com/bnema/todo-cli/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// MockTaskClient is a testify mock of ports.TaskClient.
type MockTaskClient struct {
	mock.Mock
}

type MockTaskClient_Expecter struct {
	mock *mock.Mock
}

func (_m *MockTaskClient) EXPECT() *MockTaskClient_Expecter {
	return &MockTaskClient_Expecter{mock: &_m.Mock}
}

func (_m *MockTaskClient) List(ctx context.Context) ([]domain.Task, error) {
	ret := _m.Called(ctx)
	if len(ret) == 0 {
		panic("no return value specified for List")
	}
	if rf, ok := ret.Get(0).(func(context.Context) ([]domain.Task, error)); ok {
		return rf(ctx)
	}

	var r0 []domain.Task
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Task)
	}
	return r0, ret.Error(1)
}

type MockTaskClient_List_Call struct {
	*mock.Call
}

func (_e *MockTaskClient_Expecter) List(ctx interface{}) *MockTaskClient_List_Call {
	return &MockTaskClient_List_Call{Call: _e.mock.On("List", ctx)}
}

func (_c *MockTaskClient_List_Call) Return(tasks []domain.Task, err error) *MockTaskClient_List_Call {
	_c.Call.Return(tasks, err)
	return _c
}

func (_c *MockTaskClient_List_Call) RunAndReturn(run func(context.Context) ([]domain.Task, error)) *MockTaskClient_List_Call {
	_c.Call.Return(run)
	return _c
}

func (_m *MockTaskClient) Create(ctx context.Context, text string) (domain.Task, error) {
	ret := _m.Called(ctx, text)
	if len(ret) == 0 {
		panic("no return value specified for Create")
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) (domain.Task, error)); ok {
		return rf(ctx, text)
	}
	return ret.Get(0).(domain.Task), ret.Error(1)
}

type MockTaskClient_Create_Call struct {
	*mock.Call
}

func (_e *MockTaskClient_Expecter) Create(ctx interface{}, text interface{}) *MockTaskClient_Create_Call {
	return &MockTaskClient_Create_Call{Call: _e.mock.On("Create", ctx, text)}
}

func (_c *MockTaskClient_Create_Call) Return(task domain.Task, err error) *MockTaskClient_Create_Call {
	_c.Call.Return(task, err)
	return _c
}

func (_c *MockTaskClient_Create_Call) RunAndReturn(run func(context.Context, string) (domain.Task, error)) *MockTaskClient_Create_Call {
	_c.Call.Return(run)
	return _c
}

func (_m *MockTaskClient) SetCompleted(ctx context.Context, id domain.TaskID, completed bool) (domain.Task, error) {
	ret := _m.Called(ctx, id, completed)
	if len(ret) == 0 {
		panic("no return value specified for SetCompleted")
	}
	if rf, ok := ret.Get(0).(func(context.Context, domain.TaskID, bool) (domain.Task, error)); ok {
		return rf(ctx, id, completed)
	}
	return ret.Get(0).(domain.Task), ret.Error(1)
}

type MockTaskClient_SetCompleted_Call struct {
	*mock.Call
}

func (_e *MockTaskClient_Expecter) SetCompleted(ctx interface{}, id interface{}, completed interface{}) *MockTaskClient_SetCompleted_Call {
	return &MockTaskClient_SetCompleted_Call{Call: _e.mock.On("SetCompleted", ctx, id, completed)}
}

func (_c *MockTaskClient_SetCompleted_Call) Return(task domain.Task, err error) *MockTaskClient_SetCompleted_Call {
	_c.Call.Return(task, err)
	return _c
}

func (_c *MockTaskClient_SetCompleted_Call) RunAndReturn(run func(context.Context, domain.TaskID, bool) (domain.Task, error)) *MockTaskClient_SetCompleted_Call {
	_c.Call.Return(run)
	return _c
}

func (_m *MockTaskClient) SetText(ctx context.Context, id domain.TaskID, text string) (domain.Task, error) {
	ret := _m.Called(ctx, id, text)
	if len(ret) == 0 {
		panic("no return value specified for SetText")
	}
	if rf, ok := ret.Get(0).(func(context.Context, domain.TaskID, string) (domain.Task, error)); ok {
		return rf(ctx, id, text)
	}
	return ret.Get(0).(domain.Task), ret.Error(1)
}

type MockTaskClient_SetText_Call struct {
	*mock.Call
}

func (_e *MockTaskClient_Expecter) SetText(ctx interface{}, id interface{}, text interface{}) *MockTaskClient_SetText_Call {
	return &MockTaskClient_SetText_Call{Call: _e.mock.On("SetText", ctx, id, text)}
}

func (_c *MockTaskClient_SetText_Call) Return(task domain.Task, err error) *MockTaskClient_SetText_Call {
	_c.Call.Return(task, err)
	return _c
}

func (_c *MockTaskClient_SetText_Call) RunAndReturn(run func(context.Context, domain.TaskID, string) (domain.Task, error)) *MockTaskClient_SetText_Call {
	_c.Call.Return(run)
	return _c
}

func (_m *MockTaskClient) Delete(ctx context.Context, id domain.TaskID) error {
	ret := _m.Called(ctx, id)
	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}
	if rf, ok := ret.Get(0).(func(context.Context, domain.TaskID) error); ok {
		return rf(ctx, id)
	}
	return ret.Error(0)
}

type MockTaskClient_Delete_Call struct {
	*mock.Call
}

func (_e *MockTaskClient_Expecter) Delete(ctx interface{}, id interface{}) *MockTaskClient_Delete_Call {
	return &MockTaskClient_Delete_Call{Call: _e.mock.On("Delete", ctx, id)}
}

func (_c *MockTaskClient_Delete_Call) Return(err error) *MockTaskClient_Delete_Call {
	_c.Call.Return(err)
	return _c
}

func (_c *MockTaskClient_Delete_Call) RunAndReturn(run func(context.Context, domain.TaskID) error) *MockTaskClient_Delete_Call {
	_c.Call.Return(run)
	return _c
}

func NewMockTaskClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTaskClient {
	m := &MockTaskClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
