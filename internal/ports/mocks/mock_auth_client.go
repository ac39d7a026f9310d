package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"
)

// MockAuthClient is a testify mock of ports.AuthClient.
type MockAuthClient struct {
	mock.Mock
}

type MockAuthClient_Expecter struct {
	mock *mock.Mock
}

func (_m *MockAuthClient) EXPECT() *MockAuthClient_Expecter {
	return &MockAuthClient_Expecter{mock: &_m.Mock}
}

func (_m *MockAuthClient) Login(ctx context.Context, username string, password string) (string, error) {
	ret := _m.Called(ctx, username, password)
	if len(ret) == 0 {
		panic("no return value specified for Login")
	}
	return ret.String(0), ret.Error(1)
}

type MockAuthClient_Login_Call struct {
	*mock.Call
}

func (_e *MockAuthClient_Expecter) Login(ctx interface{}, username interface{}, password interface{}) *MockAuthClient_Login_Call {
	return &MockAuthClient_Login_Call{Call: _e.mock.On("Login", ctx, username, password)}
}

func (_c *MockAuthClient_Login_Call) Return(token string, err error) *MockAuthClient_Login_Call {
	_c.Call.Return(token, err)
	return _c
}

func (_m *MockAuthClient) Signup(ctx context.Context, username string, password string) (string, error) {
	ret := _m.Called(ctx, username, password)
	if len(ret) == 0 {
		panic("no return value specified for Signup")
	}
	return ret.String(0), ret.Error(1)
}

type MockAuthClient_Signup_Call struct {
	*mock.Call
}

func (_e *MockAuthClient_Expecter) Signup(ctx interface{}, username interface{}, password interface{}) *MockAuthClient_Signup_Call {
	return &MockAuthClient_Signup_Call{Call: _e.mock.On("Signup", ctx, username, password)}
}

func (_c *MockAuthClient_Signup_Call) Return(token string, err error) *MockAuthClient_Signup_Call {
	_c.Call.Return(token, err)
	return _c
}

func NewMockAuthClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAuthClient {
	m := &MockAuthClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
