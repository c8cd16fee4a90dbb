package tempdata_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/bindkit/pkg/session"
	"github.com/dmitrymomot/bindkit/pkg/tempdata"
)

// MockContext is a mock implementation of tempdata.Context.
type MockContext struct {
	mock.Mock
}

func (m *MockContext) Session() (tempdata.Session, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(tempdata.Session), args.Error(1)
}

func (m *MockContext) SessionEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockSession is a mock implementation of tempdata.Session.
type MockSession struct {
	mock.Mock
}

func (m *MockSession) Get(key string) ([]byte, bool) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]byte), args.Bool(1)
}

func (m *MockSession) Set(key string, value []byte) {
	m.Called(key, value)
}

func (m *MockSession) Remove(key string) {
	m.Called(key)
}

// sessionContext serves a real session for round trips.
type sessionContext struct {
	sess *session.Session
}

func newSessionContext() sessionContext {
	return sessionContext{sess: &session.Session{Token: "test"}}
}

func (c sessionContext) Session() (tempdata.Session, error) {
	return c.sess, nil
}

func (c sessionContext) SessionEnabled() bool {
	return true
}
