package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "londonhealth/internal/errors"
	"londonhealth/internal/model"
	"londonhealth/internal/service"
	"londonhealth/internal/session"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, input service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, page, perPage int) ([]model.User, int64, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id uint, firstName, lastName, role string) (bool, error) {
	args := m.Called(ctx, id, firstName, lastName, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) UpdatePassword(ctx context.Context, id uint, password string) (bool, error) {
	args := m.Called(ctx, id, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.data[key], nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	delete(s.data, key)
	return nil
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func TestAuthHandler_LoginSuccessSetsSessionCookie(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("Authenticate", mock.Anything, "grace@example.com", "longenough").
		Return(&model.User{ID: 7, Email: "grace@example.com", Role: model.RoleAdmin}, nil)

	sessions := session.NewManager(newMemStore(), time.Hour)
	h := NewAuthHandler(mockSvc, sessions)

	e := newTestEcho()
	body := `{"email":"grace@example.com","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var sid string
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.CookieName {
			sid = cookie.Value
			assert.Greater(t, cookie.MaxAge, 0)
		}
	}
	assert.NotEmpty(t, sid)

	sess, err := sessions.Current(context.Background(), sid)
	assert.NoError(t, err)
	assert.NotNil(t, sess)
	assert.Equal(t, uint(7), sess.UserID)
	assert.Equal(t, model.RoleAdmin, sess.Role)
}

func TestAuthHandler_LoginFailureIsUniform(t *testing.T) {
	// Unknown email and wrong password must produce the same response.
	serviceErrors := map[string]error{
		"unknown email":  apperrors.ErrUserNotFound,
		"wrong password": apperrors.ErrInvalidCredentials,
	}

	var bodies []string
	for name, svcErr := range serviceErrors {
		t.Run(name, func(t *testing.T) {
			mockSvc := new(MockUserService)
			mockSvc.On("Authenticate", mock.Anything, "x@example.com", "whatever").
				Return(nil, svcErr)

			sessions := session.NewManager(newMemStore(), time.Hour)
			h := NewAuthHandler(mockSvc, sessions)

			e := newTestEcho()
			body := `{"email":"x@example.com","password":"whatever"}`
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.Login(c)
			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)

			payload, _ := json.Marshal(httpErr.Message)
			bodies = append(bodies, string(payload))
		})
	}
	assert.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
}

func TestAuthHandler_LogoutDestroysSession(t *testing.T) {
	sessions := session.NewManager(newMemStore(), time.Hour)
	sid, err := sessions.Start(context.Background(), 3, model.RoleDoctor)
	assert.NoError(t, err)

	h := NewAuthHandler(new(MockUserService), sessions)
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	sess, err := sessions.Current(context.Background(), sid)
	assert.NoError(t, err)
	assert.Nil(t, sess)
}
