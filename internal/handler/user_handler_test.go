package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "londonhealth/internal/errors"
	"londonhealth/internal/model"
	"londonhealth/internal/service"
	"londonhealth/internal/session"
)

func newUserTestServer(svc service.UserService, sessions *session.Manager) *echo.Echo {
	e := newTestEcho()
	h := NewUserHandler(svc)
	grp := e.Group("/api", session.Middleware(sessions))
	grp.POST("/users", h.Register)
	grp.GET("/users", h.ListUsers)
	grp.DELETE("/users/:id", h.DeleteUser)
	return e
}

func TestUserHandler_SelfDeleteRejected(t *testing.T) {
	sessions := session.NewManager(newMemStore(), time.Hour)
	sid, err := sessions.Start(context.Background(), 5, model.RoleAdmin)
	assert.NoError(t, err)

	mockSvc := new(MockUserService)
	e := newUserTestServer(mockSvc, sessions)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/5", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "SELF_DELETE")
	mockSvc.AssertNotCalled(t, "DeleteUser")
}

func TestUserHandler_DeleteOtherUser(t *testing.T) {
	sessions := session.NewManager(newMemStore(), time.Hour)
	sid, err := sessions.Start(context.Background(), 5, model.RoleAdmin)
	assert.NoError(t, err)

	mockSvc := new(MockUserService)
	mockSvc.On("DeleteUser", mock.Anything, uint(9)).Return(true, nil)
	e := newUserTestServer(mockSvc, sessions)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/9", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_RegisterDuplicateEmail(t *testing.T) {
	sessions := session.NewManager(newMemStore(), time.Hour)
	mockSvc := new(MockUserService)
	mockSvc.On("Register", mock.Anything, mock.AnythingOfType("service.RegisterInput")).
		Return(nil, apperrors.ErrDuplicateEmail)
	e := newUserTestServer(mockSvc, sessions)

	body := `{"first_name":"Grace","last_name":"Hopper","email":"grace@example.com","password":"longenough","role":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "DUPLICATE_EMAIL")
}

func TestUserHandler_ListUsersPagination(t *testing.T) {
	sessions := session.NewManager(newMemStore(), time.Hour)
	mockSvc := new(MockUserService)
	mockSvc.On("ListUsers", mock.Anything, 2, 5).
		Return([]model.User{{ID: 6}, {ID: 7}}, int64(7), nil)
	e := newUserTestServer(mockSvc, sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/users?page=2&per_page=5", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":7`)
	assert.Contains(t, rec.Body.String(), `"total_pages":2`)
	mockSvc.AssertExpectations(t)
}
