package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"healthmon/internal/domain"
	"healthmon/internal/middleware"
	"healthmon/internal/service"
	"healthmon/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedEngine(auth service.AuthService, roles ...domain.UserRole) *gin.Engine {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(auth))
	if len(roles) > 0 {
		r.Use(middleware.RequireRole(roles...))
	}
	r.GET("/test", func(c *gin.Context) {
		uid, _ := middleware.GetUserID(c)
		user, _ := middleware.GetUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": uid, "role": middleware.GetRole(c), "name": user.Name})
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	userID := uuid.New()
	claims := &service.Claims{UserID: userID, SessionID: "sid", Role: domain.RoleFieldWorker}
	user := &domain.User{ID: userID, Name: "Priya Sharma", Email: "asha@example.com", Role: domain.RoleFieldWorker}

	mockAuth.On("ValidateToken", "valid-token").Return(claims, nil)
	mockAuth.On("Authenticate", mock.Anything, claims).Return(user, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer valid-token")
	protectedEngine(mockAuth).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, userID.String(), resp["user_id"])
	assert.Equal(t, "asha_worker", resp["role"])
	assert.Equal(t, "Priya Sharma", resp["name"])
	mockAuth.AssertExpectations(t)
}

func TestAuthMiddleware_QueryToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	claims := &service.Claims{SessionID: "sid"}
	mockAuth.On("ValidateToken", "ws-token").Return(claims, nil)
	mockAuth.On("Authenticate", mock.Anything, claims).Return(&domain.User{ID: uuid.New(), Role: domain.RoleAdmin}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test?access_token=ws-token", http.NoBody)
	protectedEngine(mockAuth).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	protectedEngine(mockAuth).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuth.AssertNotCalled(t, "ValidateToken", mock.Anything)
}

func TestAuthMiddleware_NonBearerHeaderIgnoresQuery(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test?access_token=x", http.NoBody)
	req.Header.Set("Authorization", "Basic abc")
	protectedEngine(mockAuth).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	mockAuth.On("ValidateToken", "bad").Return(nil, domain.ErrUnauthorized)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer bad")
	protectedEngine(mockAuth).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestAuthMiddleware_LoggedOutSession(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	claims := &service.Claims{SessionID: "gone"}
	mockAuth.On("ValidateToken", "tok").Return(claims, nil)
	mockAuth.On("Authenticate", mock.Anything, claims).Return(nil, domain.ErrUnauthorized)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer tok")
	protectedEngine(mockAuth).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "session expired")
}

func TestRequireRole(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	claims := &service.Claims{SessionID: "sid"}
	mockAuth.On("ValidateToken", "tok").Return(claims, nil)
	mockAuth.On("Authenticate", mock.Anything, claims).
		Return(&domain.User{ID: uuid.New(), Role: domain.RoleFieldWorker}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer tok")
	protectedEngine(mockAuth, domain.RoleDistrictOfficer, domain.RoleAdmin).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	protectedEngine(mockAuth, domain.RoleFieldWorker).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
