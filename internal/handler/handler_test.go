package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"healthmon/internal/domain"
	"healthmon/internal/handler"
	"healthmon/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testUser(role domain.UserRole) *domain.User {
	return &domain.User{ID: uuid.New(), Name: "Priya Sharma", Email: "asha@example.com", Role: role, District: "Jorhat"}
}

// newContext builds a test context for method and target. A non-nil user is
// injected the way AuthMiddleware does.
func newContext(method, target string, body interface{}, user *domain.User) (*gin.Context, *httptest.ResponseRecorder) {
	var r io.Reader = http.NoBody
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, target, r)
	c.Request.Header.Set("Content-Type", "application/json")
	if user != nil {
		c.Set(middleware.ContextKeyUser, user)
		c.Set(middleware.ContextKeyUserID, user.ID)
		c.Set(middleware.ContextKeyRole, string(user.Role))
	}
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func ginParam(key, value string) gin.Param {
	return gin.Param{Key: key, Value: value}
}
