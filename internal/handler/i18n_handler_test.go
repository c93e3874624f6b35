package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"healthmon/internal/handler"
)

func TestI18nHandler_Catalog(t *testing.T) {
	h := handler.NewI18nHandler()

	c, w := newContext(http.MethodGet, "/api/v1/i18n/hi", nil, nil)
	c.Params = append(c.Params, ginParam("lang", "hi"))
	h.Catalog(c)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "गांव", data["common.village"])

	c, w = newContext(http.MethodGet, "/api/v1/i18n/de", nil, nil)
	c.Params = append(c.Params, ginParam("lang", "de"))
	h.Catalog(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthHandler(t *testing.T) {
	ok := handler.NewHealthHandler(map[string]handler.Check{
		"database": func(context.Context) error { return nil },
	})
	c, w := newContext(http.MethodGet, "/readyz", nil, nil)
	ok.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	down := handler.NewHealthHandler(map[string]handler.Check{
		"redis": func(context.Context) error { return errors.New("dial tcp: refused") },
	})
	c, w = newContext(http.MethodGet, "/readyz", nil, nil)
	down.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "redis not reachable")

	c, w = newContext(http.MethodGet, "/healthz", nil, nil)
	down.Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
