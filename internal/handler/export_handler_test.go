package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"healthmon/internal/domain"
	"healthmon/internal/export"
	"healthmon/internal/handler"
	"healthmon/internal/service"
	"healthmon/mocks"
)

func TestExportHandler_Export(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)
	user := testUser(domain.RoleDistrictOfficer)
	svc.On("Export", mock.Anything, user, "json").Return(&service.ExportResult{
		Artifact: &export.Artifact{Filename: "health-monitoring-data.json", ContentType: export.ContentTypeJSON, Body: []byte(`{"stats":{}}`)},
		Location: "https://signed.example/x",
	}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/export?format=json", nil, user)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="health-monitoring-data.json"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "https://signed.example/x", w.Header().Get("X-Export-Location"))
	assert.Equal(t, export.ContentTypeJSON, w.Header().Get("Content-Type"))
	assert.Equal(t, `{"stats":{}}`, w.Body.String())
}

func TestExportHandler_Export_NoArchive(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)
	svc.On("Export", mock.Anything, mock.Anything, "xlsx").Return(&service.ExportResult{
		Artifact: &export.Artifact{Filename: "health-monitoring-data.xlsx", ContentType: export.ContentTypeXLSX, Body: []byte("PK")},
	}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/export?format=xlsx", nil, testUser(domain.RoleAdmin))
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Export-Location"))
}

func TestExportHandler_Export_Unsupported(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)
	svc.On("Export", mock.Anything, mock.Anything, "pdf").Return(nil, domain.ErrUnsupportedFormat)

	c, w := newContext(http.MethodGet, "/api/v1/export?format=pdf", nil, testUser(domain.RoleAdmin))
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FORMAT", decode(t, w).Error.Code)
}
