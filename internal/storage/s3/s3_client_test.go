package s3_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthmon/internal/config"
	"healthmon/internal/storage/s3"
)

func TestGetPresignedURL_PathStyleEndpoint(t *testing.T) {
	store, err := s3.NewS3Client(context.Background(), config.ExportConfig{
		Region:    "ap-south-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio-secret",
	})
	require.NoError(t, err)

	raw, err := store.GetPresignedURL(context.Background(), "healthmon-exports", "exports/2024/data.json", 600)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/healthmon-exports/exports/2024/data.json", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.Contains(t, u.Query().Get("X-Amz-Credential"), "minio/")
}
