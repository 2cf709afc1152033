package service

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageResolvePassThrough(t *testing.T) {
	svc, err := NewImageService(context.Background(), "", "/media", t.TempDir())
	require.NoError(t, err)

	url, err := svc.Resolve(context.Background(), "https://cdn.example.com/pic.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/pic.png", url)

	url, err = svc.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestImageResolveDataURI(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewImageService(context.Background(), "", "/media", dir)
	require.NoError(t, err)

	raw := []byte{0x89, 0x50, 0x4E, 0x47}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	url, err := svc.Resolve(context.Background(), payload)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/recipes/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/media/")))
	require.NoError(t, err)
	assert.Equal(t, raw, stored)
}

func TestImageResolveRejectsBadPayloads(t *testing.T) {
	svc, err := NewImageService(context.Background(), "", "/media", t.TempDir())
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Resolve(context.Background(), "data:image/png;base64,!!!")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Resolve(context.Background(), "data:application/pdf;base64,aGk=")
	assert.ErrorIs(t, err, ErrValidation)
}
