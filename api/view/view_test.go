package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/flash"
)

func TestRenderer_Index(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)
	notice := flash.Error("Please enter a valid URL!")

	rec := httptest.NewRecorder()
	err = renderer.Render(rec, http.StatusOK, PageIndex, NewIndexPage(&notice))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, `action="/generate"`)
	assert.Contains(t, body, `name="size" value="10"`)
	assert.Contains(t, body, `name="border" value="4"`)
	assert.Contains(t, body, `class="notice error"`)
	assert.Contains(t, body, "Please enter a valid URL!")
}

func TestRenderer_ResultEmbedsDataURI(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)
	result := &generator.Result{
		TargetURL: "https://example.com",
		Filename:  "qr_example_com_20240101_000000.png",
		PNG:       []byte{0x89, 'P', 'N', 'G'},
	}

	rec := httptest.NewRecorder()
	err = renderer.Render(rec, http.StatusOK, PageResult, NewResultPage(result, nil))

	require.NoError(t, err)
	body := rec.Body.String()
	assert.Contains(t, body, `src="data:image/png;base64,`+result.Base64()+`"`)
	assert.Contains(t, body, `href="/download/qr_example_com_20240101_000000.png"`)
	assert.NotContains(t, body, "ZgotmplZ")
}

func TestRenderer_GalleryEscapesAndLists(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)
	entries := []generator.GalleryEntry{
		{Filename: "qr_a_20240101_000000.png", CreatedAt: "2024-01-01 00:00:00", Downloads: 3},
		{Filename: "qr_b_20240101_000000.png", CreatedAt: "2024-01-01 00:00:01"},
	}

	rec := httptest.NewRecorder()
	err = renderer.Render(rec, http.StatusOK, PageGallery, NewGalleryPage(entries, nil))

	require.NoError(t, err)
	body := rec.Body.String()
	assert.Contains(t, body, `src="/qr/qr_a_20240101_000000.png"`)
	assert.Contains(t, body, "2024-01-01 00:00:00")
	assert.Contains(t, body, "3 downloads")
	assert.NotContains(t, body, `class="notice`)
}

func TestRenderer_GalleryEmpty(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, renderer.Render(rec, http.StatusOK, PageGallery, NewGalleryPage(nil, nil)))

	assert.Contains(t, rec.Body.String(), "No QR codes generated yet")
}

func TestRenderer_UnknownPage(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = renderer.Render(rec, http.StatusOK, "missing", nil)

	assert.Error(t, err)
	assert.Zero(t, rec.Body.Len())
}
