package image_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	stdimage "image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fridge-chef/internal/core/image"
	"fridge-chef/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func dataURI(b []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(b)
}

func decodeJPEGDataURI(t *testing.T, uri string) stdimage.Image {
	t.Helper()
	require.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestProcessImage_DataURI(t *testing.T) {
	svc := image.NewService(1<<20, 0)

	out, err := svc.ProcessImage(context.Background(), dataURI(pngBytes(t, 20, 10)))
	require.NoError(t, err)

	img := decodeJPEGDataURI(t, out)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
}

func TestProcessImage_Downscales(t *testing.T) {
	svc := image.NewService(1<<20, 50)

	out, err := svc.ProcessImage(context.Background(), dataURI(pngBytes(t, 200, 100)))
	require.NoError(t, err)

	img := decodeJPEGDataURI(t, out)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())
}

func TestProcessImage_FromURL(t *testing.T) {
	body := pngBytes(t, 8, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipe.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	svc := image.NewService(1<<20, 0)

	out, err := svc.ProcessImage(context.Background(), srv.URL+"/recipe.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))

	_, err = svc.ProcessImage(context.Background(), srv.URL+"/missing.png")
	assert.True(t, errors.Is(err, common.ErrInvalidImageFormat))
}

func TestValidateImage_Errors(t *testing.T) {
	svc := image.NewService(64, 0)
	ctx := context.Background()

	err := svc.ValidateImage(ctx, dataURI(pngBytes(t, 40, 40)))
	assert.True(t, errors.Is(err, common.ErrInvalidImageSize))

	err = svc.ValidateImage(ctx, "not an image")
	assert.True(t, errors.Is(err, common.ErrInvalidImageFormat))

	err = svc.ValidateImage(ctx, "data:image/png;base64")
	assert.True(t, errors.Is(err, common.ErrInvalidImageFormat))

	err = svc.ValidateImage(ctx, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("plain text")))
	assert.True(t, errors.Is(err, common.ErrInvalidImageFormat))
}
