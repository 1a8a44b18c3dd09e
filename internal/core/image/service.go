package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"strings"
	"time"

	_ "image/gif" // 支援 GIF
	_ "image/png" // 支援 PNG

	"fridge-chef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // 支援 WebP
)

// Service 食譜照片處理服務：下載或解碼、驗證、縮圖並轉為 JPEG data URI
type Service struct {
	maxSizeBytes int64
	maxDimension int
	client       *resty.Client
}

// NewService 創建新的圖片處理服務；maxDimension <= 0 表示不縮圖
func NewService(maxSizeBytes int64, maxDimension int) *Service {
	return &Service{
		maxSizeBytes: maxSizeBytes,
		maxDimension: maxDimension,
		client:       resty.New().SetTimeout(30 * time.Second),
	}
}

// ProcessImage 處理圖片，返回 data:image/jpeg;base64 格式
func (s *Service) ProcessImage(ctx context.Context, imageData string) (string, error) {
	img, err := s.decode(ctx, imageData)
	if err != nil {
		return "", err
	}

	img = s.downscale(img)

	// 將圖片轉換為 JPEG 格式
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode image as JPEG: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ValidateImage 驗證圖片
func (s *Service) ValidateImage(ctx context.Context, imageData string) error {
	_, err := s.decode(ctx, imageData)
	return err
}

func (s *Service) decode(ctx context.Context, imageData string) (image.Image, error) {
	raw, err := s.load(ctx, imageData)
	if err != nil {
		return nil, err
	}

	// 檢查文件大小
	if s.maxSizeBytes > 0 && int64(len(raw)) > s.maxSizeBytes {
		return nil, common.ErrInvalidImageSize.WithErr(
			fmt.Errorf("image size exceeds maximum limit of %d bytes", s.maxSizeBytes))
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, common.ErrInvalidImageFormat.WithErr(fmt.Errorf("failed to decode image: %w", err))
	}
	if !isSupportedFormat(format) {
		return nil, common.ErrInvalidImageFormat.WithErr(fmt.Errorf("unsupported image format: %s", format))
	}
	return img, nil
}

// load 取得原始位元組：http(s) URL 下載，data URI 解碼
func (s *Service) load(ctx context.Context, imageData string) ([]byte, error) {
	imageData = strings.TrimSpace(imageData)

	if common.IsHTTPURL(imageData) {
		resp, err := s.client.R().SetContext(ctx).Get(imageData)
		if err != nil {
			return nil, fmt.Errorf("failed to download image: %w", err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, common.ErrInvalidImageFormat.WithErr(
				fmt.Errorf("failed to download image: status code %d", resp.StatusCode()))
		}
		return resp.Body(), nil
	}

	if !strings.HasPrefix(imageData, "data:image/") {
		return nil, common.ErrInvalidImageFormat.WithErr(fmt.Errorf("invalid image data format"))
	}

	_, payload, ok := strings.Cut(imageData, ",")
	if !ok {
		return nil, common.ErrInvalidImageFormat.WithErr(fmt.Errorf("invalid base64 data format"))
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, common.ErrInvalidImageFormat.WithErr(fmt.Errorf("failed to decode base64 data: %w", err))
	}
	return decoded, nil
}

// downscale 長邊超過 maxDimension 時等比例縮小
func (s *Service) downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if s.maxDimension <= 0 || (w <= s.maxDimension && h <= s.maxDimension) {
		return img
	}

	nw, nh := s.maxDimension, s.maxDimension
	if w >= h {
		nh = max(1, h*s.maxDimension/w)
	} else {
		nw = max(1, w*s.maxDimension/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	supportedFormats := map[string]bool{
		"jpeg": true,
		"png":  true,
		"gif":  true,
		"webp": true,
	}
	return supportedFormats[format]
}
