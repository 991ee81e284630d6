package handlers_test

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MaorParienty/watermark-api/internal/config"
	"github.com/MaorParienty/watermark-api/internal/http/handlers"
	"github.com/MaorParienty/watermark-api/internal/http/routes"
	"github.com/MaorParienty/watermark-api/internal/services/processor"
	"github.com/MaorParienty/watermark-api/internal/services/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Processing: config.ProcessingConfig{
			JPEGQuality:   85,
			MaxFileSize:   10 * 1024 * 1024,
			CacheDuration: time.Hour,
		},
	}

	fonts, _ := processor.LoadFontSource(cfg.Processing.FontPath)
	imageProcessor := processor.NewImageProcessor(fonts, cfg.Processing.JPEGQuality)

	storageService, err := storage.NewStorageService(cfg)
	if err != nil {
		t.Fatalf("failed to build storage service: %v", err)
	}

	logger := zap.NewNop()
	handler := handlers.NewWatermarkHandler(imageProcessor, storageService, logger, cfg)
	return routes.NewRouter(handler, logger).SetupRoutes()
}

type uploadPart struct {
	field string
	name  string
	data  []byte
}

func newUploadRequest(t *testing.T, target string, parts []uploadPart, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field %q: %v", key, err)
		}
	}
	for _, part := range parts {
		fw, err := w.CreateFormFile(part.field, part.name)
		if err != nil {
			t.Fatalf("failed to create form file %q: %v", part.name, err)
		}
		if _, err := fw.Write(part.data); err != nil {
			t.Fatalf("failed to write form file %q: %v", part.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func pngUpload(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{20, 40, 80, 255}}, image.Point{}, draw.Src)

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode upload: %v", err)
	}
	return buf.Bytes()
}

func serve(t *testing.T, router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWatermarkSingleImage(t *testing.T) {
	router := newTestRouter(t)

	req := newUploadRequest(t, "/watermark",
		[]uploadPart{{field: "file", name: "photo.png", data: pngUpload(t, 400, 300)}},
		map[string]string{"text": "WATERMARK", "opacity": "128", "position": "center"})

	rec := serve(t, router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("expected image/jpeg content type, got %q", ct)
	}

	out, err := jpeg.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a valid JPEG: %v", err)
	}
	if out.Bounds().Dx() != 400 || out.Bounds().Dy() != 300 {
		t.Errorf("unexpected output dimensions %v", out.Bounds())
	}
}

func TestWatermarkAppliesResolution(t *testing.T) {
	router := newTestRouter(t)

	req := newUploadRequest(t, "/watermark",
		[]uploadPart{{field: "file", name: "big.png", data: pngUpload(t, 1600, 1200)}},
		map[string]string{"resolution": "800"})

	rec := serve(t, router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	out, err := jpeg.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a valid JPEG: %v", err)
	}
	if out.Bounds().Dx() != 800 || out.Bounds().Dy() != 600 {
		t.Errorf("expected 800x600, got %v", out.Bounds())
	}
}

func TestWatermarkRejectsInvalidParams(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"opacity above range", map[string]string{"opacity": "300"}},
		{"opacity below range", map[string]string{"opacity": "-1"}},
		{"opacity not a number", map[string]string{"opacity": "half"}},
		{"resolution zero", map[string]string{"resolution": "0"}},
		{"resolution negative", map[string]string{"resolution": "-5"}},
		{"font size zero", map[string]string{"font_size": "0"}},
		{"unknown position", map[string]string{"position": "diagonal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newUploadRequest(t, "/watermark",
				[]uploadPart{{field: "file", name: "photo.png", data: pngUpload(t, 100, 100)}},
				tt.fields)

			rec := serve(t, router, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestWatermarkQueryParams(t *testing.T) {
	router := newTestRouter(t)

	req := newUploadRequest(t, "/watermark?opacity=300",
		[]uploadPart{{field: "file", name: "photo.png", data: pngUpload(t, 100, 100)}},
		nil)

	rec := serve(t, router, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("query params must be validated too, got %d", rec.Code)
	}
}

func TestWatermarkMalformedColorSucceeds(t *testing.T) {
	router := newTestRouter(t)

	req := newUploadRequest(t, "/watermark",
		[]uploadPart{{field: "file", name: "photo.png", data: pngUpload(t, 200, 150)}},
		map[string]string{"color": "notacolor"})

	rec := serve(t, router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("malformed color must fall back to white, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, err := jpeg.Decode(bytes.NewReader(rec.Body.Bytes())); err != nil {
		t.Errorf("response is not a valid JPEG: %v", err)
	}
}

func TestWatermarkRejectsUndecodableImage(t *testing.T) {
	router := newTestRouter(t)

	req := newUploadRequest(t, "/watermark",
		[]uploadPart{{field: "file", name: "junk.bin", data: []byte("not an image at all")}},
		nil)

	rec := serve(t, router, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for undecodable upload, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("error response must be JSON, got %q", ct)
	}
}

func TestWatermarkRejectsMissingFile(t *testing.T) {
	router := newTestRouter(t)

	req := newUploadRequest(t, "/watermark", nil, map[string]string{"text": "HELLO"})

	rec := serve(t, router, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing file, got %d", rec.Code)
	}
}

func TestWatermarkBatch(t *testing.T) {
	router := newTestRouter(t)

	req := newUploadRequest(t, "/watermark/batch",
		[]uploadPart{
			{field: "files", name: "a.png", data: pngUpload(t, 100, 80)},
			{field: "files", name: "b.png", data: pngUpload(t, 90, 70)},
			{field: "files", name: "c.png", data: pngUpload(t, 80, 60)},
		},
		map[string]string{"text": "BATCH"})

	rec := serve(t, router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("expected application/zip content type, got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != "attachment; filename=watermarked_images.zip" {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatalf("response is not a valid zip archive: %v", err)
	}

	want := []string{"watermarked_0.jpg", "watermarked_1.jpg", "watermarked_2.jpg"}
	if len(zr.File) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(zr.File))
	}
	for i, member := range zr.File {
		if member.Name != want[i] {
			t.Errorf("member %d is %q, want %q", i, member.Name, want[i])
		}
	}
}

func TestWatermarkBatchPartialFailure(t *testing.T) {
	router := newTestRouter(t)

	req := newUploadRequest(t, "/watermark/batch",
		[]uploadPart{
			{field: "files", name: "a.png", data: pngUpload(t, 100, 80)},
			{field: "files", name: "broken.bin", data: []byte("corrupt")},
			{field: "files", name: "c.png", data: pngUpload(t, 80, 60)},
		},
		nil)

	rec := serve(t, router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with partial results, got %d: %s", rec.Code, rec.Body.String())
	}

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatalf("response is not a valid zip archive: %v", err)
	}

	want := []string{"watermarked_0.jpg", "watermarked_2.jpg"}
	if len(zr.File) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(zr.File))
	}
	for i, member := range zr.File {
		if member.Name != want[i] {
			t.Errorf("member %d is %q, want %q", i, member.Name, want[i])
		}
	}
}

func TestWatermarkBatchAllInvalid(t *testing.T) {
	router := newTestRouter(t)

	req := newUploadRequest(t, "/watermark/batch",
		[]uploadPart{
			{field: "files", name: "a.bin", data: []byte("junk")},
			{field: "files", name: "b.bin", data: []byte("more junk")},
		},
		nil)

	rec := serve(t, router, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when every image fails, got %d", rec.Code)
	}
}

func TestWatermarkBatchNoFiles(t *testing.T) {
	router := newTestRouter(t)

	req := newUploadRequest(t, "/watermark/batch", nil, map[string]string{"text": "EMPTY"})

	rec := serve(t, router, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an empty batch, got %d", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := serve(t, router, req)

	// Unconfigured backends report "not configured", which is healthy.
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
