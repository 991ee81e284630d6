package handlers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/MaorParienty/watermark-api/internal/models"
	"github.com/MaorParienty/watermark-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// === REQUEST PARSING ===

func (h *WatermarkHandler) parseWatermarkParams(c *gin.Context) (*models.WatermarkConfig, error) {
	opacity, err := h.parseIntInRange(h.formOrQuery(c, "opacity"), "opacity", 0, 255, models.DefaultOpacity)
	if err != nil {
		return nil, err
	}

	fontSize, err := h.parsePositiveInt(h.formOrQuery(c, "font_size"), "font_size", models.DefaultFontSize)
	if err != nil {
		return nil, err
	}

	resolution, err := h.parsePositiveInt(h.formOrQuery(c, "resolution"), "resolution", models.DefaultResolution)
	if err != nil {
		return nil, err
	}

	position := models.PositionCenter
	if value := h.formOrQuery(c, "position"); value != "" {
		position, err = models.ParsePosition(value)
		if err != nil {
			return nil, err
		}
	}

	text := h.formOrQuery(c, "text")
	if text == "" {
		text = models.DefaultText
	}

	color := h.formOrQuery(c, "color")
	if color == "" {
		color = models.DefaultColor
	}

	return &models.WatermarkConfig{
		Text:          text,
		Color:         color,
		Opacity:       opacity,
		FontSize:      fontSize,
		Position:      position,
		MaxResolution: resolution,
	}, nil
}

// formOrQuery reads a parameter from the multipart form, falling back to the
// query string.
func (h *WatermarkHandler) formOrQuery(c *gin.Context, key string) string {
	if value := c.PostForm(key); value != "" {
		return value
	}
	return c.Query(key)
}

func (h *WatermarkHandler) parsePositiveInt(value, fieldName string, defaultVal int) (int, error) {
	if value == "" {
		return defaultVal, nil
	}

	num, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be a number", fieldName)
	}

	if num <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", fieldName)
	}

	return num, nil
}

func (h *WatermarkHandler) parseIntInRange(value, fieldName string, min, max, defaultVal int) (int, error) {
	if value == "" {
		return defaultVal, nil
	}

	num, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be a number", fieldName)
	}

	if num < min || num > max {
		return 0, fmt.Errorf("%s must be between %d and %d", fieldName, min, max)
	}

	return num, nil
}

// === FILE OPERATIONS ===

func (h *WatermarkHandler) readUploadedFile(c *gin.Context, paramKey string) ([]byte, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile(paramKey)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := h.readLimited(file)
	if err != nil {
		return nil, nil, err
	}

	return data, header, nil
}

func (h *WatermarkHandler) readUploadedFiles(c *gin.Context, paramKey string) ([][]byte, error) {
	if err := c.Request.ParseMultipartForm(h.config.Processing.MaxFileSize); err != nil {
		return nil, fmt.Errorf("failed to parse form data: %v", err)
	}

	headers := c.Request.MultipartForm.File[paramKey]
	if len(headers) == 0 {
		return nil, fmt.Errorf("no images provided")
	}

	images := make([][]byte, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %q: %v", fh.Filename, err)
		}

		data, err := h.readLimited(f)
		f.Close()
		if err != nil {
			return nil, err
		}

		images = append(images, data)
	}

	return images, nil
}

func (h *WatermarkHandler) readLimited(r io.Reader) ([]byte, error) {
	maxSize := h.config.Processing.MaxFileSize

	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %v", err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("file exceeds maximum size of %d bytes", maxSize)
	}

	return data, nil
}

// === RESPONSE HANDLING ===

func (h *WatermarkHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// === STORAGE OPERATIONS ===

func (h *WatermarkHandler) tryGetFromCache(ctx context.Context, cacheKey string) ([]byte, bool) {
	cachedData, err := h.storage.GetFromCache(ctx, cacheKey)
	if err != nil || cachedData == nil {
		return nil, false
	}

	h.logger.Info("Cache hit", zap.String("cache_key", cacheKey))
	return cachedData, true
}

func (h *WatermarkHandler) setCacheData(ctx context.Context, cacheKey string, data []byte) {
	if err := h.storage.SetCache(ctx, cacheKey, data); err != nil {
		h.logger.Warn("Failed to cache data", zap.String("cache_key", cacheKey), zap.Error(err))
	}
}

// archiveUpload stores a best-effort copy of the output in Supabase Storage.
// Failures are logged and never surfaced to the client.
func (h *WatermarkHandler) archiveUpload(ctx context.Context, data []byte, originalFilename string) {
	if h.storage == nil || !h.storage.UploadEnabled() {
		return
	}

	url, err := h.storage.Upload(ctx, data, utils.WatermarkedFilename(originalFilename))
	if err != nil {
		h.logger.Warn("Failed to archive watermarked image", zap.Error(err))
		return
	}

	h.logger.Info("Archived watermarked image", zap.String("url", url))
}

// === UTILITY METHODS ===

func (h *WatermarkHandler) calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			return "unhealthy"
		}
	}
	return "healthy"
}
