package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/MaorParienty/watermark-api/internal/config"
	"github.com/MaorParienty/watermark-api/internal/models"
	"github.com/MaorParienty/watermark-api/internal/services/archive"
	"github.com/MaorParienty/watermark-api/internal/services/processor"
	"github.com/MaorParienty/watermark-api/internal/services/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	fileParamKey  = "file"
	filesParamKey = "files"

	jpegContentType = "image/jpeg"
	zipContentType  = "application/zip"
)

type WatermarkHandler struct {
	processor *processor.ImageProcessor
	storage   *storage.StorageService
	logger    *zap.Logger
	config    *config.Config
}

func NewWatermarkHandler(
	processor *processor.ImageProcessor,
	storage *storage.StorageService,
	logger *zap.Logger,
	config *config.Config,
) *WatermarkHandler {
	return &WatermarkHandler{
		processor: processor,
		storage:   storage,
		logger:    logger,
		config:    config,
	}
}

// === MAIN API ENDPOINTS ===

// WatermarkImage handles POST /watermark. Parameters are validated before
// the upload is read; validation failures never touch the image bytes.
func (h *WatermarkHandler) WatermarkImage(c *gin.Context) {
	cfg, err := h.parseWatermarkParams(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	data, header, err := h.readUploadedFile(c, fileParamKey)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "No image file provided: "+err.Error())
		return
	}

	var cacheKey string
	if h.storage != nil && h.storage.CacheEnabled() {
		cacheKey = h.storage.GenerateCacheKey(data, cfg)
		if cached, found := h.tryGetFromCache(c.Request.Context(), cacheKey); found {
			c.Data(http.StatusOK, jpegContentType, cached)
			return
		}
	}

	buffer, err := h.processor.ProcessImage(data, cfg)
	if err != nil {
		if errors.Is(err, processor.ErrInvalidImage) {
			h.respondError(c, http.StatusBadRequest, "Uploaded file is not a decodable image")
			return
		}
		h.logger.Error("Processing failed", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to process image")
		return
	}

	if cacheKey != "" {
		h.setCacheData(c.Request.Context(), cacheKey, buffer.Bytes())
	}
	h.archiveUpload(c.Request.Context(), buffer.Bytes(), header.Filename)

	c.Data(http.StatusOK, jpegContentType, buffer.Bytes())
}

// WatermarkBatch handles POST /watermark/batch. Every upload is processed
// with the same config; a failed image is dropped from the archive while the
// rest keep their input-order member names.
func (h *WatermarkHandler) WatermarkBatch(c *gin.Context) {
	cfg, err := h.parseWatermarkParams(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	images, err := h.readUploadedFiles(c, filesParamKey)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	items := h.processor.ProcessBatch(images, cfg)

	succeeded := 0
	for _, item := range items {
		if item.Err != nil {
			h.logger.Warn("Batch item failed",
				zap.Int("index", item.Index),
				zap.Error(item.Err))
			continue
		}
		succeeded++
	}
	if succeeded == 0 {
		h.respondError(c, http.StatusBadRequest, "No image in the batch could be processed")
		return
	}

	buffer, err := archive.Build(items)
	if err != nil {
		h.logger.Error("Failed to build archive", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to build archive")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+archive.DownloadFilename)
	c.Data(http.StatusOK, zipContentType, buffer.Bytes())
}

// HealthCheck reports the status of the optional storage backends.
func (h *WatermarkHandler) HealthCheck(c *gin.Context) {
	storageStatus := h.storage.HealthCheck(c.Request.Context())
	overall := h.calculateOverallHealth(storageStatus)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  storageStatus,
		},
	})
}
