package routes

import (
	"net/http"

	"github.com/MaorParienty/watermark-api/internal/http/handlers"
	"github.com/MaorParienty/watermark-api/internal/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	watermarkHandler *handlers.WatermarkHandler
	logger           *zap.Logger
}

func NewRouter(
	watermarkHandler *handlers.WatermarkHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		watermarkHandler: watermarkHandler,
		logger:           logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	router.POST("/watermark", r.watermarkHandler.WatermarkImage)
	router.POST("/watermark/batch", r.watermarkHandler.WatermarkBatch)

	router.GET("/health", r.watermarkHandler.HealthCheck)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Watermark service is running",
		})
	})

	return router
}
