package boundaries

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbon-scribe/project-portal/boundary-importer/internal/notifications/websocket"
)

// Handler handles HTTP requests for boundary imports
type Handler struct {
	service        Service
	events         *websocket.Manager
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewHandler creates a new boundaries handler. events may be nil to disable the event stream.
func NewHandler(service Service, events *websocket.Manager, maxUploadBytes int64, logger *zap.Logger) *Handler {
	return &Handler{
		service:        service,
		events:         events,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// RegisterRoutes registers boundary import routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	boundaries := rg.Group("/boundaries")
	{
		boundaries.POST("/import", h.Import)
		boundaries.GET("/formats", h.Formats)
		if h.events != nil {
			boundaries.GET("/events", h.Events)
		}
	}
}

// Import handles POST /api/v1/boundaries/import
func (h *Handler) Import(c *gin.Context) {
	importID := uuid.New()
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"import_id": importID, "error": "file is too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"import_id": importID, "error": "file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.String("import_id", importID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"import_id": importID, "error": err.Error()})
		return
	}
	defer f.Close()

	outcome := h.service.Import(c.Request.Context(), RawFile{Name: file.Filename, Content: f})
	if !outcome.Succeeded() {
		h.logger.Debug("Boundary import rejected",
			zap.String("import_id", importID.String()),
			zap.String("kind", string(outcome.Err.Kind)),
		)
	}

	c.JSON(statusFor(outcome), NewImportResponse(importID, outcome))
}

// Formats handles GET /api/v1/boundaries/formats
func (h *Handler) Formats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"extensions": SupportedExtensions()})
}

// Events handles GET /api/v1/boundaries/events
func (h *Handler) Events(c *gin.Context) {
	if _, err := h.events.HandleConnection(c.Writer, c.Request); err != nil {
		h.logger.Warn("Failed to open event stream", zap.Error(err))
	}
}

func statusFor(o Outcome) int {
	if o.Succeeded() {
		return http.StatusOK
	}
	switch o.Err.Kind {
	case KindUnsupportedFileFormat, KindBareShapefileUnsupported:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusUnprocessableEntity
	}
}
