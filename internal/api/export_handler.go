package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/workout-log/internal/service"
)

// ExportHandler publishes workout exports to object storage.
type ExportHandler struct {
	exportService service.ExportService
}

func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportRequest selects the local days from..to inclusive.
type ExportRequest struct {
	From     string `json:"from" binding:"required"`
	To       string `json:"to" binding:"required"`
	Timezone string `json:"tz" binding:"required"`
	Format   string `json:"format"`
}

// CreateExport handles POST /exports and answers with a presigned download link.
func (h *ExportHandler) CreateExport(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.exportService.Publish(c.Request.Context(), principalFromContext(c), service.ExportRequest{
		From:     req.From,
		To:       req.To,
		Timezone: req.Timezone,
		Format:   req.Format,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
