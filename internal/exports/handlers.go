package exports

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type exportReq struct {
	HTML     string `json:"html"`
	Filename string `json:"filename"`
}

// Handler exposes the exporter over HTTP.
type Handler struct {
	exporter *Exporter
}

func NewHandler(exporter *Exporter) *Handler {
	return &Handler{exporter: exporter}
}

func (h *Handler) export(c *gin.Context) {
	var req exportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
		return
	}

	publicPath, err := h.exporter.Write(req.HTML, req.Filename)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: html and filename"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "path": publicPath})
}

// Register attaches the export route to the given router.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/export", h.export)
}
