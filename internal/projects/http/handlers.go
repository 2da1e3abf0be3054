package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageforge/pageforge-backend/internal/projects/domain"
	"github.com/pageforge/pageforge-backend/internal/projects/service"
)

type saveReq struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	HTMLVersion   string `json:"htmlVersion"`
	EditorVersion string `json:"editorVersion"`
}

func (h *Handler) list(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) save(c *gin.Context) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
		return
	}

	p, err := h.svc.Save(c.Request.Context(), service.SaveInput{
		ID:            req.ID,
		Name:          req.Name,
		HTMLVersion:   req.HTMLVersion,
		EditorVersion: req.EditorVersion,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save project"})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project ID is required"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
