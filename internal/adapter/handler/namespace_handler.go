package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avidal/homedrive/internal/domain/repository"
	"github.com/avidal/homedrive/internal/usecase"
)

// rootSentinel is the wire representation of the null parent/folder.
// It is translated at this boundary and never stored.
const rootSentinel = "root"

// NamespaceHandler adapts the HTTP contract onto the namespace engine.
type NamespaceHandler struct {
	namespace *usecase.Namespace
}

// NewNamespaceHandler creates a new handler around the engine.
func NewNamespaceHandler(namespace *usecase.Namespace) *NamespaceHandler {
	return &NamespaceHandler{namespace: namespace}
}

// RegisterRoutes attaches the API routes to the router.
func (h *NamespaceHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")

	api.GET("/contents", h.listContents)
	api.POST("/folders", h.createFolder)
	api.DELETE("/folders/:id", h.deleteFolder)
	api.GET("/files", h.listFiles)
	api.POST("/upload", h.uploadFile)
	api.GET("/files/:id/download", h.downloadFile)
	api.GET("/files/:id/view", h.viewFile)
	api.DELETE("/files/:id", h.deleteFile)
	api.POST("/rename", h.rename)
	api.GET("/stats", h.stats)
	api.GET("/health", h.health)
}

// folderIDParam translates the wire folder id to the internal optional
// id. An absent value and the root sentinel both mean root.
func folderIDParam(raw string) *string {
	if raw == "" || raw == rootSentinel {
		return nil
	}
	return &raw
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrBlobMissing):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "file content missing"})
	case errors.Is(err, repository.ErrPartialDelete), errors.Is(err, repository.ErrDeleteFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed, retry later"})
	case errors.Is(err, repository.ErrStoreUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *NamespaceHandler) listContents(c *gin.Context) {
	folderID := folderIDParam(c.Query("folderId"))

	listing, err := h.namespace.ListContents(c.Request.Context(), folderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

type createFolderRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parentId"`
}

func (h *NamespaceHandler) createFolder(c *gin.Context) {
	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	folder, err := h.namespace.CreateFolder(c.Request.Context(), req.Name, folderIDParam(req.ParentID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": folder.ID, "name": folder.Name})
}

func (h *NamespaceHandler) deleteFolder(c *gin.Context) {
	if err := h.namespace.DeleteFolder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "folder deleted"})
}

func (h *NamespaceHandler) listFiles(c *gin.Context) {
	files, err := h.namespace.ListFiles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, files)
}

func (h *NamespaceHandler) uploadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	defer file.Close()

	folderID := folderIDParam(c.PostForm("folderId"))
	mimeType := header.Header.Get("Content-Type")

	record, err := h.namespace.UploadFile(c.Request.Context(), file, header.Filename, mimeType, folderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": record.ID, "name": record.OriginalName})
}

func (h *NamespaceHandler) downloadFile(c *gin.Context) {
	h.streamFile(c, true)
}

func (h *NamespaceHandler) viewFile(c *gin.Context) {
	h.streamFile(c, false)
}

func (h *NamespaceHandler) streamFile(c *gin.Context, attachment bool) {
	record, blob, err := h.namespace.OpenFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer blob.Close()

	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}
	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("%s; filename=%q", disposition, record.OriginalName),
	}

	c.DataFromReader(http.StatusOK, record.Size, record.MimeType, blob, headers)
}

func (h *NamespaceHandler) deleteFile(c *gin.Context) {
	if err := h.namespace.DeleteFile(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}

type renameRequest struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	NewName string `json:"newName"`
}

func (h *NamespaceHandler) rename(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.namespace.Rename(c.Request.Context(), req.ID, usecase.EntityKind(req.Type), req.NewName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "renamed"})
}

func (h *NamespaceHandler) stats(c *gin.Context) {
	stats, err := h.namespace.ComputeStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *NamespaceHandler) health(c *gin.Context) {
	if err := h.namespace.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "up"})
}
