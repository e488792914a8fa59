package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portos/internal/domain"
	"portos/internal/service"
)

// DocumentHandler handles document endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload handles POST /api/v1/documents (multipart form, field "file")
func (h *DocumentHandler) Upload(c *gin.Context) {
	enterpriseID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "file form field is required")
		return
	}
	defer file.Close()

	doc, err := h.documentService.Upload(c.Request.Context(), service.DocumentUploadInput{
		EnterpriseID: enterpriseID,
		UploadedBy:   userID,
		Type:         domain.DocumentType(c.PostForm("document_type")),
		File:         file,
		Header:       header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// List handles GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	enterpriseID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	docs, total, err := h.documentService.List(c.Request.Context(), enterpriseID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	enterpriseID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid document id")
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), enterpriseID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Download handles GET /api/v1/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	enterpriseID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid document id")
		return
	}

	url, err := h.documentService.GetDownloadURL(c.Request.Context(), enterpriseID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"download_url": url})
}

// Delete handles DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid document id")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), enterpriseID, docID, role); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
