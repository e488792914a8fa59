package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portos/internal/domain"
	"portos/internal/port"
	"portos/internal/service"
)

// ArchiveHandler handles archive approval endpoints.
type ArchiveHandler struct {
	archiveService service.ArchiveService
}

// NewArchiveHandler creates a new ArchiveHandler.
func NewArchiveHandler(archiveService service.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{archiveService: archiveService}
}

type createArchiveInput struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category" binding:"required"`
	Amount      float64         `json:"montant"`
	Date        *time.Time      `json:"date"`
	ReferenceID *uuid.UUID      `json:"reference_id"`
	Payload     json.RawMessage `json:"payload"`
}

// Create handles POST /api/v1/archives
func (h *ArchiveHandler) Create(c *gin.Context) {
	enterpriseID, userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input createArchiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	var date time.Time
	if input.Date != nil {
		date = *input.Date
	}
	archive, err := h.archiveService.Create(c.Request.Context(), &service.CreateArchiveInput{
		EnterpriseID: enterpriseID,
		CreatedBy:    userID,
		Role:         role,
		Title:        input.Title,
		Description:  input.Description,
		Category:     domain.ArchiveCategory(input.Category),
		Amount:       input.Amount,
		Date:         date,
		ReferenceID:  input.ReferenceID,
		Payload:      input.Payload,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, archive)
}

// List handles GET /api/v1/archives
func (h *ArchiveHandler) List(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	filter := port.ArchiveFilter{
		Category: domain.ArchiveCategory(c.Query("category")),
		Status:   domain.ApprovalStatus(c.Query("status")),
		Search:   c.Query("search"),
		Offset:   offset,
		Limit:    limit,
	}

	archives, total, err := h.archiveService.List(c.Request.Context(), enterpriseID, role, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, archives, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/archives/:id
func (h *ArchiveHandler) Get(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	archiveID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid archive id")
		return
	}

	archive, err := h.archiveService.GetByID(c.Request.Context(), enterpriseID, archiveID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, archive)
}

type updateArchiveInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      float64         `json:"montant"`
	Date        *time.Time      `json:"date"`
	Payload     json.RawMessage `json:"payload"`
}

// Update handles PUT /api/v1/archives/:id
func (h *ArchiveHandler) Update(c *gin.Context) {
	enterpriseID, userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	archiveID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid archive id")
		return
	}

	var input updateArchiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	var date time.Time
	if input.Date != nil {
		date = *input.Date
	}
	archive, err := h.archiveService.Update(c.Request.Context(), &service.UpdateArchiveInput{
		EnterpriseID: enterpriseID,
		ArchiveID:    archiveID,
		UserID:       userID,
		Role:         role,
		Title:        input.Title,
		Description:  input.Description,
		Amount:       input.Amount,
		Date:         date,
		Payload:      input.Payload,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, archive)
}

// Validate handles POST /api/v1/archives/:id/validate
func (h *ArchiveHandler) Validate(c *gin.Context) {
	h.transition(c, h.archiveService.Validate)
}

// Reject handles POST /api/v1/archives/:id/reject
func (h *ArchiveHandler) Reject(c *gin.Context) {
	h.transition(c, h.archiveService.Reject)
}

type transitionFunc func(ctx context.Context, enterpriseID, archiveID, userID uuid.UUID, role domain.Role) (*domain.Archive, error)

func (h *ArchiveHandler) transition(c *gin.Context, fn transitionFunc) {
	enterpriseID, userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	archiveID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid archive id")
		return
	}

	archive, err := fn(c.Request.Context(), enterpriseID, archiveID, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, archive)
}

// Delete handles DELETE /api/v1/archives/:id
func (h *ArchiveHandler) Delete(c *gin.Context) {
	enterpriseID, userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	archiveID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid archive id")
		return
	}

	if err := h.archiveService.Delete(c.Request.Context(), enterpriseID, archiveID, userID, role); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
