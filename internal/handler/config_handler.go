package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portos/internal/domain"
	"portos/internal/service"
)

// ConfigHandler handles bracket table and enterprise administration endpoints.
type ConfigHandler struct {
	bracketService    service.BracketService
	enterpriseService service.EnterpriseService
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(bracketService service.BracketService, enterpriseService service.EnterpriseService) *ConfigHandler {
	return &ConfigHandler{bracketService: bracketService, enterpriseService: enterpriseService}
}

// ListBrackets handles GET /api/v1/config/brackets/:kind
func (h *ConfigHandler) ListBrackets(c *gin.Context) {
	_, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	table, err := h.bracketService.List(c.Request.Context(), domain.BracketKind(c.Param("kind")), role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, table)
}

type replaceBracketsInput struct {
	Tiers []domain.BracketTier `json:"tiers" binding:"required"`
}

// ReplaceBrackets handles PUT /api/v1/config/brackets/:kind
func (h *ConfigHandler) ReplaceBrackets(c *gin.Context) {
	_, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input replaceBracketsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	table, err := h.bracketService.Replace(c.Request.Context(), domain.BracketKind(c.Param("kind")), role, input.Tiers)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, table)
}

type enterpriseInput struct {
	Name           string `json:"name"`
	GuildID        string `json:"guild_id"`
	StaffRoleID    string `json:"staff_role_id"`
	PatronRoleID   string `json:"patron_role_id"`
	CoPatronRoleID string `json:"co_patron_role_id"`
	DotRoleID      string `json:"dot_role_id"`
	EmployeRoleID  string `json:"employe_role_id"`
	IsActive       bool   `json:"is_active"`
}

func (in *enterpriseInput) toService(role domain.Role) *service.EnterpriseInput {
	return &service.EnterpriseInput{
		Role:           role,
		Name:           in.Name,
		GuildID:        in.GuildID,
		StaffRoleID:    in.StaffRoleID,
		PatronRoleID:   in.PatronRoleID,
		CoPatronRoleID: in.CoPatronRoleID,
		DotRoleID:      in.DotRoleID,
		EmployeRoleID:  in.EmployeRoleID,
		IsActive:       in.IsActive,
	}
}

// CreateEnterprise handles POST /api/v1/config/enterprises
func (h *ConfigHandler) CreateEnterprise(c *gin.Context) {
	_, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input enterpriseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	e, err := h.enterpriseService.Create(c.Request.Context(), input.toService(role))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, e)
}

// ListEnterprises handles GET /api/v1/config/enterprises
func (h *ConfigHandler) ListEnterprises(c *gin.Context) {
	_, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	enterprises, total, err := h.enterpriseService.List(c.Request.Context(), role, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, enterprises, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetEnterprise handles GET /api/v1/config/enterprises/:id
func (h *ConfigHandler) GetEnterprise(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid enterprise id")
		return
	}

	e, err := h.enterpriseService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, e)
}

// UpdateEnterprise handles PUT /api/v1/config/enterprises/:id
func (h *ConfigHandler) UpdateEnterprise(c *gin.Context) {
	_, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid enterprise id")
		return
	}

	var input enterpriseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	e, err := h.enterpriseService.Update(c.Request.Context(), id, input.toService(role))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, e)
}

// DeleteEnterprise handles DELETE /api/v1/config/enterprises/:id
func (h *ConfigHandler) DeleteEnterprise(c *gin.Context) {
	_, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid enterprise id")
		return
	}

	if err := h.enterpriseService.Delete(c.Request.Context(), id, role); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// ListMembers handles GET /api/v1/config/enterprises/:id/members
func (h *ConfigHandler) ListMembers(c *gin.Context) {
	_, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid enterprise id")
		return
	}
	offset, limit := parsePagination(c)

	members, total, err := h.enterpriseService.ListMembers(c.Request.Context(), id, role, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, members, PagMeta{Total: total, Offset: offset, Limit: limit})
}

type memberActiveInput struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetMemberActive handles PUT /api/v1/config/enterprises/:id/members/:userId/active
func (h *ConfigHandler) SetMemberActive(c *gin.Context) {
	_, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid enterprise id")
		return
	}
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid user id")
		return
	}

	var input memberActiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.enterpriseService.SetMemberActive(c.Request.Context(), id, userID, role, *input.IsActive)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}
