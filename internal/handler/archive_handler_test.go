package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portos/internal/domain"
	"portos/internal/handler"
	"portos/internal/middleware"
	"portos/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// seedAuth stands in for the auth middleware on test routers.
func seedAuth(enterpriseID, userID uuid.UUID, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyEnterpriseID, enterpriseID)
		c.Set(middleware.ContextKeyUserID, userID)
		c.Set(middleware.ContextKeyRole, string(role))
		c.Next()
	}
}

func newArchiveRouter(svc *mocks.MockArchiveService, enterpriseID, userID uuid.UUID, role domain.Role) *gin.Engine {
	h := handler.NewArchiveHandler(svc)
	r := gin.New()
	g := r.Group("/archives", seedAuth(enterpriseID, userID, role))
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.POST("/:id/validate", h.Validate)
	g.POST("/:id/reject", h.Reject)
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func errorCode(resp map[string]interface{}) string {
	errObj, _ := resp["error"].(map[string]interface{})
	code, _ := errObj["code"].(string)
	return code
}

func TestValidateArchive_ReturnsUpdatedArchive(t *testing.T) {
	svc := new(mocks.MockArchiveService)
	enterpriseID, userID, archiveID := uuid.New(), uuid.New(), uuid.New()

	svc.On("Validate", mock.Anything, enterpriseID, archiveID, userID, domain.RoleStaff).
		Return(&domain.Archive{
			ID:     archiveID,
			Title:  "Facture Juillet",
			Status: domain.StatusValidated,
		}, nil)

	r := newArchiveRouter(svc, enterpriseID, userID, domain.RoleStaff)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/archives/"+archiveID.String()+"/validate", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, string(domain.StatusValidated), data["status"])
	svc.AssertExpectations(t)
}

func TestValidateArchive_InsufficientRoleIs403(t *testing.T) {
	svc := new(mocks.MockArchiveService)
	enterpriseID, userID, archiveID := uuid.New(), uuid.New(), uuid.New()

	svc.On("Validate", mock.Anything, enterpriseID, archiveID, userID, domain.RolePatron).
		Return(nil, domain.ErrInsufficientRole)

	r := newArchiveRouter(svc, enterpriseID, userID, domain.RolePatron)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/archives/"+archiveID.String()+"/validate", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "INSUFFICIENT_ROLE", errorCode(resp))
}

func TestRejectArchive_TerminalTransitionIs409(t *testing.T) {
	svc := new(mocks.MockArchiveService)
	enterpriseID, userID, archiveID := uuid.New(), uuid.New(), uuid.New()

	svc.On("Reject", mock.Anything, enterpriseID, archiveID, userID, domain.RoleStaff).
		Return(nil, domain.ErrInvalidTransition)

	r := newArchiveRouter(svc, enterpriseID, userID, domain.RoleStaff)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/archives/"+archiveID.String()+"/reject", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(decodeEnvelope(t, w)))
}

func TestGetArchive_NotFoundIs404(t *testing.T) {
	svc := new(mocks.MockArchiveService)
	enterpriseID, userID, archiveID := uuid.New(), uuid.New(), uuid.New()

	svc.On("GetByID", mock.Anything, enterpriseID, archiveID, domain.RolePatron).
		Return(nil, domain.ErrNotFound)

	r := newArchiveRouter(svc, enterpriseID, userID, domain.RolePatron)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/archives/"+archiveID.String(), http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(decodeEnvelope(t, w)))
}

func TestValidateArchive_BadIDIs400(t *testing.T) {
	svc := new(mocks.MockArchiveService)

	r := newArchiveRouter(svc, uuid.New(), uuid.New(), domain.RoleStaff)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/archives/not-a-uuid/validate", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateArchive_MissingTitleIs400(t *testing.T) {
	svc := new(mocks.MockArchiveService)

	r := newArchiveRouter(svc, uuid.New(), uuid.New(), domain.RolePatron)
	w := httptest.NewRecorder()
	body := strings.NewReader(`{"category": "Dotation"}`)
	req, _ := http.NewRequest(http.MethodPost, "/archives", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(decodeEnvelope(t, w)))
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestArchiveRoutes_MissingAuthContextIs401(t *testing.T) {
	svc := new(mocks.MockArchiveService)
	h := handler.NewArchiveHandler(svc)

	r := gin.New()
	r.POST("/archives/:id/validate", h.Validate)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/archives/"+uuid.New().String()+"/validate", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
