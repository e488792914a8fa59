package router

import (
	"github.com/gin-gonic/gin"

	"portos/internal/domain"
	"portos/internal/handler"
	"portos/internal/middleware"
	"portos/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	dotationH *handler.DotationHandler,
	taxH *handler.TaxHandler,
	launderingH *handler.LaunderingHandler,
	archiveH *handler.ArchiveHandler,
	documentH *handler.DocumentHandler,
	configH *handler.ConfigHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.GET("/discord", authH.Authorize)
	auth.POST("/discord/callback", authH.Callback)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.GET("/auth/me", authH.Me)
	protected.GET("/auth/check", authH.Check)
	protected.POST("/auth/logout", authH.Logout)

	// Dotation routes - patron, co-patron, staff and the dot delegate
	dotations := protected.Group("/dotations")
	dotations.Use(middleware.RequireRole(domain.RolePatron, domain.RoleCoPatron, domain.RoleStaff, domain.RoleDot))
	dotations.POST("", dotationH.Create)
	dotations.GET("", dotationH.List)
	dotations.POST("/preview", dotationH.Preview)
	dotations.GET("/:id", dotationH.Get)
	dotations.DELETE("/:id", dotationH.Delete)
	dotations.POST("/:id/rows/import", dotationH.ImportRows)
	dotations.POST("/:id/rows/import/xlsx", dotationH.ImportWorkbook)
	dotations.PUT("/:id/rows/:rowId", dotationH.UpdateRow)
	dotations.DELETE("/:id/rows/:rowId", dotationH.DeleteRow)
	dotations.GET("/:id/export/csv", dotationH.ExportCSV)
	dotations.GET("/:id/export/xlsx", dotationH.ExportXLSX)

	// Tax routes
	tax := protected.Group("/tax")
	tax.Use(middleware.RequireRole(domain.RolePatron, domain.RoleCoPatron, domain.RoleStaff))
	tax.POST("/compute", taxH.Compute)
	tax.POST("/declarations", taxH.Create)
	tax.GET("/declarations", taxH.List)
	tax.GET("/declarations/:id", taxH.Get)
	tax.PUT("/declarations/:id", taxH.Update)
	tax.DELETE("/declarations/:id", taxH.Delete)

	// Laundering ledger routes
	laundering := protected.Group("/laundering")
	laundering.Use(middleware.RequireRole(domain.RolePatron, domain.RoleCoPatron, domain.RoleStaff))
	laundering.GET("/settings", launderingH.Settings)
	laundering.PUT("/settings", middleware.RequireRole(domain.RoleStaff), launderingH.UpdateSettings)
	laundering.POST("/rows", launderingH.CreateRow)
	laundering.GET("/rows", launderingH.ListRows)
	laundering.PUT("/rows/:id", launderingH.UpdateRow)
	laundering.DELETE("/rows/:id", launderingH.DeleteRow)
	laundering.POST("/rows/import", launderingH.ImportRows)
	laundering.POST("/rows/import/xlsx", launderingH.ImportWorkbook)
	laundering.GET("/export/xlsx", launderingH.ExportXLSX)

	// Archive routes
	archives := protected.Group("/archives")
	archives.Use(middleware.RequireRole(domain.RolePatron, domain.RoleCoPatron, domain.RoleStaff, domain.RoleDot))
	archives.POST("", archiveH.Create)
	archives.GET("", archiveH.List)
	archives.GET("/:id", archiveH.Get)
	archives.PUT("/:id", archiveH.Update)
	archives.POST("/:id/validate", middleware.RequireRole(domain.RoleStaff), archiveH.Validate)
	archives.POST("/:id/reject", middleware.RequireRole(domain.RoleStaff), archiveH.Reject)
	archives.DELETE("/:id", middleware.RequireRole(domain.RoleStaff), archiveH.Delete)

	// Document routes
	documents := protected.Group("/documents")
	documents.POST("", documentH.Upload)
	documents.GET("", documentH.List)
	documents.GET("/:id", documentH.Get)
	documents.GET("/:id/download", documentH.Download)
	documents.DELETE("/:id", documentH.Delete)

	// Config routes - bracket tables and enterprise administration
	config := protected.Group("/config")
	config.GET("/brackets/:kind", configH.ListBrackets)
	config.PUT("/brackets/:kind", configH.ReplaceBrackets)
	enterprises := config.Group("/enterprises")
	enterprises.Use(middleware.RequireRole(domain.RoleStaff))
	enterprises.POST("", configH.CreateEnterprise)
	enterprises.GET("", configH.ListEnterprises)
	enterprises.GET("/:id", configH.GetEnterprise)
	enterprises.PUT("/:id", configH.UpdateEnterprise)
	enterprises.DELETE("/:id", configH.DeleteEnterprise)
	enterprises.GET("/:id/members", configH.ListMembers)
	enterprises.PUT("/:id/members/:userId/active", configH.SetMemberActive)

	return r
}
