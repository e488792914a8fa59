package main

import (
	"fmt"
	"log"

	discordauth "portos/internal/auth/discord"
	"portos/internal/config"
	"portos/internal/handler"
	discordnotify "portos/internal/notify/discord"
	"portos/internal/repository/postgres"
	"portos/internal/router"
	"portos/internal/service"
	s3storage "portos/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	enterpriseRepo := postgres.NewEnterpriseRepo(db)
	userRepo := postgres.NewUserRepo(db)
	reportRepo := postgres.NewDotationReportRepo(db)
	rowRepo := postgres.NewDotationRowRepo(db)
	bracketRepo := postgres.NewBracketRepo(db)
	taxRepo := postgres.NewTaxDeclarationRepo(db)
	launderingSettingRepo := postgres.NewLaunderingSettingRepo(db)
	launderingRowRepo := postgres.NewLaunderingRowRepo(db)
	archiveRepo := postgres.NewArchiveRepo(db)
	documentRepo := postgres.NewDocumentRepo(db)
	auditRepo := postgres.NewAuditLogRepo(db)

	// Initialize outbound adapters
	s3Client, err := s3storage.NewClient(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	discordGateway := discordauth.NewClient(cfg.Discord)
	notifier := discordnotify.NewWebhookNotifier(cfg.Discord.WebhookURL)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, enterpriseRepo, discordGateway, cfg.JWT)
	dotationSvc := service.NewDotationService(reportRepo, rowRepo, bracketRepo)
	taxSvc := service.NewTaxService(taxRepo, bracketRepo)
	launderingSvc := service.NewLaunderingService(launderingSettingRepo, launderingRowRepo)
	archiveSvc := service.NewArchiveService(archiveRepo, auditRepo, notifier)
	documentSvc := service.NewDocumentService(documentRepo, s3Client, &cfg.S3)
	bracketSvc := service.NewBracketService(bracketRepo)
	enterpriseSvc := service.NewEnterpriseService(enterpriseRepo, userRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	dotationH := handler.NewDotationHandler(dotationSvc)
	taxH := handler.NewTaxHandler(taxSvc)
	launderingH := handler.NewLaunderingHandler(launderingSvc)
	archiveH := handler.NewArchiveHandler(archiveSvc)
	documentH := handler.NewDocumentHandler(documentSvc)
	configH := handler.NewConfigHandler(bracketSvc, enterpriseSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, dotationH, taxH, launderingH, archiveH, documentH, configH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
