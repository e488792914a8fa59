package port

import (
	"context"

	"github.com/google/uuid"

	"portos/internal/domain"
)

// EnterpriseRepository defines the contract for enterprise persistence.
type EnterpriseRepository interface {
	Create(ctx context.Context, e *domain.Enterprise) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Enterprise, error)
	GetByGuildID(ctx context.Context, guildID string) (*domain.Enterprise, error)
	List(ctx context.Context, offset, limit int) ([]domain.Enterprise, int, error)
	Update(ctx context.Context, e *domain.Enterprise) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDiscordID(ctx context.Context, discordID string) (*domain.User, error)
	Upsert(ctx context.Context, u *domain.User) error
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, u *domain.User) error
}

// DotationReportRepository defines the contract for dotation report persistence.
type DotationReportRepository interface {
	Create(ctx context.Context, r *domain.DotationReport) error
	GetByID(ctx context.Context, enterpriseID, reportID uuid.UUID) (*domain.DotationReport, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.DotationReport, int, error)
	Update(ctx context.Context, r *domain.DotationReport) error
	Delete(ctx context.Context, enterpriseID, reportID uuid.UUID) error
}

// DotationRowRepository defines the contract for dotation row persistence.
type DotationRowRepository interface {
	BulkInsert(ctx context.Context, rows []domain.DotationRow) error
	ListByReport(ctx context.Context, reportID uuid.UUID) ([]domain.DotationRow, error)
	Update(ctx context.Context, row *domain.DotationRow) error
	Delete(ctx context.Context, reportID, rowID uuid.UUID) error
}

// BracketRepository defines the contract for bracket tier persistence.
type BracketRepository interface {
	ListByKind(ctx context.Context, kind domain.BracketKind) ([]domain.BracketTier, error)
	ReplaceKind(ctx context.Context, kind domain.BracketKind, tiers []domain.BracketTier) error
}

// TaxDeclarationRepository defines the contract for tax declaration persistence.
type TaxDeclarationRepository interface {
	Create(ctx context.Context, d *domain.TaxDeclaration) error
	GetByID(ctx context.Context, enterpriseID, declarationID uuid.UUID) (*domain.TaxDeclaration, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.TaxDeclaration, int, error)
	Update(ctx context.Context, d *domain.TaxDeclaration) error
	Delete(ctx context.Context, enterpriseID, declarationID uuid.UUID) error
}

// LaunderingSettingRepository defines the contract for laundering settings.
type LaunderingSettingRepository interface {
	GetGlobal(ctx context.Context) (*domain.LaunderingSetting, error)
	GetByEnterprise(ctx context.Context, enterpriseID uuid.UUID) (*domain.LaunderingSetting, error)
	Upsert(ctx context.Context, s *domain.LaunderingSetting) error
}

// LaunderingRowRepository defines the contract for laundering ledger rows.
type LaunderingRowRepository interface {
	Create(ctx context.Context, row *domain.LaunderingRow) error
	GetByID(ctx context.Context, enterpriseID, rowID uuid.UUID) (*domain.LaunderingRow, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.LaunderingRow, int, error)
	Update(ctx context.Context, row *domain.LaunderingRow) error
	Delete(ctx context.Context, enterpriseID, rowID uuid.UUID) error
}

// ArchiveFilter narrows archive listings.
type ArchiveFilter struct {
	Category domain.ArchiveCategory
	Status   domain.ApprovalStatus
	Search   string
	Offset   int
	Limit    int
}

// ArchiveRepository defines the contract for archive persistence.
type ArchiveRepository interface {
	Create(ctx context.Context, a *domain.Archive) error
	GetByID(ctx context.Context, enterpriseID, archiveID uuid.UUID) (*domain.Archive, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, filter ArchiveFilter) ([]domain.Archive, int, error)
	Update(ctx context.Context, a *domain.Archive) error
	UpdateStatus(ctx context.Context, enterpriseID, archiveID uuid.UUID, status domain.ApprovalStatus) error
	Delete(ctx context.Context, enterpriseID, archiveID uuid.UUID) error
}

// DocumentRepository defines the contract for document metadata persistence.
type DocumentRepository interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, enterpriseID, documentID uuid.UUID) (*domain.Document, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
	Delete(ctx context.Context, enterpriseID, documentID uuid.UUID) error
}

// AuditLogRepository defines the contract for audit trail persistence.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	ListByRecord(ctx context.Context, tableName, recordID string, offset, limit int) ([]domain.AuditLog, int, error)
}
