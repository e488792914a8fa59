package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Enterprise represents a company managed through the portal. The Discord
// guild and role ids drive role resolution at login.
type Enterprise struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	GuildID        string    `db:"guild_id" json:"guild_id"`
	StaffRoleID    string    `db:"staff_role_id" json:"staff_role_id"`
	PatronRoleID   string    `db:"patron_role_id" json:"patron_role_id"`
	CoPatronRoleID string    `db:"co_patron_role_id" json:"co_patron_role_id"`
	DotRoleID      string    `db:"dot_role_id" json:"dot_role_id"`
	EmployeRoleID  string    `db:"employe_role_id" json:"employe_role_id"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// User represents a portal user identified through Discord.
type User struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	DiscordID       string     `db:"discord_id" json:"discord_id"`
	DiscordUsername string     `db:"discord_username" json:"discord_username"`
	AvatarURL       string     `db:"avatar_url" json:"avatar_url"`
	Role            Role       `db:"role" json:"role"`
	EnterpriseID    *uuid.UUID `db:"enterprise_id" json:"enterprise_id"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	LastLogin       *time.Time `db:"last_login" json:"last_login"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// DotationReport groups the payroll rows of an enterprise for one period.
// The totals are always recomputed from the rows, never edited directly.
type DotationReport struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	EnterpriseID   uuid.UUID      `db:"enterprise_id" json:"enterprise_id"`
	CreatedBy      uuid.UUID      `db:"created_by" json:"created_by"`
	Title          string         `db:"title" json:"title"`
	Period         string         `db:"period" json:"period"`
	Status         ApprovalStatus `db:"status" json:"status"`
	TotalCA        float64        `db:"total_ca" json:"total_ca"`
	TotalSalaries  float64        `db:"total_salaires" json:"total_salaires"`
	TotalBonuses   float64        `db:"total_primes" json:"total_primes"`
	TotalEmployees int            `db:"total_employees" json:"total_employees"`
	Notes          string         `db:"notes" json:"notes"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// DotationRow is one employee line of a dotation report. CATotal is the sum
// of the three raw figures and Salaire/Prime derive from the bracket table.
type DotationRow struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ReportID     uuid.UUID `db:"report_id" json:"report_id"`
	EmployeeName string    `db:"employee_name" json:"employee_name"`
	Grade        string    `db:"grade" json:"grade"`
	Run          float64   `db:"run" json:"run"`
	Facture      float64   `db:"facture" json:"facture"`
	Vente        float64   `db:"vente" json:"vente"`
	CATotal      float64   `db:"ca_total" json:"ca_total"`
	Salaire      float64   `db:"salaire" json:"salaire"`
	Prime        float64   `db:"prime" json:"prime"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Recompute refreshes the derived fields of the row from its raw inputs and
// the given bracket table.
func (r *DotationRow) Recompute(table BracketTable, class RoleClass) {
	r.CATotal = r.Run + r.Facture + r.Vente
	p := table.Payout(r.CATotal, class)
	r.Salaire = p.Salary
	r.Prime = p.Bonus
}

// TaxDeclaration is a per-period income and wealth tax filing.
type TaxDeclaration struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	EnterpriseID   uuid.UUID      `db:"enterprise_id" json:"enterprise_id"`
	UserID         uuid.UUID      `db:"user_id" json:"user_id"`
	Period         string         `db:"period" json:"period"`
	Revenue        float64        `db:"revenus_totaux" json:"revenus_totaux"`
	TaxableRevenue float64        `db:"revenus_imposables" json:"revenus_imposables"`
	Deductions     float64        `db:"abattements" json:"abattements"`
	Wealth         float64        `db:"patrimoine" json:"patrimoine"`
	IncomeTax      float64        `db:"impot_revenus" json:"impot_revenus"`
	WealthTax      float64        `db:"impot_patrimoine" json:"impot_patrimoine"`
	TotalTax       float64        `db:"impot_total" json:"impot_total"`
	Status         ApprovalStatus `db:"status" json:"status"`
	Notes          string         `db:"notes" json:"notes"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// LaunderingSetting holds the percentage shares applied to laundering rows.
// When UseGlobal is set the enterprise follows the global scope values.
type LaunderingSetting struct {
	ID             uuid.UUID `db:"id" json:"id"`
	EnterpriseID   uuid.UUID `db:"enterprise_id" json:"enterprise_id"`
	IsEnabled      bool      `db:"is_enabled" json:"is_enabled"`
	UseGlobal      bool      `db:"use_global" json:"use_global"`
	PercEnterprise float64   `db:"perc_entreprise" json:"perc_entreprise"`
	PercGroup      float64   `db:"perc_groupe" json:"perc_groupe"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Archive is a finalized record of a business event awaiting or having
// received staff approval. Payload carries the source object snapshot.
type Archive struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	EnterpriseID uuid.UUID       `db:"enterprise_id" json:"enterprise_id"`
	CreatedBy    uuid.UUID       `db:"created_by" json:"created_by"`
	Title        string          `db:"title" json:"title"`
	Description  string          `db:"description" json:"description"`
	Category     ArchiveCategory `db:"category" json:"category"`
	Status       ApprovalStatus  `db:"status" json:"status"`
	Amount       float64         `db:"montant" json:"montant"`
	Date         time.Time       `db:"date" json:"date"`
	ReferenceID  *uuid.UUID      `db:"reference_id" json:"reference_id"`
	Payload      json.RawMessage `db:"payload" json:"payload"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Document stores metadata about an uploaded file kept in object storage.
type Document struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	EnterpriseID uuid.UUID    `db:"enterprise_id" json:"enterprise_id"`
	UploadedBy   uuid.UUID    `db:"uploaded_by" json:"uploaded_by"`
	FileName     string       `db:"file_name" json:"file_name"`
	OriginalName string       `db:"original_name" json:"original_name"`
	StorageKey   string       `db:"storage_key" json:"storage_key"`
	SizeBytes    int64        `db:"size_bytes" json:"size_bytes"`
	MimeType     string       `db:"mime_type" json:"mime_type"`
	Type         DocumentType `db:"document_type" json:"document_type"`
	IsActive     bool         `db:"is_active" json:"is_active"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}

// AuditLog traces a mutating action against a portal record.
type AuditLog struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    *uuid.UUID      `db:"user_id" json:"user_id"`
	Action    string          `db:"action" json:"action"`
	TableName string          `db:"table_name" json:"table_name"`
	RecordID  string          `db:"record_id" json:"record_id"`
	OldValues json.RawMessage `db:"old_values" json:"old_values"`
	NewValues json.RawMessage `db:"new_values" json:"new_values"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
