package domain

// Role defines the Discord-derived role hierarchy within an enterprise.
type Role string

const (
	RoleStaff    Role = "staff"
	RolePatron   Role = "patron"
	RoleCoPatron Role = "co-patron"
	RoleDot      Role = "dot"
	RoleEmploye  Role = "employe"
)

// AllRoles lists every valid role.
var AllRoles = []Role{RoleStaff, RolePatron, RoleCoPatron, RoleDot, RoleEmploye}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RolePatron, RoleCoPatron, RoleDot, RoleEmploye:
		return true
	}
	return false
}

// RoleClass selects which clamp bounds of a bracket tier apply.
type RoleClass string

const (
	ClassEmployee RoleClass = "employee"
	ClassOwner    RoleClass = "owner"
)

// Class maps a role to the bracket clamp class used for payout computation.
// Patrons and co-patrons draw from the owner bounds, everyone else from the
// employee bounds.
func (r Role) Class() RoleClass {
	if r == RolePatron || r == RoleCoPatron {
		return ClassOwner
	}
	return ClassEmployee
}

// ApprovalStatus is the review status of archives, dotation reports and tax
// declarations. The wire values are the French labels the portal displays.
type ApprovalStatus string

const (
	StatusPending   ApprovalStatus = "En attente"
	StatusValidated ApprovalStatus = "Validé"
	StatusRejected  ApprovalStatus = "Refusé"
)

// LaunderingStatus is the lifecycle status of a laundering ledger row.
type LaunderingStatus string

const (
	LaunderingInProgress LaunderingStatus = "En cours"
	LaunderingDone       LaunderingStatus = "Terminé"
	LaunderingSuspended  LaunderingStatus = "Suspendu"
	LaunderingCancelled  LaunderingStatus = "Annulé"
)

// ArchiveCategory classifies what business event an archive captures.
type ArchiveCategory string

const (
	ArchiveDotation   ArchiveCategory = "Dotation"
	ArchiveTax        ArchiveCategory = "Impôt"
	ArchiveLaundering ArchiveCategory = "Blanchiment"
)

// DocumentType represents the allowed document categories for upload.
type DocumentType string

const (
	DocFacture DocumentType = "Facture"
	DocDiplome DocumentType = "Diplôme"
	DocContrat DocumentType = "Contrat"
	DocRapport DocumentType = "Rapport"
	DocGeneric DocumentType = "Document"
)

// BracketKind identifies which tier table a bracket belongs to.
type BracketKind string

const (
	BracketRevenue  BracketKind = "revenus"
	BracketWealth   BracketKind = "patrimoine"
	BracketDotation BracketKind = "dotation"
)
