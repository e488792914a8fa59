package domain

import "strings"

// Capability predicates over the role hierarchy. These are the only way the
// rest of the codebase is allowed to reason about roles; they are pure and
// must be re-evaluated at every decision point.

// CanAccessDotation reports whether the role may open the dotation module.
// The dot role is a delegate that only ever sees dotations.
func CanAccessDotation(r Role) bool {
	switch r {
	case RolePatron, RoleCoPatron, RoleStaff, RoleDot:
		return true
	}
	return false
}

// CanAccessTax reports whether the role may open the tax module.
func CanAccessTax(r Role) bool {
	switch r {
	case RolePatron, RoleCoPatron, RoleStaff:
		return true
	}
	return false
}

// CanAccessLaundering reports whether the role may open the laundering ledger.
func CanAccessLaundering(r Role) bool {
	switch r {
	case RolePatron, RoleCoPatron, RoleStaff:
		return true
	}
	return false
}

// CanAccessStaffConfig reports whether the role may edit staff-level settings.
func CanAccessStaffConfig(r Role) bool {
	return r == RoleStaff
}

// CanAccessCompanyConfig reports whether the role may edit company settings
// such as the bracket tables.
func CanAccessCompanyConfig(r Role) bool {
	return r == RolePatron || r == RoleCoPatron
}

// IsReadOnlyForStaff reports whether the role views business entities in
// approve/view-only mode.
func IsReadOnlyForStaff(r Role) bool {
	return r == RoleStaff
}

// CanCreateArchive reports whether the role may send a record to the archive.
func CanCreateArchive(r Role) bool {
	switch r {
	case RolePatron, RoleCoPatron, RoleDot:
		return true
	}
	return false
}

// CanReviewArchive reports whether the role may validate, reject or delete
// an archive.
func CanReviewArchive(r Role) bool {
	return r == RoleStaff
}

// CanEditArchive reports whether the role may edit the fields of an archive
// in its current status. Staff may always edit; patrons and co-patrons may
// only touch archives whose status carries the rejection marker.
func CanEditArchive(r Role, status ApprovalStatus) bool {
	if r == RoleStaff {
		return true
	}
	if r == RolePatron || r == RoleCoPatron {
		return strings.Contains(strings.ToLower(string(status)), "refus")
	}
	return false
}
