package domain

import (
	"time"

	"github.com/google/uuid"
)

// LaunderingRow is one line of the laundering cycle ledger. DurationDays is
// derived from the two dates and the percentage fields are a snapshot of the
// settings scope active when the row was last edited.
type LaunderingRow struct {
	ID             uuid.UUID        `db:"id" json:"id"`
	EnterpriseID   uuid.UUID        `db:"enterprise_id" json:"enterprise_id"`
	CreatedBy      uuid.UUID        `db:"created_by" json:"created_by"`
	Status         LaunderingStatus `db:"status" json:"status"`
	DateReceived   *time.Time       `db:"date_recu" json:"date_recu"`
	DateReturned   *time.Time       `db:"date_rendu" json:"date_rendu"`
	DurationDays   *int             `db:"duree_jours" json:"duree_jours"`
	Group          string           `db:"groupe" json:"groupe"`
	Employee       string           `db:"employe" json:"employe"`
	GiverID        string           `db:"donneur_id" json:"donneur_id"`
	ReceiverID     string           `db:"recepteur_id" json:"recepteur_id"`
	Amount         float64          `db:"somme" json:"somme"`
	PercEnterprise float64          `db:"entreprise_perc" json:"entreprise_perc"`
	PercGroup      float64          `db:"groupe_perc" json:"groupe_perc"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`
}

// LaunderingDuration returns the whole number of days between the received
// and returned dates, or nil unless both dates are present.
func LaunderingDuration(received, returned *time.Time) *int {
	if received == nil || returned == nil {
		return nil
	}
	days := int(returned.Sub(*received).Hours() / 24)
	return &days
}

// RecomputeDuration refreshes the derived duration from the row's dates.
// Called whenever either date changes.
func (r *LaunderingRow) RecomputeDuration() {
	r.DurationDays = LaunderingDuration(r.DateReceived, r.DateReturned)
}

// ApplySettings snapshots the percentage shares of the given setting onto
// the row. The row keeps these values even if the setting changes later.
func (r *LaunderingRow) ApplySettings(s LaunderingSetting) {
	r.PercEnterprise = s.PercEnterprise
	r.PercGroup = s.PercGroup
}

// ValidateForCreate checks the required fields of a new ledger row.
func (r *LaunderingRow) ValidateForCreate() error {
	if r.Group == "" || r.Employee == "" || r.Amount <= 0 {
		return ErrValidation
	}
	return nil
}
