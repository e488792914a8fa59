package domain

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Share of the tier rate applied above the tier floor when deriving the two
// payout amounts.
const (
	salaryShare = 0.5
	bonusShare  = 0.3
)

// BracketTier is one contiguous range of a tier table. A nil Max means the
// tier is unbounded above. The clamp bounds exist per role class for both
// derived amounts.
type BracketTier struct {
	ID   uuid.UUID   `db:"id" json:"id"`
	Kind BracketKind `db:"kind" json:"kind"`
	Min  float64     `db:"min_amount" json:"min_amount"`
	Max  *float64    `db:"max_amount" json:"max_amount"`
	Rate float64     `db:"taux" json:"taux"`

	SalMinEmployee   float64 `db:"sal_min_emp" json:"sal_min_emp"`
	SalMaxEmployee   float64 `db:"sal_max_emp" json:"sal_max_emp"`
	SalMinOwner      float64 `db:"sal_min_pat" json:"sal_min_pat"`
	SalMaxOwner      float64 `db:"sal_max_pat" json:"sal_max_pat"`
	BonusMinEmployee float64 `db:"pr_min_emp" json:"pr_min_emp"`
	BonusMaxEmployee float64 `db:"pr_max_emp" json:"pr_max_emp"`
	BonusMinOwner    float64 `db:"pr_min_pat" json:"pr_min_pat"`
	BonusMaxOwner    float64 `db:"pr_max_pat" json:"pr_max_pat"`

	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Contains reports whether amount falls inside the tier, both ends inclusive.
func (t BracketTier) Contains(amount float64) bool {
	if amount < t.Min {
		return false
	}
	return t.Max == nil || amount <= *t.Max
}

func (t BracketTier) salaryBounds(class RoleClass) (min, max float64) {
	if class == ClassOwner {
		return t.SalMinOwner, t.SalMaxOwner
	}
	return t.SalMinEmployee, t.SalMaxEmployee
}

func (t BracketTier) bonusBounds(class RoleClass) (min, max float64) {
	if class == ClassOwner {
		return t.BonusMinOwner, t.BonusMaxOwner
	}
	return t.BonusMinEmployee, t.BonusMaxEmployee
}

// BracketTable is an ordered, non-overlapping set of tiers of one kind.
type BracketTable struct {
	Kind  BracketKind
	Tiers []BracketTier
}

// NewBracketTable sorts tiers ascending by floor and validates that they do
// not overlap and that only the last tier is unbounded.
func NewBracketTable(kind BracketKind, tiers []BracketTier) (BracketTable, error) {
	sorted := make([]BracketTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })

	for i, t := range sorted {
		if t.Max == nil {
			if i != len(sorted)-1 {
				return BracketTable{}, ErrInvalidBracketTable
			}
			continue
		}
		if *t.Max < t.Min {
			return BracketTable{}, ErrInvalidBracketTable
		}
		if i < len(sorted)-1 && sorted[i+1].Min <= *t.Max {
			return BracketTable{}, ErrInvalidBracketTable
		}
	}
	return BracketTable{Kind: kind, Tiers: sorted}, nil
}

// Match locates the first tier containing amount. ok is false when the
// amount falls in a gap of the table.
func (b BracketTable) Match(amount float64) (BracketTier, bool) {
	for _, t := range b.Tiers {
		if t.Contains(amount) {
			return t, true
		}
	}
	return BracketTier{}, false
}

// Payout holds the two derived amounts of a dotation line.
type Payout struct {
	Salary float64 `json:"salaire"`
	Bonus  float64 `json:"prime"`
}

// Payout derives the salary and bonus for a contribution total. Each amount
// starts at the class floor, grows with the slice of the total above the tier
// floor scaled by the tier rate, and is clamped into the class bounds. A
// table miss yields zero for both amounts.
func (b BracketTable) Payout(ca float64, class RoleClass) Payout {
	if math.IsNaN(ca) || ca < 0 {
		ca = 0
	}
	tier, ok := b.Match(ca)
	if !ok {
		return Payout{}
	}

	salMin, salMax := tier.salaryBounds(class)
	bonusMin, bonusMax := tier.bonusBounds(class)

	salary := salMin + (ca-tier.Min)*tier.Rate*salaryShare
	bonus := bonusMin + (ca-tier.Min)*tier.Rate*bonusShare

	return Payout{
		Salary: math.Round(clamp(salary, salMin, salMax)),
		Bonus:  math.Round(clamp(bonus, bonusMin, bonusMax)),
	}
}

// TaxResult describes the outcome of a tax computation for one table.
type TaxResult struct {
	Tax     float64 `json:"tax"`
	Rate    float64 `json:"rate"`
	Bracket string  `json:"bracket"`
}

// Tax computes the tax owed on amount. Only the slice above the matched
// tier's floor is taxed, at that tier's rate. Amounts at or below zero, or
// falling outside the table, owe nothing.
func (b BracketTable) Tax(amount float64) TaxResult {
	if math.IsNaN(amount) || amount <= 0 {
		return TaxResult{Bracket: "0€ - 0€"}
	}
	tier, ok := b.Match(amount)
	if !ok {
		return TaxResult{Bracket: "0€ - 0€"}
	}
	return TaxResult{
		Tax:     round2((amount - tier.Min) * tier.Rate),
		Rate:    tier.Rate * 100,
		Bracket: tier.Label(),
	}
}

// Label renders the tier range for display, using the infinity sign for an
// unbounded ceiling.
func (t BracketTier) Label() string {
	if t.Max == nil {
		return formatAmount(t.Min) + "€ - ∞"
	}
	return formatAmount(t.Min) + "€ - " + formatAmount(*t.Max) + "€"
}

// TaxBase is the income amount subject to taxation after deductions, floored
// at zero.
func TaxBase(taxableRevenue, deductions float64) float64 {
	return math.Max(0, taxableRevenue-deductions)
}

func clamp(v, min, max float64) float64 {
	return math.Min(math.Max(v, min), max)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatAmount(v float64) string {
	// Whole euros in the labels, matching the portal display.
	s := make([]byte, 0, 16)
	n := int64(math.Round(v))
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	digits := 0
	for n > 0 {
		if digits > 0 && digits%3 == 0 {
			s = append(s, ' ')
		}
		s = append(s, byte('0'+n%10))
		n /= 10
		digits++
	}
	if neg {
		s = append(s, '-')
	}
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return string(s)
}
