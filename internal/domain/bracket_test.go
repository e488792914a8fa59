package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portos/internal/domain"
)

func f(v float64) *float64 { return &v }

func dotationTiers() []domain.BracketTier {
	return []domain.BracketTier{
		{
			Min: 0, Max: f(50000), Rate: 0.10,
			SalMinEmployee: 5000, SalMaxEmployee: 15000,
			SalMinOwner: 8000, SalMaxOwner: 25000,
			BonusMinEmployee: 0, BonusMaxEmployee: 5000,
			BonusMinOwner: 0, BonusMaxOwner: 10000,
		},
		{
			Min: 50001, Max: f(100000), Rate: 0.15,
			SalMinEmployee: 8000, SalMaxEmployee: 20000,
			SalMinOwner: 12000, SalMaxOwner: 30000,
			BonusMinEmployee: 2000, BonusMaxEmployee: 8000,
			BonusMinOwner: 3000, BonusMaxOwner: 15000,
		},
		{
			Min: 100001, Max: nil, Rate: 0.20,
			SalMinEmployee: 12000, SalMaxEmployee: 25000,
			SalMinOwner: 18000, SalMaxOwner: 40000,
			BonusMinEmployee: 5000, BonusMaxEmployee: 12000,
			BonusMinOwner: 8000, BonusMaxOwner: 20000,
		},
	}
}

func dotationTable(t *testing.T) domain.BracketTable {
	t.Helper()
	table, err := domain.NewBracketTable(domain.BracketDotation, dotationTiers())
	require.NoError(t, err)
	return table
}

func TestNewBracketTable_RejectsOverlap(t *testing.T) {
	tiers := dotationTiers()
	tiers[1].Min = 40000 // overlaps tier 0

	_, err := domain.NewBracketTable(domain.BracketDotation, tiers)
	assert.ErrorIs(t, err, domain.ErrInvalidBracketTable)
}

func TestNewBracketTable_RejectsUnboundedMiddleTier(t *testing.T) {
	tiers := dotationTiers()
	tiers[0].Max = nil

	_, err := domain.NewBracketTable(domain.BracketDotation, tiers)
	assert.ErrorIs(t, err, domain.ErrInvalidBracketTable)
}

func TestPayout_WithinTierBounds(t *testing.T) {
	table := dotationTable(t)

	for _, ca := range []float64{0, 1, 49999, 50000, 50001, 75000, 100000, 100001, 2500000} {
		tier, ok := table.Match(ca)
		require.True(t, ok, "ca %v should match a tier", ca)

		for _, class := range []domain.RoleClass{domain.ClassEmployee, domain.ClassOwner} {
			p := table.Payout(ca, class)
			salMin, salMax := tier.SalMinEmployee, tier.SalMaxEmployee
			bonusMin, bonusMax := tier.BonusMinEmployee, tier.BonusMaxEmployee
			if class == domain.ClassOwner {
				salMin, salMax = tier.SalMinOwner, tier.SalMaxOwner
				bonusMin, bonusMax = tier.BonusMinOwner, tier.BonusMaxOwner
			}
			assert.GreaterOrEqual(t, p.Salary, salMin, "ca=%v class=%v", ca, class)
			assert.LessOrEqual(t, p.Salary, salMax, "ca=%v class=%v", ca, class)
			assert.GreaterOrEqual(t, p.Bonus, bonusMin, "ca=%v class=%v", ca, class)
			assert.LessOrEqual(t, p.Bonus, bonusMax, "ca=%v class=%v", ca, class)
		}
	}
}

func TestPayout_BoundaryAmountMatchesLowerTier(t *testing.T) {
	table := dotationTable(t)

	tier, ok := table.Match(50000)
	require.True(t, ok)
	assert.Equal(t, 0.0, tier.Min, "an amount equal to a tier max belongs to that tier")

	tier, ok = table.Match(50001)
	require.True(t, ok)
	assert.Equal(t, 50001.0, tier.Min)
}

func TestPayout_Deterministic(t *testing.T) {
	table := dotationTable(t)

	first := table.Payout(35000, domain.ClassEmployee)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, table.Payout(35000, domain.ClassEmployee))
	}
}

func TestPayout_GapYieldsZero(t *testing.T) {
	gappy := []domain.BracketTier{
		{Min: 0, Max: f(1000), Rate: 0.1, SalMinEmployee: 100, SalMaxEmployee: 200},
		{Min: 5000, Max: nil, Rate: 0.2, SalMinEmployee: 300, SalMaxEmployee: 400},
	}
	table, err := domain.NewBracketTable(domain.BracketDotation, gappy)
	require.NoError(t, err)

	assert.Equal(t, domain.Payout{}, table.Payout(2500, domain.ClassEmployee))
}

func TestPayout_ScenarioJeanDupont(t *testing.T) {
	table := dotationTable(t)

	// 15000 + 8000 + 12000 = 35000, matched to the [0, 50000] tier.
	row := domain.DotationRow{Run: 15000, Facture: 8000, Vente: 12000}
	row.Recompute(table, domain.ClassEmployee)

	assert.Equal(t, 35000.0, row.CATotal)
	// salary = 5000 + 35000*0.10*0.5 = 6750, inside [5000, 15000]
	assert.Equal(t, 6750.0, row.Salaire)
	// bonus = 0 + 35000*0.10*0.3 = 1050, inside [0, 5000]
	assert.Equal(t, 1050.0, row.Prime)
}

func TestTax_SliceAboveFloor(t *testing.T) {
	tiers := []domain.BracketTier{
		{Min: 0, Max: f(100000), Rate: 0.10},
		{Min: 100001, Max: f(500000), Rate: 0.15},
		{Min: 500001, Max: nil, Rate: 0.20},
	}
	table, err := domain.NewBracketTable(domain.BracketRevenue, tiers)
	require.NoError(t, err)

	// Only the slice above the matched tier floor is taxed.
	res := table.Tax(150000)
	assert.Equal(t, (150000.0-100001.0)*0.15, res.Tax)
	assert.Equal(t, 15.0, res.Rate)

	assert.Equal(t, 0.0, table.Tax(0).Tax)
	assert.Equal(t, 0.0, table.Tax(-50).Tax)
}

func TestTaxBase_FlooredAtZero(t *testing.T) {
	assert.Equal(t, 7000.0, domain.TaxBase(10000, 3000))
	assert.Equal(t, 0.0, domain.TaxBase(3000, 10000))
}
