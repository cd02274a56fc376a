package accounting_test

import (
	"testing"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	"github.com/quarryworks/quarry_books_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsZero(t *testing.T) {
	assert.True(t, accounting.IsZero(decimal.Zero))
	assert.True(t, accounting.IsZero(decimal.NewFromFloat(0.01)))
	assert.True(t, accounting.IsZero(decimal.NewFromFloat(-0.01)))
	assert.False(t, accounting.IsZero(decimal.NewFromFloat(0.011)))
	assert.False(t, accounting.IsZero(decimal.NewFromInt(1)))
}

func TestSignedBalance(t *testing.T) {
	debit := decimal.NewFromInt(700)
	credit := decimal.NewFromInt(200)

	assert.True(t, accounting.SignedBalance(debit, credit, true).Equal(decimal.NewFromInt(500)))
	assert.True(t, accounting.SignedBalance(debit, credit, false).Equal(decimal.NewFromInt(-500)))
}

func TestLineTotals(t *testing.T) {
	lines := []domain.JournalLine{
		{Debit: decimal.NewFromInt(300), Credit: decimal.Zero},
		{Debit: decimal.NewFromInt(200), Credit: decimal.Zero},
		{Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
	}

	totalDebit, totalCredit := accounting.LineTotals(lines)
	assert.True(t, totalDebit.Equal(decimal.NewFromInt(500)))
	assert.True(t, totalCredit.Equal(decimal.NewFromInt(500)))

	totalDebit, totalCredit = accounting.LineTotals(nil)
	assert.True(t, totalDebit.IsZero())
	assert.True(t, totalCredit.IsZero())
}

func TestIsBalanced(t *testing.T) {
	assert.True(t, accounting.IsBalanced(decimal.NewFromInt(500), decimal.NewFromInt(500)))
	assert.True(t, accounting.IsBalanced(decimal.NewFromFloat(100.005), decimal.NewFromInt(100)))
	assert.False(t, accounting.IsBalanced(decimal.NewFromInt(100), decimal.NewFromInt(99)))
}
