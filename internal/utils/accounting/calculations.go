package accounting

import (
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance for monetary comparisons. Balances within this of
// zero are treated as zero so floating noise never produces phantom balances.
var Epsilon = decimal.NewFromFloat(0.01)

// IsZero reports whether an amount is zero within Epsilon.
func IsZero(amount decimal.Decimal) bool {
	return amount.Abs().LessThanOrEqual(Epsilon)
}

// SignedBalance applies the normal-balance sign rule: debit-normal accounts
// report debits minus credits, credit-normal accounts the reverse.
func SignedBalance(debit, credit decimal.Decimal, isDebitNormal bool) decimal.Decimal {
	if isDebitNormal {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// LineTotals sums the debit and credit sides of a set of journal lines.
func LineTotals(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// IsBalanced reports whether debits equal credits within Epsilon.
func IsBalanced(totalDebit, totalCredit decimal.Decimal) bool {
	return IsZero(totalDebit.Sub(totalCredit))
}
