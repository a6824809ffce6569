package accounting

import (
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Epsilon is the largest debit/credit difference, in major currency units, still treated as balanced.
var Epsilon = domain.BalanceTolerance

// AmountScale and AmountIntegerDigits match the NUMERIC(38,10) amount columns.
const (
	AmountScale         = 10
	AmountIntegerDigits = 28
)

var amountLimit = decimal.New(1, AmountIntegerDigits)

// IsStorableAmount reports whether d fits an amount column without rounding.
func IsStorableAmount(d decimal.Decimal) bool {
	return d.Round(AmountScale).Equal(d) && d.Abs().LessThan(amountLimit)
}

// SignedAmount returns the effect of a line on an account with the given normal balance:
// +amount when the line's side matches the normal balance, -amount otherwise.
func SignedAmount(line domain.JournalLine, normalBalance domain.Side) decimal.Decimal {
	if line.Side() == normalBalance {
		return line.Amount()
	}
	return line.Amount().Neg()
}

// IsWellFormed reports whether a line has non-negative, storable amounts with exactly one
// side nonzero.
func IsWellFormed(line domain.JournalLine) bool {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return false
	}
	if !IsStorableAmount(line.Debit) || !IsStorableAmount(line.Credit) {
		return false
	}
	return line.Debit.IsZero() != line.Credit.IsZero()
}

// Totals sums the debit and credit columns of lines.
func Totals(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// IsBalanced reports whether total debits equal total credits within Epsilon.
func IsBalanced(lines []domain.JournalLine) bool {
	debits, credits := Totals(lines)
	return debits.Sub(credits).Abs().LessThanOrEqual(Epsilon)
}

// BalanceChanges nets the signed effect of lines per account. Accounts are reported in the
// order they first appear. normalBalances must hold every account referenced by lines.
func BalanceChanges(lines []domain.JournalLine, normalBalances map[int64]domain.Side) []domain.BalanceChange {
	index := make(map[int64]int, len(lines))
	changes := make([]domain.BalanceChange, 0, len(lines))
	for _, line := range lines {
		signed := SignedAmount(line, normalBalances[line.AccountID])
		if i, ok := index[line.AccountID]; ok {
			changes[i].Delta = changes[i].Delta.Add(signed)
			continue
		}
		index[line.AccountID] = len(changes)
		changes = append(changes, domain.BalanceChange{AccountID: line.AccountID, Delta: signed})
	}
	return changes
}

// FoldBalance applies lines in order to a zero balance, stamping each with the running
// balance after it, and returns the final balance.
func FoldBalance(lines []domain.LedgerLine, normalBalance domain.Side) decimal.Decimal {
	balance := decimal.Zero
	for i := range lines {
		balance = balance.Add(SignedAmount(lines[i].JournalLine, normalBalance))
		lines[i].RunningBalance = balance
	}
	return balance
}
