package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/SscSPs/simplefi_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func debit(accountID int64, amount string) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: d(amount), Credit: decimal.Zero}
}

func credit(accountID int64, amount string) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: decimal.Zero, Credit: d(amount)}
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name   string
		line   domain.JournalLine
		normal domain.Side
		want   string
	}{
		{"debit to debit-normal", debit(1, "100"), domain.Debit, "100"},
		{"credit to debit-normal", credit(1, "40"), domain.Debit, "-40"},
		{"credit to credit-normal", credit(1, "75.25"), domain.Credit, "75.25"},
		{"debit to credit-normal", debit(1, "10"), domain.Credit, "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.SignedAmount(tt.line, tt.normal)
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestIsWellFormed(t *testing.T) {
	assert.True(t, accounting.IsWellFormed(debit(1, "1")))
	assert.True(t, accounting.IsWellFormed(credit(1, "0.01")))
	assert.False(t, accounting.IsWellFormed(domain.JournalLine{Debit: decimal.Zero, Credit: decimal.Zero}))
	assert.False(t, accounting.IsWellFormed(domain.JournalLine{Debit: d("50"), Credit: d("60")}))
	assert.False(t, accounting.IsWellFormed(domain.JournalLine{Debit: d("-5"), Credit: decimal.Zero}))
	assert.False(t, accounting.IsWellFormed(domain.JournalLine{Debit: d("5"), Credit: d("-5")}))

	// amounts must survive NUMERIC(38,10) without rounding
	assert.True(t, accounting.IsWellFormed(debit(1, "0.0000000001")))
	assert.True(t, accounting.IsWellFormed(debit(1, "1.000000000000")))
	assert.False(t, accounting.IsWellFormed(debit(1, "0.00000000001")))
	assert.False(t, accounting.IsWellFormed(credit(1, "1.00000000005")))
	assert.False(t, accounting.IsWellFormed(debit(1, "10000000000000000000000000000")))
}

func TestIsStorableAmount(t *testing.T) {
	assert.True(t, accounting.IsStorableAmount(decimal.Zero))
	assert.True(t, accounting.IsStorableAmount(d("9999999999999999999999999999.9999999999")))
	assert.True(t, accounting.IsStorableAmount(d("-12.5")))
	assert.False(t, accounting.IsStorableAmount(d("10000000000000000000000000000")))
	assert.False(t, accounting.IsStorableAmount(d("0.12345678901")))
}

func TestIsBalanced(t *testing.T) {
	assert.True(t, accounting.IsBalanced([]domain.JournalLine{debit(1, "100"), credit(2, "100")}))
	assert.True(t, accounting.IsBalanced([]domain.JournalLine{debit(1, "100.004"), credit(2, "100")}))
	assert.True(t, accounting.IsBalanced([]domain.JournalLine{debit(1, "100.005"), credit(2, "100")}))
	assert.False(t, accounting.IsBalanced([]domain.JournalLine{debit(1, "100.01"), credit(2, "100")}))
	assert.False(t, accounting.IsBalanced([]domain.JournalLine{debit(1, "100")}))
	assert.True(t, accounting.IsBalanced([]domain.JournalLine{
		debit(1, "0.1"), debit(1, "0.2"), credit(2, "0.3"),
	}))
}

func TestBalanceChanges_NetsPerAccount(t *testing.T) {
	lines := []domain.JournalLine{
		debit(1, "100"),
		credit(2, "60"),
		credit(1, "25"),
		credit(2, "15"),
	}
	normals := map[int64]domain.Side{1: domain.Debit, 2: domain.Credit}

	changes := accounting.BalanceChanges(lines, normals)

	require.Len(t, changes, 2)
	assert.Equal(t, int64(1), changes[0].AccountID)
	assert.True(t, changes[0].Delta.Equal(d("75")))
	assert.Equal(t, int64(2), changes[1].AccountID)
	assert.True(t, changes[1].Delta.Equal(d("75")))
}

func TestFoldBalance(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lines := []domain.LedgerLine{
		{JournalLine: debit(1, "100"), EntryDate: day},
		{JournalLine: credit(1, "30"), EntryDate: day},
		{JournalLine: debit(1, "5"), EntryDate: day.AddDate(0, 0, 1)},
	}

	final := accounting.FoldBalance(lines, domain.Debit)

	assert.True(t, final.Equal(d("75")))
	assert.True(t, lines[0].RunningBalance.Equal(d("100")))
	assert.True(t, lines[1].RunningBalance.Equal(d("70")))
	assert.True(t, lines[2].RunningBalance.Equal(d("75")))
}
