package dto

import (
	"time"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReconciliationRequest starts reconciling an account against a bank statement.
type CreateReconciliationRequest struct {
	AccountID        int64           `json:"accountID" binding:"required"`
	StatementDate    Date            `json:"statementDate"`
	StatementBalance decimal.Decimal `json:"statementBalance"`
}

// ListReconciliationsParams defines query parameters for listing reconciliations.
type ListReconciliationsParams struct {
	PageParams
	AccountID *int64 `form:"accountID"`
}

// ReconciliationResponse defines the data returned for a bank reconciliation.
type ReconciliationResponse struct {
	ReconciliationID  int64                       `json:"reconciliationID"`
	AccountID         int64                       `json:"accountID"`
	StatementDate     Date                        `json:"statementDate"`
	StatementBalance  decimal.Decimal             `json:"statementBalance"`
	ReconciledBalance decimal.Decimal             `json:"reconciledBalance"`
	Difference        decimal.Decimal             `json:"difference"`
	Status            domain.ReconciliationStatus `json:"status"`
	CreatedAt         time.Time                   `json:"createdAt"`
	LastUpdatedAt     time.Time                   `json:"lastUpdatedAt"`
}

func ToReconciliationResponse(r *domain.BankReconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ReconciliationID:  r.ReconciliationID,
		AccountID:         r.AccountID,
		StatementDate:     NewDate(r.StatementDate),
		StatementBalance:  r.StatementBalance,
		ReconciledBalance: r.ReconciledBalance,
		Difference:        r.Difference(),
		Status:            r.Status,
		CreatedAt:         r.CreatedAt,
		LastUpdatedAt:     r.LastUpdatedAt,
	}
}

func ToListReconciliationResponse(recs []domain.BankReconciliation) []ReconciliationResponse {
	res := make([]ReconciliationResponse, len(recs))
	for i := range recs {
		res[i] = ToReconciliationResponse(&recs[i])
	}
	return res
}

type ListReconciliationsResponse struct {
	Reconciliations []ReconciliationResponse `json:"reconciliations"`
}
