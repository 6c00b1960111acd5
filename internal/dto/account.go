package dto

import (
	"time"

	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name         string `json:"name" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required,currencycode"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	CurrencyCode  string          `json:"currencyCode"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		CurrencyCode:  acc.CurrencyCode,
		Balance:       acc.Balance,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToActivityResponse converts a domain.ActivityRecord to its DTO.
func ToActivityResponse(rec domain.ActivityRecord) ActivityResponse {
	return ActivityResponse{
		RecordID:        rec.RecordID,
		AccountID:       rec.AccountID,
		Operation:       string(rec.Operation),
		Counterparty:    rec.Counterparty,
		Amount:          rec.Amount,
		CurrencyCode:    rec.CurrencyCode,
		DisplayAmount:   rec.DisplayAmount,
		DisplayCurrency: rec.DisplayCurrency,
		FeeAmount:       rec.FeeAmount,
		FeeCurrency:     rec.FeeCurrency,
		OccurredAt:      rec.OccurredAt,
	}
}

// ToListActivityResponse converts a slice of activity records.
func ToListActivityResponse(records []domain.ActivityRecord) []ActivityResponse {
	responses := make([]ActivityResponse, len(records))
	for i, rec := range records {
		responses[i] = ToActivityResponse(rec)
	}
	return responses
}
