package services_test

import (
	"testing"

	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	"github.com/SscSPs/funds_flow_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLimitGuardExceeds(t *testing.T) {
	guard := services.NewLimitGuard("USD", decimal.NewFromInt(7000), decimal.NewFromInt(5000))

	assert.Equal(t, "USD", guard.LimitCurrency())

	assert.False(t, guard.Exceeds(domain.Deposit, decimal.NewFromInt(6999)))
	assert.False(t, guard.Exceeds(domain.Deposit, decimal.NewFromInt(7000)))
	assert.True(t, guard.Exceeds(domain.Deposit, decimal.NewFromInt(7001)))

	assert.False(t, guard.Exceeds(domain.Withdrawal, decimal.NewFromInt(5000)))
	assert.True(t, guard.Exceeds(domain.Withdrawal, decimal.NewFromFloat(5000.01)))
}

func TestLimitGuardZeroCeilingIsUnbounded(t *testing.T) {
	guard := services.NewLimitGuard("USD", decimal.Zero, decimal.NewFromInt(5000))

	assert.False(t, guard.Exceeds(domain.Deposit, decimal.NewFromInt(1000000)))
	assert.True(t, guard.Exceeds(domain.Withdrawal, decimal.NewFromInt(5001)))
}
