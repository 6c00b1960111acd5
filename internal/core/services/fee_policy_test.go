package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	"github.com/SscSPs/funds_flow_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FeePolicyTestSuite struct {
	suite.Suite
	mockSource *MockRateSource
	cache      *services.RateCache
	policy     *services.FeePolicy
}

func (suite *FeePolicyTestSuite) SetupTest() {
	suite.mockSource = new(MockRateSource)
	suite.cache = services.NewRateCache(suite.mockSource, 5*time.Minute)
	suite.policy = services.NewFeePolicy(suite.cache, decimal.NewFromFloat(0.50))
}

func (suite *FeePolicyTestSuite) TestSameCurrencyIsFree() {
	fee := suite.policy.CalculateFee(context.Background(), domain.Deposit, "USD", "USD")
	suite.True(fee.IsFree)
	suite.True(fee.Amount.IsZero())

	fee = suite.policy.CalculateFee(context.Background(), domain.Withdrawal, "USD", "USD")
	suite.True(fee.IsFree)
}

func (suite *FeePolicyTestSuite) TestDepositFeeStaysInReferenceCurrency() {
	fee := suite.policy.CalculateFee(context.Background(), domain.Deposit, "GBP", "USD")
	suite.False(fee.IsFree)
	suite.True(fee.Amount.Equal(decimal.NewFromFloat(0.50)))
	suite.Equal("USD", fee.CurrencyCode)
	suite.False(fee.Degraded)
}

func (suite *FeePolicyTestSuite) TestWithdrawalFeeConvertsToInstrumentCurrency() {
	rate := decimal.NewFromFloat(1.25) // GBP -> USD, so USD -> GBP is 0.8
	suite.mockSource.On("FetchRate", mock.Anything, "GBP", "USD").Return(rate, nil).Once()

	fee := suite.policy.CalculateFee(context.Background(), domain.Withdrawal, "GBP", "USD")
	suite.False(fee.IsFree)
	suite.Equal("GBP", fee.CurrencyCode)
	suite.True(fee.Amount.Equal(decimal.NewFromFloat(0.40)), "fee was %s", fee.Amount.String())
	suite.False(fee.Degraded)
}

func (suite *FeePolicyTestSuite) TestWithdrawalFeeDegradesToFaceValue() {
	// NGN/JPY has no bootstrap entry, so a failed fetch leaves no rate at all.
	suite.mockSource.On("FetchRate", mock.Anything, mock.Anything, mock.Anything).
		Return(decimal.Zero, fmt.Errorf("provider down"))

	fee := suite.policy.CalculateFee(context.Background(), domain.Withdrawal, "NGN", "JPY")
	suite.False(fee.IsFree)
	suite.Equal("JPY", fee.CurrencyCode)
	suite.True(fee.Amount.Equal(decimal.NewFromFloat(0.50)))
	suite.True(fee.Degraded)
}

func (suite *FeePolicyTestSuite) TestEvaluationIsRepeatable() {
	first := suite.policy.CalculateFee(context.Background(), domain.Deposit, "GBP", "USD")
	second := suite.policy.CalculateFee(context.Background(), domain.Deposit, "GBP", "USD")
	suite.True(first.Amount.Equal(second.Amount))
	suite.Equal(first.CurrencyCode, second.CurrencyCode)
	suite.Equal(first.IsFree, second.IsFree)
}

func TestFeePolicyTestSuite(t *testing.T) {
	suite.Run(t, new(FeePolicyTestSuite))
}
