package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/funds_flow_app/internal/apperrors"
	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	"github.com/SscSPs/funds_flow_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchRate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	args := m.Called(ctx, base, quote)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type RateCacheTestSuite struct {
	suite.Suite
	mockSource *MockRateSource
	cache      *services.RateCache
}

func (suite *RateCacheTestSuite) SetupTest() {
	suite.mockSource = new(MockRateSource)
	suite.cache = services.NewRateCache(suite.mockSource, 5*time.Minute)
}

func (suite *RateCacheTestSuite) TestSameCurrencyIsUnity() {
	quote, ok := suite.cache.GetCachedRate("USD", "USD")
	suite.Require().True(ok)
	suite.True(quote.Rate.Equal(decimal.NewFromInt(1)))
	suite.False(quote.Degraded)
}

func (suite *RateCacheTestSuite) TestFetchStoresAndServesCached() {
	ctx := context.Background()
	rate := decimal.NewFromFloat(1.25)
	suite.mockSource.On("FetchRate", mock.Anything, "GBP", "USD").Return(rate, nil).Once()

	fetched, err := suite.cache.FetchRate(ctx, "GBP", "USD")
	suite.Require().NoError(err)
	suite.True(fetched.Rate.Equal(rate))

	cached, ok := suite.cache.GetCachedRate("GBP", "USD")
	suite.Require().True(ok)
	suite.True(cached.Rate.Equal(rate))
	suite.False(cached.Degraded)
	suite.False(cached.Stale)

	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *RateCacheTestSuite) TestReciprocalIsDerivedNotCached() {
	ctx := context.Background()
	rate := decimal.NewFromFloat(1.25)
	suite.mockSource.On("FetchRate", mock.Anything, "GBP", "USD").Return(rate, nil).Once()

	_, err := suite.cache.FetchRate(ctx, "GBP", "USD")
	suite.Require().NoError(err)

	// Reverse direction is served from the same entry, no second fetch.
	reverse, ok := suite.cache.GetCachedRate("USD", "GBP")
	suite.Require().True(ok)
	suite.True(reverse.Rate.Equal(decimal.NewFromFloat(0.8)))

	forward, _ := suite.cache.GetCachedRate("GBP", "USD")
	product := forward.Rate.Mul(reverse.Rate)
	suite.True(product.Sub(decimal.NewFromInt(1)).Abs().LessThan(decimal.NewFromFloat(0.000001)),
		"round-trip product was %s", product.String())

	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *RateCacheTestSuite) TestRoundTripConversionWithinOneMinorUnit() {
	ctx := context.Background()
	rate := decimal.NewFromFloat(1.2653)
	suite.mockSource.On("FetchRate", mock.Anything, "GBP", "USD").Return(rate, nil).Once()

	start := domain.NewMoney(decimal.NewFromInt(100), "GBP")
	inUSD, _, err := suite.cache.Convert(ctx, start, "USD")
	suite.Require().NoError(err)
	backInGBP, _, err := suite.cache.Convert(ctx, inUSD, "GBP")
	suite.Require().NoError(err)

	drift := backInGBP.Amount.Sub(start.Amount).Abs()
	suite.True(drift.LessThanOrEqual(decimal.NewFromFloat(0.01)), "drift was %s", drift.String())
}

func (suite *RateCacheTestSuite) TestFetchFailureServesBootstrapDegraded() {
	ctx := context.Background()
	suite.mockSource.On("FetchRate", mock.Anything, "GBP", "USD").
		Return(decimal.Zero, fmt.Errorf("provider down")).Once()

	_, err := suite.cache.FetchRate(ctx, "GBP", "USD")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)

	// The bootstrap table still answers, visibly flagged.
	quote, ok := suite.cache.GetCachedRate("GBP", "USD")
	suite.Require().True(ok)
	suite.True(quote.Degraded)
	suite.True(quote.Rate.IsPositive())
}

func (suite *RateCacheTestSuite) TestFetchFailureKeepsExistingEntry() {
	ctx := context.Background()
	rate := decimal.NewFromFloat(1.25)
	suite.mockSource.On("FetchRate", mock.Anything, "GBP", "USD").Return(rate, nil).Once()
	suite.mockSource.On("FetchRate", mock.Anything, "GBP", "USD").
		Return(decimal.Zero, fmt.Errorf("provider down")).Once()

	_, err := suite.cache.FetchRate(ctx, "GBP", "USD")
	suite.Require().NoError(err)
	_, err = suite.cache.FetchRate(ctx, "GBP", "USD")
	suite.Require().Error(err)

	cached, ok := suite.cache.GetCachedRate("GBP", "USD")
	suite.Require().True(ok)
	suite.True(cached.Rate.Equal(rate))
	suite.False(cached.Degraded)
}

func (suite *RateCacheTestSuite) TestUnknownPairIsAbsent() {
	_, ok := suite.cache.GetCachedRate("NGN", "JPY")
	suite.False(ok)
}

func (suite *RateCacheTestSuite) TestNonPositiveRateRejected() {
	ctx := context.Background()
	suite.mockSource.On("FetchRate", mock.Anything, "GBP", "USD").Return(decimal.Zero, nil).Once()

	_, err := suite.cache.FetchRate(ctx, "GBP", "USD")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *RateCacheTestSuite) TestStalenessFlag() {
	ctx := context.Background()
	shortLived := services.NewRateCache(suite.mockSource, time.Nanosecond)
	suite.mockSource.On("FetchRate", mock.Anything, "GBP", "USD").Return(decimal.NewFromFloat(1.25), nil).Once()

	_, err := shortLived.FetchRate(ctx, "GBP", "USD")
	suite.Require().NoError(err)

	time.Sleep(time.Millisecond)
	quote, ok := shortLived.GetCachedRate("GBP", "USD")
	suite.Require().True(ok)
	suite.True(quote.Stale)
	suite.False(quote.Degraded)
}

func (suite *RateCacheTestSuite) TestConcurrentFetchesCoalesce() {
	ctx := context.Background()
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	source := &gatedSource{
		release: release,
		fetch: func() (decimal.Decimal, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			return decimal.NewFromFloat(1.25), nil
		},
	}
	cache := services.NewRateCache(source, 5*time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.FetchRate(ctx, "GBP", "USD")
			suite.NoError(err)
		}()
	}

	// Let the goroutines pile up behind the single in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	suite.LessOrEqual(calls, 2, "expected coalesced fetches, got %d calls", calls)
}

// gatedSource blocks every fetch until release is closed.
type gatedSource struct {
	release chan struct{}
	fetch   func() (decimal.Decimal, error)
}

func (s *gatedSource) FetchRate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	select {
	case <-s.release:
	case <-ctx.Done():
		return decimal.Zero, ctx.Err()
	}
	return s.fetch()
}

func TestRateCacheTestSuite(t *testing.T) {
	suite.Run(t, new(RateCacheTestSuite))
}
