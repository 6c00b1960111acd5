package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/funds_flow_app/internal/apperrors"
	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	portssvc "github.com/SscSPs/funds_flow_app/internal/core/ports/services"
	"github.com/SscSPs/funds_flow_app/internal/core/services"
	"github.com/SscSPs/funds_flow_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockLedgerRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccountStartsAtZero() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Pounds", CurrencyCode: "GBP"}

	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.CurrencyCode == "GBP" && a.Balance.IsZero() && a.IsActive && a.AccountID != ""
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("Pounds", account.Name)
	suite.True(account.Balance.IsZero())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccountRejectsUnknownCurrency() {
	_, err := suite.service.CreateAccount(context.Background(), dto.CreateAccountRequest{Name: "X", CurrencyCode: "XYZ"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListActivityChecksAccountExists() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListActivity(ctx, accountID, 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListActivityByAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListActivityClampsLimit() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), CurrencyCode: "USD", IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("ListActivityByAccount", mock.Anything, account.AccountID, 50).
		Return([]domain.ActivityRecord{}, nil).Once()

	_, err := suite.service.ListActivity(ctx, account.AccountID, -3)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
