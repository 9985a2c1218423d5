package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/transport/api/middlewares"
	"github.com/fsdevblog/groph-pay/internal/transport/api/mocks"
	"github.com/fsdevblog/groph-pay/internal/transport/api/testutils"
)

type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *mocks.MockAccountServicer
}

func TestAccountHandlerSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}

func (s *AccountHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockAccountService = mocks.NewMockAccountServicer(mockCtrl)

	l := logrus.New()
	l.SetOutput(io.Discard)

	router, routerErr := NewPaymentsRouter(PaymentsRouterArgs{
		Logger:         l,
		AccountService: s.mockAccountService,
	})
	s.Require().NoError(routerErr)
	s.router = router
}

func (s *AccountHandlerTestSuite) TestCreateAccount() {
	newUserID := gofakeit.UUID()
	existingUserID := gofakeit.UUID()

	s.mockAccountService.EXPECT().
		CreateAccount(gomock.Any(), newUserID).
		Return(&domain.Account{ID: 1, UserID: newUserID, Balance: decimal.Zero}, nil)
	// Счет уже существует.
	s.mockAccountService.EXPECT().
		CreateAccount(gomock.Any(), existingUserID).
		Return(nil, domain.ErrDuplicateKey)

	cases := []struct {
		name       string
		userID     string
		wantStatus int
	}{
		{
			name:       "all ok",
			userID:     newUserID,
			wantStatus: http.StatusOK,
		}, {
			name:       "already exists",
			userID:     existingUserID,
			wantStatus: http.StatusConflict,
		}, {
			name:       "not authorized",
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + AccountsRoute,
			}
			var reqOpts []func(*testutils.RequestOptions)
			if t.userID != "" {
				reqOpts = append(reqOpts, testutils.WithHeader(middlewares.UserIDHeader, t.userID))
			}
			res, err := testutils.MakeRequest(args, reqOpts...)

			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Require().NoError(err)
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *AccountHandlerTestSuite) TestBalance() {
	userID := gofakeit.UUID()
	noAccountUserID := gofakeit.UUID()

	s.mockAccountService.EXPECT().
		GetAccount(gomock.Any(), userID).
		Return(&domain.Account{ID: 1, UserID: userID, Balance: decimal.NewFromFloat(42.5)}, nil)
	s.mockAccountService.EXPECT().
		GetAccount(gomock.Any(), noAccountUserID).
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name        string
		userID      string
		wantStatus  int
		wantBalance float64
	}{
		{
			name:        "all ok",
			userID:      userID,
			wantStatus:  http.StatusOK,
			wantBalance: 42.5,
		}, {
			name:       "no account",
			userID:     noAccountUserID,
			wantStatus: http.StatusNotFound,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    RouteGroup + AccountBalanceRoute,
			}
			res, err := testutils.MakeRequest(args,
				testutils.WithHeader(middlewares.UserIDHeader, t.userID))

			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Require().NoError(err)
			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantStatus == http.StatusOK {
				var response AccountResponse
				s.Require().NoError(json.NewDecoder(res.Body).Decode(&response))
				s.Equal(t.userID, response.UserID)
				s.InDelta(t.wantBalance, response.Balance, 0.0001)
			}
		})
	}
}

func (s *AccountHandlerTestSuite) TestTopUp() {
	userID := gofakeit.UUID()
	noAccountUserID := gofakeit.UUID()

	s.mockAccountService.EXPECT().
		TopUp(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, amount decimal.Decimal) (*domain.Account, error) {
			s.True(amount.Equal(decimal.NewFromInt(100)))
			return &domain.Account{ID: 1, UserID: userID, Balance: decimal.NewFromInt(100)}, nil
		})
	s.mockAccountService.EXPECT().
		TopUp(gomock.Any(), noAccountUserID, gomock.Any()).
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		payload    []byte
		userID     string
		wantStatus int
	}{
		{
			name:       "all ok",
			payload:    []byte(`{"amount": 100}`),
			userID:     userID,
			wantStatus: http.StatusOK,
		}, {
			name:       "no account",
			payload:    []byte(`{"amount": 100}`),
			userID:     noAccountUserID,
			wantStatus: http.StatusNotFound,
		}, {
			name:       "negative amount",
			payload:    []byte(`{"amount": -1}`),
			userID:     userID,
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "missing amount",
			payload:    []byte(`{}`),
			userID:     userID,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + AccountTopUpRoute,
				Body:   bytes.NewReader(t.payload),
			}
			res, err := testutils.MakeRequest(args,
				testutils.WithHeader(middlewares.UserIDHeader, t.userID),
				testutils.WithHeader("Content-Type", "application/json; charset=utf-8"))

			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Require().NoError(err)
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
