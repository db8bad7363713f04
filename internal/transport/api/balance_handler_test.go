package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/logger"
	"github.com/fsdevblog/srochno-market/internal/service/tokens"
	"github.com/fsdevblog/srochno-market/internal/transport/api/mocks"
	"github.com/fsdevblog/srochno-market/internal/transport/api/testutils"
)

type BalanceHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockBalanceService *mocks.MockBalanceServicer
	mockPaymentService *mocks.MockPaymentServicer
	jwtSecret          []byte
}

func TestBalanceHandlerSuite(t *testing.T) {
	suite.Run(t, new(BalanceHandlerTestSuite))
}

func (s *BalanceHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockBalanceService = mocks.NewMockBalanceServicer(mockCtrl)
	s.mockPaymentService = mocks.NewMockPaymentServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:         logger.New(os.Stdout),
		BalanceService: s.mockBalanceService,
		PaymentService: s.mockPaymentService,
		JWTSecretKey:   s.jwtSecret,
	})
}

func (s *BalanceHandlerTestSuite) userToken(userID int64) string {
	token, tokenErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)
	return token
}

func (s *BalanceHandlerTestSuite) TestIndex() {
	var userID int64 = 1
	userJWTToken := s.userToken(userID)

	s.mockBalanceService.EXPECT().GetBalance(gomock.Any(), userID).Return(int64(42), nil)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + BalanceRoute,
	}, testutils.WithHeader("Authorization", "Bearer "+userJWTToken))
	s.Require().NoError(err)
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusOK, res.StatusCode)

	var body BalanceResponse
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
	s.Equal(int64(42), body.Balance)
}

func (s *BalanceHandlerTestSuite) TestHistory() {
	var userID int64 = 1
	userJWTToken := s.userToken(userID)

	transactions := []domain.BalanceTransaction{
		{ID: 2, CreatedAt: time.Now(), Type: domain.TransactionOrderTake, Amount: -2, BalanceAfter: 48, OrderID: "a1b2c3d4e5f6"},
		{ID: 1, CreatedAt: time.Now().Add(-time.Hour), Type: domain.TransactionRecharge, Amount: 50, BalanceAfter: 50},
	}
	s.mockBalanceService.EXPECT().History(gomock.Any(), userID, defaultHistoryLimit, 0).Return(transactions, nil)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + BalanceHistoryRoute,
	}, testutils.WithHeader("Authorization", "Bearer "+userJWTToken))
	s.Require().NoError(err)
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusOK, res.StatusCode)

	var body []TransactionResponse
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
	s.Require().Len(body, 2)
	s.Equal(int64(-2), body[0].Amount)
	s.Equal(domain.TransactionRecharge, body[1].Type)
}

func (s *BalanceHandlerTestSuite) TestRecharge() {
	var userID int64 = 1
	userJWTToken := s.userToken(userID)

	s.mockBalanceService.EXPECT().
		Recharge(gomock.Any(), userID, int64(50), "manual").
		Return(&domain.BalanceTransaction{
			ID:           1,
			CreatedAt:    time.Now(),
			UserID:       userID,
			Type:         domain.TransactionRecharge,
			Amount:       50,
			BalanceAfter: 50,
		}, nil)

	cases := []struct {
		name       string
		payload    []byte
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "ok with default method",
			payload:    []byte(`{"amount": 50}`),
			jwtToken:   userJWTToken,
			wantStatus: http.StatusOK,
		}, {
			name:       "zero amount",
			payload:    []byte(`{"amount": 0}`),
			jwtToken:   userJWTToken,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "not authorized",
			payload:    []byte(`{"amount": 50}`),
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + BalanceRechargeRoute,
				Body:   bytes.NewReader(t.payload),
			}
			var reqOpts []func(*testutils.RequestOptions)
			if t.jwtToken != "" {
				reqOpts = append(reqOpts, testutils.WithHeader("Authorization", "Bearer "+t.jwtToken))
			}
			reqOpts = append(reqOpts, testutils.WithHeader("Content-Type", "application/json"))
			res, err := testutils.MakeRequest(args, reqOpts...)
			defer func() { s.Require().NoError(res.Body.Close()) }()

			s.Require().NoError(err)
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *BalanceHandlerTestSuite) TestCreateInvoice() {
	var userID int64 = 1
	userJWTToken := s.userToken(userID)

	s.mockPaymentService.EXPECT().
		CreateInvoice(gomock.Any(), userID, int64(100)).
		Return(&domain.PaymentInvoice{
			ID:     1,
			UserID: userID,
			Amount: 100,
			Status: domain.InvoiceStatusPending,
			PayURL: "https://t.me/pay/777",
		}, nil)

	s.mockPaymentService.EXPECT().
		CreateInvoice(gomock.Any(), userID, int64(200)).
		Return(nil, fmt.Errorf("payment provider is not configured: %w", domain.ErrGatewayUnavailable))

	cases := []struct {
		name       string
		payload    []byte
		wantStatus int
	}{
		{
			name:       "created",
			payload:    []byte(`{"amount": 100}`),
			wantStatus: http.StatusCreated,
		}, {
			name:       "gateway unavailable",
			payload:    []byte(`{"amount": 200}`),
			wantStatus: http.StatusServiceUnavailable,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + BalanceInvoiceRoute,
				Body:   bytes.NewReader(t.payload),
			},
				testutils.WithHeader("Authorization", "Bearer "+userJWTToken),
				testutils.WithHeader("Content-Type", "application/json"))
			defer func() { s.Require().NoError(res.Body.Close()) }()

			s.Require().NoError(err)
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *BalanceHandlerTestSuite) TestInvoiceStatus() {
	var userID int64 = 1
	userJWTToken := s.userToken(userID)
	paidAt := time.Now()

	s.mockPaymentService.EXPECT().
		InvoiceStatus(gomock.Any(), int64(1), userID).
		Return(&domain.PaymentInvoice{
			ID:     1,
			UserID: userID,
			Amount: 100,
			Status: domain.InvoiceStatusPaid,
			PaidAt: &paidAt,
		}, nil)

	s.mockPaymentService.EXPECT().
		InvoiceStatus(gomock.Any(), int64(999), userID).
		Return(nil, fmt.Errorf("invoice 999: %w", domain.ErrNotFound))

	cases := []struct {
		name       string
		invoiceID  string
		wantStatus int
	}{
		{name: "paid invoice", invoiceID: "1", wantStatus: http.StatusOK},
		{name: "foreign invoice", invoiceID: "999", wantStatus: http.StatusNotFound},
		{name: "non numeric id", invoiceID: "abc", wantStatus: http.StatusBadRequest},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    RouteGroup + BalanceInvoiceRoute + "/" + t.invoiceID,
			}, testutils.WithHeader("Authorization", "Bearer "+userJWTToken))
			defer func() { s.Require().NoError(res.Body.Close()) }()

			s.Require().NoError(err)
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
