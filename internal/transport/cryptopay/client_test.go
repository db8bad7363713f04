package cryptopay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *ClientTestSuite) TestCreateInvoice() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(routeCreateInvoice, r.URL.Path)
		s.Equal("test-token", r.Header.Get(tokenHeader))

		var req createInvoiceRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
		s.Equal("fiat", req.CurrencyType)
		s.Equal(fiatCurrency, req.Fiat)
		s.Equal("50", req.Amount)

		w.Header().Set("Content-Type", "application/json")
		_, wErr := w.Write([]byte(`{
			"ok": true,
			"result": {
				"invoice_id": 777,
				"status": "active",
				"amount": "50",
				"bot_invoice_url": "https://t.me/pay/777",
				"mini_app_invoice_url": "https://t.me/app/777"
			}
		}`))
		s.NoError(wErr)
	}))

	client := New(s.server.URL, "test-token")
	invoice, err := client.CreateInvoice(s.T().Context(), 50, "Balance recharge", 3600)

	s.Require().NoError(err)
	s.Equal(int64(777), invoice.InvoiceID)
	s.Equal("https://t.me/pay/777", invoice.PayURL)
	s.Equal("https://t.me/app/777", invoice.MiniAppInvoiceURL)
}

func (s *ClientTestSuite) TestCreateInvoiceAPIError() {
	var requests atomic.Int32
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, wErr := w.Write([]byte(`{"ok": false, "error": {"code": 400, "name": "AMOUNT_INVALID"}}`))
		s.NoError(wErr)
	}))

	client := New(s.server.URL, "test-token")
	_, err := client.CreateInvoice(s.T().Context(), 50, "Balance recharge", 3600)

	s.Require().Error(err)
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("AMOUNT_INVALID", apiErr.Name)
	// Логическая ошибка провайдера не ретраится.
	s.Equal(int32(1), requests.Load())
}

func (s *ClientTestSuite) TestCreateInvoiceRetriesServerErrors() {
	var requests atomic.Int32
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, wErr := w.Write([]byte(`{"ok": true, "result": {"invoice_id": 777, "bot_invoice_url": "https://t.me/pay/777"}}`))
		s.NoError(wErr)
	}))

	client := New(s.server.URL, "test-token")
	invoice, err := client.CreateInvoice(s.T().Context(), 50, "Balance recharge", 3600)

	s.Require().NoError(err)
	s.Equal(int64(777), invoice.InvoiceID)
	s.Equal(int32(2), requests.Load())
}

func (s *ClientTestSuite) TestCreateInvoiceClientErrorNotRetried() {
	var requests atomic.Int32
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))

	client := New(s.server.URL, "test-token")
	_, err := client.CreateInvoice(s.T().Context(), 50, "Balance recharge", 3600)

	s.Require().Error(err)
	var statusErr *StatusCodeError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(http.StatusForbidden, statusErr.Code)
	s.Equal(int32(1), requests.Load())
}

func (s *ClientTestSuite) TestConfigured() {
	s.True(New("https://example.com", "token").Configured())
	s.False(New("https://example.com", "").Configured())
}

func (s *ClientTestSuite) TestIsNetworkErr() {
	s.True(isNetworkErr(&networkError{cause: errors.New("refused")}))
	s.False(isNetworkErr(errors.New("refused")))
}
