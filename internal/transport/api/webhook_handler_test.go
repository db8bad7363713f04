package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/srochno-market/internal/logger"
	"github.com/fsdevblog/srochno-market/internal/transport/api/mocks"
	"github.com/fsdevblog/srochno-market/internal/transport/api/testutils"
)

type WebhookHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPaymentService *mocks.MockPaymentServicer
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockPaymentService = mocks.NewMockPaymentServicer(mockCtrl)

	s.router = New(RouterArgs{
		Logger:         logger.New(os.Stdout),
		PaymentService: s.mockPaymentService,
		JWTSecretKey:   []byte("super secret key"),
	})
}

func (s *WebhookHandlerTestSuite) postWebhook(body []byte, signature string) *http.Response {
	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    RouteGroup + WebhookCryptoPayRoute,
		Body:   bytes.NewReader(body),
	}, testutils.WithHeader(SignatureHeader, signature))
	s.Require().NoError(err)
	return res
}

func (s *WebhookHandlerTestSuite) decodeOK(res *http.Response) bool {
	var body struct {
		OK bool `json:"ok"`
	}
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
	return body.OK
}

func (s *WebhookHandlerTestSuite) TestInvoicePaid() {
	payload := []byte(`{"update_type":"invoice_paid","payload":{"invoice_id":777}}`)

	s.mockPaymentService.EXPECT().VerifySignature(payload, "valid-signature").Return(true)
	s.mockPaymentService.EXPECT().ProcessPaidInvoice(gomock.Any(), int64(777)).Return(nil)

	res := s.postWebhook(payload, "valid-signature")
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusOK, res.StatusCode)
	s.True(s.decodeOK(res))
}

func (s *WebhookHandlerTestSuite) TestInvalidSignature() {
	payload := []byte(`{"update_type":"invoice_paid","payload":{"invoice_id":777}}`)

	s.mockPaymentService.EXPECT().VerifySignature(payload, "bad-signature").Return(false)

	// Невалидная подпись не провоцирует ретраи провайдера: статус успешный,
	// зачисления нет.
	res := s.postWebhook(payload, "bad-signature")
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusOK, res.StatusCode)
	s.False(s.decodeOK(res))
}

func (s *WebhookHandlerTestSuite) TestMalformedBody() {
	payload := []byte(`{"update_type":`)

	s.mockPaymentService.EXPECT().VerifySignature(payload, "valid-signature").Return(true)

	res := s.postWebhook(payload, "valid-signature")
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusOK, res.StatusCode)
	s.False(s.decodeOK(res))
}

func (s *WebhookHandlerTestSuite) TestUnknownUpdateType() {
	payload := []byte(`{"update_type":"invoice_expired","payload":{"invoice_id":777}}`)

	s.mockPaymentService.EXPECT().VerifySignature(payload, "valid-signature").Return(true)

	// Незнакомый тип апдейта подтверждаем, не обрабатывая.
	res := s.postWebhook(payload, "valid-signature")
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusOK, res.StatusCode)
	s.True(s.decodeOK(res))
}

func (s *WebhookHandlerTestSuite) TestProcessingError() {
	payload := []byte(`{"update_type":"invoice_paid","payload":{"invoice_id":777}}`)

	s.mockPaymentService.EXPECT().VerifySignature(payload, "valid-signature").Return(true)
	s.mockPaymentService.EXPECT().
		ProcessPaidInvoice(gomock.Any(), int64(777)).
		Return(errors.New("connection refused"))

	// Инфраструктурный сбой отдаем как 500: повторная доставка безопасна.
	res := s.postWebhook(payload, "valid-signature")
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusInternalServerError, res.StatusCode)
}
