package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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

func (s *ClientTestSuite) TestSendMessage() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/bottest-token/sendMessage", r.URL.Path)

		var req sendMessageRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
		s.Equal(int64(100), req.ChatID)
		s.Equal("Новый заказ: Сантехника, Москва", req.Text)

		w.Header().Set("Content-Type", "application/json")
		_, wErr := w.Write([]byte(`{"ok": true}`))
		s.NoError(wErr)
	}))

	client := NewWithBaseURL(s.server.URL, "test-token")
	err := client.SendMessage(s.T().Context(), 100, "Новый заказ: Сантехника, Москва")

	s.Require().NoError(err)
}

func (s *ClientTestSuite) TestSendMessageAPIError() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, wErr := w.Write([]byte(`{"ok": false, "description": "Forbidden: bot was blocked by the user"}`))
		s.NoError(wErr)
	}))

	client := NewWithBaseURL(s.server.URL, "test-token")
	err := client.SendMessage(s.T().Context(), 100, "текст")

	s.Require().Error(err)
	s.Contains(err.Error(), "bot was blocked")
}

func (s *ClientTestSuite) TestSendMessageNoToken() {
	client := NewWithBaseURL("https://example.com", "")
	err := client.SendMessage(s.T().Context(), 100, "текст")

	s.Require().Error(err)
}
