// Package telegram клиент Bot API для отправки уведомлений юзерам.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const (
	defaultBaseURL = "https://api.telegram.org"

	requestTimeout = 10 * time.Second
	retryMax       = 2
)

// Client реализация service.MessageSender поверх telegram Bot API.
type Client struct {
	baseURL    string
	token      string
	httpClient *retryablehttp.Client
}

func New(token string) *Client {
	return NewWithBaseURL(defaultBaseURL, token)
}

func NewWithBaseURL(baseURL, token string) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = retryMax
	httpClient.HTTPClient.Timeout = requestTimeout
	httpClient.Logger = nil

	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
	}
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage отправляет текстовое сообщение юзеру. Транзиентные сбои
// ретраятся внутри httpClient, итоговая ошибка отдается вызывающему.
//
//nolint:nonamedreturns
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) (err error) {
	if c.token == "" {
		return errors.New("telegram bot token is not set")
	}

	body, marshalErr := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if marshalErr != nil {
		return errors.Wrap(marshalErr, "marshal send message request")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, reqErr := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if reqErr != nil {
		return errors.Wrap(reqErr, "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return errors.Wrap(doErr, "do request")
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return errors.Wrap(readErr, "read response")
	}

	var parsed sendMessageResponse
	if jsonErr := json.Unmarshal(respBody, &parsed); jsonErr != nil {
		return errors.Wrap(jsonErr, "parse response")
	}
	if !parsed.OK {
		return errors.Errorf("telegram api error: %s", parsed.Description)
	}
	return nil
}
