// Package cryptopay клиент Crypto Pay API для выставления счетов на пополнение.
package cryptopay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/srochno-market/internal/service"
)

const (
	routeCreateInvoice = "/api/createInvoice"
	tokenHeader        = "Crypto-Pay-API-Token" //nolint:gosec

	fiatCurrency   = "RUB"
	requestTimeout = 10 * time.Second

	retryBaseDelay  = 500 * time.Millisecond
	retryMaxRetries = 3
)

// Client реализация service.GatewayClient поверх Crypto Pay API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (c *Client) Configured() bool {
	return c.token != ""
}

// CreateInvoice выставляет счет у провайдера. Сетевые сбои и 5xx ретраятся
// с экспоненциальной паузой, логические ошибки провайдера - нет.
func (c *Client) CreateInvoice(
	ctx context.Context,
	amount int64,
	description string,
	expiresInSeconds int,
) (*service.GatewayInvoice, error) {
	body, marshalErr := json.Marshal(createInvoiceRequest{
		CurrencyType: "fiat",
		Fiat:         fiatCurrency,
		Amount:       decimal.NewFromInt(amount).String(),
		Description:  description,
		ExpiresIn:    expiresInSeconds,
	})
	if marshalErr != nil {
		return nil, errors.Wrap(marshalErr, "marshal create invoice request")
	}

	var invoice *service.GatewayInvoice
	backoff := retry.WithMaxRetries(retryMaxRetries, retry.NewExponential(retryBaseDelay))

	retryErr := retry.Do(ctx, backoff, func(c2 context.Context) error {
		result, callErr := c.doCreateInvoice(c2, body)
		if callErr != nil {
			var statusErr *StatusCodeError
			if errors.As(callErr, &statusErr) && statusErr.Code >= http.StatusInternalServerError {
				return retry.RetryableError(callErr)
			}
			if isNetworkErr(callErr) {
				return retry.RetryableError(callErr)
			}
			return callErr
		}
		invoice = result
		return nil
	})
	if retryErr != nil {
		return nil, errors.Wrap(retryErr, "create invoice")
	}
	return invoice, nil
}

//nolint:nonamedreturns
func (c *Client) doCreateInvoice(ctx context.Context, body []byte) (invoice *service.GatewayInvoice, err error) {
	req, reqErr := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+routeCreateInvoice, bytes.NewReader(body))
	if reqErr != nil {
		return nil, errors.Wrap(reqErr, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tokenHeader, c.token)

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, &networkError{cause: doErr}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, NewStatusCodeError(resp.StatusCode)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, errors.Wrap(readErr, "read response")
	}

	var parsed apiResponse
	if jsonErr := json.Unmarshal(respBody, &parsed); jsonErr != nil {
		return nil, errors.Wrap(jsonErr, "parse response")
	}
	if !parsed.OK || parsed.Result == nil {
		if parsed.Error != nil {
			return nil, &APIError{Code: parsed.Error.Code, Name: parsed.Error.Name}
		}
		return nil, errors.New("provider returned not ok without error details")
	}

	return &service.GatewayInvoice{
		InvoiceID:         parsed.Result.InvoiceID,
		PayURL:            parsed.Result.BotInvoiceURL,
		MiniAppInvoiceURL: parsed.Result.MiniAppInvoiceURL,
	}, nil
}

type networkError struct {
	cause error
}

func (e *networkError) Error() string {
	return "network error: " + e.cause.Error()
}

func (e *networkError) Unwrap() error {
	return e.cause
}

func isNetworkErr(err error) bool {
	var netErr *networkError
	return errors.As(err, &netErr)
}
