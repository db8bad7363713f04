// Package tginit проверяет подпись telegram WebApp initData.
// Алгоритм описан в https://core.telegram.org/bots/webapps#validating-data-received-via-the-mini-app
package tginit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// secretKeyDomain фиксированная строка из спецификации telegram для выведения ключа подписи.
const secretKeyDomain = "WebAppData"

var ErrInvalidInitData = errors.New("invalid telegram init data")

// TelegramUser данные юзера из поля user в initData.
type TelegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
}

// Validate проверяет подпись initData и возвращает данные юзера.
// Любой некорректный вход возвращает ErrInvalidInitData, паник и частичных результатов нет.
func Validate(initData string, botToken string) (*TelegramUser, error) {
	parsed, parseErr := url.ParseQuery(initData)
	if parseErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInitData, parseErr.Error())
	}

	receivedHash := parsed.Get("hash")
	if receivedHash == "" {
		return nil, fmt.Errorf("%w: missing hash", ErrInvalidInitData)
	}

	// data_check_string: все пары кроме hash, отсортированные по ключу.
	keys := make([]string, 0, len(parsed))
	for key := range parsed {
		if key != "hash" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+parsed.Get(key))
	}
	dataCheckString := strings.Join(pairs, "\n")

	// Ключ подписи выводится через HMAC от токена бота с фиксированной доменной строкой.
	keyMAC := hmac.New(sha256.New, []byte(secretKeyDomain))
	keyMAC.Write([]byte(botToken))
	secretKey := keyMAC.Sum(nil)

	mac := hmac.New(sha256.New, secretKey)
	mac.Write([]byte(dataCheckString))
	calculatedHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(calculatedHash), []byte(receivedHash)) {
		return nil, fmt.Errorf("%w: hash mismatch", ErrInvalidInitData)
	}

	var user TelegramUser
	if jsonErr := json.Unmarshal([]byte(parsed.Get("user")), &user); jsonErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInitData, jsonErr.Error())
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInitData)
	}

	return &user, nil
}
