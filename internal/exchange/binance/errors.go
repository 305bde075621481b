package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/betoborelli9/beto-bot/internal/api"
)

// APIError captures structured error info returned by Binance.
type APIError struct {
	StatusCode int
	Code       int    `json:"code"`
	Message    string `json:"msg"`
	Body       string
}

func (e *APIError) Error() string {
	if e.Code != 0 || e.Message != "" {
		return fmt.Sprintf("binance API error %d (code=%d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("binance API error %d: %s", e.StatusCode, e.Body)
}

// wrapAPIError upgrades a transport-level status error into an APIError
// when the response body carries a Binance error payload.
func wrapAPIError(err error, resp *api.Response) error {
	var statusErr *api.StatusError
	if !errors.As(err, &statusErr) || resp == nil {
		return err
	}
	apiErr := &APIError{StatusCode: statusErr.StatusCode, Body: string(resp.Body)}
	_ = json.Unmarshal(resp.Body, apiErr)
	return apiErr
}

// sign creates the HMAC-SHA256 request signature Binance expects.
func sign(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
