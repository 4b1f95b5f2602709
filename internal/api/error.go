package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
)

// ErrNotFound は検索結果が空だったことを表す
var ErrNotFound = errors.New("not found")

// APIError は Graylog API エラー（2xx 以外のレスポンス）
type APIError struct {
	StatusCode int
	Type       string `json:"type"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("Graylog API error: %s (status: %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("Graylog API error: status %d", e.StatusCode)
}

// IsAuthError は認証・認可エラーかどうかを返す
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// NotFoundError はチーム・ストリームの検索で一致がなかったことを表す
type NotFoundError struct {
	Kind string // "team" / "stream"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// Is は errors.Is(err, ErrNotFound) を成立させる
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// CheckResponse はレスポンスをチェックし、エラーがあれば返す
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}

	// Graylog のエラー形式: {"type":"ApiError","message":"..."}
	var errResp struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
		apiErr.Type = errResp.Type
		apiErr.Message = errResp.Message
	} else if text := strings.TrimSpace(string(body)); text != "" && len(text) < 512 {
		apiErr.Message = text
	}

	return apiErr
}

// DecodeResponse はレスポンスをデコードする
func DecodeResponse(resp *http.Response, v any) error {
	if err := CheckResponse(resp); err != nil {
		return err
	}

	if v == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// readResponse はステータスを確認してボディを読み切る
func readResponse(resp *http.Response) ([]byte, error) {
	if err := CheckResponse(resp); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}
	return body, nil
}
