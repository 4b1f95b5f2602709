package cmd

import (
	"errors"
	"net/http"

	"github.com/pandalog/pandalog/internal/api"
	"github.com/pandalog/pandalog/internal/cmdutil"
	"github.com/pandalog/pandalog/internal/ui"
)

// ExitCode はエラーの終了コード
type ExitCode int

const (
	ExitOK       ExitCode = 0
	ExitError    ExitCode = 1
	ExitAuth     ExitCode = 2
	ExitNotFound ExitCode = 3
	ExitConfig   ExitCode = 4
	ExitUsage    ExitCode = 5
)

// HandleError はエラーを処理して適切なメッセージを表示する
func HandleError(err error) ExitCode {
	code := ExitCodeOf(err)
	if code == ExitOK {
		return code
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		printAPIError(apiErr)
		return code
	}

	ui.Error("%v", err)
	return code
}

// ExitCodeOf はエラーに対応する終了コードを返す（表示はしない）
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return ExitOK
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsAuthError():
			return ExitAuth
		case apiErr.StatusCode == http.StatusNotFound:
			return ExitNotFound
		default:
			return ExitError
		}
	}

	var configErr *cmdutil.ConfigError
	var usageErr *cmdutil.UsageError
	switch {
	case errors.Is(err, api.ErrNotFound):
		return ExitNotFound
	case errors.As(err, &configErr):
		return ExitConfig
	case errors.As(err, &usageErr), errors.Is(err, ui.ErrNotInteractive):
		return ExitUsage
	default:
		return ExitError
	}
}

func printAPIError(err *api.APIError) {
	switch err.StatusCode {
	case http.StatusUnauthorized:
		ui.Error("Authentication failed. Issue a new session token with 'pandalog-auth get-sts-token'.")
	case http.StatusForbidden:
		ui.Error("Permission denied: %s", getErrorMessage(err))
	case http.StatusNotFound:
		ui.Error("Not found: %s", getErrorMessage(err))
	default:
		ui.Error("API error (%d): %s", err.StatusCode, getErrorMessage(err))
	}
}

func getErrorMessage(err *api.APIError) string {
	if err.Message != "" {
		return err.Message
	}
	return http.StatusText(err.StatusCode)
}
