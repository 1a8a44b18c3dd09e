package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fridge-chef/internal/pkg/common"

	"golang.org/x/term"
)

const (
	// ExitSuccess is returned when the command succeeds.
	ExitSuccess = 0
	// ExitNoData is returned when the pantry or recipe book cannot produce a result.
	ExitNoData = 1
	// ExitInvalidArgs is returned when the command input is invalid.
	ExitInvalidArgs = 2
	// ExitUpstream is returned when storage or the AI service fails.
	ExitUpstream = 3
	// ExitInternal is returned for unexpected internal failures.
	ExitInternal = 4
)

type cliError struct {
	Code        string
	Message     string
	Suggestions []string
	ExitCode    int
}

func (e *cliError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func setupError(err error) error {
	return &cliError{
		Code:        "SETUP_ERROR",
		Message:     fmt.Sprintf("failed to start: %v", err),
		Suggestions: []string{"Check .env or config.yaml (APP_STORAGE_DRIVER, DB_PATH, REDIS_ADDR)."},
		ExitCode:    ExitUpstream,
	}
}

type jsonErrorPayload struct {
	Error jsonErrorBody `json:"error"`
}

type jsonErrorBody struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
	ExitCode    int      `json:"exitCode"`
}

func printCLIErrorJSON(w io.Writer, err *cliError) error {
	if err == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(jsonErrorPayload{
		Error: jsonErrorBody{
			Code:        err.Code,
			Message:     err.Message,
			Suggestions: err.Suggestions,
			ExitCode:    err.ExitCode,
		},
	})
}

func formatCLIErrorText(err *cliError) string {
	if err == nil {
		return ""
	}
	lines := []string{fmt.Sprintf("error[%s]: %s", strings.ToLower(err.Code), err.Message)}
	if len(err.Suggestions) > 0 {
		lines = append(lines, "suggestions:")
		for _, suggestion := range err.Suggestions {
			lines = append(lines, "  "+suggestion)
		}
	}
	return strings.Join(lines, "\n")
}

// classifyCLIError 將服務錯誤對應到結束碼與建議
func classifyCLIError(err error) *cliError {
	if err == nil {
		return nil
	}

	var typed *cliError
	if errors.As(err, &typed) {
		return typed
	}

	if common.IsValidationError(err) {
		return &cliError{Code: common.ErrCodeInvalidRequest, Message: err.Error(), ExitCode: ExitInvalidArgs}
	}

	if ce, ok := common.AsCustomError(err); ok {
		out := &cliError{Code: ce.Code, Message: ce.Message, ExitCode: ExitInternal}
		switch ce.Code {
		case common.ErrCodeDataUnavailable:
			out.ExitCode = ExitNoData
			if ce.Message == common.ErrEmptyPantry.Message {
				out.Suggestions = []string{"fridgectl pantry add 삼겹살 --expiry 2026-12-31"}
			} else {
				out.Suggestions = []string{`fridgectl recipe add 김치찌개 --ingredients "김치, 돼지고기, 두부"`}
			}
		case common.ErrCodeNoCandidate:
			out.ExitCode = ExitNoData
		case common.ErrCodeNotFound:
			out.ExitCode = ExitNoData
			out.Message = err.Error()
		case common.ErrCodeInvalidRequest:
			out.ExitCode = ExitInvalidArgs
			out.Message = err.Error()
		case common.ErrCodeAIDisabled:
			out.ExitCode = ExitUpstream
			out.Suggestions = []string{"Set OPENROUTER_API_KEY in .env to enable photo intake."}
		case common.ErrCodeAIServiceError, common.ErrCodeStoreWrite, common.ErrCodeNoRecipeInImage:
			out.ExitCode = ExitUpstream
			out.Message = err.Error()
		}
		return out
	}

	msg := strings.TrimSpace(err.Error())
	switch {
	case strings.Contains(msg, "unknown command"),
		strings.Contains(msg, "unknown flag"),
		strings.Contains(msg, "unknown shorthand flag"),
		strings.Contains(msg, "flag needs an argument"),
		strings.Contains(msg, "invalid argument"),
		strings.Contains(msg, "accepts"),
		strings.Contains(msg, "requires at least"):
		return &cliError{
			Code:        "INVALID_ARGS",
			Message:     msg,
			Suggestions: []string{"Run `fridgectl --help` for usage details."},
			ExitCode:    ExitInvalidArgs,
		}
	default:
		return &cliError{
			Code:        common.ErrCodeInternalError,
			Message:     msg,
			Suggestions: []string{"Run with --verbose for service logs."},
			ExitCode:    ExitInternal,
		}
	}
}

func isTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func hasJSONPreference(args []string) bool {
	for _, arg := range args {
		if arg == "--json" || strings.HasPrefix(arg, "--json=") {
			return true
		}
	}
	return false
}

// jsonRequested 依最後一個 --json 旗標的值判斷；參數解析失敗時也能決定錯誤格式
func jsonRequested(args []string) bool {
	want := false
	for _, arg := range args {
		switch {
		case arg == "--json":
			want = true
		case strings.HasPrefix(arg, "--json="):
			v, err := strconv.ParseBool(strings.TrimPrefix(arg, "--json="))
			want = err == nil && v
		}
	}
	return want
}

func hasHelpRequest(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" || arg == "help" {
			return true
		}
	}
	return false
}

// shouldAutoJSON 輸出被導向時預設使用 JSON，明確指定 --json 或查看說明時除外
func shouldAutoJSON(args []string, stdoutIsTTY bool) bool {
	if stdoutIsTTY || len(args) == 0 {
		return false
	}
	if hasJSONPreference(args) || hasHelpRequest(args) {
		return false
	}
	return args[0] != "completion"
}
