package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fridge-chef/internal/app"
	"fridge-chef/internal/core/pantry"
	"fridge-chef/internal/core/recommend"
	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sharedLoader 每次執行返回同一個記憶體 app，模擬跨指令的持久儲存
func sharedLoader(t *testing.T) Loader {
	t.Helper()
	a, err := app.New(context.Background(), &config.Config{
		Storage: config.StorageConfig{Driver: config.BackendMemory},
		Session: config.SessionConfig{Backend: config.BackendMemory, TTL: time.Hour},
		AI:      config.AIConfig{NarrationTimeout: time.Second},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return func(context.Context) (*app.App, error) { return a, nil }
}

func run(t *testing.T, load Loader, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr, load)
	return stdout.String(), stderr.String(), code
}

func TestPantryCommands(t *testing.T) {
	load := sharedLoader(t)

	_, _, code := run(t, load, "pantry", "add", "두부", "--expiry", "2099-01-01")
	require.Equal(t, ExitSuccess, code)
	_, _, code = run(t, load, "pantry", "add", "간장", "--seasoning", "--expiry", "2099-01-01")
	require.Equal(t, ExitSuccess, code)

	out, _, code := run(t, load, "pantry", "list", "--json")
	require.Equal(t, ExitSuccess, code)

	var views []pantry.View
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "두부", views[0].Name)
	assert.Equal(t, pantry.StatusFresh, views[0].Status)
	assert.Equal(t, pantry.StatusIndefinite, views[1].Status)

	out, _, code = run(t, load, "pantry", "rm", "두부", "--json=false")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "두부 삭제됨")

	_, errOut, code := run(t, load, "pantry", "rm", "두부", "--json=false")
	assert.Equal(t, ExitNoData, code)
	assert.Contains(t, errOut, "error[not_found]")
}

func TestPantryAdd_InvalidInput(t *testing.T) {
	load := sharedLoader(t)

	_, errOut, code := run(t, load, "pantry", "add", "두부", "--expiry", "next week", "--json")
	assert.Equal(t, ExitInvalidArgs, code)

	var payload jsonErrorPayload
	require.NoError(t, json.Unmarshal([]byte(errOut), &payload))
	assert.Equal(t, common.ErrCodeInvalidRequest, payload.Error.Code)

	_, _, code = run(t, load, "pantry", "add", "두부", "--storage", "pantry")
	assert.Equal(t, ExitInvalidArgs, code)

	_, _, code = run(t, load, "pantry", "add")
	assert.Equal(t, ExitInvalidArgs, code)
}

func TestRecommendAndCook(t *testing.T) {
	load := sharedLoader(t)

	for _, name := range []string{"김치", "삼겹살"} {
		_, _, code := run(t, load, "pantry", "add", name)
		require.Equal(t, ExitSuccess, code)
	}
	_, _, code := run(t, load, "recipe", "add", "김치찌개",
		"--ingredients", "김치, 두부, 돼지고기 목살 200g, 대파",
		"--link", "https://example.com/kimchi",
		"--steps", "1. 김치를 볶는다")
	require.Equal(t, ExitSuccess, code)
	_, _, code = run(t, load, "recipe", "add", "계란말이", "-i", "달걀 3개, 우유")
	require.Equal(t, ExitSuccess, code)

	out, _, code := run(t, load, "recommend", "--count", "3", "--json")
	require.Equal(t, ExitSuccess, code)

	var results []recommend.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "김치찌개", results[0].Recipe.Name)
	assert.Equal(t, "https://example.com/kimchi", results[0].Link)
	assert.Contains(t, results[0].Missing, "두부")
	assert.Equal(t, "계란말이", results[1].Recipe.Name)
	assert.Equal(t, "김치찌개", results[2].Recipe.Name)
	assert.True(t, results[2].Reset)

	out, _, code = run(t, load, "recommend", "--reset", "--narrate", "--json=false")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "김치찌개")
	assert.Contains(t, out, recommend.FallbackReason)

	out, _, code = run(t, load, "cook", "김치찌개", "--remove", "--json")
	require.Equal(t, ExitSuccess, code)

	var cooked struct {
		Cook    recommend.CookResult `json:"cook"`
		Removed bool                 `json:"removed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &cooked))
	assert.True(t, cooked.Removed)
	assert.Contains(t, cooked.Cook.Used, "김치")
	assert.Equal(t, "1. 김치를 볶는다", cooked.Cook.Recipe.Steps)

	out, _, code = run(t, load, "pantry", "list", "--json")
	require.Equal(t, ExitSuccess, code)
	assert.NotContains(t, out, `"김치"`)
}

func TestRecommend_NoData(t *testing.T) {
	load := sharedLoader(t)

	_, errOut, code := run(t, load, "recommend", "--json")
	assert.Equal(t, ExitNoData, code)

	var payload jsonErrorPayload
	require.NoError(t, json.Unmarshal([]byte(errOut), &payload))
	assert.Equal(t, common.ErrCodeDataUnavailable, payload.Error.Code)
	assert.Equal(t, common.ErrEmptyRecipeBook.Message, payload.Error.Message)
	assert.NotEmpty(t, payload.Error.Suggestions)

	_, _, code = run(t, load, "recipe", "add", "콩나물국", "-i", "콩나물, 소금, 물")
	require.Equal(t, ExitSuccess, code)

	_, errOut, code = run(t, load, "recommend", "--json=false")
	assert.Equal(t, ExitNoData, code)
	assert.Contains(t, errOut, "pantry add")

	_, _, code = run(t, load, "recommend", "--count", "0")
	assert.Equal(t, ExitInvalidArgs, code)
}

func TestRecipeCommands(t *testing.T) {
	load := sharedLoader(t)

	_, _, code := run(t, load, "recipe", "add", "콩나물국", "-i", "콩나물, 소금, 물", "--link", "not-a-link")
	require.Equal(t, ExitSuccess, code)

	out, _, code := run(t, load, "recipe", "list", "--json=false")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "콩나물국")
	assert.NotContains(t, out, "not-a-link")

	_, _, code = run(t, load, "recipe", "rm", "콩나물국")
	require.Equal(t, ExitSuccess, code)
	_, _, code = run(t, load, "cook", "콩나물국")
	assert.Equal(t, ExitNoData, code)
}

func TestRecipeExtract_AIDisabled(t *testing.T) {
	load := sharedLoader(t)

	_, errOut, code := run(t, load, "recipe", "extract", "https://example.com/page1.jpg", "--json")
	assert.Equal(t, ExitUpstream, code)
	assert.Contains(t, errOut, common.ErrCodeAIDisabled)

	_, _, code = run(t, load, "recipe", "extract", filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Equal(t, ExitInvalidArgs, code)
}

func TestLoadImage(t *testing.T) {
	url, err := loadImage("https://example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", url)

	path := filepath.Join(t.TempDir(), "page.png")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR")
	require.NoError(t, os.WriteFile(path, png, 0o600))

	uri, err := loadImage(path)
	require.NoError(t, err)
	assert.Regexp(t, `^data:image/png;base64,`, uri)
}

func TestRun_LoaderFailure(t *testing.T) {
	failing := func(context.Context) (*app.App, error) { return nil, errors.New("no database") }

	_, errOut, code := run(t, failing, "pantry", "list", "--json=false")
	assert.Equal(t, ExitUpstream, code)
	assert.Contains(t, errOut, "error[setup_error]")
	assert.Contains(t, errOut, "no database")
}

func TestRun_UnknownCommand(t *testing.T) {
	_, errOut, code := run(t, sharedLoader(t), "bake")
	assert.Equal(t, ExitInvalidArgs, code)
	assert.Contains(t, errOut, "INVALID_ARGS")
}

func TestShouldAutoJSON(t *testing.T) {
	assert.False(t, shouldAutoJSON([]string{"pantry", "list"}, true))
	assert.True(t, shouldAutoJSON([]string{"pantry", "list"}, false))
	assert.False(t, shouldAutoJSON([]string{"pantry", "list", "--json=false"}, false))
	assert.False(t, shouldAutoJSON([]string{"--help"}, false))
	assert.False(t, shouldAutoJSON([]string{"completion", "bash"}, false))
	assert.False(t, shouldAutoJSON(nil, false))
}

func TestJSONRequested(t *testing.T) {
	assert.True(t, jsonRequested([]string{"pantry", "list", "--json"}))
	assert.True(t, jsonRequested([]string{"--json=true", "recommend"}))
	assert.False(t, jsonRequested([]string{"pantry", "rm", "두부", "--json=false"}))
	assert.False(t, jsonRequested([]string{"--json", "--json=false"}))
	assert.False(t, jsonRequested([]string{"--json=maybe"}))
	assert.False(t, jsonRequested(nil))
}

func TestRun_ErrorFormatFollowsJSONFlag(t *testing.T) {
	load := sharedLoader(t)

	_, errOut, code := run(t, load, "pantry", "rm", "없는재료", "--json=false")
	assert.Equal(t, ExitNoData, code)
	assert.True(t, strings.HasPrefix(errOut, "error[not_found]"), errOut)

	_, errOut, code = run(t, load, "pantry", "rm", "없는재료", "--json")
	assert.Equal(t, ExitNoData, code)
	var payload jsonErrorPayload
	require.NoError(t, json.Unmarshal([]byte(errOut), &payload))
	assert.Equal(t, common.ErrCodeNotFound, payload.Error.Code)
}

func TestClassifyCLIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		exit int
	}{
		{"empty pantry", common.ErrEmptyPantry, common.ErrCodeDataUnavailable, ExitNoData},
		{"no candidate", common.ErrNoCandidate, common.ErrCodeNoCandidate, ExitNoData},
		{"validation", common.NewValidationError("bad"), common.ErrCodeInvalidRequest, ExitInvalidArgs},
		{"ai error", common.ErrAIServiceError.WithErr(errors.New("boom")), common.ErrCodeAIServiceError, ExitUpstream},
		{"store write", common.ErrStoreWrite, common.ErrCodeStoreWrite, ExitUpstream},
		{"unknown flag", errors.New("unknown flag: --nope"), "INVALID_ARGS", ExitInvalidArgs},
		{"other", errors.New("disk on fire"), common.ErrCodeInternalError, ExitInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyCLIError(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.exit, got.ExitCode)
		})
	}
	assert.Nil(t, classifyCLIError(nil))
}

func TestFormatCLIErrorText(t *testing.T) {
	text := formatCLIErrorText(&cliError{Code: "NOT_FOUND", Message: "gone", Suggestions: []string{"try again"}})
	assert.Equal(t, "error[not_found]: gone\nsuggestions:\n  try again", text)
}
