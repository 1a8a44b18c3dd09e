// Package cli 實作 fridgectl 指令：管理冰箱與食譜本、推薦料理
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"fridge-chef/internal/app"
	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"github.com/spf13/cobra"
)

// Loader 建立 CLI 使用的服務
type Loader func(ctx context.Context) (*app.App, error)

// DefaultLoader 讀取設定（含 .env）並組裝服務
func DefaultLoader(verbose bool) Loader {
	return func(ctx context.Context) (*app.App, error) {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, err
		}
		if verbose {
			if err := common.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
				return nil, err
			}
		}
		return app.New(ctx, cfg)
	}
}

// runner 一次執行的旗標與服務來源
type runner struct {
	load    Loader
	jsonOut bool
	session string
	verbose bool
}

func newRootCommand(r *runner) *cobra.Command {
	root := &cobra.Command{
		Use:   "fridgectl",
		Short: "Track your fridge and get dish recommendations",
		Long: "Keep a list of what is in the fridge, a small recipe book, and ask for the\n" +
			"next dish that fits what you have. Recommendations never repeat within a\n" +
			"session until every recipe has been shown once.",
		Example: `  fridgectl pantry add 삼겹살 --expiry 2026-11-01 --storage freezer
  fridgectl pantry add 간장 --seasoning
  fridgectl recipe add 김치찌개 --ingredients "김치, 두부, 돼지고기 목살 200g, 대파"
  fridgectl recommend --count 3 --narrate
  fridgectl cook 김치찌개`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&r.jsonOut, "json", false, "Output as JSON")
	pf.StringVar(&r.session, "session", "cli", "Recommendation session ID")
	pf.BoolVarP(&r.verbose, "verbose", "v", false, "Write service logs to stderr")

	root.AddCommand(
		r.pantryCommand(),
		r.recipeCommand(),
		r.recommendCommand(),
		r.cookCommand(),
	)
	return root
}

// withApp 建立服務、執行 fn 後關閉
func (r *runner) withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	load := r.load
	if load == nil {
		load = DefaultLoader(r.verbose)
	}
	a, err := load(cmd.Context())
	if err != nil {
		return setupError(err)
	}
	defer a.Close()
	return fn(a)
}

// Execute runs fridgectl with the process arguments.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr, nil))
}

// Run 執行指令並返回結束碼；load 為 nil 時使用 DefaultLoader
func Run(args []string, stdout, stderr io.Writer, load Loader) int {
	r := &runner{load: load}
	root := newRootCommand(r)

	if shouldAutoJSON(args, isTTY(stdout)) {
		args = append(args, "--json")
	}

	setCommandIO(root, stdout, stderr)
	root.SetArgs(args)

	if err := root.ExecuteContext(context.Background()); err != nil {
		cliErr := classifyCLIError(err)
		if r.jsonOut || jsonRequested(args) {
			if jerr := printCLIErrorJSON(stderr, cliErr); jerr != nil {
				fmt.Fprintln(stderr, formatCLIErrorText(classifyCLIError(jerr)))
				return ExitInternal
			}
		} else {
			fmt.Fprintln(stderr, formatCLIErrorText(cliErr))
		}
		return cliErr.ExitCode
	}
	return ExitSuccess
}

func setCommandIO(cmd *cobra.Command, stdout, stderr io.Writer) {
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	for _, child := range cmd.Commands() {
		setCommandIO(child, stdout, stderr)
	}
}
