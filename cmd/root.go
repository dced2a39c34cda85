package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"wp-starter/internal/archive"
	"wp-starter/internal/config"
	"wp-starter/internal/database"
	"wp-starter/internal/generator"
	"wp-starter/internal/logger"
	"wp-starter/internal/pipeline"
	"wp-starter/internal/prompt"
	"wp-starter/internal/shell"
	"wp-starter/internal/versions"
)

var (
	// debug enables [DEBUG] output; toggled with --debug.
	debug bool
	// noColor disables ANSI colors; also implied when stdout is not a terminal.
	noColor bool
	// dir is the project directory the generator writes into.
	dir string
	// settingsPath points at an optional YAML settings file.
	settingsPath string
)

// rootCmd scaffolds a new WordPress project in --dir.
var rootCmd = &cobra.Command{
	Use:   "wp-starter",
	Short: "Scaffold a WordPress project with a starter theme, Bootstrap and Font Awesome",
	Long: `wp-starter asks a few questions, downloads WordPress, a starter theme and the
front-end libraries, arranges them into app/ and src/, renders the project files and
runs the build tools.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,

	// PersistentPreRun runs before every subcommand and configures the logger.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug, noColor || !isatty.IsTerminal(os.Stdout.Fd()))
	},
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}

	log := logger.Std()
	gen := &generator.Generator{
		Settings:  settings,
		Store:     config.NewStore(""),
		Versions:  versions.New(settings.GitHub.APIURL, versions.WithStrategy(settings.Versions.Strategy)),
		Prompter:  prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()),
		Fetcher:   archive.NewFetcher(),
		DB:        database.NewMySQL(),
		Shell:     shell.NewRunner(),
		Log:       log,
		Observers: []pipeline.Observer{pipeline.LogObserver{Log: log}},
	}

	report, err := gen.Run(cmd.Context(), dir)
	if err != nil {
		return err
	}

	log.Writeln("")
	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(report))
	log.OK("... and we're done!")
	return nil
}

// Execute registers flags and subcommands and runs the CLI. SIGINT and SIGTERM cancel
// the run in progress. The returned error has already been printed.
func Execute() error {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVarP(&dir, "dir", "d", ".", "Project directory")
	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", "", "Path to a settings YAML file")

	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// After the first signal, a second one gets the default behavior and kills the process.
	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Std().Error("%v", err)
		return err
	}
	return nil
}
