package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"kamalx/internal/app"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	rootConfigPath string
	rootNoTUI      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kamalx [kamal args...]",
	Short: "Run kamal under a live deployment dashboard",
	Long: `kamalx runs kamal with the given arguments and follows its output in a
terminal dashboard: a progress bar over the deploy stages, the history of
stages reached so far and the commands kamal runs on each host with their
exit status.

Flags for kamalx go before the kamal arguments. Everything from the first
argument on is passed to kamal unchanged:

  kamalx deploy -d staging
  kamalx --no-tui --pty app boot

Press ctrl+c once to stop kamal gracefully and again to leave the
dashboard. Use --no-tui to print the same information as plain lines.`,
	Args: cobra.ArbitraryArgs,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. a failing kamal run)
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// kamalx exits with the status of the wrapped command.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "kamalx version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err == nil {
		return
	}
	var exitErr *app.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(args, rootNoTUI, rootConfigPath)
	cfg.Overrides = overridesFromFlags(cmd.Flags())

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

// overridesFromFlags collects the flags given on the command line. Flags
// left at their defaults do not override configuration files.
func overridesFromFlags(flags *pflag.FlagSet) app.Overrides {
	var o app.Overrides
	if flags.Changed("command") {
		v, _ := flags.GetString("command")
		o.Command = &v
	}
	if flags.Changed("pty") {
		v, _ := flags.GetBool("pty")
		o.UsePTY = &v
	}
	if flags.Changed("tick") {
		v, _ := flags.GetDuration("tick")
		o.TickInterval = &v
	}
	if flags.Changed("log-file") {
		v, _ := flags.GetString("log-file")
		o.LogFile = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		o.LogLevel = &v
	}
	return o
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	flags := rootCmd.Flags()
	// Stop at the first kamal argument so its flags pass through.
	flags.SetInterspersed(false)

	flags.StringVar(&rootConfigPath, "config", "", "Additional config file layered over ~/.config/kamalx and ./.kamalx")
	flags.BoolVar(&rootNoTUI, "no-tui", false, "Print plain lines instead of the dashboard")
	flags.Bool("pty", false, "Run kamal on a pseudo-terminal")
	flags.String("command", "kamal", "Command to run instead of kamal")
	flags.Duration("tick", 0, "Progress animation interval (default 500ms)")
	flags.String("log-file", "", "Write debug logs to this file while the dashboard runs")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
}
