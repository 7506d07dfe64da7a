package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestSetVersion(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()

	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Name() != "kamalx" {
		t.Errorf("Expected name to be 'kamalx', got %s", rootCmd.Name())
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}

	if rootCmd.RunE == nil {
		t.Error("Expected RunE function to be set")
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(`{{printf "kamalx version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	if err := testCmd.Execute(); err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	expected := "kamalx version 1.0.0\n"
	if buf.String() != expected {
		t.Errorf("Expected version output %q, got %q", expected, buf.String())
	}
}

func TestVersionCommand(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()
	rootCmd.Version = "2.0.0"

	versionCmd := newVersionCmd()
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.SetArgs([]string{})
	if err := versionCmd.Execute(); err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	if buf.String() != "kamalx version 2.0.0\n" {
		t.Errorf("Unexpected version output %q", buf.String())
	}
}

func TestSubcommands(t *testing.T) {
	expectedCommands := []string{"version", "self-update"}
	foundCommands := make(map[string]bool)

	for _, cmd := range rootCmd.Commands() {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		if !foundCommands[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestRootFlags(t *testing.T) {
	for _, name := range []string{"config", "no-tui", "pty", "command", "tick", "log-file", "log-level"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected flag --%s to be registered", name)
		}
	}
}

func TestRootStopsParsingAtFirstArgument(t *testing.T) {
	flags := pflag.NewFlagSet("kamalx", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	noTUI := flags.Bool("no-tui", false, "")

	if err := flags.Parse([]string{"--no-tui", "deploy", "-d", "staging", "--no-tui"}); err != nil {
		t.Fatalf("Unexpected parse error: %v", err)
	}

	if !*noTUI {
		t.Error("Expected --no-tui before the kamal arguments to be parsed")
	}
	want := []string{"deploy", "-d", "staging", "--no-tui"}
	if strings.Join(flags.Args(), " ") != strings.Join(want, " ") {
		t.Errorf("Expected args %v, got %v", want, flags.Args())
	}
}

func newOverrideFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("kamalx", pflag.ContinueOnError)
	flags.Bool("pty", false, "")
	flags.String("command", "kamal", "")
	flags.Duration("tick", 0, "")
	flags.String("log-file", "", "")
	flags.String("log-level", "info", "")
	return flags
}

func TestOverridesFromFlags_DefaultsDoNotOverride(t *testing.T) {
	flags := newOverrideFlags()
	if err := flags.Parse(nil); err != nil {
		t.Fatalf("Unexpected parse error: %v", err)
	}

	o := overridesFromFlags(flags)
	if o.Command != nil || o.UsePTY != nil || o.TickInterval != nil || o.LogFile != nil || o.LogLevel != nil {
		t.Errorf("Expected no overrides, got %+v", o)
	}
}

func TestOverridesFromFlags(t *testing.T) {
	flags := newOverrideFlags()
	err := flags.Parse([]string{"--pty=false", "--command", "bin/kamal", "--tick", "1s", "--log-file", "k.log", "--log-level", "debug"})
	if err != nil {
		t.Fatalf("Unexpected parse error: %v", err)
	}

	o := overridesFromFlags(flags)
	if o.UsePTY == nil || *o.UsePTY {
		t.Error("Expected an explicit --pty=false override")
	}
	if o.Command == nil || *o.Command != "bin/kamal" {
		t.Errorf("Unexpected command override %v", o.Command)
	}
	if o.TickInterval == nil || *o.TickInterval != time.Second {
		t.Errorf("Unexpected tick override %v", o.TickInterval)
	}
	if o.LogFile == nil || *o.LogFile != "k.log" {
		t.Errorf("Unexpected log file override %v", o.LogFile)
	}
	if o.LogLevel == nil || *o.LogLevel != "debug" {
		t.Errorf("Unexpected log level override %v", o.LogLevel)
	}
}

func TestRootCommandHelp(t *testing.T) {
	var buf bytes.Buffer

	testRootCmd := &cobra.Command{
		Use:          rootCmd.Use,
		Short:        rootCmd.Short,
		Long:         rootCmd.Long,
		SilenceUsage: true,
	}

	testRootCmd.SetOut(&buf)
	testRootCmd.SetArgs([]string{"--help"})
	if err := testRootCmd.Execute(); err != nil {
		t.Fatalf("Error executing help command: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "kamalx") {
		t.Errorf("Help output should contain 'kamalx'. Got: %q", output)
	}

	if !strings.Contains(output, "kamalx deploy -d staging") {
		t.Errorf("Help output should contain the long description. Got: %q", output)
	}
}
