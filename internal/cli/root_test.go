package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with args and fresh flag values.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)

	var bufOut, bufErr bytes.Buffer
	rootCmd.SetOut(&bufOut)
	rootCmd.SetErr(&bufErr)
	rootCmd.SetArgs(args)

	err = rootCmd.Execute()
	return bufOut.String(), bufErr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{"lifeexp", "Dataset Tools:", "convert", "--country", "--data-dir"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestRootCommand_HelpForSubcommand(t *testing.T) {
	out, _, err := execute(t, "help", "convert")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "convert <input> <output>") {
		t.Errorf("expected convert usage, got %q", out)
	}
}

func TestRootCommand_Version(t *testing.T) {
	SetVersion("1.2.3")

	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("version output = %q, want 1.2.3", out)
	}

	out, _, err = execute(t, "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("--version output = %q", out)
	}
}

func TestSetVersion_IgnoresEmpty(t *testing.T) {
	SetVersion("2.0.0")
	SetVersion("")
	if rootCmd.Version != "2.0.0" {
		t.Errorf("Version = %q, want 2.0.0", rootCmd.Version)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	if _, _, err := execute(t, "invalid-command"); err == nil {
		t.Error("expected error for invalid command")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	for _, name := range []string{"convert", "inspect", "formats", "history", "version", "completion"} {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{name})
			if err != nil || cmd == rootCmd {
				t.Errorf("subcommand %q not registered", name)
			}
		})
	}
}

func TestCompletion(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "lifeexp") {
		t.Error("bash completion should mention lifeexp")
	}
}

func TestFormatsCommand(t *testing.T) {
	out, _, err := execute(t, "formats")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"csv", "parquet", ".pkl, .pickle", "xlsx"} {
		if !strings.Contains(out, want) {
			t.Errorf("formats output missing %q", want)
		}
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "formats", "--log-level", "loud")
	if err == nil || !strings.Contains(err.Error(), "invalid logging level") {
		t.Errorf("expected logging level error, got %v", err)
	}
}
