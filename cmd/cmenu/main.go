// Command cmenu shows a list picker on the controlling terminal. A
// controller process feeds rows over one descriptor and reads the
// acknowledgments and the user's choice from another.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/kungfusheep/cmenu"
	"github.com/spf13/cobra"
)

type flags struct {
	config       string
	headers      []string
	inputFd      int
	outputFd     int
	enableCustom bool
	styleHeader  string
	styleHi      string
	styleEntry   string
	logFile      string
}

func main() {
	os.Exit(execute(os.Args[1:]))
}

func execute(args []string) int {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "cmenu --header [@][N]:LABEL... --infd FD --outfd FD",
		Short: "Interactive list picker driven over file descriptors",
		Long: `cmenu draws a selectable list on /dev/tty. Rows arrive on the input
descriptor in "n <count>" envelopes of "+", "= i", "- i" and "x" commands,
each envelope answered with "ok" on the output descriptor. Enter writes
"result" and the selected index; the custom key writes "custom".`,
		Example: `  # Two proportional columns and one fixed ten-cell column
  cmenu --header 2:Name --header 1:Kind --header @10:Size --infd 3 --outfd 4

  # Styles and the custom escape
  cmenu --header :Item --infd 3 --outfd 4 --enable-custom --style-hi bold,f=3`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &cmenu.Error{Kind: cmenu.KindConfig, Err: fmt.Errorf("unexpected argument %q", args[0])}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			_, err = cmenu.Run(cmd.Context(), cfg)
			return err
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &cmenu.Error{Kind: cmenu.KindConfig, Err: err}
	})

	fl := rootCmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "YAML file with defaults for headers, styles and logging")
	fl.StringArrayVar(&f.headers, "header", nil, "column spec [@][N]:LABEL, repeatable; '@' makes N a fixed width")
	fl.IntVar(&f.inputFd, "infd", -1, "descriptor the controller writes commands to")
	fl.IntVar(&f.outputFd, "outfd", -1, "descriptor acknowledgments and results are written to")
	fl.BoolVar(&f.enableCustom, "enable-custom", false, "let the 'c' key end the picker with the custom marker")
	fl.StringVar(&f.styleHeader, "style-header", "", "header style, e.g. bold,f=7,b=2")
	fl.StringVar(&f.styleHi, "style-hi", "", "selected row style")
	fl.StringVar(&f.styleEntry, "style-entry", "", "unselected row style")
	fl.StringVar(&f.logFile, "log-file", "", "write debug logs to this file (default $"+cmenu.DebugEnv+")")
	rootCmd.SetArgs(args)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(err)
	}
	return cmenu.ExitCode(err)
}

// resolve layers the explicitly set flags over the config file.
func (f *flags) resolve(cmd *cobra.Command) (*cmenu.Config, error) {
	cfg := cmenu.NewConfig()
	if f.config != "" {
		if err := cfg.LoadConfigFile(f.config); err != nil {
			return nil, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("header") {
		cfg.Headers = f.headers
	}
	if changed("enable-custom") {
		cfg.EnableCustom = f.enableCustom
	}
	if changed("style-header") {
		cfg.Styles.Header = f.styleHeader
	}
	if changed("style-hi") {
		cfg.Styles.Highlight = f.styleHi
	}
	if changed("style-entry") {
		cfg.Styles.Entry = f.styleEntry
	}
	if changed("log-file") {
		cfg.LogFile = f.logFile
	}
	cfg.InputFd = f.inputFd
	cfg.OutputFd = f.outputFd
	return cfg, nil
}

func printError(err error) {
	r := lipgloss.NewRenderer(os.Stderr)
	prefix := r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render("cmenu:")
	fmt.Fprintln(os.Stderr, prefix, err)
}
