package cmenu

import (
	"context"
	"os"
)

// Run validates cfg, takes over the terminal and drives the picker to
// completion. The terminal is restored before Run returns, so callers can
// print the error safely.
func Run(ctx context.Context, cfg *Config) (Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return OutcomeQuit, err
	}
	cols, err := cfg.Columns()
	if err != nil {
		return OutcomeQuit, err
	}
	theme, err := cfg.Theme()
	if err != nil {
		return OutcomeQuit, err
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = os.Getenv(DebugEnv)
	}
	log, logCloser, err := OpenDebugLog(logPath)
	if err != nil {
		return OutcomeQuit, err
	}
	defer logCloser.Close()

	if err := CheckFD(cfg.InputFd, "input"); err != nil {
		return OutcomeQuit, err
	}
	if err := CheckFD(cfg.OutputFd, "output"); err != nil {
		return OutcomeQuit, err
	}

	tty, err := OpenTTY()
	if err != nil {
		return OutcomeQuit, err
	}
	if err := tty.Start(); err != nil {
		tty.Close()
		return OutcomeQuit, err
	}

	app := NewApp(tty, NewList(cols), AppOptions{
		InputFd:      cfg.InputFd,
		Input:        FD(cfg.InputFd),
		Output:       FD(cfg.OutputFd),
		EnableCustom: cfg.EnableCustom,
		Theme:        theme,
		Logger:       log,
	})
	outcome, runErr := app.Run(ctx)

	closeErr := tty.Close()
	if runErr != nil {
		return outcome, runErr
	}
	log.Debug("done", "outcome", outcome)
	return outcome, closeErr
}
