package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"logingate/auth"
	"logingate/config"
	"logingate/console"
	"logingate/submission"
	"logingate/supabase"
	"logingate/tracing"
	"logingate/tui"
	"logingate/tui/login"

	tea "github.com/charmbracelet/bubbletea"
)

// historyRows is how many attempts the TUI shows
const historyRows = 10

// app holds everything a login session needs
type app struct {
	cfg       config.Config
	manager   *config.ConfigManager
	attempter submission.Attempter
	tracker   *tracing.Manager
	version   string
}

func newApp(version string) (*app, error) {
	manager := config.NewConfigManager()
	cfg, err := manager.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s:\n%w", config.ConfigFilePath, err)
	}

	attempter, err := buildAttempter(cfg.Provider, manager)
	if err != nil {
		return nil, err
	}

	tracker, err := tracing.NewManager(tracingConfig(cfg.Tracing), version)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		manager:   manager,
		attempter: attempter,
		tracker:   tracker,
		version:   version,
	}, nil
}

// buildAttempter selects the provider and wraps it in the auth service
func buildAttempter(p config.ProviderConfig, writer auth.ConfigWriter) (submission.Attempter, error) {
	var provider auth.AuthProvider
	switch p.Kind {
	case config.ProviderHTTP:
		provider = auth.NewHTTPProvider(p.URL, nil)
	case config.ProviderSupabase:
		client, err := supabase.NewSupabaseClient(p.SupabaseURL, p.SupabaseKey)
		if err != nil {
			return nil, err
		}
		provider = auth.NewSupabaseAuth(client, p.Table, p.Column)
	default:
		return nil, fmt.Errorf("unknown provider %q", p.Kind)
	}

	var attempter submission.Attempter = auth.NewAuthService(provider, writer)
	if p.Alternate {
		attempter = auth.NewAlternating(attempter)
	}
	return attempter, nil
}

func tracingConfig(t config.TracingConfig) tracing.TracingConfig {
	cfg := tracing.DefaultConfig()
	cfg.Enabled = t.Enabled
	cfg.LocalDir = t.LocalDir
	cfg.MaxSessions = t.MaxSessions
	return cfg
}

func (a *app) options(ctx context.Context) []submission.Option {
	return []submission.Option{
		submission.WithConfig(a.cfg.Submission()),
		submission.WithTracker(a.tracker),
		submission.WithContext(ctx),
	}
}

// RunTUI runs the Bubble Tea login form until the user quits
func (a *app) RunTUI(ctx context.Context) error {
	form := login.New(a.attempter, a.manager.LastLogin(), a.options(ctx)...)
	defer form.Dispose()

	var source tui.HistorySource
	if a.tracker.IsEnabled() {
		source = func() ([]tracing.AttemptRecord, error) {
			if err := a.tracker.Flush(); err != nil {
				return nil, err
			}
			return tracing.LoadAttempts(a.tracker.Dir(), historyRows)
		}
	}

	p := tea.NewProgram(tui.New(form, source, a.version), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// RunHeadless reads logins from in until EOF and prints state changes to out
func (a *app) RunHeadless(ctx context.Context, in io.Reader, out io.Writer) error {
	form := console.NewForm()
	ctrl := submission.New(form, a.attempter, a.options(ctx)...)
	renderer := console.NewRenderer(out, a.cfg.Cooldown.TickInterval)
	driver := submission.NewDriver(ctrl, renderer.Hooks())

	renderer.Prompt()
	err := driver.Run(ctx, console.ReadInputs(ctx, in))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close flushes the event trail
func (a *app) Close() error {
	return a.tracker.Close()
}
