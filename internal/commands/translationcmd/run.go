package translationcmd

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"

	"github.com/rulekeep/rulekeep/internal/catalog"
	"github.com/rulekeep/rulekeep/internal/commands"
	"github.com/rulekeep/rulekeep/internal/logging"
	"github.com/rulekeep/rulekeep/internal/translation"
	"github.com/rulekeep/rulekeep/pkg/interfaces"
)

const runTranslationMessageType = "rulekeep.translation.run"

// DefaultRunTimeout bounds one batch translation run. Runs are slow on
// purpose because of the inter-call delays, so the window is generous.
const DefaultRunTimeout = 30 * time.Minute

// TranslationRunner triggers batch translation runs.
type TranslationRunner interface {
	Run(ctx context.Context, group catalog.Group, locale string) (*translation.RunSummary, error)
}

// RunTranslationCommand triggers a batch translation run for one entity
// group and target locale.
type RunTranslationCommand struct {
	Group  string `json:"group"`
	Locale string `json:"locale"`
}

// Type implements command.Message.
func (RunTranslationCommand) Type() string { return runTranslationMessageType }

// Validate satisfies command.Message.
func (c RunTranslationCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Group, validation.Required),
		validation.Field(&c.Locale, validation.Required),
	)
}

type runHandlerConfig struct {
	cronConfig command.HandlerConfig
	timeout    time.Duration
	sink       func(*translation.RunSummary)
}

// RunHandlerOption customises the run handler.
type RunHandlerOption func(*runHandlerConfig)

// RunWithCronConfig overrides the cron registration options.
func RunWithCronConfig(config command.HandlerConfig) RunHandlerOption {
	return func(cfg *runHandlerConfig) {
		cfg.cronConfig = config
	}
}

// RunWithCronExpression overrides the cron expression.
func RunWithCronExpression(expression string) RunHandlerOption {
	return func(cfg *runHandlerConfig) {
		if trimmed := strings.TrimSpace(expression); trimmed != "" {
			cfg.cronConfig.Expression = trimmed
		}
	}
}

// RunWithTimeout overrides the default execution timeout.
func RunWithTimeout(timeout time.Duration) RunHandlerOption {
	return func(cfg *runHandlerConfig) {
		cfg.timeout = timeout
	}
}

// RunWithSummarySink receives the terminal summary of each run, for callers
// that need more than the logged counts.
func RunWithSummarySink(sink func(*translation.RunSummary)) RunHandlerOption {
	return func(cfg *runHandlerConfig) {
		cfg.sink = sink
	}
}

// RunTranslationHandler executes batch translation runs via the supplied
// runner.
type RunTranslationHandler struct {
	runner     TranslationRunner
	logger     interfaces.Logger
	cronConfig command.HandlerConfig
	timeout    time.Duration
	sink       func(*translation.RunSummary)
}

// NewRunTranslationHandler constructs a handler that delegates to the
// provided runner.
func NewRunTranslationHandler(runner TranslationRunner, logger interfaces.Logger, opts ...RunHandlerOption) *RunTranslationHandler {
	cfg := runHandlerConfig{
		cronConfig: command.HandlerConfig{
			Expression: "@daily",
		},
		timeout: DefaultRunTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &RunTranslationHandler{
		runner:     runner,
		logger:     commands.EnsureLogger(logger),
		cronConfig: cfg.cronConfig,
		timeout:    cfg.timeout,
		sink:       cfg.sink,
	}
}

// CronConfig reports the handler's cron registration options.
func (h *RunTranslationHandler) CronConfig() command.HandlerConfig {
	return h.cronConfig
}

// Execute satisfies command.Commander[RunTranslationCommand].
func (h *RunTranslationHandler) Execute(ctx context.Context, msg RunTranslationCommand) error {
	if err := commands.WrapValidationError(command.ValidateMessage(msg)); err != nil {
		return err
	}
	ctx = commands.EnsureContext(ctx)
	ctx, cancel := commands.WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return commands.WrapContextError(err)
	}

	group, err := catalog.ParseGroup(msg.Group)
	if err != nil {
		return commands.WrapValidationError(err)
	}

	logger := logging.WithFields(h.logger, map[string]any{
		"operation": "translation.run",
		"group":     string(group),
		"locale":    msg.Locale,
	})

	summary, err := h.runner.Run(ctx, group, msg.Locale)
	if err != nil {
		return commands.WrapExecuteError(err)
	}

	logging.WithFields(logger, map[string]any{
		"attempted": summary.Attempted,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
	}).Info("translation.command.run.completed")

	if h.sink != nil {
		h.sink(summary)
	}
	return nil
}
