// Package app wires the journal, analytics, storage and alerting into
// one orchestrator shared by the CLI commands and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/flipdeck/flipdeck/internal/alert"
	"github.com/flipdeck/flipdeck/internal/analytics"
	"github.com/flipdeck/flipdeck/internal/config"
	"github.com/flipdeck/flipdeck/internal/core"
	"github.com/flipdeck/flipdeck/internal/export"
	"github.com/flipdeck/flipdeck/internal/insight"
	"github.com/flipdeck/flipdeck/internal/journal"
	llmfactory "github.com/flipdeck/flipdeck/internal/llm/factory"
	"github.com/flipdeck/flipdeck/internal/metrics"
	"github.com/flipdeck/flipdeck/internal/notifier"
	"github.com/flipdeck/flipdeck/internal/notifier/webhook"
	"github.com/flipdeck/flipdeck/internal/risk"
	"github.com/flipdeck/flipdeck/internal/storage/archive"
	"github.com/flipdeck/flipdeck/internal/storage/state"
)

// App is the main application orchestrator.
type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     state.Store
	book      *journal.Book
	policy    risk.Policy
	snapshots *archive.Snapshotter
	notifiers *notifier.Registry
	evaluator *alert.Evaluator
	registry  *metrics.Registry
	rules     []alert.Rule

	mu      sync.RWMutex
	running bool
	cancel  context.CancelFunc
}

// New builds the app from configuration: it opens the state store, loads
// the journal (or starts an empty one), selects the snapshot backend and
// wires notifiers and alert rules.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := state.NewFileStore(cfg.State.Path)
	if err != nil {
		return nil, err
	}

	book, err := store.Load(context.Background())
	if errors.Is(err, core.ErrStateNotFound) {
		book = journal.NewBook(cfg.Settings())
		logger.Info("no saved journal, starting empty",
			zap.String("path", cfg.State.Path))
	} else if err != nil {
		return nil, err
	}

	backend, err := newArchiveBackend(cfg.Archive)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		book:      book,
		policy:    cfg.Policy(),
		snapshots: archive.NewSnapshotter(backend),
		notifiers: notifier.NewRegistry(),
		registry:  metrics.NewRegistry(),
	}

	for name, nc := range cfg.Notifiers {
		if !nc.Enabled {
			continue
		}
		if nc.URL == "" {
			logger.Warn("notifier has no url, skipping", zap.String("notifier", name))
			continue
		}
		if err := a.notifiers.Register(webhook.New(nc.URL, nc.Headers)); err != nil {
			logger.Warn("notifier registration failed",
				zap.String("notifier", name), zap.Error(err))
		}
	}

	a.rules = make([]alert.Rule, 0, len(cfg.Alerts.Rules))
	for _, r := range cfg.Alerts.Rules {
		a.rules = append(a.rules, alert.Rule{
			Name:     r.Name,
			Expr:     r.Expr,
			For:      r.For,
			Severity: r.Severity,
			Message:  r.Message,
		})
	}

	a.evaluator = alert.NewEvaluator(
		alert.SinkFunc(a.dispatchAlert),
	)
	if cfg.Alerts.Cooldown > 0 {
		a.evaluator.SetCooldown(cfg.Alerts.Cooldown)
	}

	return a, nil
}

// newArchiveBackend selects the snapshot storage from the archive section.
func newArchiveBackend(cfg config.ArchiveConfig) (archive.Storage, error) {
	switch cfg.Type {
	case "", "localfs":
		return archive.NewLocalFS(cfg.Path)
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown archive type %q", cfg.Type))
	}
}

// dispatchAlert fans a fired alert out to the notifiers, the metrics
// registry and the log.
func (a *App) dispatchAlert(al alert.Alert) {
	a.registry.RecordAlert(string(al.Severity))
	a.logger.Warn("alert fired",
		zap.String("rule", al.Rule),
		zap.String("severity", string(al.Severity)),
		zap.String("metric", al.Metric),
		zap.Float64("value", al.Value),
	)
	for name, err := range a.notifiers.NotifyAll(al) {
		if err != nil {
			a.logger.Error("notifier delivery failed",
				zap.String("notifier", name), zap.Error(err))
		}
	}
}

// Config returns the configuration the app was built from.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Book returns the journal document. Handlers treat it as read-only.
func (a *App) Book() *journal.Book {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.book
}

// Policy returns the configured risk policy.
func (a *App) Policy() risk.Policy {
	return a.policy
}

// Registry returns the metrics registry for the HTTP server.
func (a *App) Registry() *metrics.Registry {
	return a.registry
}

// Save persists the journal through the state store.
func (a *App) Save(ctx context.Context) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.store.Save(ctx, a.book)
}

// Start runs the recompute loop until the context is cancelled. Each
// cycle rederives the metric snapshot, evaluates the alert rules and
// refreshes the gauges.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return fmt.Errorf("app already running")
	}
	a.running = true
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()

	interval := a.cfg.Alerts.CheckInterval
	if interval <= 0 {
		interval = time.Minute
	}

	a.logger.Info("recompute loop starting",
		zap.Duration("interval", interval),
		zap.Int("rules", len(a.rules)),
	)

	a.Recompute()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("recompute loop stopping")
			a.mu.Lock()
			a.running = false
			a.mu.Unlock()
			return ctx.Err()
		case <-ticker.C:
			a.Recompute()
		}
	}
}

// Stop cancels the recompute loop.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
}

// Recompute rederives the metric snapshot from the journal, evaluates
// alert rules against it and updates the gauges.
func (a *App) Recompute() {
	start := time.Now()

	a.mu.RLock()
	phases := a.book.AllPhases()
	active := a.book.Phases
	a.mu.RUnlock()

	snapshot := analytics.MetricMap(phases)
	a.evaluator.SetMetrics(snapshot)
	if a.cfg.Alerts.Enabled {
		a.evaluator.EvaluateAll(a.rules)
	}

	var equity float64
	for i := range active {
		equity += active[i].CurrentBalance()
	}
	a.registry.SetPhasesActive(len(active))
	a.registry.SetAccountEquity(equity)
	a.registry.RecordRecompute(time.Since(start).Seconds())
}

// StartPhase opens a new phase and persists the journal.
func (a *App) StartPhase(ctx context.Context, capital float64, tradeCount int, goalTarget float64, startDate string) (*journal.Phase, error) {
	a.mu.Lock()
	phase := a.book.StartPhase(capital, tradeCount, goalTarget, startDate)
	a.mu.Unlock()

	if err := a.Save(ctx); err != nil {
		return nil, err
	}
	a.Recompute()
	return phase, nil
}

// LogTrade completes a trade, persists the journal and returns the risk
// warnings the completion produced.
func (a *App) LogTrade(ctx context.Context, phaseNumber, seq int, date string, pl float64) ([]string, error) {
	a.mu.Lock()
	err := a.book.CompleteTrade(phaseNumber, seq, date, pl)
	if err != nil {
		a.mu.Unlock()
		return nil, err
	}

	phase, _ := a.book.FindPhase(phaseNumber)
	trade := phase.Trades[seq-1]
	warnings := risk.CheckTrade(trade, a.policy)
	warnings = append(warnings, risk.CheckPhase(*phase, a.policy)...)
	a.mu.Unlock()

	switch {
	case pl > 0:
		a.registry.RecordTrade("win")
	case pl < 0:
		a.registry.RecordTrade("loss")
	default:
		a.registry.RecordTrade("breakeven")
	}
	a.registry.RecordWarnings("trade", len(warnings))

	if err := a.Save(ctx); err != nil {
		return warnings, err
	}
	a.Recompute()
	return warnings, nil
}

// ArchivePhase freezes a phase and persists the journal.
func (a *App) ArchivePhase(ctx context.Context, number int, endDate string) error {
	a.mu.Lock()
	err := a.book.ArchivePhase(number, endDate)
	a.mu.Unlock()
	if err != nil {
		return err
	}
	return a.Save(ctx)
}

// UnarchivePhase reinstates an archived phase and persists the journal.
func (a *App) UnarchivePhase(ctx context.Context, number int) error {
	a.mu.Lock()
	err := a.book.UnarchivePhase(number)
	a.mu.Unlock()
	if err != nil {
		return err
	}
	return a.Save(ctx)
}

// DeletePhase removes an active phase and persists the journal.
func (a *App) DeletePhase(ctx context.Context, number int) error {
	a.mu.Lock()
	err := a.book.DeletePhase(number)
	a.mu.Unlock()
	if err != nil {
		return err
	}
	return a.Save(ctx)
}

// RecordWithdrawal banks a withdrawal and persists the journal.
func (a *App) RecordWithdrawal(ctx context.Context, phaseNumber int, amount float64) error {
	a.mu.Lock()
	err := a.book.RecordWithdrawal(phaseNumber, amount)
	a.mu.Unlock()
	if err != nil {
		return err
	}
	return a.Save(ctx)
}

// Snapshot archives the current journal state.
func (a *App) Snapshot(ctx context.Context) (archive.Snapshot, error) {
	a.mu.RLock()
	book := a.book
	a.mu.RUnlock()

	snap, err := a.snapshots.Save(ctx, book)
	if err != nil {
		a.registry.RecordSnapshot("error")
		return archive.Snapshot{}, err
	}
	a.registry.RecordSnapshot("ok")
	return snap, nil
}

// ListSnapshots returns the archived snapshots, newest first.
func (a *App) ListSnapshots(ctx context.Context) ([]archive.Snapshot, error) {
	return a.snapshots.List(ctx)
}

// RestoreSnapshot replaces the journal with an archived snapshot and
// persists it.
func (a *App) RestoreSnapshot(ctx context.Context, id string) error {
	book, err := a.snapshots.Restore(ctx, id)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.book = book
	a.mu.Unlock()

	if err := a.Save(ctx); err != nil {
		return err
	}
	a.Recompute()
	return nil
}

// DeleteSnapshot removes an archived snapshot.
func (a *App) DeleteSnapshot(ctx context.Context, id string) error {
	return a.snapshots.Delete(ctx, id)
}

// ExportCSV writes the completed trades as CSV.
func (a *App) ExportCSV(w io.Writer) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return export.WriteCSV(w, a.book.AllPhases())
}

// ExportJSON writes the full journal document as JSON.
func (a *App) ExportJSON(w io.Writer) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return export.WriteJSON(w, a.book)
}

// ImportJSON replaces the journal with an exported document and
// persists it.
func (a *App) ImportJSON(ctx context.Context, r io.Reader) error {
	book, err := export.ReadJSON(r)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.book = book
	a.mu.Unlock()

	if err := a.Save(ctx); err != nil {
		return err
	}
	a.Recompute()
	return nil
}

// Review asks the configured LLM provider for a qualitative read of the
// journal.
func (a *App) Review(ctx context.Context) (*insight.Review, error) {
	if a.cfg.LLM.Provider == "" {
		return nil, core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("llm provider not configured"))
	}
	provider, err := llmfactory.New(a.cfg.LLM)
	if err != nil {
		return nil, err
	}

	a.mu.RLock()
	book := a.book
	a.mu.RUnlock()

	return insight.NewReviewer(provider).Review(ctx, book, a.policy)
}
