// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/j-veylop/llm-analytics-tui/internal/analytics"
	"github.com/j-veylop/llm-analytics-tui/internal/config"
	"github.com/j-veylop/llm-analytics-tui/internal/db"
	"github.com/j-veylop/llm-analytics-tui/internal/logger"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/services/source"
	"github.com/j-veylop/llm-analytics-tui/internal/services/views"
	"github.com/j-veylop/llm-analytics-tui/internal/sheets"
)

const (
	viewCacheEntries = 4096
	recordTimeout    = 5 * time.Second
)

type (
	// SourceChangedEvent is emitted when a watched source file changes on disk.
	SourceChangedEvent struct {
		Path string
	}

	// AutoRefreshEvent is emitted every REFRESH_INTERVAL.
	AutoRefreshEvent struct {
		Time time.Time
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SourceChangedEvent) isServiceEvent() {}
func (AutoRefreshEvent) isServiceEvent()   {}
func (ErrorEvent) isServiceEvent()         {}

// LoadResult is the outcome of one load attempt. Rows is empty, never nil,
// when Err is set.
type LoadResult struct {
	FinishedAt time.Time
	Err        error
	LoadID     string
	Source     string
	Rows       models.Dataset
	Seq        uint64
	Duration   time.Duration
}

// Event converts the result into a load log entry.
func (r LoadResult) Event() models.LoadEvent {
	event := models.LoadEvent{
		StartedAt: r.FinishedAt.Add(-r.Duration),
		LoadID:    r.LoadID,
		Source:    r.Source,
		Status:    models.LoadStatusOK,
		Seq:       r.Seq,
		Duration:  r.Duration,
		RowCount:  len(r.Rows),
	}
	if r.Err != nil {
		event.Status = models.LoadStatusError
		event.Error = r.Err.Error()
	}
	return event
}

// Notifier delivers a desktop notification.
type Notifier func(title, body string) error

func beeepNotify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Option customizes a Manager.
type Option func(*Manager)

// WithSource replaces the configured source.
func WithSource(src source.Source) Option {
	return func(m *Manager) {
		m.source = src
		m.sourceErr = nil
	}
}

// WithNotifier replaces the desktop notifier.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) {
		m.notify = n
	}
}

// WithClock replaces the wall clock used for cost alerts.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// Oneshot disables the file watcher and the auto-refresh ticker, for
// callers that load once and exit.
func Oneshot() Option {
	return func(m *Manager) {
		m.oneshot = true
	}
}

// Manager orchestrates loading, the load log and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	source      source.Source
	sourceErr   error
	database    *db.DB
	views       *views.Cache
	limiter     *rate.Limiter
	watcher     *source.Watcher
	notify      Notifier
	now         func() time.Time
	stopChan    chan struct{}
	wg          sync.WaitGroup
	subscribers []chan<- ServiceEvent
	closed      bool
	oneshot     bool

	alertMu    sync.Mutex
	lastFailed bool
	alerted    map[string]bool
}

// NewManager creates a new service manager. A missing data source is not an
// error here; every Load reports it instead.
func NewManager(cfg *config.Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		notify:   beeepNotify,
		now:      time.Now,
		stopChan: make(chan struct{}),
		alerted:  make(map[string]bool),
		limiter:  rate.NewLimiter(rate.Inf, 1),
	}
	m.source, m.sourceErr = source.FromConfig(cfg)
	for _, opt := range opts {
		opt(m)
	}

	if cfg.RefreshMinInterval > 0 {
		m.limiter = rate.NewLimiter(rate.Every(cfg.RefreshMinInterval), 1)
	}

	var err error
	m.views, err = views.NewCache(viewCacheEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize view cache: %w", err)
	}

	if cfg.DatabasePath != "" {
		m.database, err = db.New(cfg.DatabasePath)
		if err != nil {
			m.views.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		m.pruneLoadLog()
	}

	if m.oneshot {
		return m, nil
	}

	if fs, ok := m.source.(*source.FileSource); ok {
		m.startWatcher(fs.Path())
	}

	if cfg.RefreshInterval > 0 {
		m.wg.Add(1)
		go m.autoRefresh(cfg.RefreshInterval)
	}

	return m, nil
}

func (m *Manager) pruneLoadLog() {
	if m.cfg.LoadRetention <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	n, err := m.database.PruneLoadEvents(ctx, m.cfg.LoadRetention)
	if err != nil {
		logger.Warn("failed to prune load log", "error", err)
		return
	}
	if n > 0 {
		logger.Debug("pruned load log", "removed", n)
	}
}

func (m *Manager) startWatcher(path string) {
	w, err := source.Watch(path,
		func() { m.broadcast(SourceChangedEvent{Path: path}) },
		func(err error) { m.broadcast(ErrorEvent{Service: "watcher", Error: err}) },
	)
	if err != nil {
		// Loads still work without live reload.
		logger.Warn("failed to watch source file", "path", path, "error", err)
		return
	}
	m.watcher = w
}

func (m *Manager) autoRefresh(interval time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case t := <-ticker.C:
			m.broadcast(AutoRefreshEvent{Time: t})
		case <-m.stopChan:
			return
		}
	}
}

// Load fetches, decodes and normalizes the dataset, then records the outcome.
// Failures are reported through LoadResult.Err with an empty dataset.
func (m *Manager) Load(ctx context.Context, seq uint64) (result LoadResult) {
	start := time.Now()
	result = LoadResult{
		LoadID: uuid.NewString(),
		Seq:    seq,
		Source: m.SourceName(),
	}

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("load panicked: %v", r)
		}
		if result.Err != nil {
			result.Rows = models.Dataset{}
		}
		result.FinishedAt = time.Now()
		result.Duration = result.FinishedAt.Sub(start)
		m.record(result)
	}()

	if m.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.FetchTimeout)
		defer cancel()
	}

	result.Rows, result.Err = m.fetch(ctx)
	return result
}

func (m *Manager) fetch(ctx context.Context) (models.Dataset, error) {
	if m.source == nil {
		if m.sourceErr != nil {
			return nil, m.sourceErr
		}
		return nil, source.ErrNoSource
	}

	body, err := m.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := sheets.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", m.source.Name(), err)
	}
	return rows, nil
}

// record logs the load, persists it to the load log and fires desktop
// notifications.
func (m *Manager) record(result LoadResult) {
	event := result.Event()

	if result.Err != nil {
		logger.Error("load failed",
			"load_id", event.LoadID,
			"seq", event.Seq,
			"source", event.Source,
			"duration", event.Duration,
			"error", result.Err)
	} else {
		logger.Info("load finished",
			"load_id", event.LoadID,
			"seq", event.Seq,
			"source", event.Source,
			"rows", event.RowCount,
			"duration", event.Duration)
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if m.database != nil {
		if err := m.database.InsertLoadEvent(ctx, &event); err != nil {
			logger.Warn("failed to record load", "load_id", event.LoadID, "error", err)
		}
	}

	m.checkNotifications(ctx, result)
}

func (m *Manager) checkNotifications(ctx context.Context, result LoadResult) {
	m.alertMu.Lock()
	defer m.alertMu.Unlock()

	failed := result.Err != nil
	wasFailed := m.lastFailed
	m.lastFailed = failed

	switch {
	case failed && !wasFailed:
		m.sendNotification("Analytics load failed", result.Err.Error())
		return
	case failed:
		return
	case wasFailed:
		m.sendNotification("Analytics load recovered",
			fmt.Sprintf("Loaded %d rows from %s", len(result.Rows), result.Source))
	}

	m.checkCostAlert(ctx, result.Rows)
}

// checkCostAlert fires at most once per calendar day.
func (m *Manager) checkCostAlert(ctx context.Context, rows models.Dataset) {
	threshold := m.cfg.CostAlertThreshold
	if threshold <= 0 {
		return
	}

	loc := m.location()
	now := m.now()
	cost := analytics.DailyCost(rows, now, loc)
	if cost <= threshold {
		return
	}

	day := analytics.DateKey(now, loc)
	if m.alerted[day] {
		return
	}
	if m.database != nil {
		first, err := m.database.MarkCostAlert(ctx, day, cost, threshold)
		if err != nil {
			logger.Warn("failed to record cost alert", "day", day, "error", err)
		}
		if err == nil && !first {
			m.alerted[day] = true
			return
		}
	}
	m.alerted[day] = true

	m.sendNotification(
		fmt.Sprintf("Daily LLM cost above $%.2f", threshold),
		fmt.Sprintf("%s: $%.2f spent so far", day, cost))
}

func (m *Manager) sendNotification(title, body string) {
	if m.notify == nil {
		return
	}
	if err := m.notify(title, body); err != nil {
		logger.Debug("desktop notification failed", "title", title, "error", err)
	}
}

func (m *Manager) location() *time.Location {
	if m.cfg.Location != nil {
		return m.cfg.Location
	}
	return time.Local
}

// AllowRefresh reports whether a manual refresh may start now.
func (m *Manager) AllowRefresh() bool {
	return m.limiter.Allow()
}

// SourceName returns a display name for the configured source.
func (m *Manager) SourceName() string {
	if m.source == nil {
		return "none"
	}
	return m.source.Name()
}

// Location returns the zone used for calendar-day bucketing.
func (m *Manager) Location() *time.Location {
	return m.location()
}

// Views returns the shared derived-view cache.
func (m *Manager) Views() *views.Cache {
	return m.views
}

// Builder returns a view builder for an accepted dataset.
func (m *Manager) Builder(generation uint64, dataset models.Dataset) *views.Builder {
	return views.NewBuilder(m.views, generation, dataset, m.location())
}

// RecentLoads returns the newest load log entries.
func (m *Manager) RecentLoads(ctx context.Context, limit int) ([]models.LoadEvent, error) {
	if m.database == nil {
		return nil, nil
	}
	return m.database.GetRecentLoadEvents(ctx, limit)
}

// LoadStats aggregates the load log.
func (m *Manager) LoadStats(ctx context.Context) (*models.LoadStats, error) {
	if m.database == nil {
		return &models.LoadStats{}, nil
	}
	return m.database.GetLoadStats(ctx)
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return
	}
	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	if m.closed {
		close(ch)
	} else {
		m.subscribers = append(m.subscribers, ch)
	}
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close stops background work and closes the load log.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	close(m.stopChan)
	m.wg.Wait()

	var errs []error

	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	m.views.Close()

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
