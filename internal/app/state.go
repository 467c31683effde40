// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"slices"
	"sync"
	"time"

	"github.com/j-veylop/llm-analytics-tui/internal/logger"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/services"
	"github.com/j-veylop/llm-analytics-tui/internal/services/views"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	CreatedAt time.Time
	ID        string
	Message   string
	Type      NotificationType
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// State is the shared application state read by every tab. The dataset is
// replaced wholesale by ApplyLoad and never mutated in place.
type State struct {
	mu sync.RWMutex

	cache *views.Cache
	loc   *time.Location

	dataset     models.Dataset
	generation  uint64
	issuedSeq   uint64
	loading     bool
	loaded      bool
	lastErr     error
	lastUpdated time.Time
	sourceName  string

	filter      models.Filter
	timeRange   models.TimeRange
	customRange bool
	query       models.TableQuery

	recentLoads []models.LoadEvent
	loadStats   models.LoadStats

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty state with no data and no filters.
func NewState() *State {
	return &State{
		loc:           time.Local,
		dataset:       models.Dataset{},
		filter:        models.NewFilter(),
		query:         models.NewTableQuery(models.DefaultPageSize),
		notifications: make([]Notification, 0),
	}
}

// UseViews routes derived views through cache and buckets days in loc.
func (s *State) UseViews(cache *views.Cache, loc *time.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = cache
	if loc != nil {
		s.loc = loc
	}
}

// SetSourceName records the configured source before its first load lands.
func (s *State) SetSourceName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sourceName = name
}

// Location returns the zone used for date bounds and day buckets.
func (s *State) Location() *time.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loc
}

// SetPageSize sets the table page size, snapped to a supported choice.
func (s *State) SetPageSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = s.query.WithPageSize(models.SnapPageSize(n))
}

// BeginLoad issues the next load sequence number and marks a load in flight.
func (s *State) BeginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issuedSeq++
	s.loading = true
	return s.issuedSeq
}

// ApplyLoad installs a load result if it answers the latest issued request.
// Stale completions are discarded and reported false.
func (s *State) ApplyLoad(res services.LoadResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res.Seq != s.issuedSeq {
		logger.Debug("discarding stale load", "seq", res.Seq, "latest", s.issuedSeq, "load_id", res.LoadID)
		return false
	}

	s.loading = false
	s.loaded = true
	s.generation = res.Seq
	s.lastErr = res.Err
	s.sourceName = res.Source
	s.dataset = res.Rows
	if s.dataset == nil {
		s.dataset = models.Dataset{}
	}
	if res.Err == nil {
		s.lastUpdated = res.FinishedAt
	}
	return true
}

// IsLoading reports whether the latest issued load is still outstanding.
func (s *State) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsInitialLoading returns true until the first load completes.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.loaded
}

// Generation returns the sequence number of the displayed dataset.
func (s *State) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Dataset returns the displayed dataset.
func (s *State) Dataset() models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// LastError returns the error of the displayed load, if it failed.
func (s *State) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// SourceName returns the source of the displayed dataset.
func (s *State) SourceName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sourceName
}

// GetLastUpdated returns the finish time of the last successful load.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// TimeSinceUpdate returns the duration since the last successful load.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.lastUpdated)
}

func (s *State) builder() *views.Builder {
	return views.NewBuilder(s.cache, s.generation, s.dataset, s.loc)
}

// Views returns every derived view for the current dataset and filter.
func (s *State) Views() views.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builder().Views(s.filter)
}

// TablePage returns the current table page.
func (s *State) TablePage() models.TablePage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builder().Table(s.filter, s.query)
}

// Workflows returns the workflow selector choices, "all" first.
func (s *State) Workflows() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{models.AllWorkflows}, s.builder().Workflows()...)
}

// Filter returns the active filter.
func (s *State) Filter() models.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// TimeRange returns the active preset and whether dates were edited by hand.
func (s *State) TimeRange() (models.TimeRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeRange, s.customRange
}

// RangeLabel describes the active date bounds.
func (s *State) RangeLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.customRange {
		return "Custom"
	}
	return s.timeRange.String()
}

// setFilter installs f and returns the table to page 1.
func (s *State) setFilter(f models.Filter) {
	if f == s.filter {
		return
	}
	s.filter = f
	s.query.Page = 1
}

// SetFilter replaces the active filter.
func (s *State) SetFilter(f models.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setFilter(f)
}

// CycleWorkflow moves the workflow selection by delta through the choices.
func (s *State) CycleWorkflow(delta int) string {
	choices := s.Workflows()

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.filter.Workflow
	if s.filter.AnyWorkflow() {
		current = models.AllWorkflows
	}
	idx := slices.Index(choices, current)
	if idx < 0 {
		idx = 0
	}
	idx = ((idx+delta)%len(choices) + len(choices)) % len(choices)
	s.setFilter(s.filter.WithWorkflow(choices[idx]))
	return choices[idx]
}

// CycleTimeRange advances to the next date preset, evaluated at now.
func (s *State) CycleTimeRange(now time.Time) models.TimeRange {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.customRange {
		s.timeRange = models.TimeRangeAll
	}
	s.timeRange = s.timeRange.Next()
	s.customRange = false
	s.setFilter(s.timeRange.Apply(s.filter, now.In(s.loc)))
	return s.timeRange
}

// SetDateRange sets hand-edited date bounds; zero times clear a bound.
func (s *State) SetDateRange(start, end time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customRange = !start.IsZero() || !end.IsZero()
	s.timeRange = models.TimeRangeAll
	s.setFilter(s.filter.WithDates(start, end))
}

// ClearFilters removes every filter and the search term.
func (s *State) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timeRange = models.TimeRangeAll
	s.customRange = false
	s.setFilter(models.NewFilter())
	s.query = s.query.WithSearch("")
}

// Query returns the table query.
func (s *State) Query() models.TableQuery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// SetSearch sets the table search term.
func (s *State) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = s.query.WithSearch(term)
}

// ToggleSortOrder flips the table between newest and oldest first.
func (s *State) ToggleSortOrder() models.SortOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = s.query.WithOrder(s.query.Order.Toggle())
	return s.query.Order
}

// CyclePageSize advances to the next page size choice.
func (s *State) CyclePageSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = s.query.WithPageSize(models.NextPageSize(s.query.PageSize))
	return s.query.PageSize
}

// MovePage moves the table page by delta, clamped to the available pages.
func (s *State) MovePage(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.builder().Table(s.filter, s.query)
	target := min(max(page.Page+delta, 1), page.TotalPages)
	s.query.Page = target
	return target
}

// SetLoadLog stores the newest load log entries and their aggregate.
func (s *State) SetLoadLog(events []models.LoadEvent, stats models.LoadStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentLoads = events
	s.loadStats = stats
}

// LoadLog returns a copy of the stored load log.
func (s *State) LoadLog() ([]models.LoadEvent, models.LoadStats) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recentLoads), s.loadStats
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	notification := Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	s.notifications = append(s.notifications, notification)

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}

	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}
