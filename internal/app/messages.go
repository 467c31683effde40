package app

import (
	"time"

	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/services"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// RefreshMsg requests a reload of the dataset. Manual refreshes are throttled.
type RefreshMsg struct {
	Manual bool
}

// LoadStartedMsg signals that a load with the given sequence number began.
type LoadStartedMsg struct {
	Seq uint64
}

// LoadFinishedMsg carries a completed load, stale or not.
type LoadFinishedMsg struct {
	Result services.LoadResult
}

// DataChangedMsg tells tabs that the dataset or filter changed and derived
// views must be read again.
type DataChangedMsg struct{}

// LoadLogMsg carries the newest load log entries.
type LoadLogMsg struct {
	Events []models.LoadEvent
	Stats  models.LoadStats
	Err    error
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Message  string
	Type     NotificationType
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg requests clearing expired notifications.
type ClearExpiredNotificationsMsg struct{}

// SubscriptionEventMsg carries the service event channel once subscribed.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
