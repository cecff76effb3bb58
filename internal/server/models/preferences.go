package models

import "time"

// Defaults applied to the preferences row created alongside every new user.
const (
	DefaultAlertThreshold = 80
	DefaultEmailAlerts    = true
)

// UserPreferences is the 1:1 companion row of a User. Quiet-hours fields are
// nil when no quiet hours are configured.
type UserPreferences struct {
	ID              int64
	UserID          int64
	AlertThreshold  int
	EmailAlerts     bool
	QuietHoursStart *int
	QuietHoursEnd   *int
	CreatedAt       time.Time
}

// OptionalHour distinguishes "field not provided" from "set to NULL":
// Set=false leaves the column untouched, Set=true with a nil Value clears it.
type OptionalHour struct {
	Set   bool
	Value *int
}

// PreferencesUpdate carries a sparse set of preference changes. Nil pointer
// fields (and OptionalHour with Set=false) are left untouched by the update.
type PreferencesUpdate struct {
	AlertThreshold  *int
	EmailAlerts     *bool
	QuietHoursStart OptionalHour
	QuietHoursEnd   OptionalHour
}

// IsZero reports whether the update carries no fields at all.
func (u PreferencesUpdate) IsZero() bool {
	return u.AlertThreshold == nil && u.EmailAlerts == nil &&
		!u.QuietHoursStart.Set && !u.QuietHoursEnd.Set
}
