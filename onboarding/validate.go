package onboarding

import (
	"fmt"
	"regexp"
	"strings"
)

// hhmmRe checks the structural shape only: exactly four ASCII digits.
// Out-of-range values like "2500" are accepted here; range sanity is the
// extraction guide's job.
var hhmmRe = regexp.MustCompile(`^\d{4}$`)

// ValidateResources checks that value is a non-empty list of table types
// with a positive party size and a non-negative spot count each.
func ValidateResources(resources []Resource) (bool, string) {
	if len(resources) == 0 {
		return false, "resources must be a non-empty list"
	}
	for i, r := range resources {
		if r.PartySize <= 0 {
			return false, fmt.Sprintf("resources[%d].party_size must be a positive integer", i)
		}
		if r.SpotsTotal < 0 {
			return false, fmt.Sprintf("resources[%d].spots_total must be an integer >= 0", i)
		}
	}
	return true, "ok"
}

// ValidateBusinessHours checks that value is a non-empty list of windows
// with days in 0..6 and four-digit HHMM times. Duplicate or overlapping
// windows are allowed; each segment stands on its own.
func ValidateBusinessHours(hours []HourSpan) (bool, string) {
	if len(hours) == 0 {
		return false, "business_hours must be a non-empty list"
	}
	for i, h := range hours {
		if h.Open.Day < 0 || h.Open.Day > 6 {
			return false, fmt.Sprintf("business_hours[%d].open.day must be 0..6", i)
		}
		if h.Close.Day < 0 || h.Close.Day > 6 {
			return false, fmt.Sprintf("business_hours[%d].close.day must be 0..6", i)
		}
		if !hhmmRe.MatchString(h.Open.Time) {
			return false, fmt.Sprintf("business_hours[%d].open.time must be a 4-digit HHMM string", i)
		}
		if !hhmmRe.MatchString(h.Close.Time) {
			return false, fmt.Sprintf("business_hours[%d].close.time must be a 4-digit HHMM string", i)
		}
	}
	return true, "ok"
}

var (
	goalTypes       = []string{GoalFillSeats, GoalControlQueue, GoalKeepWalkin}
	onlineRoles     = []string{RolePrimary, RoleAssistant, RoleMinimal}
	peakPeriods     = []string{PeakWeekdayLunch, PeakWeekdayDinner, PeakWeekendBrunch, PeakWeekendDinner}
	peakStrategies  = []string{PeakOnlineFirst, PeakWalkinFirst, PeakNoOnline}
	tolerances      = []string{ToleranceLow, ToleranceMedium, ToleranceHigh}
	allowedRatios   = []float64{0.8, 0.5, 0.2, 0.0}
)

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// AllowedRatio reports whether r is one of the four permitted online
// quota ratios.
func AllowedRatio(r float64) bool {
	for _, a := range allowedRatios {
		if r == a {
			return true
		}
	}
	return false
}

// ValidateStrategy checks that every required strategy field is present
// and inside its allowed set, and that the zero-ratio and no-online
// settings entail each other.
func ValidateStrategy(s Strategy) (bool, string) {
	if !oneOf(s.GoalType, goalTypes) {
		return false, "strategy.goal_type is not an allowed value"
	}
	if !oneOf(s.OnlineRole, onlineRoles) {
		return false, "strategy.online_role is not an allowed value"
	}
	if !oneOf(s.PeakStrategy, peakStrategies) {
		return false, "strategy.peak_strategy is not an allowed value"
	}
	if !oneOf(s.NoShowTolerance, tolerances) {
		return false, "strategy.no_show_tolerance is not an allowed value"
	}
	if s.MaxPartySize <= 0 {
		return false, "strategy.max_party_size must be a positive integer"
	}
	if len(s.PeakPeriods) == 0 {
		return false, "strategy.peak_periods must be a non-empty list"
	}
	for _, p := range s.PeakPeriods {
		if !oneOf(p, peakPeriods) {
			return false, fmt.Sprintf("strategy.peak_periods contains a disallowed value: %s", p)
		}
	}
	if !AllowedRatio(s.PeakOnlineQuotaRatio) {
		return false, "strategy.peak_online_quota_ratio must be one of 0.8, 0.5, 0.2, 0.0"
	}
	// Zero quota and no_online go together, in both directions.
	if (s.PeakOnlineQuotaRatio == 0.0) != (s.PeakStrategy == PeakNoOnline) {
		return false, "strategy.peak_online_quota_ratio 0.0 and peak_strategy no_online must be set together"
	}
	return true, "ok"
}

// ValidateFinal checks the assembled terminal configuration: all
// top-level fields present and the three sub-validators passing. A
// failure here after each slot validated individually is an internal
// consistency bug, not a user error.
func ValidateFinal(c *Config) (bool, string) {
	if c == nil {
		return false, "final config must be an object"
	}
	if strings.TrimSpace(c.StoreName) == "" {
		return false, "store_name must be a non-empty string"
	}
	if c.CapacityHint <= 0 {
		return false, "capacity_hint must be a positive integer"
	}
	if c.DurationSec <= 0 {
		return false, "duration_sec must be a positive integer (seconds)"
	}
	if ok, reason := ValidateResources(c.Resources); !ok {
		return false, reason
	}
	if ok, reason := ValidateBusinessHours(c.BusinessHours); !ok {
		return false, reason
	}
	if len(c.BookingHours) > 0 {
		if ok, reason := ValidateBusinessHours(c.BookingHours); !ok {
			return false, "booking_hours: " + reason
		}
	}
	if ok, reason := ValidateStrategy(c.Strategy); !ok {
		return false, reason
	}
	return true, "ok"
}
