package onboarding

import "context"

// Day convention used everywhere in this package: 0=Monday .. 6=Sunday.

// Resource describes one table type: how many guests it seats and how
// many of them the restaurant has.
type Resource struct {
	PartySize  int `json:"party_size"`
	SpotsTotal int `json:"spots_total"`
}

// DayTime is a point in the weekly schedule. Time is a four-digit
// zero-padded 24h "HHMM" string, e.g. "0830".
type DayTime struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// HourSpan is one operating window. Open.Day == Close.Day is the normal
// case; cross-day spans are permitted and passed through unmodified.
type HourSpan struct {
	Open  DayTime `json:"open"`
	Close DayTime `json:"close"`
}

// Strategy enums
const (
	GoalFillSeats    = "fill_seats"
	GoalControlQueue = "control_queue"
	GoalKeepWalkin   = "keep_walkin"

	RolePrimary   = "primary"
	RoleAssistant = "assistant"
	RoleMinimal   = "minimal"

	PeakWeekdayLunch  = "weekday_lunch"
	PeakWeekdayDinner = "weekday_dinner"
	PeakWeekendBrunch = "weekend_brunch"
	PeakWeekendDinner = "weekend_dinner"

	PeakOnlineFirst = "online_first"
	PeakWalkinFirst = "walkin_first"
	PeakNoOnline    = "no_online"

	ToleranceLow    = "low"
	ToleranceMedium = "medium"
	ToleranceHigh   = "high"
)

// Strategy is the complete peak-hour policy record. The three Peak*
// numeric fields are the accepted admission policy, filled in by the
// recommendation step.
type Strategy struct {
	GoalType             string   `json:"goal_type"`
	OnlineRole           string   `json:"online_role"`
	PeakPeriods          []string `json:"peak_periods"`
	PeakStrategy         string   `json:"peak_strategy"`
	PeakOnlineQuotaRatio float64  `json:"peak_online_quota_ratio"`
	NoShowTolerance      string   `json:"no_show_tolerance"`
	CanMergeTables       bool     `json:"can_merge_tables"`
	MaxPartySize         int      `json:"max_party_size"`

	PeakSlotMinutes             int `json:"peak_slot_minutes,omitempty"`
	PeakOnlineSeatBudget        int `json:"peak_online_seat_budget,omitempty"`
	PeakOnlinePartyLimitPerSlot int `json:"peak_online_party_limit_per_slot,omitempty"`
}

// StrategyDraft tracks the strategy while it is still being collected.
// Nil pointers mean "not answered yet"; the FSM uses that to decide which
// question comes next.
type StrategyDraft struct {
	GoalType             *string  `json:"goal_type,omitempty"`
	OnlineRole           *string  `json:"online_role,omitempty"`
	PeakPeriods          []string `json:"peak_periods,omitempty"`
	PeakStrategy         *string  `json:"peak_strategy,omitempty"`
	PeakOnlineQuotaRatio *float64 `json:"peak_online_quota_ratio,omitempty"`
	NoShowTolerance      *string  `json:"no_show_tolerance,omitempty"`
	CanMergeTables       *bool    `json:"can_merge_tables,omitempty"`
	MaxPartySize         *int     `json:"max_party_size,omitempty"`

	PeakSlotMinutes             *int `json:"peak_slot_minutes,omitempty"`
	PeakOnlineSeatBudget        *int `json:"peak_online_seat_budget,omitempty"`
	PeakOnlinePartyLimitPerSlot *int `json:"peak_online_party_limit_per_slot,omitempty"`
}

// State is the slot store for one onboarding session. It is owned by
// exactly one Flow and mutated only between turns.
type State struct {
	StoreID       *int       `json:"store_id"`
	StoreName     string     `json:"store_name,omitempty"`
	Resources     []Resource `json:"resources,omitempty"`
	DurationSec   int        `json:"duration_sec,omitempty"`
	BusinessHours []HourSpan `json:"business_hours,omitempty"`
	BookingHours  []HourSpan `json:"booking_hours,omitempty"`
	Strategy      StrategyDraft `json:"strategy"`
	CapacityHint  int           `json:"capacity_hint,omitempty"`
}

// NewState creates an empty slot store.
func NewState() *State {
	return &State{}
}

// Config is the terminal configuration handed to the caller once the
// conversation completes and ValidateFinal passes.
type Config struct {
	StoreID       *int       `json:"store_id"`
	StoreName     string     `json:"store_name"`
	CapacityHint  int        `json:"capacity_hint"`
	Resources     []Resource `json:"resources"`
	DurationSec   int        `json:"duration_sec"`
	BusinessHours []HourSpan `json:"business_hours"`
	BookingHours  []HourSpan `json:"booking_hours"`
	Strategy      Strategy   `json:"strategy"`
}

// Step identifies one extraction shape. The set is closed; extractor
// implementations switch exhaustively over it.
type Step string

const (
	StepStoreName            Step = "store_name"
	StepResources            Step = "resources"
	StepDuration             Step = "duration"
	StepBusinessHours        Step = "business_hours"
	StepBusinessHoursConfirm Step = "business_hours_confirm"
	StepMergePolicy          Step = "merge_policy"
	StepMaxPartySize         Step = "max_party_size"
	StepOnlineRole           Step = "online_role"
	StepPeakPeriod           Step = "peak_period"
	StepPeakRatio            Step = "peak_ratio"
	StepPeakStrategy         Step = "peak_strategy"
	StepNoShowTolerance      Step = "no_show_tolerance"
	StepRecommendationPatch  Step = "recommendation_patch"
)

// Steps lists every step kind, in conversation order.
var Steps = []Step{
	StepStoreName, StepResources, StepDuration, StepBusinessHours,
	StepBusinessHoursConfirm, StepMergePolicy, StepMaxPartySize,
	StepOnlineRole, StepPeakPeriod, StepPeakRatio, StepPeakStrategy,
	StepNoShowTolerance, StepRecommendationPatch,
}

// Patch is a sparse update produced by one extraction call. Only the
// fields the utterance actually supplied are set.
type Patch struct {
	StoreName     *string        `json:"store_name,omitempty"`
	Resources     []Resource     `json:"resources,omitempty"`
	DurationSec   *int           `json:"duration_sec,omitempty"`
	BusinessHours []HourSpan     `json:"business_hours,omitempty"`
	BookingHours  []HourSpan     `json:"booking_hours,omitempty"`
	Strategy      *StrategyPatch `json:"strategy,omitempty"`
}

// StrategyPatch is the strategy portion of a Patch.
type StrategyPatch struct {
	GoalType             *string  `json:"goal_type,omitempty"`
	OnlineRole           *string  `json:"online_role,omitempty"`
	PeakPeriods          []string `json:"peak_periods,omitempty"`
	PeakStrategy         *string  `json:"peak_strategy,omitempty"`
	PeakOnlineQuotaRatio *float64 `json:"peak_online_quota_ratio,omitempty"`
	NoShowTolerance      *string  `json:"no_show_tolerance,omitempty"`
	CanMergeTables       *bool    `json:"can_merge_tables,omitempty"`
	MaxPartySize         *int     `json:"max_party_size,omitempty"`

	PeakSlotMinutes             *int `json:"peak_slot_minutes,omitempty"`
	PeakOnlineSeatBudget        *int `json:"peak_online_seat_budget,omitempty"`
	PeakOnlinePartyLimitPerSlot *int `json:"peak_online_party_limit_per_slot,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p *Patch) IsEmpty() bool {
	if p == nil {
		return true
	}
	if p.StoreName != nil || len(p.Resources) > 0 || p.DurationSec != nil ||
		len(p.BusinessHours) > 0 || len(p.BookingHours) > 0 {
		return false
	}
	return p.Strategy.isEmpty()
}

func (sp *StrategyPatch) isEmpty() bool {
	if sp == nil {
		return true
	}
	return sp.GoalType == nil && sp.OnlineRole == nil && len(sp.PeakPeriods) == 0 &&
		sp.PeakStrategy == nil && sp.PeakOnlineQuotaRatio == nil &&
		sp.NoShowTolerance == nil && sp.CanMergeTables == nil && sp.MaxPartySize == nil &&
		sp.PeakSlotMinutes == nil && sp.PeakOnlineSeatBudget == nil &&
		sp.PeakOnlinePartyLimitPerSlot == nil
}

// Extractor turns one user utterance into a sparse patch for the current
// step. Implementations must never fabricate fields the text did not
// address; unparseable input yields an empty patch. Any error is treated
// by the orchestrator as "nothing extracted".
type Extractor interface {
	Extract(ctx context.Context, step Step, userText string, state *State) (*Patch, error)
}

// MergeResources folds duplicate party sizes into a single entry by
// summing their spot counts, preserving first-seen order.
func MergeResources(resources []Resource) []Resource {
	merged := make([]Resource, 0, len(resources))
	index := make(map[int]int, len(resources))
	for _, r := range resources {
		if i, ok := index[r.PartySize]; ok {
			merged[i].SpotsTotal += r.SpotsTotal
			continue
		}
		index[r.PartySize] = len(merged)
		merged = append(merged, r)
	}
	return merged
}

// CapacityFromResources recomputes the capacity hint: total seats across
// all table types, never below 1.
func CapacityFromResources(resources []Resource) int {
	total := 0
	for _, r := range resources {
		total += r.PartySize * r.SpotsTotal
	}
	if total < 1 {
		return 1
	}
	return total
}

// MaxPartySizeFromResources returns the largest single-table party size.
// Used when table merging is disallowed.
func MaxPartySizeFromResources(resources []Resource) int {
	max := 0
	for _, r := range resources {
		if r.PartySize > max {
			max = r.PartySize
		}
	}
	return max
}
