package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// ErrInconsistent is returned when the assembled final configuration
// fails validation even though every slot validated individually. That is
// a logic defect in the flow, never a user error, and is not recoverable
// by re-asking.
var ErrInconsistent = errors.New("final configuration failed validation")

// phase is the FSM position. It is distinct from Step: two phases
// (recommendation decision and modify text) share the
// recommendation_patch extraction step, and hours confirmation never
// calls the extractor at all.
type phase int

const (
	phStoreName phase = iota
	phResources
	phDuration
	phHours
	phHoursConfirm
	phMergePolicy
	phMaxPartySize
	phOnlineRole
	phPeakPeriod
	phPeakRatio
	phPeakStrategy
	phNoShow
	phRecommend
	phModify
	phDone
)

// Turn is what the flow hands back after each exchange: an optional note
// about what just happened, the next thing to ask, and the terminal
// configuration once the conversation is complete.
type Turn struct {
	Note     string
	Question string
	Done     bool
	Final    *Config
}

// simplifyTriggers are matched verbatim (after trimming and lowercasing)
// while any strategy question is pending. They bypass the remaining
// strategy questions with a fixed safe default.
var simplifyTriggers = map[string]bool{
	"i don't understand": true,
	"never mind":         true,
	"whatever":           true,
	"you decide":         true,
}

// Flow drives one onboarding conversation over a single State. It is
// synchronous and turn-based: one question outstanding at a time. A Flow
// must not be shared across sessions.
type Flow struct {
	state *State
	ex    Extractor
	phase phase

	// Candidate business hours awaiting the user's confirmation.
	pendingHours []HourSpan

	// Recommendation draft under discussion in the accept/modify loop.
	draftBookingHours []HourSpan
	draftRatio        float64
	draftPeakStrategy string
	draftPolicy       PeakPolicy
	seeded            bool // model overlay already requested once

	final *Config
}

// NewFlow creates a flow with an empty slot store.
func NewFlow(ex Extractor) *Flow {
	return &Flow{state: NewState(), ex: ex}
}

// State exposes the flow's slot store. Callers must treat it as
// read-only; the flow owns all mutation.
func (f *Flow) State() *State {
	return f.state
}

// Final returns the terminal configuration, or nil while the
// conversation is still running.
func (f *Flow) Final() *Config {
	return f.final
}

// Start returns the opening turn.
func (f *Flow) Start() *Turn {
	return &Turn{Question: f.question()}
}

// Advance consumes one user utterance and moves the flow forward. A
// failed extraction or validation never returns an error; it produces a
// turn that re-asks the same question. The only error conditions are a
// terminal consistency failure (ErrInconsistent) and being called after
// completion.
func (f *Flow) Advance(ctx context.Context, text string) (*Turn, error) {
	if f.phase == phDone {
		return nil, errors.New("conversation already complete")
	}
	text = strings.TrimSpace(text)

	switch f.phase {
	case phStoreName:
		return f.advanceStoreName(ctx, text), nil
	case phResources:
		return f.advanceResources(ctx, text), nil
	case phDuration:
		return f.advanceDuration(ctx, text), nil
	case phHours:
		return f.advanceHours(ctx, text), nil
	case phHoursConfirm:
		return f.advanceHoursConfirm(text), nil
	case phMergePolicy, phMaxPartySize, phOnlineRole, phPeakPeriod, phPeakRatio, phPeakStrategy, phNoShow:
		return f.advanceStrategy(ctx, text)
	case phRecommend:
		return f.advanceRecommend(text)
	case phModify:
		return f.advanceModify(ctx, text), nil
	}
	return nil, fmt.Errorf("unknown phase %d", f.phase)
}

// extract calls the extraction port and swallows every failure into an
// empty patch: the orchestrator observes "nothing extracted" and re-asks.
func (f *Flow) extract(ctx context.Context, step Step, text string) *Patch {
	patch, err := f.ex.Extract(ctx, step, text, f.state)
	if err != nil {
		log.Printf("extract %s failed, treating as empty patch: %v", step, err)
		return &Patch{}
	}
	if patch == nil {
		return &Patch{}
	}
	return patch
}

func (f *Flow) advanceStoreName(ctx context.Context, text string) *Turn {
	patch := f.extract(ctx, StepStoreName, text)
	if patch.StoreName != nil {
		name := strings.TrimSpace(*patch.StoreName)
		if name != "" && f.state.StoreName == "" {
			f.state.StoreName = name
			f.phase = phResources
			return &Turn{Question: f.question()}
		}
	}
	return &Turn{
		Note:     "I didn't catch the name. Could you say it again?",
		Question: f.question(),
	}
}

func (f *Flow) advanceResources(ctx context.Context, text string) *Turn {
	patch := f.extract(ctx, StepResources, text)
	res := MergeResources(patch.Resources)
	if ok, reason := ValidateResources(res); !ok {
		return &Turn{
			Note:     fmt.Sprintf("I need something like \"4-seat table x5, 6-seat table x2\". (%s)", reason),
			Question: f.question(),
		}
	}
	f.state.Resources = res
	f.state.CapacityHint = CapacityFromResources(res)
	f.phase = phDuration
	return &Turn{Question: f.question()}
}

func (f *Flow) advanceDuration(ctx context.Context, text string) *Turn {
	switch normalizeChoice(text) {
	case "a", "1", "60", "1hour", "anhour", "onehour":
		f.state.DurationSec = 3600
	case "b", "1.5", "90", "90minutes", "anhourandahalf":
		f.state.DurationSec = 5400
	case "c", "2", "120", "2hours", "twohours":
		f.state.DurationSec = 7200
	default:
		patch := f.extract(ctx, StepDuration, text)
		if patch.DurationSec == nil || *patch.DurationSec <= 0 {
			return &Turn{
				Note:     "Just pick A, B or C for me.",
				Question: f.question(),
			}
		}
		f.state.DurationSec = *patch.DurationSec
	}
	f.phase = phHours
	return &Turn{Question: f.question()}
}

func (f *Flow) advanceHours(ctx context.Context, text string) *Turn {
	patch := f.extract(ctx, StepBusinessHours, text)
	if ok, reason := ValidateBusinessHours(patch.BusinessHours); !ok {
		return &Turn{
			Note: fmt.Sprintf("I need clear opening and closing times, plus any closed days. "+
				"For example: Monday to Saturday 08:00-17:00, closed Sunday. (%s)", reason),
			Question: f.question(),
		}
	}
	f.pendingHours = patch.BusinessHours
	f.phase = phHoursConfirm
	return &Turn{Question: f.question()}
}

func (f *Flow) advanceHoursConfirm(text string) *Turn {
	switch normalizeChoice(text) {
	case "a", "yes", "y", "right", "correct":
		f.state.BusinessHours = f.pendingHours
		f.pendingHours = nil
		f.phase = phMergePolicy
		return &Turn{Question: f.question()}
	case "b", "no", "n", "wrong":
		// Discard the candidate entirely and collect hours again.
		f.pendingHours = nil
		f.phase = phHours
		return &Turn{
			Note:     "Okay, tell me the business hours again and I'll redo the summary.",
			Question: f.question(),
		}
	}
	return &Turn{
		Note:     "Just A or B, please.",
		Question: f.question(),
	}
}

// advanceStrategy handles every strategy-collecting phase. All of them
// share the simplify escape hatch and the choice-before-extractor order.
func (f *Flow) advanceStrategy(ctx context.Context, text string) (*Turn, error) {
	if simplifyTriggers[strings.ToLower(strings.TrimSpace(text))] {
		f.applySimplifiedDefaults()
		turn, err := f.finishStrategy(ctx)
		if err != nil {
			return nil, err
		}
		turn.Note = "No problem — I'll set the rest up with a safe default for you."
		return turn, nil
	}

	var ok bool
	switch f.phase {
	case phMergePolicy:
		ok = f.collectMergePolicy(ctx, text)
	case phMaxPartySize:
		ok = f.collectMaxPartySize(ctx, text)
	case phOnlineRole:
		ok = f.collectOnlineRole(ctx, text)
	case phPeakPeriod:
		ok = f.collectPeakPeriod(ctx, text)
	case phPeakRatio:
		ok = f.collectPeakRatio(ctx, text)
	case phPeakStrategy:
		ok = f.collectPeakStrategy(ctx, text)
	case phNoShow:
		ok = f.collectNoShow(ctx, text)
	}
	if !ok {
		return &Turn{
			Note:     "Just pick one of the listed options for me.",
			Question: f.question(),
		}, nil
	}

	f.phase = f.nextStrategyPhase()
	if f.phase != phRecommend {
		return &Turn{Question: f.question()}, nil
	}
	return f.finishStrategy(ctx)
}

// nextStrategyPhase finds the first unanswered strategy question. The
// simplify path fills everything, so it skips straight to the
// recommendation.
func (f *Flow) nextStrategyPhase() phase {
	s := &f.state.Strategy
	switch {
	case s.CanMergeTables == nil:
		return phMergePolicy
	case s.MaxPartySize == nil:
		return phMaxPartySize
	case s.OnlineRole == nil:
		return phOnlineRole
	case len(s.PeakPeriods) == 0:
		return phPeakPeriod
	case s.PeakOnlineQuotaRatio == nil:
		return phPeakRatio
	case s.PeakStrategy == nil:
		return phPeakStrategy
	case s.NoShowTolerance == nil:
		return phNoShow
	}
	return phRecommend
}

func (f *Flow) collectMergePolicy(ctx context.Context, text string) bool {
	set := func(canMerge bool) {
		f.state.Strategy.CanMergeTables = &canMerge
		if !canMerge {
			// No merging: the largest table bounds the party size, no
			// need to ask.
			max := MaxPartySizeFromResources(f.state.Resources)
			f.state.Strategy.MaxPartySize = &max
		}
	}
	switch normalizeChoice(text) {
	case "a", "yes", "y", "sure":
		set(true)
		return true
	case "b", "no", "n":
		set(false)
		return true
	}
	patch := f.extract(ctx, StepMergePolicy, text)
	if patch.Strategy != nil && patch.Strategy.CanMergeTables != nil {
		set(*patch.Strategy.CanMergeTables)
		return true
	}
	return false
}

func (f *Flow) collectMaxPartySize(ctx context.Context, text string) bool {
	if n, ok := firstNumber(text); ok && n > 0 {
		f.state.Strategy.MaxPartySize = &n
		return true
	}
	patch := f.extract(ctx, StepMaxPartySize, text)
	if patch.Strategy != nil && patch.Strategy.MaxPartySize != nil && *patch.Strategy.MaxPartySize > 0 {
		f.state.Strategy.MaxPartySize = patch.Strategy.MaxPartySize
		return true
	}
	return false
}

func (f *Flow) collectOnlineRole(ctx context.Context, text string) bool {
	var role string
	switch normalizeChoice(text) {
	case "a", "primary", "main":
		role = RolePrimary
	case "b", "assistant", "helper":
		role = RoleAssistant
	case "c", "minimal", "walkin":
		role = RoleMinimal
	default:
		patch := f.extract(ctx, StepOnlineRole, text)
		if patch.Strategy == nil || patch.Strategy.OnlineRole == nil || !oneOf(*patch.Strategy.OnlineRole, onlineRoles) {
			return false
		}
		role = *patch.Strategy.OnlineRole
	}
	f.state.Strategy.OnlineRole = &role
	return true
}

func (f *Flow) collectPeakPeriod(ctx context.Context, text string) bool {
	var periods []string
	switch normalizeChoice(text) {
	case "a", "weekdaylunch":
		periods = []string{PeakWeekdayLunch}
	case "b", "weekdaydinner":
		periods = []string{PeakWeekdayDinner}
	case "c", "weekendbrunch":
		periods = []string{PeakWeekendBrunch}
	case "d", "weekenddinner":
		periods = []string{PeakWeekendDinner}
	case "e", "notsure":
		periods = []string{PeakWeekendDinner}
	default:
		patch := f.extract(ctx, StepPeakPeriod, text)
		if patch.Strategy == nil || len(patch.Strategy.PeakPeriods) == 0 {
			return false
		}
		for _, p := range patch.Strategy.PeakPeriods {
			if !oneOf(p, peakPeriods) {
				return false
			}
		}
		periods = patch.Strategy.PeakPeriods
	}
	f.state.Strategy.PeakPeriods = periods
	return true
}

func (f *Flow) collectPeakRatio(ctx context.Context, text string) bool {
	var ratio float64
	switch normalizeChoice(text) {
	case "a", "80", "80%", "most":
		ratio = 0.8
	case "b", "50", "50%", "half":
		ratio = 0.5
	case "c", "20", "20%", "afew":
		ratio = 0.2
	default:
		patch := f.extract(ctx, StepPeakRatio, text)
		if patch.Strategy == nil || patch.Strategy.PeakOnlineQuotaRatio == nil || !AllowedRatio(*patch.Strategy.PeakOnlineQuotaRatio) {
			return false
		}
		ratio = *patch.Strategy.PeakOnlineQuotaRatio
	}
	f.state.Strategy.PeakOnlineQuotaRatio = &ratio
	return true
}

func (f *Flow) collectPeakStrategy(ctx context.Context, text string) bool {
	var strategy string
	switch normalizeChoice(text) {
	case "a", "onlinefirst":
		strategy = PeakOnlineFirst
	case "b", "walkinfirst":
		strategy = PeakWalkinFirst
	case "c", "noonline", "no":
		strategy = PeakNoOnline
	default:
		patch := f.extract(ctx, StepPeakStrategy, text)
		if patch.Strategy == nil || patch.Strategy.PeakStrategy == nil || !oneOf(*patch.Strategy.PeakStrategy, peakStrategies) {
			return false
		}
		strategy = *patch.Strategy.PeakStrategy
	}
	f.state.Strategy.PeakStrategy = &strategy
	return true
}

func (f *Flow) collectNoShow(ctx context.Context, text string) bool {
	var tol string
	switch normalizeChoice(text) {
	case "a", "low", "hardly":
		tol = ToleranceLow
	case "b", "medium", "tolerable":
		tol = ToleranceMedium
	case "c", "high", "acceptable":
		tol = ToleranceHigh
	default:
		patch := f.extract(ctx, StepNoShowTolerance, text)
		if patch.Strategy == nil || patch.Strategy.NoShowTolerance == nil || !oneOf(*patch.Strategy.NoShowTolerance, tolerances) {
			return false
		}
		tol = *patch.Strategy.NoShowTolerance
	}
	f.state.Strategy.NoShowTolerance = &tol
	return true
}

// applySimplifiedDefaults writes the complete fixed default strategy.
// It trades precision for forward progress when a user signals they
// cannot answer; resources, hours and duration still have to be
// collected the normal way.
func (f *Flow) applySimplifiedDefaults() {
	goal := GoalControlQueue
	role := RoleAssistant
	strategy := PeakOnlineFirst
	ratio := 0.5
	tol := ToleranceMedium
	canMerge := true
	maxParty := 8

	f.state.Strategy = StrategyDraft{
		GoalType:             &goal,
		OnlineRole:           &role,
		PeakPeriods:          []string{PeakWeekendDinner},
		PeakStrategy:         &strategy,
		PeakOnlineQuotaRatio: &ratio,
		NoShowTolerance:      &tol,
		CanMergeTables:       &canMerge,
		MaxPartySize:         &maxParty,
	}
}

// finishStrategy derives the goal type, computes the deterministic
// recommendation, asks the model for an optional overlay, and presents
// the accept/modify decision.
func (f *Flow) finishStrategy(ctx context.Context) (*Turn, error) {
	s := &f.state.Strategy

	// Goal type is derived, never asked. The simplify default wins if it
	// already set one.
	if s.GoalType == nil {
		goal := GoalKeepWalkin
		switch *s.OnlineRole {
		case RolePrimary:
			goal = GoalFillSeats
		case RoleAssistant:
			goal = GoalControlQueue
		}
		s.GoalType = &goal
	}

	f.state.CapacityHint = CapacityFromResources(f.state.Resources)

	f.draftBookingHours = ComputeBookingHours(f.state.BusinessHours, f.state.DurationSec)
	if ok, _ := ValidateBusinessHours(f.draftBookingHours); !ok {
		f.draftBookingHours = f.state.BusinessHours
	}

	f.draftRatio = 0.5
	if s.PeakOnlineQuotaRatio != nil {
		f.draftRatio = *s.PeakOnlineQuotaRatio
	}
	f.draftPeakStrategy = *s.PeakStrategy
	f.recomputeDraftPolicy(30)

	// One optional enrichment pass: let the model look at the draft and
	// propose a patch. Its output is validated and clamped, never
	// trusted directly, and a failure simply keeps the deterministic
	// draft.
	if !f.seeded {
		f.seeded = true
		patch := f.extract(ctx, StepRecommendationPatch,
			"Review the draft recommendation and propose adjustments if any are needed; output {} if not.")
		f.applyRecommendationPatch(patch)
	}

	f.phase = phRecommend
	return &Turn{Question: f.question()}, nil
}

func (f *Flow) recomputeDraftPolicy(slotMinutes int) {
	if f.draftPeakStrategy == PeakNoOnline {
		f.draftRatio = 0.0
	}
	if f.draftRatio == 0.0 {
		f.draftPeakStrategy = PeakNoOnline
	}
	s := &f.state.Strategy
	f.draftPolicy = ComputePeakPolicy(
		f.state.CapacityHint,
		f.state.Resources,
		f.state.DurationSec,
		f.draftRatio,
		f.draftPeakStrategy,
		*s.GoalType,
		*s.NoShowTolerance,
		slotMinutes,
	)
}

// applyRecommendationPatch merges a model-proposed overlay into the
// draft, clamping every numeric field and dropping anything outside the
// allowed sets, then recomputes the policy so the numbers stay
// consistent.
func (f *Flow) applyRecommendationPatch(patch *Patch) {
	if len(patch.BookingHours) > 0 {
		if ok, _ := ValidateBusinessHours(patch.BookingHours); ok {
			f.draftBookingHours = patch.BookingHours
		}
	}

	slotMinutes := f.draftPolicy.SlotMinutes
	if sp := patch.Strategy; sp != nil {
		if sp.PeakStrategy != nil && oneOf(*sp.PeakStrategy, peakStrategies) {
			f.draftPeakStrategy = *sp.PeakStrategy
		}
		if sp.PeakOnlineQuotaRatio != nil && AllowedRatio(*sp.PeakOnlineQuotaRatio) {
			f.draftRatio = *sp.PeakOnlineQuotaRatio
		}
		if sp.PeakSlotMinutes != nil {
			slotMinutes = ClampInt(*sp.PeakSlotMinutes, 10, 120)
		}
		if sp.PeakOnlineSeatBudget != nil {
			f.draftPolicy.SeatBudget = ClampInt(*sp.PeakOnlineSeatBudget, 0, f.state.CapacityHint)
		}
		if sp.PeakOnlinePartyLimitPerSlot != nil {
			f.draftPolicy.PartyLimitPerSlot = ClampInt(*sp.PeakOnlinePartyLimitPerSlot, 0, 999)
		}
	}

	f.recomputeDraftPolicy(slotMinutes)
}

func (f *Flow) advanceRecommend(text string) (*Turn, error) {
	switch normalizeChoice(text) {
	case "a", "ok", "accept", "yes", "y", "good":
		return f.emitFinal()
	case "b", "adjust", "modify", "change":
		f.phase = phModify
		return &Turn{Question: f.question()}, nil
	}
	return &Turn{
		Note:     "Just A or B, please.",
		Question: f.question(),
	}, nil
}

func (f *Flow) advanceModify(ctx context.Context, text string) *Turn {
	patch := f.extract(ctx, StepRecommendationPatch, text)
	if len(patch.BookingHours) > 0 {
		if ok, reason := ValidateBusinessHours(patch.BookingHours); !ok {
			patch.BookingHours = nil
			f.applyRecommendationPatch(patch)
			f.phase = phRecommend
			return &Turn{
				Note:     fmt.Sprintf("I couldn't read the new times (%s), so that part stays as it was.", reason),
				Question: f.question(),
			}
		}
	}
	f.applyRecommendationPatch(patch)
	f.phase = phRecommend
	return &Turn{Question: f.question()}
}

// emitFinal freezes the accepted draft into the state, assembles the
// terminal configuration and runs the final validator. A failure here is
// surfaced as ErrInconsistent, never silently patched.
func (f *Flow) emitFinal() (*Turn, error) {
	s := &f.state.Strategy
	s.PeakStrategy = &f.draftPeakStrategy
	s.PeakOnlineQuotaRatio = &f.draftRatio
	s.PeakSlotMinutes = &f.draftPolicy.SlotMinutes
	s.PeakOnlineSeatBudget = &f.draftPolicy.SeatBudget
	s.PeakOnlinePartyLimitPerSlot = &f.draftPolicy.PartyLimitPerSlot
	f.state.BookingHours = f.draftBookingHours

	// Last-resort defaults, mirroring what a host would assume.
	if s.CanMergeTables == nil {
		canMerge := true
		s.CanMergeTables = &canMerge
	}
	if s.MaxPartySize == nil {
		maxParty := 8
		s.MaxPartySize = &maxParty
	}

	f.state.CapacityHint = CapacityFromResources(f.state.Resources)

	final := &Config{
		StoreID:       f.state.StoreID,
		StoreName:     f.state.StoreName,
		CapacityHint:  f.state.CapacityHint,
		Resources:     f.state.Resources,
		DurationSec:   f.state.DurationSec,
		BusinessHours: f.state.BusinessHours,
		BookingHours:  f.state.BookingHours,
		Strategy: Strategy{
			GoalType:                    *s.GoalType,
			OnlineRole:                  *s.OnlineRole,
			PeakPeriods:                 s.PeakPeriods,
			PeakStrategy:                *s.PeakStrategy,
			PeakOnlineQuotaRatio:        *s.PeakOnlineQuotaRatio,
			NoShowTolerance:             *s.NoShowTolerance,
			CanMergeTables:              *s.CanMergeTables,
			MaxPartySize:                *s.MaxPartySize,
			PeakSlotMinutes:             f.draftPolicy.SlotMinutes,
			PeakOnlineSeatBudget:        f.draftPolicy.SeatBudget,
			PeakOnlinePartyLimitPerSlot: f.draftPolicy.PartyLimitPerSlot,
		},
	}

	if ok, reason := ValidateFinal(final); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInconsistent, reason)
	}

	f.final = final
	f.phase = phDone
	return &Turn{
		Note:  "All set — your online booking configuration is ready.",
		Done:  true,
		Final: final,
	}, nil
}

// question renders the prompt for the current phase.
func (f *Flow) question() string {
	switch f.phase {
	case phStoreName:
		return "What's the name of your restaurant?"
	case phResources:
		return "What table types do you have? For example: five 4-seat tables, two 6-seat tables — you can tell me all at once."
	case phDuration:
		return "Roughly how long does a party usually stay?\nA. About an hour\nB. An hour and a half\nC. About two hours"
	case phHours:
		return "What are your usual business hours? For example: every day from 8am to 5pm."
	case phHoursConfirm:
		return fmt.Sprintf("Let me read that back: %s\nDid I get it right?\nA. Yes\nB. No, I need to change it", SummarizeHours(f.pendingHours))
	case phMergePolicy:
		return "If a bigger group shows up, can tables be pushed together?\nA. Yes\nB. No"
	case phMaxPartySize:
		return "What's the largest party you can seat together? For example 8, 10 or 12 people."
	case phOnlineRole:
		return "What role should online booking play for you?\nA. The primary way in (most guests book ahead)\nB. An assistant (just keep the rush under control)\nC. A small side door (walk-ins come first)"
	case phPeakPeriod:
		return "When does the room usually fill up?\nA. Weekday lunch\nB. Weekday dinner\nC. Weekend brunch\nD. Weekend dinner\nE. Not sure — let the system pick"
	case phPeakRatio:
		return "At your busiest time, how much of the room should online bookings get?\nA. Most of it (about 80%)\nB. About half (50%)\nC. A small share (20%)"
	case phPeakStrategy:
		return "During the rush, what works best?\nA. Let online bookings in first — easier to control\nB. Keep most tables for walk-ins\nC. Close online booking during the rush"
	case phNoShow:
		return "If 1-2 parties out of 10 online bookings don't show up, is that acceptable?\nA. Hard to accept\nB. Tolerable\nC. Acceptable"
	case phRecommend:
		return f.renderRecommendation()
	case phModify:
		return "No problem — what would you like to change? You can say things like:\n" +
			"- \"bookable times should be 09:00-16:00 every day\"\n" +
			"- \"at most 2 online parties per 30 minutes during the rush\"\n" +
			"- \"keep at most 15 seats online during the rush\"\n" +
			"- \"no online bookings during the rush\""
	}
	return ""
}

func (f *Flow) renderRecommendation() string {
	var b strings.Builder
	b.WriteString("Here's the online booking setup I'd suggest — quick check:\n")
	fmt.Fprintf(&b, "1) Bookable seating times: %s\n", SummarizeHours(f.draftBookingHours))
	if f.draftPeakStrategy == PeakNoOnline {
		b.WriteString("2) During your busiest period: keep online booking closed (everything stays walk-in).\n")
	} else {
		b.WriteString("2) During your busiest period:\n")
		fmt.Fprintf(&b, "   - buckets of %d minutes\n", f.draftPolicy.SlotMinutes)
		fmt.Fprintf(&b, "   - online seat budget: about %d seats\n", f.draftPolicy.SeatBudget)
		fmt.Fprintf(&b, "   - at most ~%d new online parties per bucket\n", f.draftPolicy.PartyLimitPerSlot)
		fmt.Fprintf(&b, "   (typical party: %d people; one party spans about %d buckets)\n",
			f.draftPolicy.TypicalPartySize, f.draftPolicy.DurationSlots)
	}
	b.WriteString("\nA. Use this as is\nB. I'd like to adjust it")
	return b.String()
}

// normalizeChoice flattens a short reply for literal choice matching:
// lowercased, with spaces, dots and a leading "option" stripped.
func normalizeChoice(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.TrimPrefix(t, "option")
	t = strings.ReplaceAll(t, " ", "")
	t = strings.TrimSuffix(t, ".")
	return t
}

// firstNumber pulls the first unsigned integer out of free text.
func firstNumber(text string) (int, bool) {
	n := 0
	found := false
	for _, r := range text {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			found = true
			continue
		}
		if found {
			break
		}
	}
	return n, found
}
