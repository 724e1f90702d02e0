package extract

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/seatflow/onboard/onboarding"
)

// Rules is a deterministic, model-free extraction backing. It covers the
// common phrasings well enough to run a whole session offline, and it is
// the backing the tests exercise: identical text and state always produce
// the identical patch. Anything it cannot read yields an empty patch,
// never a guess.
type Rules struct{}

// NewRules returns the rule-based extractor.
func NewRules() *Rules {
	return &Rules{}
}

var (
	resourceRe = regexp.MustCompile(`(\d+)[-\s]?(?:seat|seater|person|people|top)\w*(?:\s+tables?)?\s*(?:[x×*]\s*)?(\d+)`)
	timeSpanRe = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s*(?:-|–|to)\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
	dayRangeRe = regexp.MustCompile(`(mon|tue|wed|thu|fri|sat|sun)\w*\s+(?:to|through)\s+(mon|tue|wed|thu|fri|sat|sun)\w*`)
	closedRe   = regexp.MustCompile(`closed(?:\s+on)?\s+(mon|tue|wed|thu|fri|sat|sun)\w*`)
	dayWordRe  = regexp.MustCompile(`\b(mon|tue|wed|thu|fri|sat|sun)\w*\b`)
	numberRe   = regexp.MustCompile(`\d+`)

	slotMinutesRe = regexp.MustCompile(`(?:every|per)\s+(\d+)\s*min`)
	partyLimitRe  = regexp.MustCompile(`(?:at\s+most|max(?:imum)?)\s+(\d+)\s+(?:online\s+)?(?:part|group|booking)`)
	seatBudgetRe  = regexp.MustCompile(`(\d+)\s+seats?`)
)

var dayIndex = map[string]int{
	"mon": 0, "tue": 1, "wed": 2, "thu": 3, "fri": 4, "sat": 5, "sun": 6,
}

// Extract implements onboarding.Extractor.
func (r *Rules) Extract(_ context.Context, step onboarding.Step, userText string, state *onboarding.State) (*onboarding.Patch, error) {
	text := strings.ToLower(strings.TrimSpace(userText))

	switch step {
	case onboarding.StepStoreName:
		name := strings.Trim(strings.TrimSpace(userText), `"'`)
		if name == "" {
			return &onboarding.Patch{}, nil
		}
		return &onboarding.Patch{StoreName: &name}, nil

	case onboarding.StepResources:
		return r.extractResources(text), nil

	case onboarding.StepDuration:
		return r.extractDuration(text), nil

	case onboarding.StepBusinessHours:
		hours := r.parseHours(text)
		if len(hours) == 0 {
			return &onboarding.Patch{}, nil
		}
		return &onboarding.Patch{BusinessHours: hours}, nil

	case onboarding.StepMergePolicy:
		return r.extractMergePolicy(text), nil

	case onboarding.StepMaxPartySize:
		if m := numberRe.FindString(text); m != "" {
			if n, err := strconv.Atoi(m); err == nil && n > 0 {
				return &onboarding.Patch{Strategy: &onboarding.StrategyPatch{MaxPartySize: &n}}, nil
			}
		}
		return &onboarding.Patch{}, nil

	case onboarding.StepOnlineRole:
		return r.extractOnlineRole(text), nil

	case onboarding.StepPeakPeriod:
		return r.extractPeakPeriod(text), nil

	case onboarding.StepPeakRatio:
		return r.extractPeakRatio(text), nil

	case onboarding.StepPeakStrategy:
		return r.extractPeakStrategy(text), nil

	case onboarding.StepNoShowTolerance:
		return r.extractNoShow(text), nil

	case onboarding.StepBusinessHoursConfirm:
		// Confirmation is a literal yes/no; nothing to extract.
		return &onboarding.Patch{}, nil

	case onboarding.StepRecommendationPatch:
		return r.extractRecommendationPatch(text), nil
	}

	return nil, fmt.Errorf("unknown step: %s", step)
}

func (r *Rules) extractResources(text string) *onboarding.Patch {
	matches := resourceRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return &onboarding.Patch{}
	}
	resources := make([]onboarding.Resource, 0, len(matches))
	for _, m := range matches {
		party, err1 := strconv.Atoi(m[1])
		spots, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			continue
		}
		resources = append(resources, onboarding.Resource{PartySize: party, SpotsTotal: spots})
	}
	if len(resources) == 0 {
		return &onboarding.Patch{}
	}
	return &onboarding.Patch{Resources: resources}
}

func (r *Rules) extractDuration(text string) *onboarding.Patch {
	var sec int
	switch {
	case strings.Contains(text, "hour and a half"), strings.Contains(text, "90"), strings.Contains(text, "1.5"):
		sec = 5400
	case strings.Contains(text, "two hour"), strings.Contains(text, "2 hour"), strings.Contains(text, "120"):
		sec = 7200
	case strings.Contains(text, "hour"), strings.Contains(text, "60"):
		sec = 3600
	default:
		return &onboarding.Patch{}
	}
	return &onboarding.Patch{DurationSec: &sec}
}

// parseHours reads phrasings like "every day 08:00-17:00",
// "monday to saturday 8am to 5pm, closed sunday" or "weekends 1000-2200"
// into per-day windows. A bare time range applies to the whole week.
func (r *Rules) parseHours(text string) []onboarding.HourSpan {
	spans := timeSpanRe.FindAllStringSubmatch(text, -1)
	if len(spans) == 0 {
		return nil
	}
	// Day ranges like "monday to saturday" look like a time span to the
	// simpler regexes, so resolve the day set first.
	days := r.parseDays(text)
	if len(days) == 0 {
		return nil
	}

	// Use the last time span in the text: when a day range is present
	// ("monday to saturday 08:00-17:00") the first "span" match can be
	// part of the day phrase.
	var open, close string
	for _, m := range spans {
		o, c, ok := normalizeSpan(m)
		if ok {
			open, close = o, c
		}
	}
	if open == "" {
		return nil
	}

	hours := make([]onboarding.HourSpan, 0, len(days))
	for _, d := range days {
		hours = append(hours, onboarding.HourSpan{
			Open:  onboarding.DayTime{Day: d, Time: open},
			Close: onboarding.DayTime{Day: d, Time: close},
		})
	}
	return hours
}

func normalizeSpan(m []string) (string, string, bool) {
	openH, err := strconv.Atoi(m[1])
	if err != nil {
		return "", "", false
	}
	closeH, err := strconv.Atoi(m[4])
	if err != nil {
		return "", "", false
	}
	openM, closeM := 0, 0
	if m[2] != "" {
		openM, _ = strconv.Atoi(m[2])
	}
	if m[5] != "" {
		closeM, _ = strconv.Atoi(m[5])
	}
	if m[3] == "pm" && openH < 12 {
		openH += 12
	}
	if m[6] == "pm" && closeH < 12 {
		closeH += 12
	}
	if openH > 23 || closeH > 23 || openM > 59 || closeM > 59 {
		return "", "", false
	}
	// A bare "8 to 5" with no am/pm markers almost always means
	// 08:00-17:00; treat a close before the open as a pm close.
	if closeH < openH && m[6] == "" {
		closeH += 12
	}
	return fmt.Sprintf("%02d%02d", openH, openM), fmt.Sprintf("%02d%02d", closeH, closeM), true
}

func (r *Rules) parseDays(text string) []int {
	closed := map[int]bool{}
	for _, m := range closedRe.FindAllStringSubmatch(text, -1) {
		closed[dayIndex[m[1]]] = true
	}

	include := map[int]bool{}
	switch {
	case strings.Contains(text, "every day"), strings.Contains(text, "everyday"),
		strings.Contains(text, "daily"), strings.Contains(text, "all week"):
		for d := 0; d < 7; d++ {
			include[d] = true
		}
	case dayRangeRe.MatchString(text):
		m := dayRangeRe.FindStringSubmatch(text)
		from, to := dayIndex[m[1]], dayIndex[m[2]]
		for d := from; ; d = (d + 1) % 7 {
			include[d] = true
			if d == to {
				break
			}
		}
	case strings.Contains(text, "weekend"):
		include[5], include[6] = true, true
	case strings.Contains(text, "weekday"):
		for d := 0; d < 5; d++ {
			include[d] = true
		}
	default:
		stripped := closedRe.ReplaceAllString(text, "")
		for _, m := range dayWordRe.FindAllStringSubmatch(stripped, -1) {
			include[dayIndex[m[1]]] = true
		}
		if len(include) == 0 {
			// No day wording at all: the time range applies all week.
			for d := 0; d < 7; d++ {
				include[d] = true
			}
		}
	}

	days := make([]int, 0, 7)
	for d := 0; d < 7; d++ {
		if include[d] && !closed[d] {
			days = append(days, d)
		}
	}
	return days
}

func (r *Rules) extractMergePolicy(text string) *onboarding.Patch {
	var canMerge bool
	switch {
	case strings.Contains(text, "cannot"), strings.Contains(text, "can't"),
		strings.Contains(text, "no"):
		canMerge = false
	case strings.Contains(text, "yes"), strings.Contains(text, "can"),
		strings.Contains(text, "sure"):
		canMerge = true
	default:
		return &onboarding.Patch{}
	}
	return &onboarding.Patch{Strategy: &onboarding.StrategyPatch{CanMergeTables: &canMerge}}
}

func (r *Rules) extractOnlineRole(text string) *onboarding.Patch {
	var role string
	switch {
	case strings.Contains(text, "primary"), strings.Contains(text, "main"):
		role = onboarding.RolePrimary
	case strings.Contains(text, "assist"), strings.Contains(text, "help"):
		role = onboarding.RoleAssistant
	case strings.Contains(text, "minimal"), strings.Contains(text, "walk"):
		role = onboarding.RoleMinimal
	default:
		return &onboarding.Patch{}
	}
	return &onboarding.Patch{Strategy: &onboarding.StrategyPatch{OnlineRole: &role}}
}

func (r *Rules) extractPeakPeriod(text string) *onboarding.Patch {
	var periods []string
	add := func(p string) {
		periods = append(periods, p)
	}
	weekend := strings.Contains(text, "weekend")
	weekday := strings.Contains(text, "weekday")
	switch {
	case weekday && strings.Contains(text, "lunch"):
		add(onboarding.PeakWeekdayLunch)
	case weekday && strings.Contains(text, "dinner"):
		add(onboarding.PeakWeekdayDinner)
	case weekend && (strings.Contains(text, "brunch") || strings.Contains(text, "lunch")):
		add(onboarding.PeakWeekendBrunch)
	case weekend && strings.Contains(text, "dinner"):
		add(onboarding.PeakWeekendDinner)
	}
	if len(periods) == 0 {
		return &onboarding.Patch{}
	}
	return &onboarding.Patch{Strategy: &onboarding.StrategyPatch{PeakPeriods: periods}}
}

func (r *Rules) extractPeakRatio(text string) *onboarding.Patch {
	var ratio float64
	switch {
	case strings.Contains(text, "80"), strings.Contains(text, "most"):
		ratio = 0.8
	case strings.Contains(text, "50"), strings.Contains(text, "half"):
		ratio = 0.5
	case strings.Contains(text, "20"), strings.Contains(text, "few"), strings.Contains(text, "small"):
		ratio = 0.2
	case strings.Contains(text, "none"), strings.Contains(text, "zero"):
		ratio = 0.0
	default:
		return &onboarding.Patch{}
	}
	return &onboarding.Patch{Strategy: &onboarding.StrategyPatch{PeakOnlineQuotaRatio: &ratio}}
}

func (r *Rules) extractPeakStrategy(text string) *onboarding.Patch {
	var strategy string
	switch {
	case strings.Contains(text, "no online"), strings.Contains(text, "close"),
		strings.Contains(text, "shut"):
		strategy = onboarding.PeakNoOnline
	case strings.Contains(text, "walk"):
		strategy = onboarding.PeakWalkinFirst
	case strings.Contains(text, "online"):
		strategy = onboarding.PeakOnlineFirst
	default:
		return &onboarding.Patch{}
	}
	return &onboarding.Patch{Strategy: &onboarding.StrategyPatch{PeakStrategy: &strategy}}
}

func (r *Rules) extractNoShow(text string) *onboarding.Patch {
	var tol string
	switch {
	case strings.Contains(text, "hard"), strings.Contains(text, "not accept"),
		strings.Contains(text, "low"):
		tol = onboarding.ToleranceLow
	case strings.Contains(text, "toler"), strings.Contains(text, "barely"),
		strings.Contains(text, "medium"):
		tol = onboarding.ToleranceMedium
	case strings.Contains(text, "accept"), strings.Contains(text, "fine"),
		strings.Contains(text, "high"), strings.Contains(text, "ok"):
		tol = onboarding.ToleranceHigh
	default:
		return &onboarding.Patch{}
	}
	return &onboarding.Patch{Strategy: &onboarding.StrategyPatch{NoShowTolerance: &tol}}
}

// extractRecommendationPatch reads modify-loop requests: new bookable
// times, slot length, per-slot party limits, seat budgets, or turning
// online booking off during the rush.
func (r *Rules) extractRecommendationPatch(text string) *onboarding.Patch {
	patch := &onboarding.Patch{}
	sp := &onboarding.StrategyPatch{}

	if strings.Contains(text, "no online") {
		s := onboarding.PeakNoOnline
		sp.PeakStrategy = &s
	}
	if m := slotMinutesRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			sp.PeakSlotMinutes = &n
		}
	}
	if m := partyLimitRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			sp.PeakOnlinePartyLimitPerSlot = &n
		}
	}
	if m := seatBudgetRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			sp.PeakOnlineSeatBudget = &n
		}
	}
	if strings.Contains(text, "time") || strings.Contains(text, ":") {
		if hours := r.parseHours(text); len(hours) > 0 {
			patch.BookingHours = hours
		}
	}

	if sp.PeakStrategy != nil || sp.PeakSlotMinutes != nil ||
		sp.PeakOnlinePartyLimitPerSlot != nil || sp.PeakOnlineSeatBudget != nil {
		patch.Strategy = sp
	}
	return patch
}
