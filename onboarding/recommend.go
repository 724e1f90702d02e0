package onboarding

import (
	"fmt"
	"math"
)

// PeakPolicy is the slot-based admission policy for the busiest periods:
// how many online seats to budget and how many new online parties to admit
// per time bucket.
type PeakPolicy struct {
	SlotMinutes       int `json:"peak_slot_minutes"`
	SeatBudget        int `json:"peak_online_seat_budget"`
	PartyLimitPerSlot int `json:"peak_online_party_limit_per_slot"`
	TypicalPartySize  int `json:"typical_party_size"`
	DurationSlots     int `json:"duration_slots"`
}

// HHMMToMinutes converts a four-digit "HHMM" string to minutes past
// midnight. Short strings are zero-padded on the left.
func HHMMToMinutes(hhmm string) int {
	for len(hhmm) < 4 {
		hhmm = "0" + hhmm
	}
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[2]-'0')*10 + int(hhmm[3]-'0')
	return h*60 + m
}

// MinutesToHHMM converts minutes past midnight back to "HHMM".
func MinutesToHHMM(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d%02d", minutes/60, minutes%60)
}

// ComputeBookingHours derives the latest-acceptable online seating start
// per operating window: close minus the seating duration. Windows too
// short to seat even one party keep their original close time rather than
// inverting. Cross-day windows pass through unchanged.
func ComputeBookingHours(hours []HourSpan, durationSec int) []HourSpan {
	durMin := durationSec / 60
	if durMin < 0 {
		durMin = 0
	}

	out := make([]HourSpan, 0, len(hours))
	for _, h := range hours {
		if h.Open.Day != h.Close.Day {
			out = append(out, h)
			continue
		}

		openMin := HHMMToMinutes(h.Open.Time)
		closeMin := HHMMToMinutes(h.Close.Time)
		lastStart := closeMin - durMin
		if lastStart < openMin {
			lastStart = openMin
		}

		out = append(out, HourSpan{
			Open:  DayTime{Day: h.Open.Day, Time: h.Open.Time},
			Close: DayTime{Day: h.Open.Day, Time: MinutesToHHMM(lastStart)},
		})
	}
	return out
}

// TypicalPartySize estimates the representative party size as the
// spots-weighted median of table sizes. The median resists distortion by
// a single outlier table type in a way the mean does not.
func TypicalPartySize(resources []Resource) int {
	type weighted struct {
		size   int
		weight int
	}
	items := make([]weighted, 0, len(resources))
	totalWeight := 0
	for _, r := range resources {
		if r.SpotsTotal <= 0 {
			continue
		}
		items = append(items, weighted{size: r.PartySize, weight: r.SpotsTotal})
		totalWeight += r.SpotsTotal
	}
	if len(items) == 0 {
		return MaxPartySizeFromResources(resources)
	}

	// Insertion sort; table type counts are tiny.
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j-1].size > items[j].size; j-- {
			items[j-1], items[j] = items[j], items[j-1]
		}
	}

	half := float64(totalWeight+1) / 2
	cum := 0
	for _, it := range items {
		cum += it.weight
		if float64(cum) >= half {
			return it.size
		}
	}
	return items[len(items)-1].size
}

// ComputePeakPolicy sizes the peak-hour online admission policy from the
// collected slots. It is pure: the model is never consulted here.
//
// seat budget = floor(capacity x ratio) adjusted by goal and no-show
// factors, clamped to [0, capacity]; party limit per slot = budget over
// (typical party size x slots one party occupies), bumped to 1 when the
// budget is positive but the division floors to zero.
func ComputePeakPolicy(capacityHint int, resources []Resource, durationSec int, ratio float64, peakStrategy, goalType, noShowTolerance string, slotMinutes int) PeakPolicy {
	if slotMinutes < 10 {
		slotMinutes = 10
	}
	if slotMinutes > 120 {
		slotMinutes = 120
	}

	typical := TypicalPartySize(resources)
	durationMin := float64(durationSec) / 60.0
	k := int(math.Ceil(durationMin / float64(slotMinutes)))
	if k < 1 {
		k = 1
	}

	if peakStrategy == PeakNoOnline {
		return PeakPolicy{
			SlotMinutes:       slotMinutes,
			SeatBudget:        0,
			PartyLimitPerSlot: 0,
			TypicalPartySize:  typical,
			DurationSlots:     k,
		}
	}

	base := math.Floor(float64(capacityHint) * ratio)

	goalFactor := 1.00
	switch goalType {
	case GoalFillSeats:
		goalFactor = 1.05
	case GoalKeepWalkin:
		goalFactor = 0.80
	}

	nsFactor := 1.00
	switch noShowTolerance {
	case ToleranceLow:
		nsFactor = 0.90
	case ToleranceHigh:
		nsFactor = 1.05
	}

	seatBudget := int(math.Floor(base * goalFactor * nsFactor))
	if seatBudget < 0 {
		seatBudget = 0
	}
	if seatBudget > capacityHint {
		seatBudget = capacityHint
	}

	denom := typical * k
	if denom < 1 {
		denom = 1
	}
	partyLimit := seatBudget / denom
	if seatBudget > 0 && partyLimit == 0 {
		partyLimit = 1
	}

	return PeakPolicy{
		SlotMinutes:       slotMinutes,
		SeatBudget:        seatBudget,
		PartyLimitPerSlot: partyLimit,
		TypicalPartySize:  typical,
		DurationSlots:     k,
	}
}

// ClampInt forces v into [lo, hi]. Used on every numeric overlay the
// model proposes during the accept/modify loop.
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
