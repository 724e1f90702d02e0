package onboarding

import (
	"fmt"
	"sort"
	"strings"
)

// DayNames maps day indices to display names (0=Monday .. 6=Sunday).
var DayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// FormatHHMM renders "0800" as "08:00".
func FormatHHMM(hhmm string) string {
	for len(hhmm) < 4 {
		hhmm = "0" + hhmm
	}
	return hhmm[:2] + ":" + hhmm[2:]
}

// SummarizeHours renders a compact weekly schedule, merging consecutive
// days with identical intervals into ranges:
//
//	Mon-Sat 08:00-17:00; Sun closed
//
// Days with several windows list them all; cross-day windows are rendered
// with an explicit "next day" marker.
func SummarizeHours(hours []HourSpan) string {
	perDay := make([][]HourSpan, 7)
	for _, h := range hours {
		d := h.Open.Day
		if d < 0 || d > 6 {
			continue
		}
		perDay[d] = append(perDay[d], h)
	}

	// Per-day signature: sorted intervals joined into one string, so that
	// identical days compare equal.
	sigs := make([]string, 7)
	for d := 0; d < 7; d++ {
		intervals := perDay[d]
		if len(intervals) == 0 {
			sigs[d] = "closed"
			continue
		}
		sort.SliceStable(intervals, func(i, j int) bool {
			return intervals[i].Open.Time < intervals[j].Open.Time
		})
		parts := make([]string, 0, len(intervals))
		for _, it := range intervals {
			if it.Open.Day == it.Close.Day {
				parts = append(parts, fmt.Sprintf("%s-%s", FormatHHMM(it.Open.Time), FormatHHMM(it.Close.Time)))
			} else {
				parts = append(parts, fmt.Sprintf("%s-next day %s", FormatHHMM(it.Open.Time), FormatHHMM(it.Close.Time)))
			}
		}
		sigs[d] = strings.Join(parts, ", ")
	}

	var out []string
	for i := 0; i < 7; {
		j := i
		for j+1 < 7 && sigs[j+1] == sigs[i] {
			j++
		}
		label := DayNames[i]
		if j > i {
			label = DayNames[i] + "-" + DayNames[j]
		}
		out = append(out, label+" "+sigs[i])
		i = j + 1
	}
	return strings.Join(out, "; ")
}

// SummarizeResources renders the table inventory sorted by party size,
// e.g. "4-seat x5, 6-seat x4, 8-seat x1".
func SummarizeResources(resources []Resource) string {
	if len(resources) == 0 {
		return "(none)"
	}
	sorted := make([]Resource, len(resources))
	copy(sorted, resources)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PartySize < sorted[j].PartySize
	})
	parts := make([]string, 0, len(sorted))
	for _, r := range sorted {
		parts = append(parts, fmt.Sprintf("%d-seat x%d", r.PartySize, r.SpotsTotal))
	}
	return strings.Join(parts, ", ")
}
