package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHHMMConversions(t *testing.T) {
	assert.Equal(t, 0, HHMMToMinutes("0000"))
	assert.Equal(t, 510, HHMMToMinutes("0830"))
	assert.Equal(t, 1020, HHMMToMinutes("1700"))

	assert.Equal(t, "0000", MinutesToHHMM(0))
	assert.Equal(t, "0830", MinutesToHHMM(510))
	assert.Equal(t, "1530", MinutesToHHMM(930))
	assert.Equal(t, "0000", MinutesToHHMM(-5))
}

func TestComputeBookingHours(t *testing.T) {
	hours := []HourSpan{
		{Open: DayTime{Day: 0, Time: "0800"}, Close: DayTime{Day: 0, Time: "1700"}},
	}

	out := ComputeBookingHours(hours, 5400)
	require.Len(t, out, 1)
	assert.Equal(t, "0800", out[0].Open.Time)
	assert.Equal(t, "1530", out[0].Close.Time, "last seatable start is close minus duration")

	// A window shorter than the stay keeps its open time as the last
	// start instead of inverting.
	short := []HourSpan{
		{Open: DayTime{Day: 2, Time: "1100"}, Close: DayTime{Day: 2, Time: "1200"}},
	}
	out = ComputeBookingHours(short, 7200)
	require.Len(t, out, 1)
	assert.Equal(t, "1100", out[0].Close.Time)

	// Cross-day windows pass through untouched.
	crossDay := []HourSpan{
		{Open: DayTime{Day: 5, Time: "2000"}, Close: DayTime{Day: 6, Time: "0200"}},
	}
	out = ComputeBookingHours(crossDay, 5400)
	require.Len(t, out, 1)
	assert.Equal(t, crossDay[0], out[0])
}

func TestTypicalPartySize(t *testing.T) {
	// Spots-weighted median: 5x4-seat, 4x6-seat, 1x8-seat -> 6.
	res := []Resource{
		{PartySize: 4, SpotsTotal: 5},
		{PartySize: 6, SpotsTotal: 4},
		{PartySize: 8, SpotsTotal: 1},
	}
	assert.Equal(t, 6, TypicalPartySize(res))

	// A single dominant table type wins regardless of outliers.
	res = []Resource{
		{PartySize: 2, SpotsTotal: 10},
		{PartySize: 12, SpotsTotal: 1},
	}
	assert.Equal(t, 2, TypicalPartySize(res))

	// All spot counts zero: fall back to the largest table.
	res = []Resource{
		{PartySize: 4, SpotsTotal: 0},
		{PartySize: 6, SpotsTotal: 0},
	}
	assert.Equal(t, 6, TypicalPartySize(res))

	// Order of input must not matter.
	res = []Resource{
		{PartySize: 8, SpotsTotal: 1},
		{PartySize: 4, SpotsTotal: 5},
		{PartySize: 6, SpotsTotal: 4},
	}
	assert.Equal(t, 6, TypicalPartySize(res))
}

func TestComputePeakPolicy(t *testing.T) {
	res := []Resource{
		{PartySize: 4, SpotsTotal: 5},
		{PartySize: 6, SpotsTotal: 4},
		{PartySize: 8, SpotsTotal: 1},
	}

	p := ComputePeakPolicy(52, res, 5400, 0.5, PeakOnlineFirst, GoalControlQueue, ToleranceMedium, 30)
	assert.Equal(t, 30, p.SlotMinutes)
	assert.Equal(t, 26, p.SeatBudget, "floor(52 * 0.5) with neutral factors")
	assert.Equal(t, 6, p.TypicalPartySize)
	assert.Equal(t, 3, p.DurationSlots, "90 minutes over 30-minute buckets")
	assert.Equal(t, 1, p.PartyLimitPerSlot, "26 / (6 * 3)")
}

func TestComputePeakPolicyFactors(t *testing.T) {
	res := []Resource{{PartySize: 4, SpotsTotal: 10}}

	// fill_seats and high tolerance both push the budget up.
	p := ComputePeakPolicy(40, res, 3600, 0.5, PeakOnlineFirst, GoalFillSeats, ToleranceHigh, 30)
	assert.Equal(t, 22, p.SeatBudget, "floor(floor(40*0.5) * 1.05 * 1.05)")

	// keep_walkin and low tolerance both pull it down.
	p = ComputePeakPolicy(40, res, 3600, 0.5, PeakOnlineFirst, GoalKeepWalkin, ToleranceLow, 30)
	assert.Equal(t, 14, p.SeatBudget, "floor(floor(40*0.5) * 0.80 * 0.90)")
}

func TestComputePeakPolicyNoOnline(t *testing.T) {
	res := []Resource{{PartySize: 4, SpotsTotal: 10}}

	p := ComputePeakPolicy(40, res, 5400, 0.0, PeakNoOnline, GoalControlQueue, ToleranceMedium, 30)
	assert.Equal(t, 0, p.SeatBudget)
	assert.Equal(t, 0, p.PartyLimitPerSlot)
	assert.Equal(t, 4, p.TypicalPartySize, "diagnostics still computed")

	// no_online wins even when a nonzero ratio is passed alongside it.
	p = ComputePeakPolicy(40, res, 5400, 0.8, PeakNoOnline, GoalControlQueue, ToleranceMedium, 30)
	assert.Equal(t, 0, p.SeatBudget)
	assert.Equal(t, 0, p.PartyLimitPerSlot)
}

func TestComputePeakPolicyClamps(t *testing.T) {
	res := []Resource{{PartySize: 4, SpotsTotal: 2}}

	// Slot minutes clamp to [10, 120].
	p := ComputePeakPolicy(8, res, 3600, 0.5, PeakOnlineFirst, GoalControlQueue, ToleranceMedium, 5)
	assert.Equal(t, 10, p.SlotMinutes)
	p = ComputePeakPolicy(8, res, 3600, 0.5, PeakOnlineFirst, GoalControlQueue, ToleranceMedium, 500)
	assert.Equal(t, 120, p.SlotMinutes)

	// Budget never exceeds capacity even with amplifying factors.
	p = ComputePeakPolicy(8, res, 3600, 0.8, PeakOnlineFirst, GoalFillSeats, ToleranceHigh, 30)
	assert.LessOrEqual(t, p.SeatBudget, 8)

	// A tiny positive budget still admits one party per slot.
	p = ComputePeakPolicy(8, res, 7200, 0.2, PeakOnlineFirst, GoalControlQueue, ToleranceMedium, 30)
	assert.Equal(t, 1, p.SeatBudget)
	assert.Equal(t, 1, p.PartyLimitPerSlot, "bumped up from a floored zero")
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 10, ClampInt(3, 10, 120))
	assert.Equal(t, 120, ClampInt(400, 10, 120))
	assert.Equal(t, 45, ClampInt(45, 10, 120))
}
