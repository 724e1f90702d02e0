package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatflow/onboard/onboarding"
)

func rulesExtract(t *testing.T, step onboarding.Step, text string) *onboarding.Patch {
	t.Helper()
	patch, err := NewRules().Extract(context.Background(), step, text, onboarding.NewState())
	require.NoError(t, err)
	require.NotNil(t, patch)
	return patch
}

func TestRulesStoreName(t *testing.T) {
	patch := rulesExtract(t, onboarding.StepStoreName, `  "Golden Wok"  `)
	require.NotNil(t, patch.StoreName)
	assert.Equal(t, "Golden Wok", *patch.StoreName)

	assert.True(t, rulesExtract(t, onboarding.StepStoreName, "   ").IsEmpty())
}

func TestRulesResources(t *testing.T) {
	patch := rulesExtract(t, onboarding.StepResources, "4-seat table x5, 6-seat table x4, 8-seat table x1")
	require.Len(t, patch.Resources, 3)
	assert.Equal(t, onboarding.Resource{PartySize: 4, SpotsTotal: 5}, patch.Resources[0])
	assert.Equal(t, onboarding.Resource{PartySize: 6, SpotsTotal: 4}, patch.Resources[1])
	assert.Equal(t, onboarding.Resource{PartySize: 8, SpotsTotal: 1}, patch.Resources[2])

	patch = rulesExtract(t, onboarding.StepResources, "we have 2-seater x 6")
	require.Len(t, patch.Resources, 1)
	assert.Equal(t, onboarding.Resource{PartySize: 2, SpotsTotal: 6}, patch.Resources[0])

	// No table wording at all: nothing to extract.
	assert.True(t, rulesExtract(t, onboarding.StepResources, "1+1").IsEmpty())
}

func TestRulesDuration(t *testing.T) {
	patch := rulesExtract(t, onboarding.StepDuration, "about an hour and a half")
	require.NotNil(t, patch.DurationSec)
	assert.Equal(t, 5400, *patch.DurationSec)

	patch = rulesExtract(t, onboarding.StepDuration, "roughly two hours")
	assert.Equal(t, 7200, *patch.DurationSec)

	patch = rulesExtract(t, onboarding.StepDuration, "an hour or so")
	assert.Equal(t, 3600, *patch.DurationSec)

	assert.True(t, rulesExtract(t, onboarding.StepDuration, "depends").IsEmpty())
}

func TestRulesBusinessHoursEveryDay(t *testing.T) {
	patch := rulesExtract(t, onboarding.StepBusinessHours, "every day 8am to 5pm")
	require.Len(t, patch.BusinessHours, 7)
	for d, h := range patch.BusinessHours {
		assert.Equal(t, d, h.Open.Day)
		assert.Equal(t, "0800", h.Open.Time)
		assert.Equal(t, "1700", h.Close.Time)
	}
}

func TestRulesBusinessHoursDayRange(t *testing.T) {
	patch := rulesExtract(t, onboarding.StepBusinessHours, "monday to saturday 08:00-17:00, closed sunday")
	require.Len(t, patch.BusinessHours, 6)
	assert.Equal(t, 0, patch.BusinessHours[0].Open.Day)
	assert.Equal(t, 5, patch.BusinessHours[5].Open.Day)
	assert.Equal(t, "0800", patch.BusinessHours[0].Open.Time)
	assert.Equal(t, "1700", patch.BusinessHours[0].Close.Time)
}

func TestRulesBusinessHoursWeekend(t *testing.T) {
	patch := rulesExtract(t, onboarding.StepBusinessHours, "weekends only, 10:00 to 22:00")
	require.Len(t, patch.BusinessHours, 2)
	assert.Equal(t, 5, patch.BusinessHours[0].Open.Day)
	assert.Equal(t, 6, patch.BusinessHours[1].Open.Day)
	assert.Equal(t, "1000", patch.BusinessHours[0].Open.Time)
	assert.Equal(t, "2200", patch.BusinessHours[0].Close.Time)
}

func TestRulesBusinessHoursUnparseable(t *testing.T) {
	assert.True(t, rulesExtract(t, onboarding.StepBusinessHours, "we open when we feel like it").IsEmpty())
}

func TestRulesMergePolicy(t *testing.T) {
	patch := rulesExtract(t, onboarding.StepMergePolicy, "sure, we push them together")
	require.NotNil(t, patch.Strategy)
	assert.True(t, *patch.Strategy.CanMergeTables)

	patch = rulesExtract(t, onboarding.StepMergePolicy, "no, they are fixed booths")
	assert.False(t, *patch.Strategy.CanMergeTables)
}

func TestRulesMaxPartySize(t *testing.T) {
	patch := rulesExtract(t, onboarding.StepMaxPartySize, "up to 12 people if we rearrange")
	require.NotNil(t, patch.Strategy)
	assert.Equal(t, 12, *patch.Strategy.MaxPartySize)
}

func TestRulesOnlineRole(t *testing.T) {
	patch := rulesExtract(t, onboarding.StepOnlineRole, "it should be the main channel")
	assert.Equal(t, onboarding.RolePrimary, *patch.Strategy.OnlineRole)

	patch = rulesExtract(t, onboarding.StepOnlineRole, "just to help with the queue")
	assert.Equal(t, onboarding.RoleAssistant, *patch.Strategy.OnlineRole)

	patch = rulesExtract(t, onboarding.StepOnlineRole, "walk-ins come first")
	assert.Equal(t, onboarding.RoleMinimal, *patch.Strategy.OnlineRole)
}

func TestRulesPeakPeriod(t *testing.T) {
	patch := rulesExtract(t, onboarding.StepPeakPeriod, "weekend dinner is the crush")
	assert.Equal(t, []string{onboarding.PeakWeekendDinner}, patch.Strategy.PeakPeriods)

	patch = rulesExtract(t, onboarding.StepPeakPeriod, "weekday lunch rush")
	assert.Equal(t, []string{onboarding.PeakWeekdayLunch}, patch.Strategy.PeakPeriods)
}

func TestRulesPeakRatio(t *testing.T) {
	patch := rulesExtract(t, onboarding.StepPeakRatio, "about half the room")
	assert.Equal(t, 0.5, *patch.Strategy.PeakOnlineQuotaRatio)

	patch = rulesExtract(t, onboarding.StepPeakRatio, "80 percent")
	assert.Equal(t, 0.8, *patch.Strategy.PeakOnlineQuotaRatio)
}

func TestRulesPeakStrategy(t *testing.T) {
	patch := rulesExtract(t, onboarding.StepPeakStrategy, "close it during the rush, no online")
	assert.Equal(t, onboarding.PeakNoOnline, *patch.Strategy.PeakStrategy)

	patch = rulesExtract(t, onboarding.StepPeakStrategy, "keep tables for walk-ins")
	assert.Equal(t, onboarding.PeakWalkinFirst, *patch.Strategy.PeakStrategy)
}

func TestRulesNoShowTolerance(t *testing.T) {
	patch := rulesExtract(t, onboarding.StepNoShowTolerance, "that's hard to accept")
	assert.Equal(t, onboarding.ToleranceLow, *patch.Strategy.NoShowTolerance)

	patch = rulesExtract(t, onboarding.StepNoShowTolerance, "that's fine with us")
	assert.Equal(t, onboarding.ToleranceHigh, *patch.Strategy.NoShowTolerance)
}

func TestRulesRecommendationPatch(t *testing.T) {
	patch := rulesExtract(t, onboarding.StepRecommendationPatch, "at most 2 online parties every 30 minutes")
	require.NotNil(t, patch.Strategy)
	assert.Equal(t, 2, *patch.Strategy.PeakOnlinePartyLimitPerSlot)
	assert.Equal(t, 30, *patch.Strategy.PeakSlotMinutes)

	patch = rulesExtract(t, onboarding.StepRecommendationPatch, "keep at most 15 seats online during the rush")
	assert.Equal(t, 15, *patch.Strategy.PeakOnlineSeatBudget)

	patch = rulesExtract(t, onboarding.StepRecommendationPatch, "no online bookings during the rush")
	assert.Equal(t, onboarding.PeakNoOnline, *patch.Strategy.PeakStrategy)

	patch = rulesExtract(t, onboarding.StepRecommendationPatch, "bookable times should be 09:00-16:00 every day")
	require.Len(t, patch.BookingHours, 7)
	assert.Equal(t, "0900", patch.BookingHours[0].Open.Time)
	assert.Equal(t, "1600", patch.BookingHours[0].Close.Time)

	// The seeding prompt proposes nothing.
	seed := rulesExtract(t, onboarding.StepRecommendationPatch,
		"Review the draft recommendation and propose adjustments if any are needed; output {} if not.")
	assert.True(t, seed.IsEmpty())
}
