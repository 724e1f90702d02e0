package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatflow/onboard/onboarding"
)

func testArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := NewArchive(filepath.Join(t.TempDir(), "onboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func testConfig(name string) *onboarding.Config {
	return &onboarding.Config{
		StoreName:    name,
		CapacityHint: 52,
		Resources: []onboarding.Resource{
			{PartySize: 4, SpotsTotal: 5},
			{PartySize: 6, SpotsTotal: 4},
			{PartySize: 8, SpotsTotal: 1},
		},
		DurationSec: 5400,
		BusinessHours: []onboarding.HourSpan{
			{Open: onboarding.DayTime{Day: 0, Time: "0800"}, Close: onboarding.DayTime{Day: 0, Time: "1700"}},
		},
		BookingHours: []onboarding.HourSpan{
			{Open: onboarding.DayTime{Day: 0, Time: "0800"}, Close: onboarding.DayTime{Day: 0, Time: "1530"}},
		},
		Strategy: onboarding.Strategy{
			GoalType:                    onboarding.GoalControlQueue,
			OnlineRole:                  onboarding.RoleAssistant,
			PeakPeriods:                 []string{onboarding.PeakWeekendDinner},
			PeakStrategy:                onboarding.PeakOnlineFirst,
			PeakOnlineQuotaRatio:        0.5,
			NoShowTolerance:             onboarding.ToleranceMedium,
			CanMergeTables:              true,
			MaxPartySize:                8,
			PeakSlotMinutes:             30,
			PeakOnlineSeatBudget:        26,
			PeakOnlinePartyLimitPerSlot: 1,
		},
	}
}

func TestArchiveSaveAndRecent(t *testing.T) {
	a := testArchive(t)
	ctx := context.Background()

	id, err := a.Save(ctx, "session-1", testConfig("Golden Wok"))
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	_, err = a.Save(ctx, "session-2", testConfig("Blue Door"))
	require.NoError(t, err)

	saved, err := a.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, saved, 2)

	// Newest first.
	assert.Equal(t, "Blue Door", saved[0].StoreName)
	assert.Equal(t, "Golden Wok", saved[1].StoreName)
	assert.Equal(t, "session-1", saved[1].SessionID)
	assert.Equal(t, 52, saved[1].CapacityHint)

	// The round-tripped config survives intact.
	cfg := saved[1].Config
	require.NotNil(t, cfg)
	assert.Equal(t, 5400, cfg.DurationSec)
	assert.Equal(t, onboarding.GoalControlQueue, cfg.Strategy.GoalType)
	assert.Equal(t, 26, cfg.Strategy.PeakOnlineSeatBudget)
	assert.Len(t, cfg.Resources, 3)
}

func TestArchiveRecentLimit(t *testing.T) {
	a := testArchive(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := a.Save(ctx, "session", testConfig("Store"))
		require.NoError(t, err)
	}

	saved, err := a.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, saved, 3)

	// A non-positive limit falls back to the default.
	saved, err = a.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, saved, 5)
}

func TestArchiveBySession(t *testing.T) {
	a := testArchive(t)
	ctx := context.Background()

	_, err := a.Save(ctx, "session-1", testConfig("Golden Wok"))
	require.NoError(t, err)
	_, err = a.Save(ctx, "session-1", testConfig("Golden Wok II"))
	require.NoError(t, err)
	_, err = a.Save(ctx, "session-2", testConfig("Blue Door"))
	require.NoError(t, err)

	saved, err := a.BySession(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "Golden Wok II", saved[0].StoreName)

	saved, err = a.BySession(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, saved)
}
