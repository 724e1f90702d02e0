package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatflow/onboard/onboarding"
)

func TestFirstJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, FirstJSONObject(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, FirstJSONObject("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, FirstJSONObject(`Here you go: {"a":1} hope that helps`))

	// Nested objects and braces inside strings must not break the scan.
	nested := `{"a":{"b":"}"},"c":2}`
	assert.Equal(t, nested, FirstJSONObject(nested))

	escaped := `{"a":"quote \" and brace }"}`
	assert.Equal(t, escaped, FirstJSONObject(escaped))

	assert.Equal(t, "", FirstJSONObject("no json here"))
	assert.Equal(t, "", FirstJSONObject(`{"unterminated": 1`))
	assert.Equal(t, "", FirstJSONObject(""))
}

func TestDecodePatch(t *testing.T) {
	patch := DecodePatch(`{"store_name":"Golden Wok"}`)
	require.NotNil(t, patch.StoreName)
	assert.Equal(t, "Golden Wok", *patch.StoreName)

	patch = DecodePatch(`{"resources":[{"party_size":4,"spots_total":5}],"duration_sec":5400}`)
	require.Len(t, patch.Resources, 1)
	assert.Equal(t, onboarding.Resource{PartySize: 4, SpotsTotal: 5}, patch.Resources[0])
	require.NotNil(t, patch.DurationSec)
	assert.Equal(t, 5400, *patch.DurationSec)

	patch = DecodePatch(`{"strategy":{"peak_online_quota_ratio":0.5,"peak_strategy":"online_first"}}`)
	require.NotNil(t, patch.Strategy)
	assert.Equal(t, 0.5, *patch.Strategy.PeakOnlineQuotaRatio)
	assert.Equal(t, onboarding.PeakOnlineFirst, *patch.Strategy.PeakStrategy)

	// Garbage of any kind decodes to an empty patch, never an error.
	assert.True(t, DecodePatch("I could not parse that, sorry!").IsEmpty())
	assert.True(t, DecodePatch(`{"store_name": }`).IsEmpty())
	assert.True(t, DecodePatch("").IsEmpty())
	assert.True(t, DecodePatch(`{}`).IsEmpty())
}

func TestEncodeState(t *testing.T) {
	assert.Equal(t, "{}", EncodeState(nil))

	state := onboarding.NewState()
	state.StoreName = "Golden Wok"
	out := EncodeState(state)
	assert.Contains(t, out, `"store_name":"Golden Wok"`)
}

func TestBuildPromptIncludesGuideAndState(t *testing.T) {
	state := onboarding.NewState()
	state.StoreName = "Golden Wok"

	prompt := buildPrompt(onboarding.StepResources, "five 4-seat tables", state)
	assert.Contains(t, prompt, string(onboarding.StepResources))
	assert.Contains(t, prompt, "party_size")
	assert.Contains(t, prompt, "five 4-seat tables")
	assert.Contains(t, prompt, "Golden Wok")

	// Every declared step has a guide.
	for _, step := range onboarding.Steps {
		if step == onboarding.StepBusinessHoursConfirm {
			// Confirmation is a literal yes/no; the orchestrator never
			// sends it to the model.
			continue
		}
		_, ok := stepGuides[step]
		assert.True(t, ok, "missing guide for step %s", step)
	}
}
