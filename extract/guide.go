package extract

import (
	"fmt"

	"github.com/seatflow/onboard/onboarding"
)

// systemPrompt pins the extractor role: structured patches only, no
// conversation, no guessing.
const systemPrompt = `You are a data extractor. Your only job is to turn the user's reply into a JSON patch.
You must output exactly one JSON object — no prose, no explanation, no Markdown code block.
If the reply does not contain enough information, output an empty object {}.

Rules:
- Output must be valid JSON (keys in double quotes).
- Output only the fields this step asks for.
- Never invent a value the user did not state.`

// stepGuides describes the expected output shape per step. The step set
// is closed; an unknown step gets the empty-object guide.
var stepGuides = map[onboarding.Step]string{
	onboarding.StepStoreName: `Output: {"store_name": "<non-empty string>"}`,

	onboarding.StepResources: `Output: {"resources":[{"party_size":4,"spots_total":5},{"party_size":6,"spots_total":2}]}
party_size and spots_total are integers. One entry per distinct table size.`,

	onboarding.StepDuration: `Output: {"duration_sec": 3600}
duration_sec is seconds; use 3600 for about an hour, 5400 for an hour and a half, 7200 for two hours.`,

	onboarding.StepBusinessHours: `Output: {"business_hours":[
  {"open":{"day":0,"time":"0800"},"close":{"day":0,"time":"1700"}},
  ...
]}
day: 0=Monday, 1=Tuesday, 2=Wednesday, 3=Thursday, 4=Friday, 5=Saturday, 6=Sunday
time: a 4-digit HHMM string, e.g. "0830"
If the user says "every day 08:00-17:00", output one entry for each of days 0..6.
If the user says "Monday to Saturday 08:00-17:00, closed Sunday", output entries for days 0..5 only.`,

	onboarding.StepMergePolicy: `Output: {"strategy":{"can_merge_tables":true}} or false`,

	onboarding.StepMaxPartySize: `Output: {"strategy":{"max_party_size":8}} (integer)`,

	onboarding.StepOnlineRole: `Output: {"strategy":{"online_role":"primary"}} or "assistant" or "minimal"`,

	onboarding.StepPeakPeriod: `Output: {"strategy":{"peak_periods":["weekend_brunch"]}}
Allowed values: weekday_lunch, weekday_dinner, weekend_brunch, weekend_dinner`,

	onboarding.StepPeakRatio: `Output: {"strategy":{"peak_online_quota_ratio":0.5}} (one of 0.8 / 0.5 / 0.2 / 0.0)`,

	onboarding.StepPeakStrategy: `Output: {"strategy":{"peak_strategy":"online_first"}} or "walkin_first" or "no_online"`,

	onboarding.StepNoShowTolerance: `Output: {"strategy":{"no_show_tolerance":"medium"}} or low/high`,

	onboarding.StepRecommendationPatch: `You may output any subset of these fields (omit anything the user did not mention):
{
  "booking_hours":[
    {"open":{"day":0,"time":"0800"},"close":{"day":0,"time":"1600"}},
    ...
  ],
  "strategy":{
    "peak_strategy":"online_first" or "walkin_first" or "no_online",
    "peak_online_quota_ratio": 0.8 or 0.5 or 0.2 or 0.0,
    "peak_slot_minutes": 30,
    "peak_online_seat_budget": 20,
    "peak_online_party_limit_per_slot": 2
  }
}

Rules:
- booking_hours has the same shape as business_hours (day 0..6; time is a 4-digit HHMM string)
- peak_slot_minutes / peak_online_seat_budget / peak_online_party_limit_per_slot are integers >= 0`,
}

// buildPrompt assembles the per-turn user prompt: step, expected shape,
// the user's reply, and a snapshot of what is already known.
func buildPrompt(step onboarding.Step, userText string, state *onboarding.State) string {
	guide, ok := stepGuides[step]
	if !ok {
		guide = "Output: {}"
	}
	return fmt.Sprintf("[step] %s\n[output format] %s\n[user reply] %s\n[known state] %s\nOutput only the JSON object.",
		step, guide, userText, EncodeState(state))
}
