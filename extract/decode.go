package extract

import (
	"strings"

	"github.com/bytedance/sonic"

	"github.com/seatflow/onboard/onboarding"
)

// FirstJSONObject pulls the first complete top-level JSON object out of
// raw model output. Models occasionally wrap their answer in ticks or
// stray prose; this tolerates both.
func FirstJSONObject(text string) string {
	s := strings.TrimSpace(text)
	s = strings.Trim(s, "`")
	s = strings.TrimSpace(s)

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inStr := false
	esc := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inStr {
			switch {
			case esc:
				esc = false
			case ch == '\\':
				esc = true
			case ch == '"':
				inStr = false
			}
			continue
		}
		switch ch {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// DecodePatch parses raw model output into a patch. Anything that is not
// a well-formed object decodes to an empty patch: the port never
// propagates garbage.
func DecodePatch(raw string) *onboarding.Patch {
	obj := FirstJSONObject(raw)
	if obj == "" {
		return &onboarding.Patch{}
	}
	var patch onboarding.Patch
	if err := sonic.UnmarshalString(obj, &patch); err != nil {
		return &onboarding.Patch{}
	}
	return &patch
}

// EncodeState renders a compact state snapshot for the prompt.
func EncodeState(state *onboarding.State) string {
	if state == nil {
		return "{}"
	}
	out, err := sonic.MarshalString(state)
	if err != nil {
		return "{}"
	}
	return out
}
