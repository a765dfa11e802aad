package ticktick

import (
	"fmt"
	"strings"
	"time"
)

// wireTimeLayout is the timestamp format the Open API emits, e.g.
// "2019-11-13T03:00:00.000+0000". Some responses use plain RFC3339.
const wireTimeLayout = "2006-01-02T15:04:05.000-0700"

// wireTime handles TickTick's timestamp format on both marshal and
// unmarshal, falling back to RFC3339 for tolerant parsing.
type wireTime struct {
	time.Time
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{wireTimeLayout, time.RFC3339, time.RFC3339Nano} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("parse ticktick time %q", s)
}

func (t wireTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(wireTimeLayout) + `"`), nil
}
