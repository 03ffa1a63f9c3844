package interchange

import (
	"encoding/json"
	"math"
)

// LogProb is a log10 sequence probability that may be −∞ (no viable
// predecessor). JSON has no representation for infinities, so −∞ marshals
// to null and round-trips back to −∞.
type LogProb float64

func (lp LogProb) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(lp), -1) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(lp))
}

func (lp *LogProb) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*lp = LogProb(math.Inf(-1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*lp = LogProb(f)
	return nil
}
