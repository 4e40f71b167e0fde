package activity

import "time"

// IsSuspicious reports whether the last w.Count entries of history all lie
// within w.Span of now. Histories shorter than w.Count are never suspicious.
// Future-dated entries count as inside the window. An entry that does not
// parse clears the identity.
func IsSuspicious(history []Timestamp, now time.Time, w Window) bool {
	w = w.normalized()
	if len(history) < w.Count {
		return false
	}

	for _, ts := range history[len(history)-w.Count:] {
		t, err := ts.Time()
		if err != nil {
			return false
		}
		if now.Sub(t) >= w.Span {
			return false
		}
	}
	return true
}

// unparseable returns the entries in the detection tail that are not valid timestamps.
func unparseable(history []Timestamp, w Window) []Timestamp {
	w = w.normalized()
	start := max(len(history)-w.Count, 0)
	var bad []Timestamp
	for _, ts := range history[start:] {
		if _, err := ts.Time(); err != nil {
			bad = append(bad, ts)
		}
	}
	return bad
}
