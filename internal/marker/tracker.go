package marker

// Tracker works out the marker length jujutsu used for a source.
//
// jujutsu picks a marker length longer than any marker-like line inside the conflicted
// text, so a well formed conflict of length L is a start marker of length L, at least
// one line that is not an L-length marker, and an end marker of length L. The tracker
// is fed every line of a source in order and reports the longest such conflict seen.
//
// The zero value is ready to use.
type Tracker struct {
	open    map[int]bool // Open start markers by length, value is whether content has been seen since
	longest int          // Longest well formed conflict seen so far
}

// Observe feeds the next line to the tracker. The arguments are the results of
// calling [Parse] on the line.
func (t *Tracker) Observe(m Marker, ok bool) {
	for length, content := range t.open {
		if !content && (!ok || m.Length != length) {
			t.open[length] = true
		}
	}

	if !ok {
		return
	}

	switch m.Role {
	case Start:
		if t.open == nil {
			t.open = make(map[int]bool)
		}

		t.open[m.Length] = false
	case End:
		if content, isOpen := t.open[m.Length]; isOpen {
			if content {
				t.longest = max(t.longest, m.Length)
			}

			delete(t.open, m.Length)
		}
	default:
		// Only start and end markers delimit a conflict
	}
}

// Length returns the marker length for the lines observed so far, [MinLength]
// if no well formed conflict has been seen.
func (t *Tracker) Length() int {
	if t.longest == 0 {
		return MinLength
	}

	return t.longest
}
