// Package history holds the conversation timeline: an append-only,
// deduplicated log of display lines.
package history

// Log is the flat conversation timeline. Appends deduplicate by exact
// string equality, so two remote messages that format to the same line
// collapse into one entry. Insertion order is the only chronology.
//
// Log is not safe for concurrent use; all mutation must go through a
// single owner.
type Log struct {
	lines []string
	seen  map[string]struct{}
}

// New creates an empty log.
func New() *Log {
	return &Log{seen: make(map[string]struct{})}
}

// Append adds a line unless an equal line is already present anywhere
// in the log. Returns true when the line was added.
func (l *Log) Append(line string) bool {
	if _, ok := l.seen[line]; ok {
		return false
	}
	l.seen[line] = struct{}{}
	l.lines = append(l.lines, line)
	return true
}

// All returns a snapshot of the log in insertion order.
func (l *Log) All() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len returns the number of lines.
func (l *Log) Len() int {
	return len(l.lines)
}

// Replace swaps the log contents, used when restoring from a persisted
// document. Duplicate lines in the input collapse to their first
// occurrence, preserving the dedup invariant.
func (l *Log) Replace(lines []string) {
	l.lines = nil
	l.seen = make(map[string]struct{}, len(lines))
	for _, line := range lines {
		l.Append(line)
	}
}
