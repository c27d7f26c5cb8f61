package gate

import "strings"

// DefaultSequence is the key sequence that opens the admin prompt while
// Ctrl and Alt are held.
var DefaultSequence = []string{
	"ArrowUp", "ArrowUp", "ArrowDown", "ArrowDown",
	"ArrowLeft", "ArrowRight", "ArrowLeft", "ArrowRight",
	"b", "a", "a", "d", "m", "i", "n",
}

// KeyEvent is a browser keyboard event.
type KeyEvent struct {
	Key   string `json:"key"`
	Type  string `json:"type"` // keydown or keyup
	Ctrl  bool   `json:"ctrlKey"`
	Alt   bool   `json:"altKey"`
	Shift bool   `json:"shiftKey"`
}

// SequenceDetector matches keydown events against a target sequence.
// It is not safe for concurrent use.
type SequenceDetector struct {
	target []string
	buffer []string
}

// NewSequenceDetector creates a detector; an empty target uses DefaultSequence.
func NewSequenceDetector(target []string) *SequenceDetector {
	if len(target) == 0 {
		target = DefaultSequence
	}
	return &SequenceDetector{target: append([]string(nil), target...)}
}

// Feed processes one event and reports whether it completed the sequence.
// The buffer resets when Ctrl or Alt is released. On a mismatch it keeps the
// longest tail that still begins the target, so extra leading keys do not
// prevent a match.
func (d *SequenceDetector) Feed(ev KeyEvent) bool {
	if ev.Type == "keyup" {
		if ev.Key == "Control" || ev.Key == "Alt" || !ev.Ctrl || !ev.Alt {
			d.Reset()
		}
		return false
	}
	if !ev.Ctrl || !ev.Alt {
		d.Reset()
		return false
	}
	if ev.Key == "Control" || ev.Key == "Alt" {
		return false
	}

	d.buffer = append(d.buffer, ev.Key)
	if !d.matchesPrefix() {
		d.dropToPrefix()
		return false
	}

	if len(d.buffer) == len(d.target) {
		d.Reset()
		return true
	}
	return false
}

// Progress returns how many keys of the target have been matched.
func (d *SequenceDetector) Progress() int {
	return len(d.buffer)
}

// Reset clears the buffer.
func (d *SequenceDetector) Reset() {
	d.buffer = d.buffer[:0]
}

// dropToPrefix trims keys from the front until the buffer is a prefix of
// the target.
func (d *SequenceDetector) dropToPrefix() {
	for start := 1; start <= len(d.buffer); start++ {
		if isPrefix(d.buffer[start:], d.target) {
			d.buffer = append(d.buffer[:0], d.buffer[start:]...)
			return
		}
	}
}

func (d *SequenceDetector) matchesPrefix() bool {
	return isPrefix(d.buffer, d.target)
}

func isPrefix(keys, target []string) bool {
	if len(keys) > len(target) {
		return false
	}
	for i, k := range keys {
		if !strings.EqualFold(k, target[i]) {
			return false
		}
	}
	return true
}
