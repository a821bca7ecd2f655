package phh

import (
	"fmt"
	"io"
	"sync"

	"github.com/BurntSushi/toml"
)

// Encode writes one hand as PHH TOML.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// Writer appends hands to a session (.phhs) stream, each under a numbered
// table header. It is safe for concurrent use.
type Writer struct {
	mu      sync.Mutex
	w       io.Writer
	section int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write appends hand as the next section.
func (w *Writer) Write(hand *HandHistory) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.section > 0 {
		if _, err := io.WriteString(w.w, "\n"); err != nil {
			return err
		}
	}
	w.section++
	if _, err := fmt.Fprintf(w.w, "[%d]\n", w.section); err != nil {
		return err
	}
	return Encode(w.w, hand)
}

// Hands returns how many hands have been written.
func (w *Writer) Hands() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.section
}
