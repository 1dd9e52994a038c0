package trace

import (
	"errors"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// StreamTracer writes events immediately to an io.Writer as a msgpack
// stream, one encoded Event per record.
type StreamTracer struct {
	w   io.Writer
	enc *msgpack.Encoder
}

// NewStreamTracer creates a new StreamTracer.
func NewStreamTracer(w io.Writer) *StreamTracer {
	return &StreamTracer{
		w:   w,
		enc: msgpack.NewEncoder(w),
	}
}

// Emit writes an event to the output. Write errors are ignored: tracing is
// best-effort and must never disturb the traced program.
func (t *StreamTracer) Emit(ev *Event) {
	if t == nil || ev == nil {
		return
	}
	ev.Seq = NextSeq()
	_ = t.enc.Encode(ev)
}

// Close closes the underlying writer if it is closable.
func (t *StreamTracer) Close() error {
	if t == nil {
		return nil
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Enabled always returns true.
func (t *StreamTracer) Enabled() bool { return true }

// ReadAll decodes every event from a msgpack trace stream.
func ReadAll(r io.Reader) ([]Event, error) {
	dec := msgpack.NewDecoder(r)
	var events []Event
	for {
		var ev Event
		if err := dec.Decode(&ev); err != nil {
			if errors.Is(err, io.EOF) {
				return events, nil
			}
			return events, err
		}
		events = append(events, ev)
	}
}
