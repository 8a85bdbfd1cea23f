package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
)

// dataPrefix marks a status frame line in a scrape stream.
const dataPrefix = "data:"

// MaxLineBytes bounds the residual buffer. A line longer than this is
// discarded as a malformed frame.
const MaxLineBytes = 8 << 20

// maxCount bounds product counts carried by a frame. Larger values are
// treated as malformed.
const maxCount = math.MaxInt32

// frame is the loosely-typed JSON payload of one data line.
type frame struct {
	Status        string   `json:"status"`
	TotalEstimate *float64 `json:"total_estimate"`
	StoreName     string   `json:"store_name"`
	Progress      *float64 `json:"progress"`
	Done          bool     `json:"done"`
	Titles        []string `json:"titles"`
	Error         *string  `json:"error"`
}

// Decoder turns arbitrarily chunked stream bytes into ProgressEvents.
// Bytes after the last newline are held until the next Feed or Flush.
type Decoder struct {
	buf     []byte
	discard bool
}

// Feed appends chunk to the residual buffer and returns every event whose
// line is now complete, in arrival order.
func (d *Decoder) Feed(chunk []byte) []ProgressEvent {
	var events []ProgressEvent
	for len(chunk) > 0 {
		i := bytes.IndexByte(chunk, '\n')
		if i < 0 {
			d.appendResidual(chunk)
			break
		}
		d.appendResidual(chunk[:i])
		if !d.discard {
			if ev, ok := parseLine(d.buf); ok {
				events = append(events, ev)
			}
		}
		d.buf = d.buf[:0]
		d.discard = false
		chunk = chunk[i+1:]
	}
	return events
}

// Flush decodes a final line that was not newline-terminated and resets
// the decoder.
func (d *Decoder) Flush() []ProgressEvent {
	defer func() {
		d.buf = nil
		d.discard = false
	}()
	if d.discard || len(d.buf) == 0 {
		return nil
	}
	if ev, ok := parseLine(d.buf); ok {
		return []ProgressEvent{ev}
	}
	return nil
}

// Buffered returns the number of residual bytes held for the next line.
func (d *Decoder) Buffered() int {
	return len(d.buf)
}

func (d *Decoder) appendResidual(p []byte) {
	if d.discard {
		return
	}
	if len(d.buf)+len(p) > MaxLineBytes {
		d.buf = d.buf[:0]
		d.discard = true
		return
	}
	d.buf = append(d.buf, p...)
}

// parseLine classifies one complete line. Lines without the data marker,
// malformed JSON and unknown payload shapes are skipped.
func parseLine(line []byte) (ProgressEvent, bool) {
	line = bytes.TrimSuffix(line, []byte("\r"))
	if !bytes.HasPrefix(line, []byte(dataPrefix)) {
		return nil, false
	}
	payload := bytes.TrimPrefix(line[len(dataPrefix):], []byte(" "))

	var f frame
	if err := json.Unmarshal(payload, &f); err != nil {
		return nil, false
	}

	switch {
	case f.Done:
		ev := EventDone{Titles: f.Titles}
		if ev.Titles == nil {
			ev.Titles = []string{}
		}
		if f.Error != nil {
			ev.Error = *f.Error
		}
		return ev, true
	case f.Status == string(StatusStarted):
		ev := EventStarted{StoreName: f.StoreName}
		if f.TotalEstimate != nil {
			total, ok := toCount(*f.TotalEstimate)
			if !ok {
				return nil, false
			}
			ev.TotalEstimate = &total
		}
		return ev, true
	case f.Status == string(StatusScraping):
		if f.Progress == nil {
			return nil, false
		}
		progress, ok := toCount(*f.Progress)
		if !ok {
			return nil, false
		}
		return EventScraping{Progress: progress}, true
	}
	return nil, false
}

// toCount converts a JSON number to a product count, rejecting negative,
// non-finite and out-of-range values.
func toCount(v float64) (int, bool) {
	if math.IsNaN(v) || v < 0 || v > maxCount {
		return 0, false
	}
	return int(v), true
}

// StreamReader yields the events of one scrape stream. It is finite and
// cannot be restarted: after a Done event or the end of the underlying
// reader, Next returns io.EOF.
type StreamReader struct {
	ctx     context.Context
	r       io.Reader
	dec     Decoder
	chunk   []byte
	pending []ProgressEvent
	done    bool
	err     error
}

// NewStreamReader reads events from r until ctx is cancelled.
func NewStreamReader(ctx context.Context, r io.Reader) *StreamReader {
	return &StreamReader{
		ctx:   ctx,
		r:     r,
		chunk: make([]byte, 4096),
	}
}

// Next returns the next event. It returns io.EOF once the stream is
// exhausted and the context's error once the context is cancelled.
func (s *StreamReader) Next() (ProgressEvent, error) {
	for {
		if s.done {
			return nil, io.EOF
		}
		if err := s.ctx.Err(); err != nil {
			return nil, err
		}
		if len(s.pending) > 0 {
			ev := s.pending[0]
			s.pending = s.pending[1:]
			if ev.Kind() == KindDone {
				s.done = true
				s.pending = nil
			}
			return ev, nil
		}
		if s.err != nil {
			return nil, s.err
		}

		n, err := s.r.Read(s.chunk)
		if n > 0 {
			s.pending = append(s.pending, s.dec.Feed(s.chunk[:n])...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.pending = append(s.pending, s.dec.Flush()...)
				s.err = io.EOF
			} else if ctxErr := s.ctx.Err(); ctxErr != nil {
				s.err = ctxErr
			} else {
				s.err = err
			}
		}
	}
}
