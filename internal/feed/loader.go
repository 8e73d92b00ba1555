package feed

import (
	"errors"
	"fmt"
)

var (
	// ErrExhausted is returned by Loader.Begin once the feed has no more
	// records.
	ErrExhausted = errors.New("feed exhausted")
	// ErrInFlight is returned by Loader.Begin while a request is
	// outstanding.
	ErrInFlight = errors.New("fetch already in flight")
)

// Request describes one fetch handed out by a Loader.
type Request struct {
	Offset int
	Limit  int
	gen    int
}

// Loader tracks the loaded prefix of a feed. It does no I/O itself: the
// caller runs Service.Fetch for each Request, typically off the UI loop,
// and reports the result through Apply.
type Loader struct {
	limit   int
	records []Record
	done    bool
	pending bool
	gen     int
}

// NewLoader returns a loader requesting limit records at a time.
func NewLoader(limit int) *Loader {
	if limit <= 0 {
		limit = 1
	}
	return &Loader{limit: limit}
}

// Records returns the records loaded so far. Each successful Apply that
// adds records returns a slice with a new identity.
func (l *Loader) Records() []Record { return l.records }

// Done reports whether the whole feed has been loaded.
func (l *Loader) Done() bool { return l.done }

// Loading reports whether a request is outstanding.
func (l *Loader) Loading() bool { return l.pending }

// Begin hands out the request for the next page.
func (l *Loader) Begin() (Request, error) {
	if l.pending {
		return Request{}, ErrInFlight
	}
	if l.done {
		return Request{}, ErrExhausted
	}
	l.pending = true
	return Request{Offset: len(l.records), Limit: l.limit, gen: l.gen}, nil
}

// Reset discards loaded records. Any request still in flight becomes
// stale.
func (l *Loader) Reset() {
	l.gen++
	l.records = nil
	l.done = false
	l.pending = false
}

// Restart discards loaded records and returns a request that reloads at
// least as many as were loaded.
func (l *Loader) Restart() Request {
	n := max(len(l.records), l.limit)
	l.Reset()
	l.pending = true
	return Request{Offset: 0, Limit: n, gen: l.gen}
}

// Apply records the outcome of req. It reports whether the loaded records
// changed. Results for stale requests are ignored.
func (l *Loader) Apply(req Request, page Page, err error) (bool, error) {
	if req.gen != l.gen {
		return false, nil
	}
	l.pending = false
	if err != nil {
		return false, fmt.Errorf("fetching records at %d: %w", req.Offset, err)
	}
	if page.Offset != len(l.records) {
		return false, nil
	}
	l.done = page.Done || len(page.Records) == 0
	if len(page.Records) == 0 {
		return false, nil
	}
	next := make([]Record, 0, len(l.records)+len(page.Records))
	next = append(next, l.records...)
	l.records = append(next, page.Records...)
	return true, nil
}

// LoadAll pages through svc until it is exhausted.
func LoadAll(svc Service, limit int) ([]Record, error) {
	l := NewLoader(limit)
	for {
		req, err := l.Begin()
		if errors.Is(err, ErrExhausted) {
			return l.Records(), nil
		}
		if err != nil {
			return nil, err
		}
		page, err := svc.Fetch(req.Offset, req.Limit)
		if _, err := l.Apply(req, page, err); err != nil {
			return nil, err
		}
	}
}
