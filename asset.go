package sapling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// AssetKind identifies the kind of asset a request loads.
type AssetKind uint8

const (
	AssetImage AssetKind = iota
	AssetAudio
)

func (k AssetKind) String() string {
	switch k {
	case AssetImage:
		return "image"
	case AssetAudio:
		return "audio"
	}
	return fmt.Sprintf("AssetKind(%d)", k)
}

// AssetTransport fetches and decodes assets. Implementations are called from
// loader goroutines and must be safe for concurrent use.
type AssetTransport interface {
	LoadImage(ctx context.Context, src string) (*ebiten.Image, error)
	LoadAudio(ctx context.Context, src string) (*Sound, error)
}

// Progress is the loader's running tally. Total counts logical requests,
// not attempts.
type Progress struct {
	Succeeded int
	Failed    int
	Total     int
}

// Done reports whether every request has either loaded or permanently
// failed.
func (p Progress) Done() bool { return p.Succeeded+p.Failed == p.Total }

// LoadError records an asset that failed permanently.
type LoadError struct {
	Name     string
	Src      string
	Kind     AssetKind
	Attempts int
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("sapling: load %s %q from %s: gave up after %d attempts: %v",
		e.Kind, e.Name, e.Src, e.Attempts, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type assetRequest struct {
	name  string
	src   string
	kind  AssetKind
	retry int // failed attempts so far
	err   error
}

type assetResult struct {
	req   assetRequest
	image *ebiten.Image
	sound *Sound
	err   error
}

// Loader requests assets through an AssetTransport and tracks them to
// completion with bounded retry.
//
// Attempts run in their own goroutines. Their results are only handed over
// under a mutex and applied by Poll, so the asset maps, the counters and the
// retry queue are owned by whichever goroutine calls Poll (the frame loop).
type Loader struct {
	transport AssetTransport
	limit     int
	soundOn   bool

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	settled []assetResult
	spare   []assetResult

	images   map[string]*ebiten.Image
	sounds   map[string]*Sound
	progress Progress
	retries  []assetRequest
	errs     []error

	debugf func(format string, args ...any)
}

// NewLoader returns a loader that gives each asset limit retries after its
// first failure. Audio requests are ignored unless soundOn.
func NewLoader(transport AssetTransport, limit int, soundOn bool) *Loader {
	if limit <= 0 {
		limit = defaultLoadLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		transport: transport,
		limit:     limit,
		soundOn:   soundOn,
		ctx:       ctx,
		cancel:    cancel,
		images:    make(map[string]*ebiten.Image),
		sounds:    make(map[string]*Sound),
	}
}

// Request starts loading src under name. Each call counts once toward the
// total for the batch, however many attempts it takes.
func (l *Loader) Request(kind AssetKind, name, src string) {
	if kind == AssetAudio && !l.soundOn {
		return
	}
	l.progress.Total++
	l.issue(assetRequest{name: name, src: src, kind: kind})
}

// SetTransport replaces the transport used by attempts issued from now on.
// Attempts already in flight finish on the transport they started with.
func (l *Loader) SetTransport(t AssetTransport) {
	l.mu.Lock()
	l.transport = t
	l.mu.Unlock()
}

func (l *Loader) issue(req assetRequest) {
	l.mu.Lock()
	tr := l.transport
	l.mu.Unlock()
	go func() {
		res := assetResult{req: req}
		switch req.kind {
		case AssetImage:
			res.image, res.err = tr.LoadImage(l.ctx, req.src)
		case AssetAudio:
			res.sound, res.err = tr.LoadAudio(l.ctx, req.src)
		default:
			res.err = fmt.Errorf("unsupported asset kind %s", req.kind)
		}
		l.mu.Lock()
		l.settled = append(l.settled, res)
		l.mu.Unlock()
	}()
}

// Poll runs one polling tick: it applies settled attempts, reports progress,
// then drains the retry queue, re-issuing failed loads that are still within
// the limit and recording the rest as permanent failures. Returns whether
// the batch is complete.
func (l *Loader) Poll(progress func(Progress)) bool {
	l.mu.Lock()
	settled := l.settled
	l.settled = l.spare[:0]
	l.mu.Unlock()

	for i, res := range settled {
		if res.err != nil {
			req := res.req
			req.retry++
			req.err = res.err
			l.retries = append(l.retries, req)
		} else {
			l.store(res)
		}
		settled[i] = assetResult{}
	}
	l.spare = settled[:0]

	if progress != nil {
		progress(l.progress)
	}

	for i, req := range l.retries {
		if req.retry > l.limit {
			l.progress.Failed++
			l.errs = append(l.errs, &LoadError{
				Name:     req.name,
				Src:      req.src,
				Kind:     req.kind,
				Attempts: req.retry,
				Err:      req.err,
			})
			l.logf("giving up on %s %q after %d attempts: %v", req.kind, req.name, req.retry, req.err)
		} else {
			l.logf("retrying %s %q (attempt %d): %v", req.kind, req.name, req.retry+1, req.err)
			l.issue(req)
		}
		l.retries[i] = assetRequest{}
	}
	l.retries = l.retries[:0]

	return l.progress.Done()
}

func (l *Loader) store(res assetResult) {
	switch res.req.kind {
	case AssetImage:
		l.images[res.req.name] = res.image
	case AssetAudio:
		l.sounds[res.req.name] = res.sound
	}
	l.progress.Succeeded++
}

// Wait polls every interval until the batch completes or ctx is done. It is
// the blocking counterpart of driving Poll from a frame loop.
func (l *Loader) Wait(ctx context.Context, interval time.Duration, progress func(Progress)) error {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if l.Poll(progress) {
			return l.Err()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close cancels the context passed to in-flight transport calls.
func (l *Loader) Close() { l.cancel() }

// Progress returns the current tally.
func (l *Loader) Progress() Progress { return l.progress }

// Err joins every permanent failure so far, or returns nil.
func (l *Loader) Err() error { return errors.Join(l.errs...) }

// Image returns a loaded image.
func (l *Loader) Image(name string) (*ebiten.Image, bool) {
	img, ok := l.images[name]
	return img, ok
}

// Audio returns a loaded sound.
func (l *Loader) Audio(name string) (*Sound, bool) {
	s, ok := l.sounds[name]
	return s, ok
}

func (l *Loader) logf(format string, args ...any) {
	if l.debugf != nil {
		l.debugf(format, args...)
	}
}
