package assets

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bilelsahraoui/RemyGame/animation"
	"github.com/bilelsahraoui/RemyGame/prefabs"
	"golang.org/x/sync/errgroup"
)

// Request names one clip to load.
type Request struct {
	Name     string
	Source   string
	Duration float64
}

// FetchFunc loads a single clip. It runs off the frame thread.
type FetchFunc func(ctx context.Context, req Request) (*animation.Clip, error)

// SpecFetch builds clips from their declared metadata without touching disk.
func SpecFetch(_ context.Context, req Request) (*animation.Clip, error) {
	if req.Duration <= 0 {
		return nil, fmt.Errorf("assets: clip %q has no duration", req.Name)
	}
	return animation.NewClip(req.Name, req.Source, req.Duration), nil
}

// RequestsFromSpec lists the clips a character spec declares, sorted by name.
func RequestsFromSpec(spec *prefabs.CharacterSpec) []Request {
	if spec == nil {
		return nil
	}
	reqs := make([]Request, 0, len(spec.Animations))
	for name, clip := range spec.Animations {
		reqs = append(reqs, Request{Name: name, Source: clip.Source, Duration: clip.Duration})
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].Name < reqs[j].Name })
	return reqs
}

// Loader fetches every requested clip concurrently and signals completion
// once, after which the animation set is ready to use.
type Loader struct {
	fetch    FetchFunc
	requests []Request

	start sync.Once
	done  chan struct{}
	set   *animation.Set
	err   error
}

func NewLoader(fetch FetchFunc, requests ...Request) *Loader {
	if fetch == nil {
		fetch = SpecFetch
	}
	return &Loader{
		fetch:    fetch,
		requests: append([]Request(nil), requests...),
		done:     make(chan struct{}),
	}
}

// Start begins loading in the background. Later calls do nothing.
func (l *Loader) Start(ctx context.Context) {
	l.start.Do(func() {
		go l.run(ctx)
	})
}

func (l *Loader) run(ctx context.Context) {
	defer close(l.done)

	clips := make([]*animation.Clip, len(l.requests))
	g, gctx := errgroup.WithContext(ctx)
	for i, req := range l.requests {
		g.Go(func() error {
			clip, err := l.fetch(gctx, req)
			if err != nil {
				return fmt.Errorf("assets: load %s: %w", req.Name, err)
			}
			clips[i] = clip
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		l.err = err
		return
	}

	set := animation.NewSet(nil)
	for i, req := range l.requests {
		set.Add(req.Name, clips[i])
	}
	l.set = set
}

// Done is closed when loading finishes, successfully or not.
func (l *Loader) Done() <-chan struct{} { return l.done }

// Poll reports the result without blocking. ok is false while loading.
func (l *Loader) Poll() (set *animation.Set, ok bool, err error) {
	select {
	case <-l.done:
		return l.set, true, l.err
	default:
		return nil, false, nil
	}
}

// Wait blocks until loading finishes or ctx ends.
func (l *Loader) Wait(ctx context.Context) (*animation.Set, error) {
	select {
	case <-l.done:
		return l.set, l.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
