package main

import (
	"errors"
	"html/template"
	"sync"
	"time"
)

// ShapeVariant is one of the decorative shapes the home page cycles through.
type ShapeVariant struct {
	Name string
	SVG  template.HTML
}

var shapeVariants = []ShapeVariant{
	{Name: "first-frost", SVG: `<svg width="300" height="300"><circle cx="250" cy="250" r="250" fill="#DFE0DC"/></svg>`},
	{Name: "spring", SVG: `<svg width="300" height="300"><circle cx="150" cy="150" r="150" fill="#D1DBBD"/><rect width="300" height="150" fill="#D1DBBD"/></svg>`},
	{Name: "ivy", SVG: `<svg width="300" height="300"><path d="M78.03684,300.00003c-29.26423,0-54.76616-30.96293-68.12275-76.77517c8.61925-32.65345,22.60566-63.12685,40.95841-90.41939h104.69406c.33487,5.64018.50699,11.37537.50712,17.18777v.01355c-.0019,82.83961-34.93946,149.99324-78.03683,149.99324h-.00001Z" transform="matrix(-.003027 2.052549-1.794315-.002646 538.545933-19.776425)" fill="#777E5C"/></svg>`},
	{Name: "pebble", SVG: `<svg width="300" height="300"><path d="M150,300.00001c-33.77683,0-64.94616-11.16406-90.01928-30.00348C114.71325,197.1317,201.85255,150,300.00005,150c0,82.84272-67.15731,150.00001-150.00005,150.00001Z" transform="matrix(1.249899 0 0 2-74.969802-300.00001)" fill="#B0B6BC"/></svg>`},
	{Name: "linen", SVG: `<svg width="300" height="300"><path d="M0.00004,150.00001c0-12.51703,1.53316-24.67596,4.42193-36.29927C44.84747,83.8225,95.29235,66.08627,150.00001,66.08627s105.15254,17.73623,145.57804,47.61447c2.88877,11.6233,4.42193,23.78224,4.42193,36.29927c0,82.84272-67.15727,150.00001-149.99996,150.00001s-149.99996-67.15729-149.99996-150.00001h-.00002Z" fill="#C7C2AB"/></svg>`},
	{Name: "serpentine", SVG: `<svg width="300" height="300"><ellipse rx="83.268779" ry="79.835015" transform="matrix(1.801395 0 0 1.878875 149.999962 149.999986)" fill="#283106"/><rect width="150.000038" height="150" rx="50" ry="50" transform="matrix(1.406379 0 0 1.283163 89.04302 107.52555)" fill="#283106"/></svg>`},
}

var (
	ErrNoVariants      = errors.New("slideshow needs at least one variant")
	ErrInvalidInterval = errors.New("slideshow interval must be positive")
)

// Slideshow advances a cyclic index on a fixed interval. It always starts
// at 0 and wraps after the last variant.
type Slideshow struct {
	count  int
	onTick func(int)

	mu    sync.Mutex
	index int

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// StartSlideshow starts ticking. onTick, if non-nil, runs on the timer
// goroutine with the new index after every step.
func StartSlideshow(count int, interval time.Duration, onTick func(int)) (*Slideshow, error) {
	if count < 1 {
		return nil, ErrNoVariants
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	s := &Slideshow{
		count:  count,
		onTick: onTick,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.run(interval)
	return s, nil
}

func (s *Slideshow) run(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}
		// A tick and a stop can be ready together; stop wins.
		select {
		case <-s.stop:
			return
		default:
		}
		s.mu.Lock()
		s.index = (s.index + 1) % s.count
		next := s.index
		s.mu.Unlock()
		if s.onTick != nil {
			s.onTick(next)
		}
	}
}

// Index is the variant currently showing.
func (s *Slideshow) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Stop cancels future ticks. It does not wait for a tick already in
// flight; use Wait for that. Calling it again is a no-op.
func (s *Slideshow) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Wait blocks until the timer goroutine has exited.
func (s *Slideshow) Wait() {
	<-s.done
}
