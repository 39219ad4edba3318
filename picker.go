package main

import (
	"math/rand/v2"
	"sync"
	"time"
)

// SelectionState is what the picture box is currently showing. It lives in
// the rendered fragment, not on the server.
type SelectionState struct {
	ThemeIndex int
	ImageIndex int
}

// Picker draws themes and images from a catalog.
type Picker struct {
	mu  sync.Mutex
	rng *rand.Rand

	// AvoidRepeat excludes the current image from the redraw when the
	// theme has more than one.
	AvoidRepeat bool
}

func NewPicker(avoidRepeat bool) *Picker {
	seed := uint64(time.Now().UnixNano())
	return NewPickerWithSource(rand.NewPCG(seed, seed>>1|1), avoidRepeat)
}

func NewPickerWithSource(src rand.Source, avoidRepeat bool) *Picker {
	return &Picker{rng: rand.New(src), AvoidRepeat: avoidRepeat}
}

// Initialize picks a theme uniformly at random and starts at its first
// image. The catalog must be valid.
func (p *Picker) Initialize(c ThemeCatalog) SelectionState {
	return SelectionState{ThemeIndex: p.intN(len(c))}
}

// Advance redraws the image within the current theme. The same image may
// come up again unless AvoidRepeat is set.
func (p *Picker) Advance(c ThemeCatalog, s SelectionState) SelectionState {
	n := len(c[s.ThemeIndex].Images)
	if !p.AvoidRepeat || n < 2 {
		s.ImageIndex = p.intN(n)
		return s
	}
	// Draw from the n-1 other slots and skip over the current one.
	next := p.intN(n - 1)
	if next >= s.ImageIndex {
		next++
	}
	s.ImageIndex = next
	return s
}

func (p *Picker) intN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

// InBounds reports whether s addresses an image that exists in c.
func (c ThemeCatalog) InBounds(s SelectionState) bool {
	if s.ThemeIndex < 0 || s.ThemeIndex >= len(c) {
		return false
	}
	return s.ImageIndex >= 0 && s.ImageIndex < len(c[s.ThemeIndex].Images)
}

// pictureBox is the template data for the picture box fragment.
type pictureBox struct {
	State       SelectionState
	Theme       string
	Description string
	Src         string
}

func newPictureBox(c ThemeCatalog, s SelectionState) pictureBox {
	t := c[s.ThemeIndex]
	return pictureBox{
		State:       s,
		Theme:       t.Name,
		Description: t.Description,
		Src:         c.AssetPath(s),
	}
}
