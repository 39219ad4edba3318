package main

import (
	"math/rand/v2"
	"testing"
)

func testCatalog() ThemeCatalog {
	return ThemeCatalog{
		{Name: "one", Description: "single", Images: []string{"a.jpg"}},
		{Name: "three", Description: "triple", Images: []string{"a.jpg", "b.jpg", "c.jpg"}},
		{Name: "two", Description: "pair", Images: []string{"a.jpg", "b.jpg"}},
	}
}

func TestInitializeInBounds(t *testing.T) {
	p := NewPickerWithSource(rand.NewPCG(1, 2), false)
	c := testCatalog()
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		s := p.Initialize(c)
		if s.ThemeIndex < 0 || s.ThemeIndex >= len(c) {
			t.Fatalf("theme index %d out of range", s.ThemeIndex)
		}
		if s.ImageIndex != 0 {
			t.Fatalf("Expected image index 0 after Initialize, got %d", s.ImageIndex)
		}
		seen[s.ThemeIndex] = true
	}
	if len(seen) != len(c) {
		t.Errorf("Expected every theme to be drawn at least once, saw %v", seen)
	}
}

func TestInitializeSingleTheme(t *testing.T) {
	p := NewPicker(false)
	c := ThemeCatalog{{Name: "only", Images: []string{"x.jpg"}}}
	for i := 0; i < 20; i++ {
		if s := p.Initialize(c); s.ThemeIndex != 0 {
			t.Fatalf("Expected theme 0, got %d", s.ThemeIndex)
		}
	}
}

func TestAdvanceKeepsThemeAndStaysInBounds(t *testing.T) {
	p := NewPickerWithSource(rand.NewPCG(3, 4), false)
	c := testCatalog()
	for theme := range c {
		s := SelectionState{ThemeIndex: theme}
		seen := map[int]bool{}
		for i := 0; i < 300; i++ {
			s = p.Advance(c, s)
			if s.ThemeIndex != theme {
				t.Fatalf("Advance changed theme from %d to %d", theme, s.ThemeIndex)
			}
			if !c.InBounds(s) {
				t.Fatalf("image index %d out of range for theme %q", s.ImageIndex, c[theme].Name)
			}
			seen[s.ImageIndex] = true
		}
		if len(seen) != len(c[theme].Images) {
			t.Errorf("theme %q: Expected all %d images drawn, saw %d", c[theme].Name, len(c[theme].Images), len(seen))
		}
	}
}

func TestAdvanceSingleImageIsStable(t *testing.T) {
	for _, avoid := range []bool{false, true} {
		p := NewPicker(avoid)
		c := testCatalog()
		s := SelectionState{ThemeIndex: 0}
		for i := 0; i < 10; i++ {
			s = p.Advance(c, s)
			if s.ImageIndex != 0 {
				t.Fatalf("avoidRepeat=%v: Expected image 0, got %d", avoid, s.ImageIndex)
			}
		}
	}
}

func TestAdvanceAllowsRepeatsByDefault(t *testing.T) {
	p := NewPickerWithSource(rand.NewPCG(5, 6), false)
	c := testCatalog()
	s := SelectionState{ThemeIndex: 2}
	repeats := 0
	for i := 0; i < 200; i++ {
		next := p.Advance(c, s)
		if next.ImageIndex == s.ImageIndex {
			repeats++
		}
		s = next
	}
	if repeats == 0 {
		t.Error("Expected some immediate repeats with two images and no avoidance")
	}
}

func TestAdvanceAvoidRepeat(t *testing.T) {
	p := NewPickerWithSource(rand.NewPCG(7, 8), true)
	c := testCatalog()
	for _, theme := range []int{1, 2} {
		s := SelectionState{ThemeIndex: theme}
		seen := map[int]bool{}
		for i := 0; i < 300; i++ {
			next := p.Advance(c, s)
			if next.ImageIndex == s.ImageIndex {
				t.Fatalf("theme %d: repeated image %d", theme, s.ImageIndex)
			}
			if !c.InBounds(next) {
				t.Fatalf("theme %d: image %d out of range", theme, next.ImageIndex)
			}
			seen[next.ImageIndex] = true
			s = next
		}
		if len(seen) != len(c[theme].Images) {
			t.Errorf("theme %d: Expected all images reachable, saw %v", theme, seen)
		}
	}
}

func TestInBounds(t *testing.T) {
	c := testCatalog()
	tests := []struct {
		s    SelectionState
		want bool
	}{
		{SelectionState{0, 0}, true},
		{SelectionState{1, 2}, true},
		{SelectionState{0, 1}, false},
		{SelectionState{3, 0}, false},
		{SelectionState{-1, 0}, false},
		{SelectionState{1, -1}, false},
	}
	for _, tt := range tests {
		if got := c.InBounds(tt.s); got != tt.want {
			t.Errorf("InBounds(%+v) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestNewPictureBox(t *testing.T) {
	c := testCatalog()
	box := newPictureBox(c, SelectionState{ThemeIndex: 1, ImageIndex: 2})
	if box.Src != "/images/three/c.jpg" {
		t.Errorf("Expected src /images/three/c.jpg, got %q", box.Src)
	}
	if box.Description != "triple" {
		t.Errorf("Expected description %q, got %q", "triple", box.Description)
	}
}
