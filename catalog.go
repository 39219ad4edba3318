package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Theme is a named group of pictures that share a subject, shown next to
// its description.
type Theme struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Images      []string `yaml:"images"`
	// Pattern is matched under the theme's directory when Images is empty.
	Pattern string `yaml:"pattern,omitempty"`
}

// ThemeCatalog is never empty and no theme in it is empty once Validate
// has passed.
type ThemeCatalog []Theme

var (
	ErrEmptyCatalog = errors.New("theme catalog is empty")
	ErrEmptyTheme   = errors.New("theme has no images")
)

type catalogFile struct {
	Themes []Theme `yaml:"themes"`
}

// DefaultCatalog is the catalog the site ships with.
func DefaultCatalog() ThemeCatalog {
	return ThemeCatalog{
		{
			Name:        "mushrooms",
			Description: "Mycology is a rabbit hole. These are the ones I found on walks and did not eat.",
			Images:      []string{"mushroom_01.jpg"},
		},
		{
			Name:        "moments",
			Description: "Small things I wanted to remember.",
			Images: []string{
				"moment_01.jpg", "moment_02.jpg", "moment_03.jpg", "moment_04.jpg",
				"moment_05.jpg", "moment_06.jpg", "moment_07.jpg", "moment_08.jpg",
			},
		},
		{
			Name:        "outdoors",
			Description: "Kayaking, flowers, and whatever else is outside.",
			Images:      []string{"kayak_01.jpg", "flower_01.jpg", "flower_02.jpg"},
		},
		{
			Name:        "cats",
			Description: "The cats. They did not consent to this.",
			Images:      []string{"cat_01.jpg", "cat_02.jpg", "cat_03.jpg"},
		},
		{
			Name:        "birds",
			Description: "Birds that sat still long enough.",
			Images:      []string{"bird_01.jpg", "bird_02.jpg"},
		},
	}
}

// LoadCatalog reads a catalog from a YAML file. An empty path returns the
// built-in catalog.
func LoadCatalog(path string) (ThemeCatalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes catalog YAML without validating it.
func ParseCatalog(data []byte) (ThemeCatalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return ThemeCatalog(f.Themes), nil
}

// Discover fills in the images of every theme that lists none by matching
// its Pattern (default "*.{jpg,jpeg,png,gif,webp}") inside <theme name>/ in
// fsys. Matches are sorted so the catalog order is stable between runs.
func (c ThemeCatalog) Discover(fsys fs.FS) (ThemeCatalog, error) {
	out := make(ThemeCatalog, len(c))
	for i, t := range c {
		out[i] = t
		if len(t.Images) > 0 {
			continue
		}
		pattern := t.Pattern
		if pattern == "" {
			pattern = "*.{jpg,jpeg,png,gif,webp}"
		}
		matches, err := doublestar.Glob(fsys, path.Join(t.Name, pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("discovering images for theme %q: %w", t.Name, err)
		}
		images := make([]string, 0, len(matches))
		for _, m := range matches {
			rel := m[len(t.Name)+1:]
			images = append(images, rel)
		}
		sort.Strings(images)
		out[i].Images = images
	}
	return out, nil
}

// Validate enforces that the catalog and every theme in it are non-empty.
func (c ThemeCatalog) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]bool, len(c))
	for i, t := range c {
		if t.Name == "" {
			return fmt.Errorf("theme %d has no name", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate theme %q", t.Name)
		}
		seen[t.Name] = true
		if len(t.Images) == 0 {
			return fmt.Errorf("theme %q: %w", t.Name, ErrEmptyTheme)
		}
	}
	return nil
}

// AssetPath is the URL path of an image, built from the theme name and
// the file name.
func (c ThemeCatalog) AssetPath(s SelectionState) string {
	t := c[s.ThemeIndex]
	return "/images/" + t.Name + "/" + t.Images[s.ImageIndex]
}
