package main

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	HomeIntro = `hi, I'm **Elaina**. I build small things for the web and take pictures of mushrooms.`

	AboutMe = `I'm a computer science student. I love to learn about tech, mycology, and the nature of things.
On my spare time, I'm collecting new hobbies and pass times.

Click the picture to see another one from the same set.`

	SecretBlurb = `There's nothing here unless you know the word.`
)

// Project is one entry on the projects page.
type Project struct {
	Name    string
	Summary string
	URL     string
	Tags    []string
}

var Projects = []Project{
	{
		Name:    "audit manager",
		Summary: "A script that walks a directory of audit exports, flags missing sign-offs and writes a summary sheet.",
		URL:     "https://github.com/christelaina",
		Tags:    []string{"python", "automation"},
	},
	{
		Name:    "form filler",
		Summary: "Reads a spreadsheet of applicants and fills the intake form for each one, logging anything it could not match.",
		URL:     "https://github.com/christelaina",
		Tags:    []string{"python", "automation"},
	},
	{
		Name:    "graph",
		Summary: "Plots weekly activity from a CSV export with matplotlib, one chart per category.",
		URL:     "https://github.com/christelaina",
		Tags:    []string{"python", "data"},
	},
	{
		Name:    "name check",
		Summary: "An Excel VBA macro that cross-checks names between two sheets and highlights near misses.",
		URL:     "https://github.com/christelaina",
		Tags:    []string{"vba", "excel"},
	},
	{
		Name:    "portfolio",
		Summary: "This site. Go, gin and htmx, with a picture box and a slideshow of shapes.",
		URL:     "https://github.com/christelaina",
		Tags:    []string{"go", "web"},
	},
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMarkdown converts page copy to HTML. The copy is ours, so the
// output is trusted.
func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// projectIndex is one searchable string per project: the name followed by
// its tags.
type projectIndex []Project

func (p projectIndex) String(i int) string {
	return p[i].Name + " " + strings.Join(p[i].Tags, " ")
}

func (p projectIndex) Len() int { return len(p) }

// SearchProjects returns the projects matching query, best match first.
// An empty query returns every project in declared order.
func SearchProjects(projects []Project, query string) []Project {
	query = strings.TrimSpace(query)
	if query == "" {
		return projects
	}
	matches := fuzzy.FindFrom(query, projectIndex(projects))
	out := make([]Project, 0, len(matches))
	for _, m := range matches {
		out = append(out, projects[m.Index])
	}
	return out
}
