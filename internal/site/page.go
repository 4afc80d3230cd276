// Package site writes and reads the static-site pages generated for imported photos.
package site

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/raphaelgruber/photo-import/internal/models"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Page is the content of one generated document.
type Page struct {
	Title       string
	Coordinates *models.Coordinates
	Contents    string
}

// PageFromItem builds the page for a work item.
func PageFromItem(item *models.WorkItem) Page {
	return Page{
		Title:       item.Title,
		Coordinates: item.Coordinates,
		Contents:    item.Contents,
	}
}

// frontMatter mirrors the YAML block at the top of a page.
type frontMatter struct {
	Title       string    `yaml:"title"`
	Coordinates []float64 `yaml:"coordinates,omitempty"`
}

// Render produces the page document:
//
//	---
//	title: <title>
//	coordinates: [<lon>,<lat>]
//	---
//
//	<contents>
//
// The coordinates line is omitted when the photo has no GPS position.
func Render(p Page) string {
	var b strings.Builder
	b.WriteString(delimiter + "\n")
	b.WriteString("title: " + yamlScalar(p.Title) + "\n")
	if p.Coordinates != nil {
		b.WriteString("coordinates: " + p.Coordinates.JSON() + "\n")
	}
	b.WriteString(delimiter + "\n")
	b.WriteString("\n")
	b.WriteString(p.Contents)
	b.WriteString("\n\n")
	return b.String()
}

// yamlScalar writes s unquoted unless YAML would read it back differently
// ("123", "a: b", "x # y").
func yamlScalar(s string) string {
	var fm map[string]any
	if err := yaml.Unmarshal([]byte("title: "+s), &fm); err == nil {
		if v, ok := fm["title"].(string); ok && v == s {
			return s
		}
	}
	return strconv.Quote(s)
}

// Parse reads a page written by Render.
func Parse(content string) (Page, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, delimiter+"\n") {
		return Page{}, errors.New("missing front-matter")
	}

	endIdx := strings.Index(content[4:], "\n"+delimiter)
	if endIdx < 0 {
		return Page{}, errors.New("unterminated front-matter")
	}
	block := content[4 : 4+endIdx]
	remaining := strings.TrimPrefix(content[4+endIdx+4:], "\n")

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return Page{}, fmt.Errorf("parse front-matter: %w", err)
	}

	page := Page{Title: fm.Title}

	switch len(fm.Coordinates) {
	case 0:
	case 2:
		page.Coordinates = &models.Coordinates{
			Longitude: fm.Coordinates[0],
			Latitude:  fm.Coordinates[1],
		}
	default:
		return Page{}, fmt.Errorf("coordinates: expected [lon, lat], got %d values", len(fm.Coordinates))
	}

	// Body is a blank line, the caption, and a trailing blank line
	body := strings.TrimPrefix(remaining, "\n")
	if trimmed, ok := strings.CutSuffix(body, "\n\n"); ok {
		body = trimmed
	} else {
		body = strings.TrimSuffix(body, "\n")
	}
	page.Contents = body

	return page, nil
}
