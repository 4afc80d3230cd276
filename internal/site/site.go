package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphaelgruber/photo-import/internal/models"
)

// Extension of generated pages.
const Extension = ".html"

// Site is the static-site source tree rooted at Root, one directory per date.
type Site struct {
	Root string
}

// New creates a Site rooted at root.
func New(root string) *Site {
	return &Site{Root: root}
}

// PagePath returns <Root>/<Date>/<NewFilename>.html.
func (s *Site) PagePath(item *models.WorkItem) string {
	return filepath.Join(s.Root, item.Date, item.NewFilename+Extension)
}

// Write renders the item's page and writes it, creating the date directory.
// An existing page is never overwritten.
func (s *Site) Write(item *models.WorkItem) (string, error) {
	path := s.PagePath(item)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("%w: create directory: %w", models.ErrIO, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", models.ErrDestinationExists, path)
		}
		return "", fmt.Errorf("%w: create page: %w", models.ErrIO, err)
	}

	_, werr := f.WriteString(Render(PageFromItem(item)))
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return "", fmt.Errorf("%w: write page: %w", models.ErrIO, err)
	}

	return path, nil
}

// Entry is one page found by List.
type Entry struct {
	Path string
	Date string
	Page Page
	Err  error // set when the page could not be parsed
}

// List parses every page under Root, or under Root/<date> when date is set.
// Entries come back in lexical path order.
func (s *Site) List(date string) ([]Entry, error) {
	dir := s.Root
	if date != "" {
		dir = filepath.Join(s.Root, date)
	}

	var entries []Entry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), Extension) {
			return nil
		}

		entry := Entry{
			Path: path,
			Date: filepath.Base(filepath.Dir(path)),
		}

		data, err := os.ReadFile(path)
		if err != nil {
			entry.Err = err
		} else if entry.Page, err = Parse(string(data)); err != nil {
			entry.Err = err
		}

		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list pages in %s: %w", dir, err)
	}

	return entries, nil
}
