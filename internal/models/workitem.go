// Package models defines the data structures shared by the import pipeline.
package models

import (
	"encoding/json"
	"fmt"
)

// WorkItem tracks one photo through the pipeline.
// Each stage only adds its own fields; nothing is overwritten.
type WorkItem struct {
	// Set from the command line
	Filename string

	// Set by metadata extraction
	Date        string       // YYYY-MM-DD
	Coordinates *Coordinates // nil when the photo has no GPS tags

	// Set by prompting
	NewFilename string
	Title       string
	Contents    string

	// Set by relocation and page generation
	NewPath  string
	PagePath string
}

// NewWorkItem creates a work item for a source file.
func NewWorkItem(filename string) *WorkItem {
	return &WorkItem{Filename: filename}
}

// Coordinates is a GPS position in signed decimal degrees.
type Coordinates struct {
	Longitude float64
	Latitude  float64
}

// JSON renders the coordinates as a compact [lon,lat] array.
func (c Coordinates) JSON() string {
	b, err := json.Marshal([]float64{c.Longitude, c.Latitude})
	if err != nil {
		// Only NaN and Inf fail to marshal
		return fmt.Sprintf("[%v,%v]", c.Longitude, c.Latitude)
	}
	return string(b)
}

// String formats the coordinates for status output.
func (c Coordinates) String() string {
	return c.JSON()
}
