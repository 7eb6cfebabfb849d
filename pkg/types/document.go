package types

import "strings"

// Document is a single source file read from the repository. Path is unique
// within a run and doubles as the document's identity. A Document is never
// mutated after it has been read.
type Document struct {
	// Path is the path relative to the repository root.
	Path string `json:"path"`

	// Content is the decoded text content.
	Content string `json:"-"`

	// Ext is the filename suffix including the leading dot, or "" when the
	// file has no extension.
	Ext string `json:"extension"`

	// Size is the content length in bytes.
	Size int `json:"size"`
}

// Lines returns the number of lines in the document content.
func (d *Document) Lines() int {
	return strings.Count(d.Content, "\n") + 1
}

// ExtKey returns the extension used for grouping, with a stable placeholder
// for files that have none.
func (d *Document) ExtKey() string {
	if d.Ext == "" {
		return "no_extension"
	}
	return d.Ext
}

// IsReadme reports whether the document looks like a project readme.
func (d *Document) IsReadme() bool {
	return strings.Contains(strings.ToLower(d.Path), "readme")
}
