// Package types defines core domain types for the heicbridge runtime.
package types

import "strings"

// ResourceReference identifies a stored resource on the host server.
// Immutable once constructed; build one with NewResourceReference or
// ParseAnnotated rather than mutating fields after the fact.
type ResourceReference struct {
	// Filename is the bare stored filename (no directory component).
	Filename string `json:"filename"`
	// Subfolder is the storage subfolder, empty for the input root.
	Subfolder string `json:"subfolder,omitempty"`
}

// NewResourceReference builds a reference from the storage endpoint's
// name/subfolder pair.
func NewResourceReference(filename, subfolder string) ResourceReference {
	return ResourceReference{Filename: filename, Subfolder: subfolder}
}

// Annotated returns the canonical annotated identifier: "subfolder/filename",
// or the bare filename when the subfolder is empty. This string is the one
// resource key accepted everywhere a resource name is expected (widget value,
// preview URL filename parameter).
func (r ResourceReference) Annotated() string {
	if r.Subfolder == "" {
		return r.Filename
	}
	return r.Subfolder + "/" + r.Filename
}

// ParseAnnotated splits a canonical annotated identifier back into a
// reference. Everything before the last separator is the subfolder, so
// nested subfolders round-trip.
func ParseAnnotated(id string) ResourceReference {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return ResourceReference{Filename: id[i+1:], Subfolder: id[:i]}
	}
	return ResourceReference{Filename: id}
}

// UploadResponse mirrors the storage endpoint's JSON response body.
// Both fields are optional on the wire; callers fill defaults.
type UploadResponse struct {
	Name      string `json:"name"`
	Subfolder string `json:"subfolder,omitempty"`
	Type      string `json:"type,omitempty"`
}
