// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ImportSet is the classified snapshot of one input directory, taken once at
// the start of a migration run.
type ImportSet struct {
	// Documents are the note documents to convert, in discovery order.
	Documents []string

	// Index is the path of the export's index document, or "" when the
	// directory has none or the index is converted as a regular document.
	Index string

	// ResourceFolders are the media folders accompanying the documents.
	ResourceFolders []string

	// ResourceFiles are the regular files directly inside ResourceFolders,
	// flattened in folder order.
	ResourceFiles []string
}

// Originals returns every source document path that cleanup must delete.
func (s *ImportSet) Originals() []string {
	out := append([]string(nil), s.Documents...)
	if s.Index != "" {
		out = append(out, s.Index)
	}
	return out
}
