package diagram

import (
	"encoding/json"
	"fmt"
	"os"
)

// fileDocument mirrors Document with pointer slices so a missing key can be
// told apart from an empty list.
type fileDocument struct {
	Shapes *[]Shape `json:"shapes"`
	Arrows *[]Arrow `json:"arrows"`
}

// Marshal encodes a document in the saved-file format, indented by two
// spaces.
func Marshal(doc Document) ([]byte, error) {
	out := doc.Clone()
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return data, nil
}

// Unmarshal decodes a saved diagram and validates every entry.
func Unmarshal(data []byte) (Document, error) {
	var f fileDocument
	if err := json.Unmarshal(data, &f); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if f.Shapes == nil {
		return Document{}, fmt.Errorf("%w: missing shapes", ErrSerialization)
	}
	if f.Arrows == nil {
		return Document{}, fmt.Errorf("%w: missing arrows", ErrSerialization)
	}

	doc := Document{Shapes: *f.Shapes, Arrows: *f.Arrows}
	for i, s := range doc.Shapes {
		if !s.Kind.Valid() {
			return Document{}, fmt.Errorf("%w: shape %d: unknown shape_type %q", ErrSerialization, i, s.Kind)
		}
		if s.Width <= 0 || s.Height <= 0 {
			return Document{}, fmt.Errorf("%w: shape %d: size %gx%g must be positive", ErrSerialization, i, s.Width, s.Height)
		}
	}
	for i, a := range doc.Arrows {
		if !a.Kind.Valid() {
			return Document{}, fmt.Errorf("%w: arrow %d: unknown arrow_type %q", ErrSerialization, i, a.Kind)
		}
	}
	return doc, nil
}

// SaveFile writes doc to filename.
func SaveFile(filename string, doc Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return nil
}

// LoadFile reads and validates the diagram stored at filename.
func LoadFile(filename string) (Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return Unmarshal(data)
}
