package anki

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"time"
)

// Index returns the position of a field by case-insensitive name.
func (m *Model) Index(name string) (int, bool) {
	for _, f := range m.Fields {
		if strings.EqualFold(f.Name, name) {
			return f.Ord, true
		}
	}
	return 0, false
}

// HasField reports whether the note type has the named field.
func (m *Model) HasField(name string) bool {
	_, ok := m.Index(name)
	return ok
}

// FieldValue returns a note's field by name, or "" when the note type has
// no such field.
func (p *Package) FieldValue(note *Note, name string) string {
	model := p.Model(note)
	if model == nil {
		return ""
	}
	if i, ok := model.Index(name); ok && i < len(note.Fields) {
		return note.Fields[i]
	}
	return ""
}

// FieldNames returns the field names of a note's type in order.
func (p *Package) FieldNames(note *Note) []string {
	model := p.Model(note)
	if model == nil {
		return nil
	}
	names := make([]string, len(model.Fields))
	for i, f := range model.Fields {
		names[i] = f.Name
	}
	return names
}

// EnsureField appends a field to a note type unless it already has one with
// that name. It reports whether a field was added.
func (p *Package) EnsureField(modelID int64, name string) (bool, error) {
	model, ok := p.Models[modelID]
	if !ok {
		return false, fmt.Errorf("note type %d not found", modelID)
	}
	if model.HasField(name) {
		return false, nil
	}

	font, size := "Arial", 20
	var raw map[string]json.RawMessage
	if len(model.Fields) > 0 {
		// Settings Anki stores per field (rtl, sticky, media...) follow the
		// last field.
		last := model.Fields[len(model.Fields)-1]
		raw = maps.Clone(last.raw)
		if last.Font != "" {
			font = last.Font
		}
		if last.Size > 0 {
			size = last.Size
		}
	}
	model.Fields = append(model.Fields, Field{
		Name: name,
		Ord:  len(model.Fields),
		Font: font,
		Size: size,
		raw:  raw,
	})
	model.changed = true
	return true, nil
}

// SetField sets a note's field by name, padding the note with empty fields
// when its type has grown.
func (p *Package) SetField(note *Note, name, value string) error {
	model := p.Model(note)
	if model == nil {
		return fmt.Errorf("note type not found for note %d", note.ID)
	}
	i, ok := model.Index(name)
	if !ok {
		return fmt.Errorf("note type %q has no field %q", model.Name, name)
	}

	for len(note.Fields) < len(model.Fields) {
		note.Fields = append(note.Fields, "")
		note.changed = true
	}
	if note.Fields[i] == value && !note.changed {
		return nil
	}

	note.Fields[i] = value
	if model.SortField < len(note.Fields) {
		note.SFLD = note.Fields[model.SortField]
	}
	note.Mod = time.Now().Unix()
	note.changed = true
	return nil
}
