package session

import (
	"github.com/pkg/errors"
	"github.com/soar/sohconfig/internal/binding"
	"github.com/soar/sohconfig/internal/ini"
)

// BackendKey is the global key holding the graphics backend.
const BackendKey = "gfx backend"

// BackendEntry is a selectable graphics backend.
type BackendEntry struct {
	DisplayName string `json:"displayName"`
	Value       string `json:"value"`
}

var backends = []BackendEntry{
	{DisplayName: "Direct3D11", Value: ""},
	{DisplayName: "OpenGL", Value: "sdl"},
}

// Backends lists the backend choices in display order.
func Backends() []BackendEntry {
	out := make([]BackendEntry, len(backends))
	copy(out, backends)
	return out
}

// BackendByValue returns the entry whose setting string is value.
func BackendByValue(value string) (BackendEntry, bool) {
	for _, b := range backends {
		if b.Value == value {
			return b, true
		}
	}
	return BackendEntry{}, false
}

// BackendByName resolves a display name or a setting string.
func BackendByName(name string) (BackendEntry, bool) {
	for _, b := range backends {
		if b.DisplayName == name {
			return b, true
		}
	}
	return BackendByValue(name)
}

// LoadBinding returns the record stored for guid, or a fresh record when the
// document has no section for it.
func LoadBinding(doc *ini.Document, guid string) (*binding.Record, error) {
	lines, ok := doc.ExtractSection(binding.SectionPrefix, guid)
	if !ok {
		return binding.Fresh(guid), nil
	}
	rec, err := binding.Parse(guid, lines)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading binding for '%s'", guid)
	}
	return rec, nil
}

// SaveBinding writes rec into its section and saves the document.
func SaveBinding(doc *ini.Document, rec *binding.Record) error {
	doc.ReplaceSection(binding.SectionPrefix, rec.ID(), rec.Serialize())
	if err := doc.Save(); err != nil {
		return errors.Wrapf(err, "error saving binding for '%s'", rec.ID())
	}
	return nil
}

// CurrentBackend returns the backend setting string stored in doc.
func CurrentBackend(doc *ini.Document) (string, error) {
	return doc.SingleKeyValue(BackendKey)
}

// SaveBackend overwrites the backend key and saves the document.
func SaveBackend(doc *ini.Document, value string) error {
	if err := doc.ReplaceSingleKeyValue(BackendKey, value); err != nil {
		return err
	}
	if err := doc.Save(); err != nil {
		return errors.Wrap(err, "error saving backend")
	}
	return nil
}
