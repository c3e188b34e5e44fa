package store

import "github.com/nhle/nostlichat/internal/model"

// MemoryStore is an in-memory Store used in tests and anywhere a
// throwaway state backend is wanted. It records call counts so tests
// can assert on persistence behavior.
type MemoryStore struct {
	doc     model.Document
	present bool

	SaveCalls   int
	DeleteCalls int
	SaveErr     error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored document, or the zero document when nothing
// has been saved (mirroring the missing-file behavior of JSONStore).
func (s *MemoryStore) Load() (model.Document, error) {
	if !s.present {
		return model.Document{}, nil
	}
	return s.doc, nil
}

// Save stores the document. Returns SaveErr when configured, without
// storing, so tests can exercise the log-and-continue path.
func (s *MemoryStore) Save(doc model.Document) error {
	s.SaveCalls++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.doc = doc
	s.present = true
	return nil
}

// Delete discards the stored document.
func (s *MemoryStore) Delete() error {
	s.DeleteCalls++
	s.doc = model.Document{}
	s.present = false
	return nil
}

// Document returns the last saved document for assertions.
func (s *MemoryStore) Document() model.Document {
	return s.doc
}

// Present reports whether a document is currently stored.
func (s *MemoryStore) Present() bool {
	return s.present
}
