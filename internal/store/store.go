package store

import "github.com/nhle/nostlichat/internal/model"

// Store defines the persistence interface for the application state
// document. The document is always read and written as one unit; there
// are no partial updates.
//
// Load never fails on a missing or unreadable file: that case resolves
// to the zero-value document so the application starts fresh. Save and
// Delete return errors so a caller can decide whether to surface them;
// the default policy is log-and-continue.
type Store interface {
	Load() (model.Document, error)
	Save(doc model.Document) error
	Delete() error
}
