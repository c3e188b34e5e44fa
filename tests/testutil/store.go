package testutil

import (
	"testing"

	"github.com/nhle/nostlichat/internal/store"
)

// NewTestStore creates a JSONStore rooted in a per-test temporary
// directory, so tests never touch the real user data file.
func NewTestStore(t *testing.T) *store.JSONStore {
	t.Helper()
	return store.NewJSONStore(t.TempDir())
}
