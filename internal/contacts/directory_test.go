package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/nostlichat/internal/model"
)

func TestFindByNameMissing(t *testing.T) {
	d := New()
	_, ok := d.FindByName("nobody")
	assert.False(t, ok)
	assert.Empty(t, d.EmailFor("nobody"))
	assert.Empty(t, d.PhoneFor("nobody"))
}

func TestFindByNameReturnsFirstMatch(t *testing.T) {
	d := New()
	d.Add(model.Contact{Name: "Alice", Email: "alice@one.example", Phone: "111"})
	d.Add(model.Contact{Name: "Alice", Email: "alice@two.example", Phone: "222"})

	c, ok := d.FindByName("Alice")
	assert.True(t, ok)
	assert.Equal(t, "alice@one.example", c.Email)
	assert.Equal(t, "111", c.Phone)
}

func TestNamesInsertionOrderWithDuplicates(t *testing.T) {
	d := New()
	d.Add(model.Contact{Name: "Bob"})
	d.Add(model.Contact{Name: "Alice"})
	d.Add(model.Contact{Name: "Bob"})

	assert.Equal(t, []string{"Bob", "Alice", "Bob"}, d.Names())
	assert.Equal(t, 3, d.Len())
}

func TestReplaceAndSnapshot(t *testing.T) {
	d := New()
	d.Add(model.Contact{Name: "old"})

	restored := []model.Contact{
		{Name: "Alice", Email: "a@example.com"},
		{Name: "Bob", Email: "b@example.com"},
	}
	d.Replace(restored)

	snap := d.Snapshot()
	assert.Equal(t, restored, snap)

	// Snapshot is a copy; mutating it does not touch the directory.
	snap[0].Name = "mutated"
	assert.Equal(t, []string{"Alice", "Bob"}, d.Names())
}
