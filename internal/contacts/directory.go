// Package contacts holds the in-memory contact directory backing
// name lookups for sends and dials.
package contacts

import "github.com/nhle/nostlichat/internal/model"

// Directory is an insertion-ordered list of contacts. Names are not
// unique; FindByName resolves to the first entry added with that name.
// Entries are never updated or removed.
type Directory struct {
	entries []model.Contact
}

// New creates an empty directory.
func New() *Directory {
	return &Directory{}
}

// Add appends a contact. No uniqueness check is performed.
func (d *Directory) Add(c model.Contact) {
	d.entries = append(d.entries, c)
}

// FindByName returns the first contact with the given name in
// insertion order.
func (d *Directory) FindByName(name string) (model.Contact, bool) {
	for _, c := range d.entries {
		if c.Name == name {
			return c, true
		}
	}
	return model.Contact{}, false
}

// EmailFor returns the email of the first contact with the given name,
// or "" when no such contact exists.
func (d *Directory) EmailFor(name string) string {
	c, _ := d.FindByName(name)
	return c.Email
}

// PhoneFor returns the phone of the first contact with the given name,
// or "" when no such contact exists.
func (d *Directory) PhoneFor(name string) string {
	c, _ := d.FindByName(name)
	return c.Phone
}

// Names returns the contact display names in insertion order.
func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.entries))
	for _, c := range d.entries {
		names = append(names, c.Name)
	}
	return names
}

// Snapshot returns a copy of all entries in insertion order.
func (d *Directory) Snapshot() []model.Contact {
	out := make([]model.Contact, len(d.entries))
	copy(out, d.entries)
	return out
}

// Replace swaps the directory contents, used when restoring from a
// persisted document.
func (d *Directory) Replace(entries []model.Contact) {
	d.entries = make([]model.Contact, len(entries))
	copy(d.entries, entries)
}

// Len returns the number of entries.
func (d *Directory) Len() int {
	return len(d.entries)
}
