package model

import (
	"encoding/json"
	"fmt"
)

// Contact is a single address-book entry. Names are not unique;
// lookups resolve to the first entry added with a given name.
type Contact struct {
	// Name is the display name and the room key for conversations.
	Name string

	// Email is the address outbound messages are sent to.
	Email string

	// Phone is the number handed to the OS dialer.
	Phone string
}

// MarshalJSON encodes the contact as the three-element array
// [name, email, phone] used by the data file.
func (c Contact) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]string{c.Name, c.Email, c.Phone})
}

// UnmarshalJSON decodes the [name, email, phone] array form. Shorter
// arrays leave the remaining fields empty.
func (c *Contact) UnmarshalJSON(data []byte) error {
	var fields []string
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decoding contact entry: %w", err)
	}

	*c = Contact{}
	if len(fields) > 0 {
		c.Name = fields[0]
	}
	if len(fields) > 1 {
		c.Email = fields[1]
	}
	if len(fields) > 2 {
		c.Phone = fields[2]
	}
	return nil
}
