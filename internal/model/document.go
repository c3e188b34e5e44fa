package model

// Document is the entire persisted application state. It is written and
// read as one JSON object; every mutation rewrites the whole file.
//
// The field names and shapes are a compatibility contract with existing
// data files: contacts are three-element arrays, history is a flat list
// of display lines, and the session fields are stored side by side.
type Document struct {
	// Contacts is the address book in insertion order.
	Contacts []Contact `json:"contacts"`

	// History is the flat conversation timeline in append order.
	History []string `json:"history"`

	// DarkMode is the persisted theme preference.
	DarkMode bool `json:"dark_mode"`

	// Profile fields.
	MyName   string `json:"my_name"`
	MyEmail  string `json:"my_email"`
	MyPhone  string `json:"my_phone"`
	MyDesc   string `json:"my_desc"`
	MyAvatar string `json:"my_avatar"`

	// IsAuthed records whether a login completed. AccessToken may be
	// empty even when IsAuthed is true (e.g. when the token lives in
	// the system keyring instead of the document).
	IsAuthed    bool   `json:"is_authed"`
	AccessToken string `json:"access_token"`
}

// Profile extracts the profile fields from the document.
func (d Document) Profile() Profile {
	return Profile{
		Name:        d.MyName,
		Email:       d.MyEmail,
		Phone:       d.MyPhone,
		Description: d.MyDesc,
		AvatarPath:  d.MyAvatar,
	}
}

// SetProfile copies profile fields into the document.
func (d *Document) SetProfile(p Profile) {
	d.MyName = p.Name
	d.MyEmail = p.Email
	d.MyPhone = p.Phone
	d.MyDesc = p.Description
	d.MyAvatar = p.AvatarPath
}
