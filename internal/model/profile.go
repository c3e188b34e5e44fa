package model

// Profile holds the user-editable identity fields. None of them are
// validated; all are free-form strings.
type Profile struct {
	// Name is the display name shown for the local user.
	Name string

	// Email is the authenticated account address. It is only ever set
	// from a restored document, never through a setter.
	Email string

	// Phone is the user's own number, used as the dial fallback when
	// the active room has no contact entry.
	Phone string

	// Description is the free-form profile blurb.
	Description string

	// AvatarPath is a local filesystem path to the avatar image.
	AvatarPath string
}
