package backend

// Property identifies an observable facade property.
type Property string

const (
	PropLoggedIn    Property = "logged_in"
	PropUserName    Property = "user_name"
	PropUserEmail   Property = "user_email"
	PropUserPhone   Property = "user_phone"
	PropUserDesc    Property = "user_desc"
	PropUserAvatar  Property = "user_avatar"
	PropMessages    Property = "messages"
	PropActiveRoom  Property = "active_room"
	PropDarkMode    Property = "dark_mode"
	PropContactList Property = "contact_list"
)

// allProps lists every observable property, in the order a full reload
// announces them.
var allProps = []Property{
	PropLoggedIn,
	PropUserName,
	PropUserEmail,
	PropUserPhone,
	PropUserDesc,
	PropUserAvatar,
	PropContactList,
	PropMessages,
	PropActiveRoom,
	PropDarkMode,
}

// Event signals that the named property changed. The observer re-reads
// the current value through the corresponding getter.
type Event struct {
	Prop Property
}
