// Package backend is the facade the presentation layer talks to: it
// owns the in-memory state, persists it through the store, and drives
// the remote sync worker.
package backend

import (
	"strings"
	gosync "sync"
	"time"

	"github.com/nhle/nostlichat/internal/contacts"
	"github.com/nhle/nostlichat/internal/credential"
	"github.com/nhle/nostlichat/internal/history"
	"github.com/nhle/nostlichat/internal/launcher"
	"github.com/nhle/nostlichat/internal/logger"
	"github.com/nhle/nostlichat/internal/model"
	"github.com/nhle/nostlichat/internal/provider"
	"github.com/nhle/nostlichat/internal/provider/gmail"
	"github.com/nhle/nostlichat/internal/session"
	"github.com/nhle/nostlichat/internal/store"
	appsync "github.com/nhle/nostlichat/internal/sync"
)

// imageSentLine is the optimistic history entry recorded for an
// outbound image.
const imageSentLine = "Me: 🖼️ (Image Sent)"

// Runner is the slice of the sync worker the facade uses. The real
// implementation is appsync.Worker; tests substitute a recorder.
type Runner interface {
	EnqueuePull(client provider.Client, selfEmail string, limit int) bool
	EnqueueSend(client provider.Client, raw []byte) bool
	Stop()
}

// ClientFactory builds a provider client bound to a bearer token.
type ClientFactory func(token string) provider.Client

// Backend is the single object the UI observes and commands. All
// state access is serialized through one mutex; the sync worker calls
// back into ApplyPull, which takes the same lock, so there is exactly
// one writer at a time.
type Backend struct {
	cfg   *model.AppConfig
	store store.Store

	mu         gosync.Mutex
	contacts   *contacts.Directory
	history    *history.Log
	session    *session.Session
	profile    model.Profile
	darkMode   bool
	activeRoom string

	launcher  launcher.Launcher
	vault     credential.Vault
	newClient ClientFactory
	runner    Runner

	events chan Event
}

// Option configures a Backend.
type Option func(*Backend)

// WithLauncher replaces the OS launcher.
func WithLauncher(l launcher.Launcher) Option {
	return func(b *Backend) { b.launcher = l }
}

// WithVault replaces the credential vault regardless of the configured
// backend.
func WithVault(v credential.Vault) Option {
	return func(b *Backend) { b.vault = v }
}

// WithClientFactory replaces the provider client constructor.
func WithClientFactory(f ClientFactory) Option {
	return func(b *Backend) { b.newClient = f }
}

// WithRunner replaces the sync worker.
func WithRunner(r Runner) Option {
	return func(b *Backend) { b.runner = r }
}

// New wires a backend from its collaborators and starts the sync
// worker. Call Load to restore persisted state and Close on shutdown.
func New(cfg *model.AppConfig, st store.Store, opts ...Option) *Backend {
	b := &Backend{
		cfg:      cfg,
		store:    st,
		contacts: contacts.New(),
		history:  history.New(),
		session:  session.New(),
		events:   make(chan Event, 64),
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.launcher == nil {
		b.launcher = launcher.ExecLauncher{}
	}
	if b.vault == nil && cfg.Auth.CredentialBackend == model.CredentialBackendKeyring {
		b.vault = credential.KeyringVault{}
	}
	if b.newClient == nil {
		b.newClient = func(token string) provider.Client {
			return gmail.NewClient(
				cfg.Provider.BaseURL,
				token,
				time.Duration(cfg.Provider.TimeoutSec)*time.Second,
			)
		}
	}
	if b.runner == nil {
		w := appsync.NewWorker(b)
		w.Start()
		b.runner = w
	}

	return b
}

// Close stops the sync worker.
func (b *Backend) Close() {
	b.runner.Stop()
}

// Events returns the change notification channel. Notifications are
// dropped rather than blocking when the observer falls behind.
func (b *Backend) Events() <-chan Event {
	return b.events
}

// Load restores state from the persisted document and announces every
// observable property, changed or not, so a fresh observer can render
// from scratch.
func (b *Backend) Load() {
	doc, err := b.store.Load()
	if err != nil {
		logger.Warn("loading state failed, starting fresh", "error", err)
		doc = model.Document{}
	}

	b.mu.Lock()
	b.profile = doc.Profile()
	b.darkMode = doc.DarkMode
	b.contacts.Replace(doc.Contacts)
	b.history.Replace(doc.History)

	token := doc.AccessToken
	if b.vault != nil {
		if t, err := b.vault.GetToken(); err == nil && t != "" {
			token = t
		}
	}
	b.session.Restore(doc.IsAuthed, token)
	b.mu.Unlock()

	for _, p := range allProps {
		b.notify(p)
	}
}

// === Property getters ===

// LoggedIn reports whether a login has completed.
func (b *Backend) LoggedIn() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session.LoggedIn()
}

// UserName returns the display name.
func (b *Backend) UserName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profile.Name
}

// UserEmail returns the authenticated account address. There is no
// setter; the value only changes through Load.
func (b *Backend) UserEmail() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profile.Email
}

// UserPhone returns the user's own phone number.
func (b *Backend) UserPhone() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profile.Phone
}

// UserDesc returns the profile description.
func (b *Backend) UserDesc() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profile.Description
}

// UserAvatar returns the avatar path.
func (b *Backend) UserAvatar() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profile.AvatarPath
}

// Messages returns a snapshot of the conversation timeline.
func (b *Backend) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.All()
}

// ActiveRoom returns the current room name.
func (b *Backend) ActiveRoom() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.activeRoom
}

// DarkMode returns the theme preference.
func (b *Backend) DarkMode() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.darkMode
}

// ContactNames returns the contact display names in insertion order.
func (b *Backend) ContactNames() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.contacts.Names()
}

// === Property setters: mutate, notify, persist ===

// SetUserName updates the display name.
func (b *Backend) SetUserName(v string) {
	b.mu.Lock()
	b.profile.Name = v
	b.persistLocked()
	b.mu.Unlock()
	b.notify(PropUserName)
}

// SetUserPhone updates the user's own phone number.
func (b *Backend) SetUserPhone(v string) {
	b.mu.Lock()
	b.profile.Phone = v
	b.persistLocked()
	b.mu.Unlock()
	b.notify(PropUserPhone)
}

// SetUserDesc updates the profile description.
func (b *Backend) SetUserDesc(v string) {
	b.mu.Lock()
	b.profile.Description = v
	b.persistLocked()
	b.mu.Unlock()
	b.notify(PropUserDesc)
}

// SetUserAvatar updates the avatar path.
func (b *Backend) SetUserAvatar(v string) {
	b.mu.Lock()
	b.profile.AvatarPath = v
	b.persistLocked()
	b.mu.Unlock()
	b.notify(PropUserAvatar)
}

// SetDarkMode updates the theme preference.
func (b *Backend) SetDarkMode(v bool) {
	b.mu.Lock()
	b.darkMode = v
	b.persistLocked()
	b.mu.Unlock()
	b.notify(PropDarkMode)
}

// SetActiveRoom switches the send target and triggers a history pull.
// The room name is not validated against the contact directory, and
// switching does not filter the (flat) timeline. The room is not
// persisted; it resets on restart.
func (b *Backend) SetActiveRoom(room string) {
	b.mu.Lock()
	b.activeRoom = room
	token := b.session.Token()
	selfEmail := b.profile.Email
	b.mu.Unlock()

	b.notify(PropActiveRoom)
	b.triggerPull(token, selfEmail)
}

// === Commands ===

// StartLogin hands off to the external browser-based authorization
// flow. No state changes until the redirect comes back through
// HandleCallback.
func (b *Backend) StartLogin() {
	b.launcher.OpenURL(b.cfg.Auth.LoginURL)
}

// HandleCallback consumes the authorization redirect URL. On a
// recognized token parameter it stores the token, flips to logged in,
// activates the default room, and persists. A URL without a recognized
// parameter is silently ignored.
func (b *Backend) HandleCallback(rawURL string) {
	b.mu.Lock()
	if !b.session.HandleCallback(rawURL) {
		b.mu.Unlock()
		return
	}
	b.activeRoom = b.cfg.Chat.DefaultRoom
	b.persistLocked()
	token := b.session.Token()
	selfEmail := b.profile.Email
	b.mu.Unlock()

	b.notify(PropLoggedIn)
	b.notify(PropActiveRoom)
	b.triggerPull(token, selfEmail)
}

// Logout flips to logged out and removes the persisted document from
// disk entirely. In-memory profile, contacts, and history survive
// until the process exits; only the session fields are cleared.
func (b *Backend) Logout() {
	b.mu.Lock()
	b.session.Logout()
	if b.vault != nil {
		if err := b.vault.DeleteToken(); err != nil {
			logger.Debug("removing vaulted token failed", "error", err)
		}
	}
	if err := b.store.Delete(); err != nil {
		logger.Warn("removing state file failed", "error", err)
	}
	b.mu.Unlock()

	b.notify(PropLoggedIn)
}

// SendMessage appends an optimistic "Me:" entry, persists, and queues
// the outbound send. Blank messages and logged-out sessions no-op. A
// room with no resolvable recipient keeps the local entry but issues
// no network call.
func (b *Backend) SendMessage(msg string) {
	if strings.TrimSpace(msg) == "" {
		return
	}

	b.mu.Lock()
	token := b.session.Token()
	if token == "" {
		b.mu.Unlock()
		return
	}
	recipient := b.contacts.EmailFor(b.activeRoom)
	changed := b.history.Append("Me: " + msg)
	b.persistLocked()
	b.mu.Unlock()

	if changed {
		b.notify(PropMessages)
	}

	if recipient == "" {
		return
	}
	b.runner.EnqueueSend(b.newClient(token), gmail.BuildText(recipient, msg))
}

// SendImage reads the file behind a file:// URL and queues it as a
// two-part MIME message. An unreadable file, a missing recipient, or a
// logged-out session all silently no-op with no history entry.
func (b *Backend) SendImage(fileURL string) {
	path := strings.ReplaceAll(fileURL, "file://", "")

	b.mu.Lock()
	token := b.session.Token()
	recipient := b.contacts.EmailFor(b.activeRoom)
	b.mu.Unlock()

	if token == "" || recipient == "" {
		return
	}

	raw, err := gmail.BuildImage(recipient, path)
	if err != nil {
		logger.Debug("image not readable, skipping send", "path", path, "error", err)
		return
	}

	b.mu.Lock()
	changed := b.history.Append(imageSentLine)
	b.mu.Unlock()

	if changed {
		b.notify(PropMessages)
	}
	b.runner.EnqueueSend(b.newClient(token), raw)
}

// SaveContact appends a contact. Duplicate names are allowed; lookups
// keep resolving to the first one.
func (b *Backend) SaveContact(name, email, phone string) {
	b.mu.Lock()
	b.contacts.Add(model.Contact{Name: name, Email: email, Phone: phone})
	b.persistLocked()
	b.mu.Unlock()

	b.notify(PropContactList)
}

// CurrentPhone returns the active room contact's phone number, falling
// back to the user's own number when the room has no contact entry.
func (b *Backend) CurrentPhone() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c, ok := b.contacts.FindByName(b.activeRoom); ok {
		return c.Phone
	}
	return b.profile.Phone
}

// CallContact hands a tel: URL to the OS dialer, fire-and-forget.
func (b *Backend) CallContact(phone string) {
	b.launcher.OpenURL("tel:" + phone)
}

// Refresh triggers a history pull for the current session.
func (b *Backend) Refresh() {
	b.mu.Lock()
	token := b.session.Token()
	selfEmail := b.profile.Email
	b.mu.Unlock()

	b.triggerPull(token, selfEmail)
}

// ApplyPull merges fetched lines into the timeline. Invoked from the
// sync worker goroutine; results only ever append, so an optimistic
// local entry is never rolled back. Pulled lines are not persisted
// until the next mutating operation.
func (b *Backend) ApplyPull(lines []string) {
	b.mu.Lock()
	changed := false
	for _, line := range lines {
		if b.history.Append(line) {
			changed = true
		}
	}
	b.mu.Unlock()

	if changed {
		b.notify(PropMessages)
	}
}

// === internals ===

// triggerPull queues a pull when a token is available.
func (b *Backend) triggerPull(token, selfEmail string) {
	if token == "" {
		return
	}
	b.runner.EnqueuePull(b.newClient(token), selfEmail, b.cfg.Provider.FetchLimit)
}

// persistLocked snapshots the full state into a document and saves it.
// Write failures are logged and swallowed so a broken disk never takes
// the interactive surface down. Callers must hold b.mu.
func (b *Backend) persistLocked() {
	doc := model.Document{
		Contacts:    b.contacts.Snapshot(),
		History:     b.history.All(),
		DarkMode:    b.darkMode,
		IsAuthed:    b.session.LoggedIn(),
		AccessToken: b.session.Token(),
	}
	doc.SetProfile(b.profile)

	if b.vault != nil {
		if doc.AccessToken != "" {
			if err := b.vault.SetToken(doc.AccessToken); err != nil {
				logger.Warn("vaulting token failed", "error", err)
			}
		}
		// The keyring owns the token; keep it out of the plaintext file.
		doc.AccessToken = ""
	}

	if err := b.store.Save(doc); err != nil {
		logger.Warn("persisting state failed", "error", err)
	}
}

// notify emits a change event without blocking. A full channel drops
// the event; observers treat events as hints and re-read getters.
func (b *Backend) notify(p Property) {
	select {
	case b.events <- Event{Prop: p}:
	default:
	}
}
