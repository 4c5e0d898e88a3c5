// Package session keeps the signed-in student and admin of a client.
//
// A Holder is the only writer of identity state. Readers take immutable
// snapshots or subscribe to changes; every mutation is mirrored into a
// Persister so the identity survives across requests.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/javamaster/internal/app/models"
)

// Persisted entry names
const (
	StudentKey = "student"
	AdminKey   = "admin"
)

// ErrNoEntry is returned by a Persister that holds nothing under a key
var ErrNoEntry = errors.New("no persisted entry")

// State tells whether persisted identities have been read yet
type State int

const (
	NotLoaded State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Loading:
		return "Loading"
	case Ready:
		return "Ready"
	default:
		return "NotLoaded"
	}
}

// Snapshot is an immutable view of the holder. Callers must not modify the records.
type Snapshot struct {
	State   State
	Student *models.Student
	Admin   *models.AdminUser
}

// Authenticator verifies credentials and creates accounts
type Authenticator interface {
	SignUp(ctx context.Context, in models.NewStudent) (*models.Student, error)
	Login(ctx context.Context, email, password string) (*models.Student, error)
	AdminLogin(ctx context.Context, email, password string) (*models.AdminUser, error)
}

// Persister stores serialized identities between requests
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Store(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Holder is a single-writer identity store
type Holder struct {
	mu        sync.Mutex
	snap      Snapshot
	auth      Authenticator
	store     Persister
	observers map[int]func(Snapshot)
	nextID    int
	logger    zerolog.Logger
}

// NewHolder creates a holder in the NotLoaded state
func NewHolder(auth Authenticator, store Persister, logger zerolog.Logger) *Holder {
	return &Holder{
		auth:      auth,
		store:     store,
		observers: make(map[int]func(Snapshot)),
		logger:    logger,
	}
}

// Snapshot returns the current state
func (h *Holder) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snap
}

// Subscribe registers fn to be called with the new snapshot after each change.
// The returned func removes the subscription.
func (h *Holder) Subscribe(fn func(Snapshot)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.observers[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.observers, id)
		h.mu.Unlock()
	}
}

// Init reads the persisted identities. Entries that fail to load or map are
// dropped and removed from the store. Calling Init on a loaded holder is a no-op.
func (h *Holder) Init(ctx context.Context) {
	h.mu.Lock()
	if h.snap.State != NotLoaded {
		h.mu.Unlock()
		return
	}
	h.snap = Snapshot{State: Loading}
	h.mu.Unlock()
	h.notify(Snapshot{State: Loading})

	next := Snapshot{State: Ready}
	if raw, ok := h.load(ctx, StudentKey); ok {
		if student, err := FromStudentIdentity(raw); err == nil {
			next.Student = student
		} else {
			h.logger.Warn().Err(err).Msg("Dropping malformed student identity")
			h.remove(ctx, StudentKey)
		}
	}
	if raw, ok := h.load(ctx, AdminKey); ok {
		if admin, err := FromAdminIdentity(raw); err == nil {
			next.Admin = admin
		} else {
			h.logger.Warn().Err(err).Msg("Dropping malformed admin identity")
			h.remove(ctx, AdminKey)
		}
	}

	h.mu.Lock()
	h.snap = next
	h.mu.Unlock()
	h.notify(next)
}

// SignUp creates a student account and signs it in
func (h *Holder) SignUp(ctx context.Context, in models.NewStudent) (*models.Student, error) {
	student, err := h.auth.SignUp(ctx, in)
	if err != nil {
		return nil, err
	}
	h.setStudent(ctx, student)
	return student, nil
}

// Login signs a student in. On failure the current identity is kept.
func (h *Holder) Login(ctx context.Context, email, password string) (*models.Student, error) {
	student, err := h.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	h.setStudent(ctx, student)
	return student, nil
}

// AdminLogin signs an admin in. On failure the current identity is kept.
func (h *Holder) AdminLogin(ctx context.Context, email, password string) (*models.AdminUser, error) {
	admin, err := h.auth.AdminLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}

	raw, err := ToAdminIdentity(admin)
	if err == nil {
		err = h.store.Store(ctx, AdminKey, raw)
	}
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to persist admin identity")
	}
	h.mutate(func(s *Snapshot) { s.Admin = admin })
	return admin, nil
}

// Logout clears the student identity
func (h *Holder) Logout(ctx context.Context) {
	h.remove(ctx, StudentKey)
	h.mutate(func(s *Snapshot) { s.Student = nil })
}

// AdminLogout clears the admin identity
func (h *Holder) AdminLogout(ctx context.Context) {
	h.remove(ctx, AdminKey)
	h.mutate(func(s *Snapshot) { s.Admin = nil })
}

func (h *Holder) setStudent(ctx context.Context, student *models.Student) {
	raw, err := ToStudentIdentity(student)
	if err == nil {
		err = h.store.Store(ctx, StudentKey, raw)
	}
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to persist student identity")
	}
	h.mutate(func(s *Snapshot) { s.Student = student })
}

// mutate applies fn under the lock; a holder that was never loaded becomes Ready
func (h *Holder) mutate(fn func(*Snapshot)) {
	h.mu.Lock()
	next := h.snap
	fn(&next)
	next.State = Ready
	h.snap = next
	h.mu.Unlock()
	h.notify(next)
}

func (h *Holder) notify(snap Snapshot) {
	h.mu.Lock()
	observers := make([]func(Snapshot), 0, len(h.observers))
	for _, fn := range h.observers {
		observers = append(observers, fn)
	}
	h.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

func (h *Holder) load(ctx context.Context, key string) ([]byte, bool) {
	raw, err := h.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNoEntry) {
			h.logger.Warn().Err(err).Str("key", key).Msg("Failed to load persisted identity")
			h.remove(ctx, key)
		}
		return nil, false
	}
	return raw, true
}

func (h *Holder) remove(ctx context.Context, key string) {
	if err := h.store.Remove(ctx, key); err != nil {
		h.logger.Warn().Err(err).Str("key", key).Msg("Failed to remove persisted identity")
	}
}
