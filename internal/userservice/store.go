// Package userservice implements the identity service: account creation,
// credential verification and API-key issuance for the other services.
package userservice

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"

	"github.com/shopmesh/shopmesh/internal/model"
)

var (
	ErrUsernameTaken  = errors.New("username already registered")
	ErrEmailTaken     = errors.New("email already registered")
	ErrNotFound       = errors.New("user not found")
	ErrBadCredentials = errors.New("bad credentials")
)

const (
	pbkdf2Iterations = 100000
	pbkdf2KeyLen     = 64
	saltHexLen       = 64
)

// account is the stored form of a user. The password hash is the hex salt
// concatenated with the hex pbkdf2-sha512 digest; the layout is fixed so
// existing records stay verifiable.
type account struct {
	id           int64
	username     string
	email        string
	firstName    string
	lastName     string
	passwordHash string
	apiKey       string
}

func (a *account) toUser() model.User {
	return model.User{ID: a.id, Username: a.username, Email: a.email}
}

// Store keeps accounts in memory, keyed by username. Single-instance
// deployments need nothing more; the interface stays small enough to swap a
// database behind later.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	byName  map[string]*account
	byEmail map[string]*account
	byKey   map[string]*account
}

func NewStore() *Store {
	return &Store{
		nextID:  1,
		byName:  make(map[string]*account),
		byEmail: make(map[string]*account),
		byKey:   make(map[string]*account),
	}
}

// NewAccount describes a registration request.
type NewAccount struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Create registers a new account. Username collisions win over email
// collisions when both apply, matching the duplicate checks' order.
func (s *Store) Create(acc NewAccount) (model.User, error) {
	hash, err := hashPassword(acc.Password)
	if err != nil {
		return model.User{}, errors.Wrap(err, "hashing password")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[acc.Username]; ok {
		return model.User{}, ErrUsernameTaken
	}
	if _, ok := s.byEmail[acc.Email]; ok {
		return model.User{}, ErrEmailTaken
	}

	a := &account{
		id:           s.nextID,
		username:     acc.Username,
		email:        acc.Email,
		firstName:    acc.FirstName,
		lastName:     acc.LastName,
		passwordHash: hash,
	}
	s.nextID++
	s.byName[a.username] = a
	s.byEmail[a.email] = a
	return a.toUser(), nil
}

// Authenticate verifies the password and rotates the account's API key.
// Every successful login issues a fresh key; the previous one stops working.
func (s *Store) Authenticate(username, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byName[username]
	if !ok || !verifyPassword(a.passwordHash, password) {
		return "", ErrBadCredentials
	}

	key, err := newAPIKey()
	if err != nil {
		return "", errors.Wrap(err, "issuing api key")
	}
	if a.apiKey != "" {
		delete(s.byKey, a.apiKey)
	}
	a.apiKey = key
	s.byKey[key] = a
	return key, nil
}

// ByAPIKey resolves the account behind a presented key.
func (s *Store) ByAPIKey(key string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byKey[key]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return a.toUser(), nil
}

// Exists reports whether a username is registered.
func (s *Store) Exists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byName[username]
	return ok
}

// RevokeKey invalidates the key on logout.
func (s *Store) RevokeKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.byKey[key]; ok {
		a.apiKey = ""
		delete(s.byKey, key)
	}
}

// All lists every registered user, in id order.
func (s *Store) All() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.byName))
	for _, a := range s.byName {
		users = append(users, a.toUser())
	}
	for i := 1; i < len(users); i++ {
		for j := i; j > 0 && users[j-1].ID > users[j].ID; j-- {
			users[j-1], users[j] = users[j], users[j-1]
		}
	}
	return users
}

func hashPassword(password string) (string, error) {
	salt, err := randomHex(saltHexLen / 2)
	if err != nil {
		return "", err
	}
	dk := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha512.New)
	return salt + hex.EncodeToString(dk), nil
}

func verifyPassword(stored, candidate string) bool {
	if len(stored) <= saltHexLen {
		return false
	}
	salt, want := stored[:saltHexLen], stored[saltHexLen:]
	dk := pbkdf2.Key([]byte(candidate), []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha512.New)
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(dk)), []byte(want)) == 1
}

func newAPIKey() (string, error) {
	return randomHex(32)
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
