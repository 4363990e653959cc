package devapi

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/circuitstock/internal/common"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is an account of the stand-in service.
type User struct {
	ID           string
	Name         string
	PasswordHash []byte
	UserType     string
}

// Record is a stored component in the service's wire shape.
type Record struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Stock          int    `json:"stock"`
	MinStock       int    `json:"min_stock"`
	Specifications string `json:"specifications"`
	Supplier       string `json:"supplier"`
}

// Store keeps users and components in memory, in insertion order.
type Store struct {
	mu       sync.RWMutex
	cost     int
	users    map[string]*User
	items    []Record
	idSource func() string
}

// NewStore returns an empty store hashing passwords at bcrypt cost.
func NewStore(cost int) *Store {
	return &Store{
		cost:     cost,
		users:    make(map[string]*User),
		idSource: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:24] },
	}
}

func userKey(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// AddUser registers a new account.
func (s *Store) AddUser(name, password, userType string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := userKey(name)
	if _, ok := s.users[key]; ok {
		return User{}, common.ErrorAlreadyExists
	}
	u := &User{ID: uuid.NewString(), Name: strings.TrimSpace(name), PasswordHash: hash, UserType: userType}
	s.users[key] = u
	return *u, nil
}

// Authenticate checks name and password.
func (s *Store) Authenticate(name, password string) (User, error) {
	s.mu.RLock()
	u, ok := s.users[userKey(name)]
	s.mu.RUnlock()
	if !ok {
		return User{}, common.ErrorUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return User{}, common.ErrorUnauthorized
	}
	return *u, nil
}

// Items returns a copy of every component.
func (s *Store) Items() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// AddItem stores r under a fresh id.
func (s *Store) AddItem(r Record) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.idSource()
	s.items = append(s.items, r)
	return r
}

// UpdateItem replaces the component with id.
func (s *Store) UpdateItem(id string, r Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.items, func(x Record) bool { return x.ID == id })
	if i < 0 {
		return Record{}, common.ErrorNotFound
	}
	r.ID = id
	s.items[i] = r
	return r, nil
}

// DeleteItem removes the component with id.
func (s *Store) DeleteItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.items, func(x Record) bool { return x.ID == id })
	if i < 0 {
		return common.ErrorNotFound
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}
