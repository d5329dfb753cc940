// Package registry holds the fixed set of known users. The registry is
// built exactly once at startup, either from configuration seed lists or
// from Postgres, and is read-only afterwards; there is no provisioning
// API.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrUnknownUser reports a name or id with no registry entry.
var ErrUnknownUser = errors.New("registry: unknown user")

// User is a registry entry. ID is the position of the user in the seed
// list and is stable for the process lifetime.
type User struct {
	ID           int
	Name         string
	PasswordHash []byte
}

// Registry is an immutable name/id index over the user list.
type Registry struct {
	users  []User
	byName map[string]int
}

// FromSeed builds a registry from parallel name/password lists, hashing
// each password with bcrypt at the given cost. Duplicate names are
// rejected.
func FromSeed(names, passwords []string, cost int) (*Registry, error) {
	if len(names) != len(passwords) {
		return nil, fmt.Errorf("registry: %d names but %d passwords", len(names), len(passwords))
	}
	users := make([]User, 0, len(names))
	for i, name := range names {
		hash, err := bcrypt.GenerateFromPassword([]byte(passwords[i]), cost)
		if err != nil {
			return nil, fmt.Errorf("registry: hash password for %q: %w", name, err)
		}
		users = append(users, User{ID: i, Name: name, PasswordHash: hash})
	}
	return New(users)
}

// New builds a registry from prepared user rows.
func New(users []User) (*Registry, error) {
	byName := make(map[string]int, len(users))
	for _, u := range users {
		name := strings.TrimSpace(u.Name)
		if name == "" {
			return nil, fmt.Errorf("registry: empty user name at id %d", u.ID)
		}
		if _, dup := byName[name]; dup {
			return nil, fmt.Errorf("registry: duplicate user name %q", name)
		}
		byName[name] = u.ID
	}
	r := &Registry{users: append([]User(nil), users...), byName: byName}
	return r, nil
}

// FindByName returns the user registered under name.
func (r *Registry) FindByName(name string) (User, error) {
	id, ok := r.byName[strings.TrimSpace(name)]
	if !ok {
		return User{}, ErrUnknownUser
	}
	return r.findByID(id)
}

// FindByID returns the user with the given numeric id.
func (r *Registry) FindByID(id int) (User, error) {
	return r.findByID(id)
}

// Len returns the number of registered users.
func (r *Registry) Len() int { return len(r.users) }

func (r *Registry) findByID(id int) (User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrUnknownUser
}
