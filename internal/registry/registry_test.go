package registry

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestFromSeedAssignsPositionalIDs(t *testing.T) {
	r, err := FromSeed([]string{"user1", "user2", "user3"}, []string{"p1", "p2", "p3"}, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	if r.Len() != 3 {
		t.Fatalf("expected 3 users, got %d", r.Len())
	}

	u, err := r.FindByName("user2")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("expected positional id 1, got %d", u.ID)
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte("p2")); err != nil {
		t.Fatalf("stored hash does not match seed password: %v", err)
	}
}

func TestFindByNameUnknown(t *testing.T) {
	r, err := FromSeed([]string{"user1"}, []string{"p1"}, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	if _, err := r.FindByName("ghost"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
	if _, err := r.FindByID(99); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser for id 99, got %v", err)
	}
}

func TestFindByID(t *testing.T) {
	r, err := FromSeed([]string{"user1", "user2"}, []string{"p1", "p2"}, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	u, err := r.FindByID(1)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if u.Name != "user2" {
		t.Fatalf("expected user2, got %s", u.Name)
	}
}

func TestFromSeedRejectsMismatchedLists(t *testing.T) {
	if _, err := FromSeed([]string{"a", "b"}, []string{"p"}, bcrypt.MinCost); err == nil {
		t.Fatal("expected error for mismatched lists")
	}
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New([]User{
		{ID: 0, Name: "alice"},
		{ID: 1, Name: "alice"},
	})
	if err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestNewRejectsEmptyName(t *testing.T) {
	if _, err := New([]User{{ID: 0, Name: "  "}}); err == nil {
		t.Fatal("expected empty name error")
	}
}
