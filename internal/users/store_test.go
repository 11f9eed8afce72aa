package users

import (
	"context"
	"errors"
	"testing"

	"github.com/Ponloe/postboard/internal/apperrors"
	"github.com/Ponloe/postboard/internal/database/dbtest"
)

func newStore(t *testing.T) *GormStore {
	t.Helper()
	return NewGormStore(dbtest.Open(t, &User{}))
}

func TestGormStoreSaveAndFind(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	u := &User{Name: "Bob", Email: "bob@x.com", Picture: "http://p", Role: RoleUser}
	if err := store.Save(ctx, u); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected id to be assigned")
	}

	got, err := store.FindByEmail(ctx, "bob@x.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if got.ID != u.ID || got.Name != "Bob" || got.Role != RoleUser {
		t.Fatalf("FindByEmail() = %+v, want %+v", got, u)
	}

	byID, err := store.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if byID.Email != "bob@x.com" {
		t.Fatalf("FindByID().Email = %q, want %q", byID.Email, "bob@x.com")
	}
}

func TestGormStoreNotFound(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	if _, err := store.FindByEmail(ctx, "nobody@x.com"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("FindByEmail() error = %v, want not found", err)
	}
	if _, err := store.FindByID(ctx, 42); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("FindByID() error = %v, want not found", err)
	}
}

func TestGormStoreEmailUnique(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	if err := store.Save(ctx, &User{Name: "A", Email: "a@x.com", Role: RoleUser}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	err := store.Save(ctx, &User{Name: "B", Email: "a@x.com", Role: RoleUser})
	var pe *apperrors.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("Save() duplicate error = %v, want PersistenceError", err)
	}
}

func TestGormStoreTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx Store) error {
		if err := tx.Save(ctx, &User{Name: "A", Email: "a@x.com", Role: RoleUser}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction() error = %v, want %v", err, boom)
	}
	if _, err := store.FindByEmail(ctx, "a@x.com"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("FindByEmail() after rollback error = %v, want not found", err)
	}
}

func TestRoleKey(t *testing.T) {
	u := User{Role: RoleUser}
	if got := u.RoleKey(); got != "ROLE_USER" {
		t.Fatalf("RoleKey() = %q, want %q", got, "ROLE_USER")
	}
	if got := RoleGuest.Key(); got != "ROLE_GUEST" {
		t.Fatalf("Key() = %q, want %q", got, "ROLE_GUEST")
	}
}

func TestUserUpdateKeepsIdentity(t *testing.T) {
	u := &User{ID: 3, Name: "Bob", Email: "bob@x.com", Picture: "old", Role: RoleUser}
	u.Update("Robert", "new")
	if u.Name != "Robert" || u.Picture != "new" {
		t.Fatalf("Update() = %+v", u)
	}
	if u.Email != "bob@x.com" || u.Role != RoleUser || u.ID != 3 {
		t.Fatalf("Update() changed identity fields: %+v", u)
	}
}
