package auth

import (
	"context"
	"errors"

	"github.com/Ponloe/postboard/internal/apperrors"
	"github.com/Ponloe/postboard/internal/session"
	"github.com/Ponloe/postboard/internal/users"
)

// SessionManager turns a verified provider login into a persisted user and a
// session principal.
type SessionManager struct {
	users  users.Store
	mapper *AttributeMapper
}

func NewSessionManager(store users.Store, mapper *AttributeMapper) *SessionManager {
	return &SessionManager{users: store, mapper: mapper}
}

// CompleteLogin upserts the user behind raw and stores its principal in sess,
// replacing any previous one. A user seen for the first time gets the USER
// role directly.
func (m *SessionManager) CompleteLogin(ctx context.Context, sess session.Session, providerKey, nameAttributeKey string, raw map[string]any) (*Authentication, error) {
	attrs, err := m.mapper.Normalize(providerKey, nameAttributeKey, raw)
	if err != nil {
		return nil, err
	}

	user, err := m.saveOrUpdate(ctx, attrs)
	if err != nil {
		return nil, err
	}

	if err := sess.Set(ctx, SessionKeyPrincipal, NewSessionPrincipal(user)); err != nil {
		return nil, apperrors.Persistence("write session", err)
	}

	return &Authentication{
		Authorities:      []string{user.RoleKey()},
		Attributes:       attrs.Attributes,
		NameAttributeKey: attrs.NameAttributeKey,
	}, nil
}

func (m *SessionManager) saveOrUpdate(ctx context.Context, attrs NormalizedAttributes) (*users.User, error) {
	var saved *users.User
	err := m.users.Transaction(ctx, func(tx users.Store) error {
		user, err := tx.FindByEmail(ctx, attrs.Email)
		switch {
		case err == nil:
			user.Update(attrs.Name, attrs.Picture)
		case errors.Is(err, apperrors.ErrNotFound):
			user = attrs.ToEntity()
			user.Role = users.RoleUser
		default:
			return err
		}
		if err := tx.Save(ctx, user); err != nil {
			return err
		}
		saved = user
		return nil
	})
	if err != nil {
		return nil, apperrors.Persistence("upsert user", err)
	}
	return saved, nil
}

// Principal returns the principal stored in sess, if any.
func (m *SessionManager) Principal(ctx context.Context, sess session.Session) (*SessionPrincipal, error) {
	var p SessionPrincipal
	ok, err := sess.Get(ctx, SessionKeyPrincipal, &p)
	if err != nil {
		return nil, apperrors.Persistence("read session", err)
	}
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Logout drops everything the login stored in sess.
func (m *SessionManager) Logout(ctx context.Context, sess session.Session) error {
	if err := sess.Destroy(ctx); err != nil {
		return apperrors.Persistence("destroy session", err)
	}
	return nil
}
