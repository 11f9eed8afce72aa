package auth

import (
	"maps"

	"github.com/Ponloe/postboard/internal/apperrors"
	"github.com/Ponloe/postboard/internal/users"
)

// NormalizedAttributes is the provider-agnostic view of a login.
type NormalizedAttributes struct {
	Attributes       map[string]any
	NameAttributeKey string
	Name             string
	Email            string
	Picture          string
	RoleDefault      users.Role
}

// ToEntity builds a user that has never logged in before.
func (a NormalizedAttributes) ToEntity() *users.User {
	return &users.User{
		Name:    a.Name,
		Email:   a.Email,
		Picture: a.Picture,
		Role:    a.RoleDefault,
	}
}

// Extractor reads one provider's raw attribute map.
type Extractor func(nameAttributeKey string, raw map[string]any) (NormalizedAttributes, error)

// AttributeMapper selects an Extractor by provider key. Unknown keys fail with
// apperrors.UnsupportedProviderError.
type AttributeMapper struct {
	extractors map[string]Extractor
}

func NewAttributeMapper() *AttributeMapper {
	m := &AttributeMapper{extractors: make(map[string]Extractor)}
	m.Register("google", ofGoogle)
	return m
}

func (m *AttributeMapper) Register(providerKey string, ex Extractor) {
	m.extractors[providerKey] = ex
}

func (m *AttributeMapper) Normalize(providerKey, nameAttributeKey string, raw map[string]any) (NormalizedAttributes, error) {
	ex, ok := m.extractors[providerKey]
	if !ok {
		return NormalizedAttributes{}, &apperrors.UnsupportedProviderError{Provider: providerKey}
	}
	return ex(nameAttributeKey, raw)
}

func ofGoogle(nameAttributeKey string, raw map[string]any) (NormalizedAttributes, error) {
	email := stringAttr(raw, "email")
	if email == "" {
		return NormalizedAttributes{}, &apperrors.InvalidAttributesError{Reason: "missing email"}
	}
	return NormalizedAttributes{
		Attributes:       maps.Clone(raw),
		NameAttributeKey: nameAttributeKey,
		Name:             stringAttr(raw, "name"),
		Email:            email,
		Picture:          stringAttr(raw, "picture"),
		RoleDefault:      users.RoleGuest,
	}, nil
}

func stringAttr(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}
