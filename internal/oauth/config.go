package oauth

import (
	"golang.org/x/oauth2"

	"github.com/Ponloe/postboard/internal/config"
)

const ProviderGoogle = "google"

// Provider describes one external identity provider.
type Provider struct {
	Key               string
	OAuth2            *oauth2.Config
	UserInfoURL       string
	UserNameAttribute string
}

// NewGoogleProvider builds the google provider from cfg. It returns nil when
// no client id is configured.
func NewGoogleProvider(cfg config.GoogleConfig) *Provider {
	if cfg.ClientID == "" {
		return nil
	}
	return &Provider{
		Key: ProviderGoogle,
		OAuth2: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		UserInfoURL:       cfg.UserInfoURL,
		UserNameAttribute: "sub",
	}
}
