package config

import (
	"net/url"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
)

// InitWebAuthn builds the relying party configuration from the configured
// origin: the RP id is the origin's hostname.
func InitWebAuthn() *webauthn.WebAuthn {
	origin, err := url.Parse(Conf.Application.WebAuthn.Origin)
	if err != nil {
		panic(err)
	}

	timeout := time.Duration(Conf.Application.WebAuthn.CeremonyTimeoutMillis) * time.Millisecond
	if timeout == 0 {
		timeout = 600000 * time.Millisecond
	}

	wa, err := webauthn.New(&webauthn.Config{
		RPDisplayName:         Conf.Application.WebAuthn.RpDisplayName,
		RPID:                  origin.Hostname(),
		RPOrigins:             []string{Conf.Application.WebAuthn.Origin},
		AttestationPreference: protocol.PreferNoAttestation,
		Timeouts: webauthn.TimeoutsConfig{
			Login:        webauthn.TimeoutConfig{Enforce: false, Timeout: timeout, TimeoutUVD: timeout},
			Registration: webauthn.TimeoutConfig{Enforce: false, Timeout: timeout, TimeoutUVD: timeout},
		},
	})

	if err != nil {
		panic(err)
	}
	return wa
}

// ChallengeTTL is how long a stored ceremony challenge stays valid.
func ChallengeTTL() time.Duration {
	ttl := time.Duration(Conf.Application.WebAuthn.ChallengeTTLInSeconds) * time.Second
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return ttl
}
