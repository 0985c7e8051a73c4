// Package token serializes appointment requests into signed, timestamped
// strings. The token is a capability: whoever holds it can perform exactly
// one state transition, so integrity and expiry are enforced here while the
// payload itself stays readable to anyone who has the string.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aarogyahealth/triage-platform/internal/appointments"
)

// ErrInvalid covers every decode failure: bad signature, malformed payload,
// or elapsed age beyond the limit. Callers must not learn which one it was.
var ErrInvalid = errors.New("token: invalid or expired")

// DefaultMaxAge is the decode-side expiry applied when none is configured.
const DefaultMaxAge = time.Hour

type claims struct {
	Appointment appointments.Request `json:"apt"`
	jwt.RegisteredClaims
}

// Codec signs and verifies appointment tokens with a process-wide HMAC
// secret fixed at startup.
type Codec struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewCodec builds a codec. The secret is mandatory; maxAge <= 0 falls back
// to DefaultMaxAge.
func NewCodec(secret string, maxAge time.Duration) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token: signing secret required")
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Codec{secret: []byte(secret), maxAge: maxAge, now: time.Now}, nil
}

// Encode signs the request into an opaque token string. The issued-at
// timestamp is the only thing added; expiry is judged at decode time so a
// caller-supplied max age can differ per use.
func (c *Codec) Encode(req appointments.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	cl := claims{
		Appointment: req,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(c.now().UTC()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Decode verifies the token against the configured max age.
func (c *Codec) Decode(tok string) (appointments.Request, error) {
	return c.DecodeWithMaxAge(tok, c.maxAge)
}

// DecodeWithMaxAge verifies signature and age. Any failure collapses into
// ErrInvalid so the caller cannot distinguish tampering from expiry.
func (c *Codec) DecodeWithMaxAge(tok string, maxAge time.Duration) (appointments.Request, error) {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	cl := claims{}
	parsed, err := jwt.ParseWithClaims(tok, &cl, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return appointments.Request{}, ErrInvalid
	}
	if cl.IssuedAt == nil {
		return appointments.Request{}, ErrInvalid
	}
	if c.now().Sub(cl.IssuedAt.Time) > maxAge {
		return appointments.Request{}, ErrInvalid
	}
	if err := cl.Appointment.Validate(); err != nil {
		return appointments.Request{}, ErrInvalid
	}
	return cl.Appointment, nil
}
