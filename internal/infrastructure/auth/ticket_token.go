package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidTicketToken is the single failure mode of ticket token
// validation. Bad signature, tampered payload and expiry are deliberately
// not distinguished: the holder's remedy is the same in every case.
var ErrInvalidTicketToken = errors.New("invalid or expired ticket token")

// ticketTokenSalt namespaces the signing key so a ticket token can never
// pass as a session token and vice versa.
const ticketTokenSalt = "ticket-verify"

const ticketTokenAudience = "ticket-verify"

// TicketTokenCodec signs and validates the verification tokens embedded in
// ticket QR codes. A token binds exactly one ticket id and carries an
// enforced maximum age.
type TicketTokenCodec struct {
	key    []byte
	issuer string
	maxAge time.Duration
}

// NewTicketTokenCodec derives a purpose-specific key from the application
// secret and the ticket salt.
func NewTicketTokenCodec(secret, issuer string, maxAge time.Duration) *TicketTokenCodec {
	sum := sha256.Sum256([]byte(secret + ":" + ticketTokenSalt))
	return &TicketTokenCodec{
		key:    sum[:],
		issuer: issuer,
		maxAge: maxAge,
	}
}

// Issue creates a signed token for the ticket id
func (c *TicketTokenCodec) Issue(ticketID uuid.UUID, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   ticketID.String(),
		Issuer:    c.issuer,
		Audience:  jwt.ClaimStrings{ticketTokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.maxAge)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign ticket token: %w", err)
	}
	return signed, nil
}

// Decode validates the token and returns the ticket id it is bound to.
// Any failure collapses into ErrInvalidTicketToken.
func (c *TicketTokenCodec) Decode(tokenString string, now time.Time) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.key, nil
	},
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(ticketTokenAudience),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidTicketToken
	}

	// The expiry claim already bounds the age, but a forged long expiry
	// must not extend a token past the configured maximum.
	if claims.IssuedAt == nil || now.Sub(claims.IssuedAt.Time) > c.maxAge {
		return uuid.Nil, ErrInvalidTicketToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidTicketToken
	}
	return id, nil
}
