// Package token produces tamper-evident digests binding a time slice's
// identity to the search criteria that produced it. Slice ids are embedded in
// outbound booking links; the token lets the confirmation step detect any
// mutation of the booking parameters without server-side session state.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Params is the fixed, ordered set of fields covered by the digest.
// Changing any field changes the token.
type Params struct {
	LocationID    string `json:"location_id"`
	ProgramID     string `json:"program_id"`
	SessionTypeID string `json:"session_type_id"`
	TrainerID     string `json:"trainer_id"`
	StartHour     int    `json:"start_hour"`
	EndHour       int    `json:"end_hour"`
	DateRange     string `json:"date_range"`
	SliceID       string `json:"slice_id"`
	Context       string `json:"context,omitempty"`
}

type Signer struct {
	salt []byte
}

func NewSigner(salt string) *Signer {
	return &Signer{salt: []byte(salt)}
}

// Generate returns a hex-encoded HMAC-SHA256 over the canonical serialization
// of p. Deterministic: identical params always yield the same token.
func (s *Signer) Generate(p Params) string {
	mac := hmac.New(sha256.New, s.salt)
	mac.Write([]byte(canonical(p)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Validate recomputes the digest for p and compares it with the supplied
// token in constant time.
func (s *Signer) Validate(p Params, token string) bool {
	expected, err := hex.DecodeString(s.Generate(p))
	if err != nil {
		return false
	}
	actual, err := hex.DecodeString(token)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, actual)
}

// canonical serializes params in a fixed field order. The order is part of
// the token contract: reordering fields would invalidate every issued token.
func canonical(p Params) string {
	fields := []string{
		p.LocationID,
		p.ProgramID,
		p.SessionTypeID,
		p.TrainerID,
		strconv.Itoa(p.StartHour),
		strconv.Itoa(p.EndHour),
		p.DateRange,
		p.SliceID,
		p.Context,
	}
	return strings.Join(fields, "\x1f")
}
