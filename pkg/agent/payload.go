// Package agent defines the claim set carried inside a gglas link.
package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CurrentVersion is the payload schema version written by NewPayload.
const CurrentVersion = 1

// Well-known attribute keys.
const (
	AttrName = "name"
	AttrRole = "role"
)

// Attributes holds open-ended identity attributes (name, role, ...).
// Values may be any JSON value. Keys are emitted in sorted order, so two maps
// with the same contents always serialize identically.
type Attributes map[string]any

// Payload is the signed claim set of a gglas link.
//
// Field order is significant: it fixes the JSON emission order used for
// signing (v, agent, scopes, exp, nonce). A nil Scopes or Exp means the claim
// is unspecified and is written as null; an empty, non-nil Scopes is written as [].
type Payload struct {
	// V is the schema version.
	V int `json:"v"`

	// Agent holds the identity attributes.
	Agent Attributes `json:"agent"`

	// Scopes lists the permission scopes granted to the agent.
	Scopes []string `json:"scopes"`

	// Exp is the instant after which the link must not be used.
	Exp *time.Time `json:"exp"`

	// Nonce varies the signature across otherwise identical payloads.
	Nonce string `json:"nonce"`
}

// NewPayload returns a version-1 payload with no attributes and a fresh nonce.
func NewPayload() *Payload {
	return &Payload{
		V:     CurrentVersion,
		Agent: Attributes{},
		Nonce: GenerateNonce(),
	}
}

// GenerateNonce returns 32 lowercase hex characters drawn from a random UUID.
// Nonces only need to be unique, not secret.
func GenerateNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Parse decodes a payload from its JSON form. Unknown fields are ignored and
// attribute keys are accepted as-is.
func Parse(data []byte) (*Payload, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("failed to parse payload: not a JSON object")
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse payload: %w", err)
	}
	return &p, nil
}

// CanonicalJSON returns the serialization that is encoded and signed.
// Expiry is rendered in UTC and a nil attribute map is written as {}.
func (p *Payload) CanonicalJSON() ([]byte, error) {
	c := *p
	if c.Agent == nil {
		c.Agent = Attributes{}
	}
	if c.Exp != nil {
		exp := c.Exp.UTC()
		c.Exp = &exp
	}

	data, err := json.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return data, nil
}

// SetAttribute sets an identity attribute, allocating the map if needed.
func (p *Payload) SetAttribute(key string, value any) {
	if p.Agent == nil {
		p.Agent = Attributes{}
	}
	p.Agent[key] = value
}

// Attribute returns the string value of an identity attribute, or "" when the
// attribute is missing or not a string.
func (p *Payload) Attribute(key string) string {
	s, _ := p.Agent[key].(string)
	return s
}

// Name returns the agent's name attribute.
func (p *Payload) Name() string {
	return p.Attribute(AttrName)
}

// Role returns the agent's role attribute.
func (p *Payload) Role() string {
	return p.Attribute(AttrRole)
}

// HasScope reports whether scope is listed in the payload.
func (p *Payload) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// SetExpiry sets the expiry claim, normalized to UTC.
func (p *Payload) SetExpiry(t time.Time) {
	exp := t.UTC()
	p.Exp = &exp
}

// ExpiresAt returns the expiry claim and whether it is set.
func (p *Payload) ExpiresAt() (time.Time, bool) {
	if p.Exp == nil {
		return time.Time{}, false
	}
	return *p.Exp, true
}

// IsExpired reports whether now is strictly after the expiry claim.
// A payload without an expiry never expires.
func (p *Payload) IsExpired(now time.Time) bool {
	if p.Exp == nil {
		return false
	}
	return now.UTC().After(*p.Exp)
}
