package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gglas/gglas-linker/pkg/agent"
	"github.com/gglas/gglas-linker/pkg/envelope"
)

// PayloadFlags holds payload fields given individually on the command line.
type PayloadFlags struct {
	Name   string
	Role   string
	Scopes string
	Exp    string

	// ScopesSet distinguishes "--scopes ''" (empty list) from no flag (unspecified).
	ScopesSet bool
}

func (f PayloadFlags) empty() bool {
	return f.Name == "" && f.Role == "" && f.Exp == "" && !f.ScopesSet
}

// ResolvePayload builds the payload to sign. A payload file ("-" for stdin)
// takes precedence over flags. With neither, it returns
// envelope.ErrMissingPayloadSource.
func ResolvePayload(file string, flags PayloadFlags) (*agent.Payload, error) {
	if file != "" {
		return LoadPayloadFile(file)
	}
	if flags.empty() {
		return nil, envelope.ErrMissingPayloadSource
	}
	return PayloadFromFlags(flags)
}

// PayloadFromFlags assembles a fresh payload from individual fields.
func PayloadFromFlags(flags PayloadFlags) (*agent.Payload, error) {
	p := agent.NewPayload()

	if flags.Name != "" {
		p.SetAttribute(agent.AttrName, flags.Name)
	}
	if flags.Role != "" {
		p.SetAttribute(agent.AttrRole, flags.Role)
	}
	if flags.ScopesSet {
		p.Scopes = agent.ParseScopes(flags.Scopes)
	}
	if flags.Exp != "" {
		exp, err := agent.ParseExpiry(flags.Exp)
		if err != nil {
			return nil, envelope.WrapError(envelope.ErrCodeInvalidExpiry, "invalid --exp value", err)
		}
		p.SetExpiry(exp)
	}

	return p, nil
}

// LoadPayloadFile reads a JSON payload from path, or from stdin when path is "-".
func LoadPayloadFile(path string) (*agent.Payload, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}

	return DecodePayload(data)
}

// DecodePayload decodes JSON over NewPayload defaults, so a document that
// omits v or nonce still yields version 1 and a fresh nonce. Field names
// match case-insensitively.
func DecodePayload(data []byte) (*agent.Payload, error) {
	p := agent.NewPayload()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, envelope.WrapError(envelope.ErrCodeMalformedPayload, "failed to decode payload JSON", err)
	}
	if p.Exp != nil {
		p.SetExpiry(*p.Exp)
	}
	return p, nil
}
