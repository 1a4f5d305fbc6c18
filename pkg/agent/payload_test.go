package agent

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayload(t *testing.T) {
	p := NewPayload()
	assert.Equal(t, CurrentVersion, p.V)
	assert.NotNil(t, p.Agent)
	assert.Empty(t, p.Agent)
	assert.Nil(t, p.Scopes)
	assert.Nil(t, p.Exp)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), p.Nonce)
}

func TestGenerateNonce_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := GenerateNonce()
		require.False(t, seen[n], "duplicate nonce %s", n)
		seen[n] = true
	}
}

func TestCanonicalJSON_FieldOrder(t *testing.T) {
	p := &Payload{
		V:      1,
		Agent:  Attributes{"role": "research", "name": "Alice"},
		Scopes: []string{"web", "files"},
		Nonce:  "abc",
	}
	p.SetExpiry(time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC))

	data, err := p.CanonicalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"v":1,"agent":{"name":"Alice","role":"research"},"scopes":["web","files"],"exp":"2099-01-01T00:00:00Z","nonce":"abc"}`,
		string(data))
}

func TestCanonicalJSON_Deterministic(t *testing.T) {
	a := &Payload{V: 1, Agent: Attributes{}, Nonce: "n"}
	b := &Payload{V: 1, Agent: Attributes{}, Nonce: "n"}
	for _, k := range []string{"name", "role", "team", "zone"} {
		a.SetAttribute(k, k+"-value")
	}
	for _, k := range []string{"zone", "team", "role", "name"} {
		b.SetAttribute(k, k+"-value")
	}

	da, err := a.CanonicalJSON()
	require.NoError(t, err)
	db, err := b.CanonicalJSON()
	require.NoError(t, err)
	assert.Equal(t, string(da), string(db))
}

func TestCanonicalJSON_AbsentVersusEmpty(t *testing.T) {
	p := &Payload{V: 1, Nonce: "n"}

	data, err := p.CanonicalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"v":1,"agent":{},"scopes":null,"exp":null,"nonce":"n"}`, string(data))

	p.Scopes = []string{}
	data, err = p.CanonicalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scopes":[]`)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.NotNil(t, parsed.Scopes)
	assert.Empty(t, parsed.Scopes)
}

func TestCanonicalJSON_ExpiryInUTC(t *testing.T) {
	zone := time.FixedZone("CEST", 2*60*60)
	exp := time.Date(2030, 6, 1, 14, 0, 0, 0, zone)
	p := &Payload{V: 1, Exp: &exp, Nonce: "n"}

	data, err := p.CanonicalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"exp":"2030-06-01T12:00:00Z"`)

	// The receiver is not modified.
	assert.Equal(t, zone, p.Exp.Location())
}

func TestParse(t *testing.T) {
	t.Run("Unknown Keys Accepted", func(t *testing.T) {
		p, err := Parse([]byte(`{"v":2,"agent":{"name":"Bob","team":{"id":7}},"extra":true,"nonce":"x"}`))
		require.NoError(t, err)
		assert.Equal(t, 2, p.V)
		assert.Equal(t, "Bob", p.Name())
		assert.Equal(t, map[string]any{"id": float64(7)}, p.Agent["team"])
		assert.Nil(t, p.Scopes)
		assert.Nil(t, p.Exp)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		_, err := Parse([]byte(`{"v":`))
		assert.Error(t, err)
	})

	t.Run("Not An Object", func(t *testing.T) {
		for _, in := range []string{"null", " null ", "", "[]", "1", `"x"`} {
			_, err := Parse([]byte(in))
			assert.Error(t, err, "input %q", in)
		}
	})

	t.Run("Invalid Expiry", func(t *testing.T) {
		_, err := Parse([]byte(`{"exp":"tomorrow"}`))
		assert.Error(t, err)
	})
}

func TestAccessors(t *testing.T) {
	p := NewPayload()
	assert.Equal(t, "", p.Name())

	p.SetAttribute(AttrName, "Alice")
	p.SetAttribute(AttrRole, "research")
	p.SetAttribute("level", 3)
	assert.Equal(t, "Alice", p.Name())
	assert.Equal(t, "research", p.Role())
	assert.Equal(t, "", p.Attribute("level"))

	p.Scopes = []string{"web", "files"}
	assert.True(t, p.HasScope("files"))
	assert.False(t, p.HasScope("admin"))

	var empty Payload
	empty.SetAttribute("k", "v")
	assert.Equal(t, "v", empty.Attribute("k"))
}

func TestExpiry(t *testing.T) {
	p := NewPayload()
	_, ok := p.ExpiresAt()
	assert.False(t, ok)
	assert.False(t, p.IsExpired(time.Now().Add(100*365*24*time.Hour)))

	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	p.SetExpiry(exp.In(time.FixedZone("X", -5*60*60)))

	got, ok := p.ExpiresAt()
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
	assert.Equal(t, time.UTC, got.Location())

	assert.False(t, p.IsExpired(exp), "expiry instant itself is still valid")
	assert.True(t, p.IsExpired(exp.Add(time.Nanosecond)))
	assert.False(t, p.IsExpired(exp.Add(-time.Second)))
}

func TestPayload_JSONRoundTrip(t *testing.T) {
	original := NewPayload()
	original.SetAttribute(AttrName, "Alice")
	original.Scopes = []string{"web"}
	original.SetExpiry(time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(original)
	require.NoError(t, err)

	decoded, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
