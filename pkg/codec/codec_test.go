package codec

import (
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for n := 0; n <= 96; n++ {
		data := make([]byte, n)
		_, err := rand.Read(data)
		require.NoError(t, err)

		encoded := Encode(data)
		assert.True(t, IsURLSafe(encoded), "encoding of %d bytes contains unsafe characters: %s", n, encoded)
		assert.NotEqual(t, 1, len(encoded)%4)

		decoded, err := Decode(encoded)
		require.NoError(t, err, "length %d", n)
		assert.Equal(t, data, decoded)
	}
}

func TestEncode_KnownValues(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte(""), ""},
		{[]byte("f"), "Zg"},
		{[]byte("fo"), "Zm8"},
		{[]byte("foo"), "Zm9v"},
		{[]byte{0xfb, 0xff}, "-_8"},
		{[]byte{0xfb, 0xef, 0xbe}, "----"},
		{[]byte{0xff, 0xff, 0xff}, "____"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Encode(tt.in))
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"length one mod four", "Zm9vY"},
		{"single character", "A"},
		{"plus sign", "Zm+v"},
		{"slash", "Zm/v"},
		{"padding", "Zg=="},
		{"whitespace", "Zm9v\n"},
		{"non-zero trailing bits", "Zh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			require.Error(t, err)
			var decodeErr *DecodeError
			assert.ErrorAs(t, err, &decodeErr)
		})
	}
}

func TestDecode_Padding(t *testing.T) {
	data, err := Decode("Zg")
	require.NoError(t, err)
	assert.Equal(t, []byte("f"), data)

	data, err = Decode("Zm8")
	require.NoError(t, err)
	assert.Equal(t, []byte("fo"), data)

	data, err = Decode("")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestDecodeError_TruncatesInput(t *testing.T) {
	_, err := Decode(strings.Repeat("A", 64) + "!")
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.True(t, strings.HasSuffix(decodeErr.Input, "..."))
}

func TestParseQuery(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		params, err := ParseQuery("payload=abc&sig=def")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"payload": "abc", "sig": "def"}, params)
	})

	t.Run("Leading Question Mark", func(t *testing.T) {
		params, err := ParseQuery("?payload=abc")
		require.NoError(t, err)
		assert.Equal(t, "abc", params["payload"])
	})

	t.Run("Empty", func(t *testing.T) {
		params, err := ParseQuery("")
		require.NoError(t, err)
		assert.Empty(t, params)
	})

	t.Run("Missing Value", func(t *testing.T) {
		params, err := ParseQuery("flag&sig=")
		require.NoError(t, err)
		v, ok := params["flag"]
		assert.True(t, ok)
		assert.Equal(t, "", v)
		assert.Equal(t, "", params["sig"])
	})

	t.Run("Splits On First Equals", func(t *testing.T) {
		params, err := ParseQuery("sig=a=b=")
		require.NoError(t, err)
		assert.Equal(t, "a=b=", params["sig"])
	})

	t.Run("Percent Decoding", func(t *testing.T) {
		params, err := ParseQuery("na%6De=a%20b+c")
		require.NoError(t, err)
		assert.Equal(t, "a b+c", params["name"])
	})

	t.Run("Skips Empty Pairs", func(t *testing.T) {
		params, err := ParseQuery("&&payload=x&&")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"payload": "x"}, params)
	})

	t.Run("Last Duplicate Wins", func(t *testing.T) {
		params, err := ParseQuery("sig=first&sig=second")
		require.NoError(t, err)
		assert.Equal(t, "second", params["sig"])
	})

	t.Run("Case Sensitive Keys", func(t *testing.T) {
		params, err := ParseQuery("Payload=upper&payload=lower")
		require.NoError(t, err)
		assert.Equal(t, "upper", params["Payload"])
		assert.Equal(t, "lower", params["payload"])
	})

	t.Run("Invalid Escape", func(t *testing.T) {
		_, err := ParseQuery("payload=%zz")
		var decodeErr *DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})
}
