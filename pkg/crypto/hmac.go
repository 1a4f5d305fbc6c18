// Package crypto provides the symmetric primitives behind gglas links.
package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
)

// HMACSHA256 computes HMAC-SHA256 of the message using the provided key.
func HMACSHA256(key, message []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(message)
	return h.Sum(nil)
}

// SignString computes HMAC-SHA256 over the UTF-8 bytes of message.
// Links sign the encoded payload string rather than the JSON it carries, so
// this is the form used on both issuance and verification.
func SignString(key []byte, message string) []byte {
	return HMACSHA256(key, []byte(message))
}
