package crypto

// ConstantTimeEqual reports whether a and b hold the same bytes.
//
// Slices of different length compare unequal immediately; only the length is
// revealed by that path. Slices of equal length are always scanned in full,
// OR-ing the XOR of every byte pair into a single difference flag, so the
// running time does not depend on where the first mismatch occurs.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	var diff byte
	for i := 0; i < len(a); i++ {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
