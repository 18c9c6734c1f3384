// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package codec

// Algorithm is the tagged variant config §3 names:
// Base32(alphabet) or Base32Xor(alphabet, key).
type Algorithm struct {
	Alphabet Alphabet
	// Key is nil/empty for the plain Base32 variant. A non-empty Key
	// switches encode/decode into the Base32Xor variant, XOR-ing the
	// payload with the key cycled to the payload's length.
	Key []byte
}

// IsXor reports whether this algorithm applies the XOR mask.
func (a Algorithm) IsXor() bool {
	return len(a.Key) > 0
}

// mask returns a new slice holding payload XORed against the key, repeating
// the key as needed. When the key is empty it returns payload itself.
func (a Algorithm) mask(payload []byte) []byte {
	if !a.IsXor() {
		return payload
	}
	out := make([]byte, len(payload))
	for i, b := range payload {
		out[i] = b ^ a.Key[i%len(a.Key)]
	}
	return out
}
