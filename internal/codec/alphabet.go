// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package codec

import "encoding/base32"

// Alphabet names one of the base32 character sets the codec can encode
// origins with. Every variant MUST produce only DNS-label-legal characters
// (alphanumerics and hyphen) and MUST NOT pad, since '=' is not a legal DNS
// label character.
type Alphabet int

const (
	// Crockford is Douglas Crockford's base32 alphabet, which omits the
	// visually ambiguous letters I, L, O and U.
	Crockford Alphabet = iota
	// RFC4648 is the standard base32 alphabet (upper-case).
	RFC4648
	// RFC4648Lower is RFC4648 with lower-case letters.
	RFC4648Lower
	// RFC4648Hex is the "extended hex" base32 alphabet (upper-case).
	RFC4648Hex
	// RFC4648HexLower is RFC4648Hex with lower-case letters.
	RFC4648HexLower
	// Z is the z-base-32 alphabet, designed for human readability.
	Z
)

const (
	crockfordAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	zbase32Alphabet   = "ybndrfg8ejkmcpqxot1uwisza345h769"
)

// encodings are constructed once; base32.Encoding values are immutable and
// safe for concurrent use across every request.
var encodings = map[Alphabet]*base32.Encoding{
	Crockford:       base32.NewEncoding(crockfordAlphabet).WithPadding(base32.NoPadding),
	RFC4648:         base32.StdEncoding.WithPadding(base32.NoPadding),
	RFC4648Lower:    base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding),
	RFC4648Hex:      base32.HexEncoding.WithPadding(base32.NoPadding),
	RFC4648HexLower: base32.NewEncoding("0123456789abcdefghijklmnopqrstuv").WithPadding(base32.NoPadding),
	Z:               base32.NewEncoding(zbase32Alphabet).WithPadding(base32.NoPadding),
}

// Encoding returns the base32.Encoding backing a, defaulting to Z (the
// default alphabet per spec §6) for an unrecognised value so callers never
// have to nil-check.
func (a Alphabet) Encoding() *base32.Encoding {
	if enc, ok := encodings[a]; ok {
		return enc
	}
	return encodings[Z]
}

// String renders the alphabet's configuration name, used by YAML
// (de)serialisation and diagnostics.
func (a Alphabet) String() string {
	switch a {
	case Crockford:
		return "crockford"
	case RFC4648:
		return "rfc4648"
	case RFC4648Lower:
		return "rfc4648_lower"
	case RFC4648Hex:
		return "rfc4648_hex"
	case RFC4648HexLower:
		return "rfc4648_hex_lower"
	case Z:
		return "z"
	default:
		return "unknown"
	}
}

// ParseAlphabet maps a configuration string to an Alphabet.
func ParseAlphabet(s string) (Alphabet, bool) {
	switch s {
	case "crockford":
		return Crockford, true
	case "rfc4648":
		return RFC4648, true
	case "rfc4648_lower":
		return RFC4648Lower, true
	case "rfc4648_hex":
		return RFC4648Hex, true
	case "rfc4648_hex_lower":
		return RFC4648HexLower, true
	case "z":
		return Z, true
	default:
		return 0, false
	}
}
