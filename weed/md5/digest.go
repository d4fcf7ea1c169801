package md5

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Digest is a finished 128-bit MD5 value: state words A, B, C, D, each little-endian.
type Digest [Size]byte

// String renders the digest as 32 lowercase hex characters.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) Hex() string {
	return d.String()
}

// Base64 renders the digest the way the Content-MD5 header carries it.
func (d Digest) Base64() string {
	return base64.StdEncoding.EncodeToString(d[:])
}

func (d Digest) Equal(other Digest) bool {
	return d == other
}

// ParseDigest parses the 32-character hex form produced by Digest.String.
// Upper-case hex is accepted.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if len(s) != 2*Size {
		return d, fmt.Errorf("md5: digest %q has %d characters, want %d", s, len(s), 2*Size)
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return d, fmt.Errorf("md5: parse digest %q: %w", s, err)
	}
	return d, nil
}

// Sum returns the digest of data.
func Sum(data []byte) Digest {
	h := New()
	// a fresh Hasher can neither be finalized already nor fail an update
	h.Update(data)
	d, _ := h.Finalize()
	return d
}

func SumString(s string) Digest {
	return Sum([]byte(s))
}
