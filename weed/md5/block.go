package md5

import (
	"encoding/binary"
	"math/bits"
)

// block runs the MD5 compression function over exactly one 64-byte block
// and returns the next chaining state. It does not modify s.
func block(s [4]uint32, p *[BlockSize]byte) [4]uint32 {
	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(p[4*i:])
	}

	a, b, c, d := s[0], s[1], s[2], s[3]
	for i := 0; i < 64; i++ {
		var f uint32
		switch i >> 4 {
		case 0:
			f = (b & c) | (^b & d)
		case 1:
			f = (b & d) | (c &^ d)
		case 2:
			f = b ^ c ^ d
		default:
			f = c ^ (b | ^d)
		}
		sum := a + f + sines[i] + m[messageIndex(i)]
		a, b, c, d = d, b+bits.RotateLeft32(sum, shifts[i>>4][i&3]), b, c
	}

	return [4]uint32{s[0] + a, s[1] + b, s[2] + c, s[3] + d}
}
