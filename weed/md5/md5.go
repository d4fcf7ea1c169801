// Package md5 is a streaming implementation of the MD5 message digest (RFC 1321).
//
// A Hasher accepts input in pieces of any size and keeps at most one partial
// block in memory, so arbitrarily long streams hash in constant space. The
// lifecycle is New, any number of Update/Write calls, then exactly one
// Finalize. MD5 is broken for collision resistance; this package exists for
// bit-exact compatibility with systems that still speak it (ETags,
// Content-MD5, legacy checksums).
package md5

import (
	"encoding/binary"
	"errors"

	"github.com/seaweedfs/md5stream/weed/glog"
)

// Size is the length of an MD5 digest in bytes.
const Size = 16

// BlockSize is the number of bytes consumed by one application of the compression function.
const BlockSize = 64

// ErrFinalized is returned by Update, Write and Finalize once Finalize has run.
var ErrFinalized = errors.New("md5: hasher already finalized")

// Hasher is the block accumulator. It is not safe for concurrent use;
// independent streams need independent Hashers.
type Hasher struct {
	s         [4]uint32
	x         [BlockSize]byte
	nx        int
	len       uint64 // bits, mod 2^64
	blocks    uint64
	finalized bool
}

func New() *Hasher {
	return &Hasher{
		s: [4]uint32{init0, init1, init2, init3},
	}
}

func (h *Hasher) Size() int { return Size }

func (h *Hasher) BlockSize() int { return BlockSize }

// Len returns the number of bits accepted so far, modulo 2^64.
func (h *Hasher) Len() uint64 { return h.len }

// Update feeds p into the hash. Complete blocks are compressed immediately and
// fewer than BlockSize bytes are retained between calls.
//
// The bit counter wraps modulo 2^64 exactly as RFC 1321 frames it, so inputs
// longer than 2^61 bytes are hashed, not rejected.
func (h *Hasher) Update(p []byte) error {
	if h.finalized {
		return ErrFinalized
	}
	h.len += uint64(len(p)) << 3

	if h.nx > 0 {
		n := copy(h.x[h.nx:], p)
		h.nx += n
		if h.nx < BlockSize {
			return nil
		}
		h.compress(&h.x)
		h.nx = 0
		p = p[n:]
	}
	for len(p) >= BlockSize {
		h.compress((*[BlockSize]byte)(p[:BlockSize]))
		p = p[BlockSize:]
	}
	h.nx = copy(h.x[:], p)
	return nil
}

// Write implements io.Writer on top of Update.
func (h *Hasher) Write(p []byte) (int, error) {
	if err := h.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Finalize pads the pending bytes, compresses the last one or two blocks and
// returns the digest. It may be called once; the Hasher is unusable afterwards.
func (h *Hasher) Finalize() (Digest, error) {
	if h.finalized {
		return Digest{}, ErrFinalized
	}
	h.finalized = true

	tail := pad(h.x[:h.nx], h.len)
	for len(tail) > 0 {
		h.compress((*[BlockSize]byte)(tail[:BlockSize]))
		tail = tail[BlockSize:]
	}
	h.nx = 0

	var d Digest
	for i, s := range h.s {
		binary.LittleEndian.PutUint32(d[4*i:], s)
	}
	return d, nil
}

func (h *Hasher) compress(p *[BlockSize]byte) {
	h.s = block(h.s, p)
	h.blocks++
	if glog.V(4) {
		glog.Infof("md5 block %d: a=%08x b=%08x c=%08x d=%08x", h.blocks, h.s[0], h.s[1], h.s[2], h.s[3])
	}
}

// pad returns tail followed by 0x80, zero bytes up to 56 mod 64 and the
// little-endian bit length. The result is one or two whole blocks.
func pad(tail []byte, bitLen uint64) []byte {
	n := len(tail) + 1 + 8
	n = (n + BlockSize - 1) &^ (BlockSize - 1)

	out := make([]byte, n)
	copy(out, tail)
	out[len(tail)] = 0x80
	binary.LittleEndian.PutUint64(out[n-8:], bitLen)
	return out
}
