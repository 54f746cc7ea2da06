package bloom

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
)

const (
	// DigestBytes is the fixed element width. Elements are SHA-256
	// digests, never raw values.
	DigestBytes = 32

	// hash domain separator, so filter probes can never collide with
	// other uses of the element digest
	bloomDomain = 0xB0

	// MaxBitsPerElement bounds the filter sizing so mBits stays well
	// inside a uint32.
	MaxBitsPerElement = 64
)

var (
	ErrBadElemSize = errors.New("bloom: element must be 32 bytes")
	ErrBadParams   = errors.New("bloom: filter parameters out of range")
)

// Filter is an in-memory bloom filter. Bits are addressed LSB0: bit 0
// is the least significant bit of byte 0. Not safe for concurrent use.
type Filter struct {
	mBits     uint64
	k         uint8
	nInserted uint64
	bits      []byte
}

// New returns a filter sized for expectedElements at bitsPerElement
// bits each, probing k positions per element. 10 bits and k=7 gives
// roughly a 1% false positive rate at the expected load.
func New(expectedElements uint64, bitsPerElement uint64, k uint8) (*Filter, error) {
	if expectedElements == 0 || bitsPerElement == 0 || bitsPerElement > MaxBitsPerElement || k == 0 {
		return nil, ErrBadParams
	}
	mBits := expectedElements * bitsPerElement
	if mBits/bitsPerElement != expectedElements || mBits > uint64(^uint32(0)) {
		return nil, ErrBadParams
	}
	return &Filter{
		mBits: mBits,
		k:     k,
		bits:  make([]byte, (mBits+7)/8),
	}, nil
}

// Add inserts the digest into the filter.
func (f *Filter) Add(elem []byte) error {
	if len(elem) != DigestBytes {
		return ErrBadElemSize
	}
	h1, h2 := hashPair(elem)
	for i := uint64(0); i < uint64(f.k); i++ {
		j := (h1 + i*h2) % f.mBits
		f.bits[j>>3] |= 1 << uint8(j&7)
	}
	f.nInserted++
	return nil
}

// MaybeContains reports filter membership: false is "definitely not
// present", true is "maybe present".
func (f *Filter) MaybeContains(elem []byte) (bool, error) {
	if len(elem) != DigestBytes {
		return false, ErrBadElemSize
	}
	h1, h2 := hashPair(elem)
	for i := uint64(0); i < uint64(f.k); i++ {
		j := (h1 + i*h2) % f.mBits
		if f.bits[j>>3]&(1<<uint8(j&7)) == 0 {
			return false, nil
		}
	}
	return true, nil
}

// NInserted returns the count of Add calls, including any duplicates.
func (f *Filter) NInserted() uint64 { return f.nInserted }

func hashPair(elem []byte) (h1 uint64, h2 uint64) {
	// SHA-256( 0xB0 || elem32 )
	var buf [1 + DigestBytes]byte
	buf[0] = bloomDomain
	copy(buf[1:], elem)
	sum := sha256.Sum256(buf[:])
	h1 = binary.BigEndian.Uint64(sum[0:8])
	h2 = binary.BigEndian.Uint64(sum[8:16])
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}
