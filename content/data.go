package content

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/WeiqiJust/RepoSync/names"
)

var ErrDataDecode = errors.New("content: data item decode failed")

// detEnc is the core deterministic encode mode shared by every digest in
// this package. The options are constants so construction cannot fail at
// runtime.
var detEnc = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// Data is a named, signed unit of content. Name is the publisher assigned
// name; the stored full name additionally carries a trailing digest
// component derived from the item's own encoding.
//
// Signature is an opaque COSE_Sign1 envelope over the payload, or nil for
// unsigned items. The repository never verifies it.
type Data struct {
	Name       names.Name  `cbor:"1,keyasint"`
	Payload    []byte      `cbor:"2,keyasint"`
	KeyLocator *KeyLocator `cbor:"3,keyasint,omitempty"`
	Signature  []byte      `cbor:"4,keyasint,omitempty"`
}

// Encode returns the deterministic CBOR encoding of the item.
func (d *Data) Encode() ([]byte, error) {
	return detEnc.Marshal(d)
}

// DecodeData decodes an item previously produced by Encode.
func DecodeData(b []byte) (*Data, error) {
	d := &Data{}
	if err := cbor.Unmarshal(b, d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataDecode, err)
	}
	return d, nil
}

// FullName returns the item's name extended with the implicit digest
// component: SHA-256 over the item's deterministic encoding.
func (d *Data) FullName() (names.Name, error) {
	b, err := d.Encode()
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(b)
	return d.Name.Append(names.Component(digest[:])), nil
}
