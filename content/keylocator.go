package content

import (
	"crypto/sha256"

	"github.com/WeiqiJust/RepoSync/names"
)

// KeyLocator identifies the claimed signer of a content item, either by
// the name of the signing key or by a digest of it. The repository only
// ever compares locators for equality, via KeyLocatorDigest.
type KeyLocator struct {
	Name      names.Name `cbor:"1,keyasint,omitempty"`
	KeyDigest []byte     `cbor:"2,keyasint,omitempty"`
}

// KeyLocatorDigest reduces a locator to a fixed-size equality token:
// SHA-256 over the locator's deterministic CBOR encoding. Two locators
// are considered the same publisher identity iff their digests are equal;
// the digest is never decoded.
func KeyLocatorDigest(kl *KeyLocator) ([]byte, error) {
	b, err := detEnc.Marshal(kl)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(b)
	return digest[:], nil
}
