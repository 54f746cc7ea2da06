package content

import (
	"crypto/rand"

	"github.com/veraison/go-cose"

	"github.com/WeiqiJust/RepoSync/names"
)

// SignData wraps the item's payload in a COSE_Sign1 envelope and records
// the locator naming the signing key. The key name doubles as the COSE
// kid so an external verifier can locate the key from the envelope alone.
//
// The envelope is attached before the full name is taken, so the implicit
// digest component commits to the signature as well as the payload.
func SignData(coseSigner cose.Signer, keyName names.Name, d *Data) error {
	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelKeyID: []byte(keyName.String()),
			},
		},
		Payload: d.Payload,
	}
	if err := msg.Sign(rand.Reader, nil, coseSigner); err != nil {
		return err
	}
	sig, err := msg.MarshalCBOR()
	if err != nil {
		return err
	}
	d.KeyLocator = &KeyLocator{Name: keyName}
	d.Signature = sig
	return nil
}
