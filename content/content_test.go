package content

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veraison/go-cose"

	"github.com/WeiqiJust/RepoSync/names"
)

func TestFullNameIsStableAndDigestSized(t *testing.T) {
	d := &Data{
		Name:    names.MustParseName("/repo/a"),
		Payload: []byte("hello"),
	}

	fn1, err := d.FullName()
	require.NoError(t, err)
	fn2, err := d.FullName()
	require.NoError(t, err)

	require.Len(t, fn1, 3)
	assert.True(t, d.Name.IsPrefixOf(fn1))
	assert.Len(t, fn1[2], 32)
	assert.True(t, fn1.Equal(fn2))
}

func TestFullNameCommitsToPayload(t *testing.T) {
	a := &Data{Name: names.MustParseName("/repo/a"), Payload: []byte("x")}
	b := &Data{Name: names.MustParseName("/repo/a"), Payload: []byte("y")}

	fa, err := a.FullName()
	require.NoError(t, err)
	fb, err := b.FullName()
	require.NoError(t, err)
	assert.False(t, fa.Equal(fb))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := &Data{
		Name:       names.MustParseName("/repo/a/b"),
		Payload:    []byte("payload"),
		KeyLocator: &KeyLocator{Name: names.MustParseName("/keys/alice")},
	}
	b, err := d.Encode()
	require.NoError(t, err)

	got, err := DecodeData(b)
	require.NoError(t, err)
	assert.True(t, got.Name.Equal(d.Name))
	assert.Equal(t, d.Payload, got.Payload)
	require.NotNil(t, got.KeyLocator)
	assert.True(t, got.KeyLocator.Name.Equal(d.KeyLocator.Name))

	_, err = DecodeData([]byte{0xff, 0x00})
	require.ErrorIs(t, err, ErrDataDecode)
}

func TestKeyLocatorDigestEquality(t *testing.T) {
	alice := &KeyLocator{Name: names.MustParseName("/keys/alice")}
	alice2 := &KeyLocator{Name: names.MustParseName("/keys/alice")}
	bob := &KeyLocator{Name: names.MustParseName("/keys/bob")}

	da, err := KeyLocatorDigest(alice)
	require.NoError(t, err)
	da2, err := KeyLocatorDigest(alice2)
	require.NoError(t, err)
	db, err := KeyLocatorDigest(bob)
	require.NoError(t, err)

	require.Len(t, da, 32)
	assert.Equal(t, da, da2)
	assert.NotEqual(t, da, db)
}

func TestExclude(t *testing.T) {
	one := names.Component("1")
	two := names.Component("2")
	nine := names.Component("9")

	var nilEx *Exclude
	assert.True(t, nilEx.Empty())
	assert.False(t, nilEx.IsExcluded(one))

	e := ExcludeComponents(one)
	assert.False(t, e.Empty())
	assert.True(t, e.IsExcluded(one))
	assert.False(t, e.IsExcluded(two))

	e = (&Exclude{}).AddRange(two, nine)
	assert.True(t, e.IsExcluded(two))
	assert.True(t, e.IsExcluded(names.Component("5")))
	assert.True(t, e.IsExcluded(nine))
	assert.False(t, e.IsExcluded(one))
	// range comparison is canonical: longer components are outside a
	// single byte range even when their bytes sort between the bounds
	assert.False(t, e.IsExcluded(names.Component("55")))
}

func TestSignDataAttachesEnvelopeAndLocator(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	signer, err := cose.NewSigner(cose.AlgorithmES256, key)
	require.NoError(t, err)

	d := &Data{Name: names.MustParseName("/repo/signed"), Payload: []byte("p")}
	keyName := names.MustParseName("/keys/alice")
	require.NoError(t, SignData(signer, keyName, d))

	require.NotNil(t, d.KeyLocator)
	assert.True(t, d.KeyLocator.Name.Equal(keyName))
	require.NotEmpty(t, d.Signature)

	// the envelope is well formed COSE_Sign1
	var msg cose.Sign1Message
	require.NoError(t, msg.UnmarshalCBOR(d.Signature))
	assert.Equal(t, []byte(keyName.String()), msg.Headers.Protected[cose.HeaderLabelKeyID])

	// the full name commits to the signature
	unsigned := &Data{Name: d.Name, Payload: d.Payload}
	fs, err := d.FullName()
	require.NoError(t, err)
	fu, err := unsigned.FullName()
	require.NoError(t, err)
	assert.False(t, fs.Equal(fu))
}
