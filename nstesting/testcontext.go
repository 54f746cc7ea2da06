package nstesting

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	mrand "math/rand"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/veraison/go-cose"

	"github.com/WeiqiJust/RepoSync/content"
	"github.com/WeiqiJust/RepoSync/names"
)

type TestContext struct {
	Log logger.Logger
	T   *testing.T

	// Rng drives every generator on the context. Fix the seed to get the
	// same data from run to run.
	Rng *mrand.Rand

	signer  cose.Signer
	keyName names.Name
}

type TestConfig struct {
	// Seed for the data generators. It is normal to force it to some
	// fixed value so that the generated data is the same from run to run.
	Seed            int64
	TestLabelPrefix string
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	c := TestContext{
		T: t,
	}
	logger.New("NOOP")
	c.Log = logger.Sugar.WithServiceName(cfg.TestLabelPrefix)
	c.Rng = mrand.New(mrand.NewSource(cfg.Seed))

	// Each context gets its own publisher identity: a uuid derived key
	// name and a fresh P-256 signing key.
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	c.signer, err = cose.NewSigner(cose.AlgorithmES256, key)
	require.NoError(t, err)
	c.keyName = names.MustParseName("/keys/" + uuid.NewString())

	return c
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// PublisherKeyName returns the key name items from SignedItem claim to
// be signed under.
func (c *TestContext) PublisherKeyName() names.Name { return c.keyName }

// PublisherKeyLocator returns the locator queries should carry to match
// items signed by this context.
func (c *TestContext) PublisherKeyLocator() *content.KeyLocator {
	return &content.KeyLocator{Name: c.keyName}
}

// RandomName returns prefix extended with between 1 and maxDepth random
// components.
func (c *TestContext) RandomName(prefix names.Name, maxDepth int) names.Name {
	n := prefix.Clone()
	depth := 1 + c.Rng.Intn(maxDepth)
	for i := 0; i < depth; i++ {
		n = n.Append(names.Component(fmt.Sprintf("c%03d", c.Rng.Intn(1000))))
	}
	return n
}

// DistinctNames returns count distinct, mutually prefix-free random
// names under prefix. Prefix freedom matters to callers retrieving by
// name: under canonical order a descendant's entry can sort before its
// ancestor's, so a prefix pair would make name lookups ambiguous.
func (c *TestContext) DistinctNames(prefix names.Name, maxDepth int, count int) []names.Name {
	var out []names.Name
nextName:
	for len(out) < count {
		n := c.RandomName(prefix, maxDepth)
		for _, have := range out {
			if have.IsPrefixOf(n) || n.IsPrefixOf(have) {
				continue nextName
			}
		}
		out = append(out, n)
	}
	return out
}

// Item returns an unsigned content item with a random payload.
func (c *TestContext) Item(n names.Name) *content.Data {
	payload := make([]byte, 8+c.Rng.Intn(56))
	c.Rng.Read(payload)
	return &content.Data{Name: n, Payload: payload}
}

// SignedItem returns a content item signed under the context's
// publisher identity.
func (c *TestContext) SignedItem(n names.Name) *content.Data {
	d := c.Item(n)
	require.NoError(c.T, content.SignData(c.signer, c.keyName, d))
	return d
}

// SignedItems returns count signed items under distinct random names
// below prefix.
func (c *TestContext) SignedItems(prefix names.Name, maxDepth int, count int) []*content.Data {
	var out []*content.Data
	for _, n := range c.DistinctNames(prefix, maxDepth, count) {
		out = append(out, c.SignedItem(n))
	}
	return out
}
