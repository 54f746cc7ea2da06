package content

/*

# Repository wire objects

The types the repository index consumes but never encodes to the wire
itself: named signed content items (Data), the queries that request them
(Interest) and the signer identity metadata (KeyLocator).

Encodings are deterministic CBOR (fxamacker core deterministic mode) so
that digests over them are stable: the trailing full-name component of a
Data item is the SHA-256 of its encoding, and a KeyLocator reduces to the
SHA-256 of its encoding for equality-only comparison in the index.

Signature envelopes are COSE_Sign1. This package only constructs them;
verifying them is the consuming service's concern.

*/
