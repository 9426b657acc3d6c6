package crypto

import "errors"

var (
	// ErrInvalidScalar indicates a scalar encoding that is not reduced mod ℓ.
	ErrInvalidScalar = errors.New("crypto: invalid scalar")

	// ErrInvalidPoint indicates a point encoding that does not decode
	// canonically to a curve point.
	ErrInvalidPoint = errors.New("crypto: invalid point")

	// ErrMalformedRing indicates an empty ring, an out-of-range signer
	// index, or a signature count that does not match the ring size.
	ErrMalformedRing = errors.New("crypto: malformed ring")

	// ErrKeyMismatch indicates that the secret key does not open the
	// signer's ring member or does not produce the supplied key image.
	ErrKeyMismatch = errors.New("crypto: secret key does not match")
)
