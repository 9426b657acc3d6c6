package crypto

import (
	"crypto/subtle"
	"errors"
	"runtime"
)

// SecureWipe overwrites data with zeros. It returns an error if data is
// nil.
func SecureWipe(data []byte) error {
	if data == nil {
		return errors.New("cannot wipe nil data")
	}

	zeros := make([]byte, len(data))
	subtle.ConstantTimeCompare(data, zeros)
	copy(data, zeros)

	// Keep the store from being elided.
	runtime.KeepAlive(data)
	runtime.KeepAlive(zeros)

	return nil
}

// ZeroBytes is SecureWipe without the error.
func ZeroBytes(data []byte) {
	_ = SecureWipe(data)
}

// Wipe zeroes the secret key in place.
func (s *SecretKey) Wipe() {
	ZeroBytes(s[:])
}

// WipeKeyPair erases the secret half of kp. Call it when the pair is no
// longer needed.
func WipeKeyPair(kp *KeyPair) error {
	if kp == nil {
		return errors.New("cannot wipe nil KeyPair")
	}
	return SecureWipe(kp.Secret[:])
}
