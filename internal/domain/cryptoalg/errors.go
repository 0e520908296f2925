package cryptoalg

import "errors"

// Error kinds returned by the RSA engine. Callers match them with errors.Is.
var (
	// ErrInvalidParameter reports a bit length that is too small or an empty or malformed key.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrBlockTooLarge reports an integer that is not smaller than the modulus,
	// or an integer whose encoding does not fit the requested block length.
	ErrBlockTooLarge = errors.New("block too large for modulus")

	// ErrKeyTooSmall reports a modulus whose byte length leaves no room for a data block.
	ErrKeyTooSmall = errors.New("key modulus too small")

	// ErrNoSuitableExponent reports that no public exponent coprime to phi(n) was found.
	ErrNoSuitableExponent = errors.New("no suitable public exponent")

	// ErrModularInverseFailure reports that the private exponent could not be derived.
	ErrModularInverseFailure = errors.New("modular inverse failure")

	// ErrGenerationExhausted reports that a sampling loop hit its iteration cap.
	ErrGenerationExhausted = errors.New("generation attempts exhausted")

	// ErrIO reports a file open, read or write failure.
	ErrIO = errors.New("i/o error")

	// ErrMalformedLine reports a ciphertext line that is not a hexadecimal integer.
	// File decryption logs and skips such lines instead of failing.
	ErrMalformedLine = errors.New("malformed ciphertext line")
)
