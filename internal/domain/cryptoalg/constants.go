package cryptoalg

// AlgorithmRSA names the only algorithm the vault implements
const AlgorithmRSA = "RSA"

// KeyTypePrivate represents a private key
const KeyTypePrivate = "private"

// KeyTypePublic represents a public key
const KeyTypePublic = "public"

// DefaultPublicExponent is the conventional public exponent tried first
const DefaultPublicExponent = 65537

// MillerRabinRounds is the confidence parameter of the primality test
const MillerRabinRounds = 25

// MinKeyBits is the smallest modulus size that fits two 3-bit primes
const MinKeyBits = 6

// MinPrimeBits is the smallest accepted prime bit length
const MinPrimeBits = 3

// InsecureKeyBits is the modulus size below which key generation logs a warning
const InsecureKeyBits = 128

// InsecurePrimeBits is the prime size below which prime generation logs a warning
const InsecurePrimeBits = 64

// DefaultMaxAttempts caps every sampling loop of key generation
const DefaultMaxAttempts = 1_000_000
