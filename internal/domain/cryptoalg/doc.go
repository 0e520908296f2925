// Package cryptoalg defines the core interfaces and value types of the textbook RSA engine,
// such as public and private keys, key pairs, the random source capability and the error kinds
// returned by key generation, block encryption and file processing.
package cryptoalg
