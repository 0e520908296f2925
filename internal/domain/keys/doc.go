// Package keys defines the stored key pair entity of the vault, the query used to list key pairs,
// and the service and repository contracts for generating, looking up, deleting and using them.
package keys
