package keys

import "errors"

// ErrKeyPairNotFound is returned when no key pair exists for an ID.
var ErrKeyPairNotFound = errors.New("key pair not found")
