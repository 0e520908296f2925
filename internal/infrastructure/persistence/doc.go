// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to interact with SQLite or PostgreSQL databases,
// storing generated key pairs. The package includes validation and logging
// for traceability and error handling.
package persistence
