// Package models contains the GORM database models of the key pair store.
// They are kept apart from the domain entities and convert to and from them.
package models
