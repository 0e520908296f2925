//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/stretchr/testify/assert"
)

func TestKeyPairModel_ToDomain(t *testing.T) {
	keyPairModel := &KeyPairModel{
		ID:                 "test-id",
		UserID:             "user-id",
		Algorithm:          "RSA",
		Bits:               512,
		ModulusHex:         "ca1",
		PublicExponentHex:  "11",
		PrivateExponentHex: "ac1",
		DateTimeCreated:    time.Now(),
	}

	keyPairMeta := keyPairModel.ToDomain()

	assert.Equal(t, keyPairModel.ID, keyPairMeta.ID)
	assert.Equal(t, keyPairModel.UserID, keyPairMeta.UserID)
	assert.Equal(t, keyPairModel.Algorithm, keyPairMeta.Algorithm)
	assert.Equal(t, keyPairModel.Bits, keyPairMeta.Bits)
	assert.Equal(t, keyPairModel.ModulusHex, keyPairMeta.ModulusHex)
	assert.Equal(t, keyPairModel.PublicExponentHex, keyPairMeta.PublicExponentHex)
	assert.Equal(t, keyPairModel.PrivateExponentHex, keyPairMeta.PrivateExponentHex)
	assert.Equal(t, keyPairModel.DateTimeCreated, keyPairMeta.DateTimeCreated)
}

func TestKeyPairModel_FromDomain(t *testing.T) {
	keyPairMeta := &keys.KeyPairMeta{
		ID:                 "test-id",
		UserID:             "user-id",
		Algorithm:          "RSA",
		Bits:               1024,
		ModulusHex:         "ca1",
		PublicExponentHex:  "11",
		PrivateExponentHex: "ac1",
		DateTimeCreated:    time.Now(),
	}

	keyPairModel := &KeyPairModel{}
	keyPairModel.FromDomain(keyPairMeta)

	assert.Equal(t, keyPairMeta.ID, keyPairModel.ID)
	assert.Equal(t, keyPairMeta.UserID, keyPairModel.UserID)
	assert.Equal(t, keyPairMeta.Bits, keyPairModel.Bits)
	assert.Equal(t, keyPairMeta.ModulusHex, keyPairModel.ModulusHex)
	assert.Equal(t, keyPairMeta.PrivateExponentHex, keyPairModel.PrivateExponentHex)
	assert.Equal(t, keyPairMeta.DateTimeCreated, keyPairModel.DateTimeCreated)
	assert.Equal(t, "key_pairs", keyPairModel.TableName())
}
