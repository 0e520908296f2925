package models

import (
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
)

// KeyPairModel is the GORM database model for key pairs (infrastructure concern)
type KeyPairModel struct {
	ID                 string    `gorm:"primaryKey;type:uuid"`
	UserID             string    `gorm:"not null;index;type:varchar(255)"`
	Algorithm          string    `gorm:"type:varchar(20)"`
	Bits               uint32    `gorm:"type:integer;index"`
	ModulusHex         string    `gorm:"not null;type:text"`
	PublicExponentHex  string    `gorm:"not null;type:text"`
	PrivateExponentHex string    `gorm:"not null;type:text"`
	DateTimeCreated    time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (KeyPairModel) TableName() string {
	return "key_pairs"
}

// ToDomain converts GORM model to domain entity
func (m *KeyPairModel) ToDomain() *keys.KeyPairMeta {
	return &keys.KeyPairMeta{
		ID:                 m.ID,
		UserID:             m.UserID,
		Algorithm:          m.Algorithm,
		Bits:               m.Bits,
		ModulusHex:         m.ModulusHex,
		PublicExponentHex:  m.PublicExponentHex,
		PrivateExponentHex: m.PrivateExponentHex,
		DateTimeCreated:    m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *KeyPairModel) FromDomain(k *keys.KeyPairMeta) {
	m.ID = k.ID
	m.UserID = k.UserID
	m.Algorithm = k.Algorithm
	m.Bits = k.Bits
	m.ModulusHex = k.ModulusHex
	m.PublicExponentHex = k.PublicExponentHex
	m.PrivateExponentHex = k.PrivateExponentHex
	m.DateTimeCreated = k.DateTimeCreated
}
