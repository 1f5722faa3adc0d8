package model

import (
	"time"

	"github.com/google/uuid"
)

// Barbeiro is a system user. The only permission distinction the engine cares
// about is Admin: admins may delete lancamentos, backdate entries, close
// registers and see the financial reports.
type Barbeiro struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	SenhaHash string    `gorm:"not null"`
	LojaID    string    `gorm:"type:varchar(20);not null"`
	Admin     bool      `gorm:"not null;default:false"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
