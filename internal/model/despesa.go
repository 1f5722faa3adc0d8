package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Despesa status values. Only "pago" expenses enter the P&L; "planejado" ones
// are forecast lines the admin can toggle once paid.
const (
	DespesaPaga      = "pago"
	DespesaPlanejada = "planejado"
)

// Despesa is a manually entered store expense (rent, supplies, payroll extras).
// Commission cost is NOT stored here — it is recomputed from lancamentos and
// surfaced as a virtual expense line in the financial report.
type Despesa struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LojaID    string          `gorm:"type:varchar(20);not null;index"`
	Descricao string          `gorm:"not null"`
	Valor     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Data is the expense date, YYYY-MM-DD (string to match report month filters).
	Data      string `gorm:"type:varchar(10);not null;index"`
	Status    string `gorm:"type:varchar(10);not null;default:'pago'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
