package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FechamentoCaixa status values.
// batido: counted cash matches the system exactly; falta: shortage; sobra: overage.
const (
	CaixaBatido = "batido"
	CaixaFalta  = "falta"
	CaixaSobra  = "sobra"
)

// FechamentoCaixa is the daily register reconciliation for one store.
// Exactly one per (loja_id, data_referencia); the composite unique index gives
// the create-once semantics — a second closure for the same key is rejected,
// never silently overwritten.
//
// Only cash is physically counted. Pix and card totals come from the processor
// and are stored as informational system-derived figures.
type FechamentoCaixa struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LojaID string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_fechamento_loja_data"`
	// DataReferencia is the calendar day being closed, YYYY-MM-DD in store-local time.
	DataReferencia string `gorm:"type:varchar(10);not null;uniqueIndex:idx_fechamento_loja_data"`

	EsperadoDinheiro decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EsperadoPix      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EsperadoDebito   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EsperadoCredito  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EsperadoTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	InformadoDinheiro decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Diferenca = informado − esperado, cash only is authoritative.
	Diferenca decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status    string          `gorm:"type:varchar(10);not null"`

	Observacoes *string
	FechadoPor  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
}

func (FechamentoCaixa) TableName() string { return "fechamentos_caixa" }
