package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegrasComissao is the commission rule set: per-payment-method acquiring fees
// and the commission percentages. A single row is active at a time; it is
// loaded once at startup and passed explicitly into every calculation —
// if no row exists the process refuses to start rather than guess defaults,
// since a silent default would mis-pay every commission.
type RegrasComissao struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// ServicoPercentual is the fraction of the fee-adjusted base paid to the
	// barber for service work (e.g. 0.50).
	ServicoPercentual decimal.Decimal `gorm:"type:decimal(6,4);not null"`
	// ProdutoPorItem is the flat commission per product unit sold.
	ProdutoPorItem decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// Transaction-fee fractions per payment method, applied against the gross
	// value before commission. Methods without a column (Vale Presente,
	// Assinante) carry no fee.
	TaxaDinheiro decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0"`
	TaxaPix      decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0"`
	TaxaCredito  decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0"`
	TaxaDebito   decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0"`

	VigenteDesde time.Time
	CreatedAt    time.Time
}

func (RegrasComissao) TableName() string { return "regras_comissao" }

// Taxa returns the acquiring fee for a normalized payment method.
// Unknown methods pay no fee — a fee-table miss never rejects a transaction.
func (r *RegrasComissao) Taxa(formaPagamento string) decimal.Decimal {
	switch formaPagamento {
	case PagamentoDinheiro:
		return r.TaxaDinheiro
	case PagamentoPix:
		return r.TaxaPix
	case PagamentoCredito:
		return r.TaxaCredito
	case PagamentoDebito:
		return r.TaxaDebito
	default:
		return decimal.Zero
	}
}
