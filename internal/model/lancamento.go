package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods as stored on a Lancamento. Legacy rows may carry accent-less
// variants ("Credito", "debito"); normalization happens at read time in the
// service layer, never by rewriting stored rows.
const (
	PagamentoDinheiro     = "Dinheiro"
	PagamentoPix          = "Pix"
	PagamentoCredito      = "Crédito"
	PagamentoDebito       = "Débito"
	PagamentoValePresente = "Vale Presente"
	PagamentoAssinante    = "Assinante"
)

// Lancamento kinds. The kind — not the payment method — decides whether a row
// is barber labor, a pure ledger adjustment, or an administrative sale.
const (
	TipoServico            = "servico"
	TipoProduto            = "produto"
	TipoVendaVale          = "venda_vale"
	TipoVendaAssinatura    = "venda_assinatura"
	TipoAdiantamento       = "adiantamento"
	TipoFechamentoComissao = "fechamento_comissao"
)

// Lancamento is the atomic unit of business activity: one service, product
// sale, voucher/subscription sale, advance draw, or commission closure.
//
// Rows are immutable after creation. ComissaoBarbeiro is computed once at
// write time and stored — it is never recomputed from history, so each row is
// its own source of truth for its own commission. Corrections are admin-only
// deletions.
type Lancamento struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Data is the effective timestamp of the transaction; admins may backdate
	// it, so it is distinct from CreatedAt.
	Data         time.Time `gorm:"not null;index"`
	BarbeiroID   uuid.UUID `gorm:"type:uuid;not null;index"`
	BarbeiroNome string    `gorm:"not null"`
	LojaID       string    `gorm:"type:varchar(20);not null;index"`
	ClienteNome  *string
	Descricao    string
	// ValorBruto is zero for pure ledger rows (adiantamento, fechamento_comissao).
	ValorBruto decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Quantidade only matters for tipo=produto (units sold).
	Quantidade     int    `gorm:"not null;default:0"`
	FormaPagamento string `gorm:"type:varchar(30);not null"`
	Tipo           string `gorm:"type:varchar(30);not null;index"`
	// ComissaoBarbeiro is signed: positive = commission earned, negative =
	// advance draw-down or closure payout.
	ComissaoBarbeiro decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt        time.Time
}

// EhLedger reports whether the row is a balance-only entry that never counts
// toward activity or revenue.
func (l *Lancamento) EhLedger() bool {
	return l.Tipo == TipoAdiantamento || l.Tipo == TipoFechamentoComissao
}
