package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AdiantamentoRequest struct {
	Valor decimal.Decimal `json:"valor" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ExtratoResponse is the barber's rolling dashboard: today's stats plus the
// commission balance of the current pay cycle (since the last closure, or
// since month start when no closure exists yet).
type ExtratoResponse struct {
	BarbeiroID   string `json:"barbeiro_id"`
	BarbeiroNome string `json:"barbeiro_nome"`

	HojeAtendimentos int             `json:"hoje_atendimentos"`
	HojeFaturamento  decimal.Decimal `json:"hoje_faturamento"`
	HojeComissao     decimal.Decimal `json:"hoje_comissao"`

	// CicloInicio is the cycle boundary actually used (RFC 3339).
	CicloInicio        string          `json:"ciclo_inicio"`
	CicloSaldoComissao decimal.Decimal `json:"ciclo_saldo_comissao"`
	CicloAdiantamentos decimal.Decimal `json:"ciclo_adiantamentos"`

	Hoje []LancamentoResponse `json:"hoje"`

	// GeradoEm stamps when this snapshot was computed — cached copies carry
	// the original computation time.
	GeradoEm string `json:"gerado_em"`
}

// FechamentoComissaoResponse confirms a commission closure: the ledger row
// created and the balance it zeroed.
type FechamentoComissaoResponse struct {
	Lancamento  LancamentoResponse `json:"lancamento"`
	SaldoPago   decimal.Decimal    `json:"saldo_pago"`
	BarbeiroID  string             `json:"barbeiro_id"`
	RegistradoA string             `json:"registrado_em"`
}
