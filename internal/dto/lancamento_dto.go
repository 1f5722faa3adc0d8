package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistrarLancamentoRequest creates a sale-type lancamento (servico, produto,
// venda_vale, venda_assinatura). Ledger rows (adiantamento,
// fechamento_comissao) have their own endpoints and are never created here.
type RegistrarLancamentoRequest struct {
	// BarbeiroID is optional: admins may launch on behalf of any barber,
	// non-admins only for themselves.
	BarbeiroID     string          `json:"barbeiro_id"     validate:"omitempty,uuid"`
	ClienteNome    string          `json:"cliente_nome"`
	Descricao      string          `json:"descricao"`
	ValorBruto     decimal.Decimal `json:"valor_bruto"     validate:"required"`
	Quantidade     int             `json:"quantidade"      validate:"min=0"`
	FormaPagamento string          `json:"forma_pagamento" validate:"required"`
	Tipo           string          `json:"tipo"            validate:"required,oneof=servico produto venda_vale venda_assinatura"`
	// DataManual (YYYY-MM-DD) backdates the entry. Future dates are always
	// rejected; past dates require admin and land at 12:00 local time.
	DataManual string `json:"data_manual" validate:"omitempty,datetime=2006-01-02"`
}

type LancamentoFilter struct {
	BarbeiroID string
	LojaID     string
	Inicio     string // YYYY-MM-DD inclusive
	Fim        string // YYYY-MM-DD inclusive
	Page       int
	Limit      int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LancamentoResponse struct {
	ID               string          `json:"id"`
	Data             string          `json:"data"`
	BarbeiroID       string          `json:"barbeiro_id"`
	BarbeiroNome     string          `json:"barbeiro_nome"`
	LojaID           string          `json:"loja_id"`
	ClienteNome      *string         `json:"cliente_nome,omitempty"`
	Descricao        string          `json:"descricao"`
	ValorBruto       decimal.Decimal `json:"valor_bruto"`
	Quantidade       int             `json:"quantidade,omitempty"`
	FormaPagamento   string          `json:"forma_pagamento"`
	Tipo             string          `json:"tipo"`
	ComissaoBarbeiro decimal.Decimal `json:"comissao_barbeiro"`
}

type LancamentoListResponse struct {
	Data  []LancamentoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
