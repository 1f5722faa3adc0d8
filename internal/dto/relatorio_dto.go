package dto

import "github.com/shopspring/decimal"

// ─── Request ─────────────────────────────────────────────────────────────────

// RelatorioFilter selects the reporting window and optional scoping. Dates are
// YYYY-MM-DD inclusive, interpreted in store-local time.
type RelatorioFilter struct {
	Inicio     string
	Fim        string
	LojaID     string // empty = all stores
	BarbeiroID string // empty = all barbers
	// ReceitaExterna is the manually entered subscription-platform revenue for
	// the period. When absent and Celcoin is configured, the service tries to
	// fetch it; either way a missing figure degrades to zero, never to an error.
	ReceitaExterna *decimal.Decimal
}

// ─── Response ────────────────────────────────────────────────────────────────

type ResumoLoja struct {
	LojaID       string          `json:"loja_id"`
	Faturamento  decimal.Decimal `json:"faturamento"`
	Comissao     decimal.Decimal `json:"comissao"`
	Atendimentos int             `json:"atendimentos"`
}

type ResumoBarbeiro struct {
	BarbeiroID   string          `json:"barbeiro_id"`
	BarbeiroNome string          `json:"barbeiro_nome"`
	Faturamento  decimal.Decimal `json:"faturamento"`
	Comissao     decimal.Decimal `json:"comissao"`
	Atendimentos int             `json:"atendimentos"`
}

// ResultadoSimplificado is the simplified P&L:
// faturamento − taxas − comissões − despesas pagas = resultado.
type ResultadoSimplificado struct {
	Faturamento     decimal.Decimal `json:"faturamento"`
	TaxasPagamento  decimal.Decimal `json:"taxas_pagamento"`
	ComissaoCusto   decimal.Decimal `json:"comissao_custo"`
	DespesasManuais decimal.Decimal `json:"despesas_manuais"`
	Resultado       decimal.Decimal `json:"resultado"`
}

// ResumoAssinaturas shows whether the subscription program pays for itself:
// external platform revenue plus in-shop plan sales, minus the commission the
// shop pays for subscriber visits it books no new cash for.
type ResumoAssinaturas struct {
	AtendimentosAssinante int             `json:"atendimentos_assinante"`
	ComissaoCusto         decimal.Decimal `json:"comissao_custo"`
	ReceitaExterna        decimal.Decimal `json:"receita_externa"`
	ReceitaVendasInternas decimal.Decimal `json:"receita_vendas_internas"`
	Resultado             decimal.Decimal `json:"resultado"`
}

type RelatorioMensalResponse struct {
	Inicio string `json:"inicio"`
	Fim    string `json:"fim"`

	Faturamento   decimal.Decimal `json:"faturamento"`
	ComissaoTotal decimal.Decimal `json:"comissao_total"`
	Atendimentos  int             `json:"atendimentos"`

	PorLoja     []ResumoLoja     `json:"por_loja"`
	PorBarbeiro []ResumoBarbeiro `json:"por_barbeiro"`

	Resultado   ResultadoSimplificado `json:"resultado"`
	Assinaturas ResumoAssinaturas     `json:"assinaturas"`

	// LinhasIgnoradas counts malformed historical rows skipped during
	// aggregation (logged, never fatal).
	LinhasIgnoradas int `json:"linhas_ignoradas,omitempty"`
}
