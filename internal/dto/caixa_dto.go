package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type FecharCaixaRequest struct {
	LojaID         string `json:"loja_id"         validate:"required"`
	DataReferencia string `json:"data_referencia" validate:"required,datetime=2006-01-02"`
	// InformadoDinheiro is the physically counted cash. Card and Pix are not
	// countable — the processor's figures are taken as-is.
	InformadoDinheiro decimal.Decimal `json:"informado_dinheiro" validate:"min=0"`
	Observacoes       *string         `json:"observacoes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TotaisPorMetodo struct {
	Dinheiro decimal.Decimal `json:"dinheiro"`
	Pix      decimal.Decimal `json:"pix"`
	Debito   decimal.Decimal `json:"debito"`
	Credito  decimal.Decimal `json:"credito"`
	Total    decimal.Decimal `json:"total"`
}

type FechamentoCaixaResponse struct {
	ID                string          `json:"id"`
	LojaID            string          `json:"loja_id"`
	DataReferencia    string          `json:"data_referencia"`
	Esperado          TotaisPorMetodo `json:"esperado"`
	InformadoDinheiro decimal.Decimal `json:"informado_dinheiro"`
	Diferenca         decimal.Decimal `json:"diferenca"`
	Status            string          `json:"status"` // batido | falta | sobra
	Observacoes       *string         `json:"observacoes,omitempty"`
	CreatedAt         string          `json:"created_at"`
}
