package dto

import "github.com/shopspring/decimal"

type CriarDespesaRequest struct {
	LojaID    string          `json:"loja_id"   validate:"required"`
	Descricao string          `json:"descricao" validate:"required,min=3"`
	Valor     decimal.Decimal `json:"valor"     validate:"required"`
	Data      string          `json:"data"      validate:"required,datetime=2006-01-02"`
	Status    string          `json:"status"    validate:"omitempty,oneof=pago planejado"`
}

type DespesaResponse struct {
	ID        string          `json:"id"`
	LojaID    string          `json:"loja_id"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
	Data      string          `json:"data"`
	Status    string          `json:"status"`
}
