package dto

import "github.com/shopspring/decimal"

type RegrasComissaoResponse struct {
	ServicoPercentual decimal.Decimal            `json:"servico_percentual"`
	ProdutoPorItem    decimal.Decimal            `json:"produto_por_item"`
	Taxas             map[string]decimal.Decimal `json:"taxas"`
	VigenteDesde      string                     `json:"vigente_desde"`
}
