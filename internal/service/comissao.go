package service

import (
	"strings"

	"github.com/adrianopessanha/blacksalon/internal/model"

	"github.com/shopspring/decimal"
)

// comissao.go — the commission and revenue-classification rules.
// Everything here is a pure function over (lancamento fields, regras): same
// inputs, same outputs, no hidden state. Lancamento rows store the result at
// write time; aggregation re-reads stored values, never recomputes these.

// NormalizarFormaPagamento maps legacy/accent-less labels onto the canonical
// payment-method constants. Unknown labels pass through unchanged so the fee
// lookup degrades to zero instead of rejecting the row.
func NormalizarFormaPagamento(fp string) string {
	switch strings.ToLower(strings.TrimSpace(fp)) {
	case "dinheiro":
		return model.PagamentoDinheiro
	case "pix":
		return model.PagamentoPix
	case "crédito", "credito", "cartão de crédito", "cartao de credito":
		return model.PagamentoCredito
	case "débito", "debito", "cartão de débito", "cartao de debito":
		return model.PagamentoDebito
	case "vale presente", "vale-presente", "vale":
		return model.PagamentoValePresente
	case "assinante", "assinatura":
		return model.PagamentoAssinante
	default:
		return fp
	}
}

// CalcularComissao computes the commission for a sale-type lancamento.
//
//	produto:  quantidade × produto_por_item (quantidade 0 counts as 1 unit)
//	servico:  valor_bruto × (1 − taxa[forma]) × servico_percentual
//	venda_vale / venda_assinatura: zero — selling a voucher or plan transfers
//	  no labor value; the barber is paid when services are redeemed later.
//
// Ledger kinds (adiantamento, fechamento_comissao) are NOT handled here: their
// commission is fixed by the caller (−|valor| per the ledger invariants).
// Zero gross value yields zero commission without error; validation of
// non-positive values belongs to the write path, not to this function.
func CalcularComissao(tipo, formaPagamento string, valorBruto decimal.Decimal, quantidade int, regras *model.RegrasComissao) decimal.Decimal {
	switch tipo {
	case model.TipoProduto:
		if quantidade <= 0 {
			quantidade = 1
		}
		return regras.ProdutoPorItem.Mul(decimal.NewFromInt(int64(quantidade)))

	case model.TipoServico:
		taxa := regras.Taxa(NormalizarFormaPagamento(formaPagamento))
		base := valorBruto.Mul(decimal.NewFromInt(1).Sub(taxa))
		return base.Mul(regras.ServicoPercentual).Round(2)

	default:
		// venda_vale, venda_assinatura and anything unrecognized
		return decimal.Zero
	}
}

// ContaAtividade reports whether a row counts as an attended activity.
// Ledger rows never do.
func ContaAtividade(tipo string) bool {
	return tipo != model.TipoAdiantamento && tipo != model.TipoFechamentoComissao
}

// ContaFaturamento reports whether a row counts toward recognized cash
// revenue. Subscriber visits and voucher redemptions bring no new top-line
// cash — it was recognized when the voucher/plan was sold — and the sales of
// vouchers/plans themselves are booked outside faturamento as well.
// Commission is unaffected by this classification: the barber is paid for a
// subscriber haircut even though the shop books no new cash for it.
func ContaFaturamento(tipo, formaPagamento string) bool {
	if !ContaAtividade(tipo) {
		return false
	}
	if tipo == model.TipoVendaVale || tipo == model.TipoVendaAssinatura {
		return false
	}
	switch NormalizarFormaPagamento(formaPagamento) {
	case model.PagamentoAssinante, model.PagamentoValePresente:
		return false
	}
	return true
}
