package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adrianopessanha/blacksalon/internal/apperrors"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReceitaExterna struct {
	valor decimal.Decimal
	err   error
}

func (f *fakeReceitaExterna) ReceitaAssinaturas(_ context.Context, _, _ string) (decimal.Decimal, error) {
	return f.valor, f.err
}

func semearMes(lancRepo *fakeLancamentoRepo, b1, b2 *model.Barbeiro) {
	dia := func(d, h int) time.Time { return time.Date(2026, 3, d, h, 0, 0, 0, time.UTC) }
	lancRepo.rows = append(lancRepo.rows,
		lancTeste(b1, dia(3, 10), model.TipoServico, "Dinheiro", "100.00", "50.00"),
		lancTeste(b1, dia(5, 11), model.TipoServico, "Crédito", "100.00", "47.50"),
		lancTeste(b2, dia(7, 9), model.TipoServico, "Pix", "80.00", "40.00"),
		lancTeste(b2, dia(8, 14), model.TipoServico, "Assinante", "0.00", "17.50"),
		lancTeste(b1, dia(10, 16), model.TipoVendaAssinatura, "Pix", "120.00", "0.00"),
		// linhas de razão não entram no relatório
		lancTeste(b1, dia(12, 9), model.TipoAdiantamento, "Adiantamento", "30.00", "-30.00"),
		lancTeste(b1, dia(14, 18), model.TipoFechamentoComissao, "Pagamento", "0.00", "-90.00"),
	)
}

func relatorioTeste(t *testing.T, lancRepo *fakeLancamentoRepo, despesaRepo *fakeDespesaRepo, externa ReceitaExternaClient) RelatorioService {
	t.Helper()
	if despesaRepo == nil {
		despesaRepo = &fakeDespesaRepo{}
	}
	return NewRelatorioService(lancRepo, despesaRepo, regrasProviderTeste(), externa, nil, time.UTC)
}

func TestRelatorioMensalConsolidado(t *testing.T) {
	b1 := barbeiroTeste("carlos", "matriz", false)
	b2 := barbeiroTeste("joao", "filial", false)
	lancRepo := &fakeLancamentoRepo{}
	semearMes(lancRepo, b1, b2)

	despesaRepo := &fakeDespesaRepo{}
	despesaRepo.rows = append(despesaRepo.rows,
		model.Despesa{ID: uuid.New(), LojaID: "matriz", Descricao: "produtos de limpeza", Valor: dec("40.00"), Data: "2026-03-10", Status: model.DespesaPaga},
		// planejada não entra no resultado
		model.Despesa{ID: uuid.New(), LojaID: "matriz", Descricao: "reforma", Valor: dec("100.00"), Data: "2026-03-20", Status: model.DespesaPlanejada},
	)

	externa := dec("500.00")
	svc := relatorioTeste(t, lancRepo, despesaRepo, nil)

	rel, err := svc.Mensal(context.Background(), dto.RelatorioFilter{
		Inicio:         "2026-03-01",
		Fim:            "2026-03-31",
		ReceitaExterna: &externa,
	})
	require.NoError(t, err)

	assert.True(t, rel.Faturamento.Equal(dec("280.00")), "faturamento veio %s", rel.Faturamento)
	assert.Equal(t, 5, rel.Atendimentos)
	assert.True(t, rel.ComissaoTotal.Equal(dec("155.00")), "comissão veio %s", rel.ComissaoTotal)

	assert.True(t, rel.Resultado.TaxasPagamento.Equal(dec("5.00")))
	assert.True(t, rel.Resultado.ComissaoCusto.Equal(dec("155.00")))
	assert.True(t, rel.Resultado.DespesasManuais.Equal(dec("40.00")))
	// 280 − 5 − 155 − 40
	assert.True(t, rel.Resultado.Resultado.Equal(dec("80.00")), "resultado veio %s", rel.Resultado.Resultado)

	assert.Equal(t, 1, rel.Assinaturas.AtendimentosAssinante)
	assert.True(t, rel.Assinaturas.ComissaoCusto.Equal(dec("17.50")))
	assert.True(t, rel.Assinaturas.ReceitaVendasInternas.Equal(dec("120.00")))
	assert.True(t, rel.Assinaturas.ReceitaExterna.Equal(dec("500.00")))
	// 500 + 120 − 17.50
	assert.True(t, rel.Assinaturas.Resultado.Equal(dec("602.50")))
}

func TestRelatorioMensalPorLojaEBarbeiro(t *testing.T) {
	b1 := barbeiroTeste("carlos", "matriz", false)
	b2 := barbeiroTeste("joao", "filial", false)
	lancRepo := &fakeLancamentoRepo{}
	semearMes(lancRepo, b1, b2)
	svc := relatorioTeste(t, lancRepo, nil, nil)

	rel, err := svc.Mensal(context.Background(), dto.RelatorioFilter{Inicio: "2026-03-01", Fim: "2026-03-31"})
	require.NoError(t, err)

	require.Len(t, rel.PorLoja, 2)
	assert.Equal(t, "filial", rel.PorLoja[0].LojaID)
	assert.True(t, rel.PorLoja[0].Faturamento.Equal(dec("80.00")))
	assert.Equal(t, 2, rel.PorLoja[0].Atendimentos)
	assert.Equal(t, "matriz", rel.PorLoja[1].LojaID)
	assert.True(t, rel.PorLoja[1].Faturamento.Equal(dec("200.00")))
	assert.True(t, rel.PorLoja[1].Comissao.Equal(dec("97.50")))

	// ranking por produção bruta
	require.Len(t, rel.PorBarbeiro, 2)
	assert.Equal(t, "carlos", rel.PorBarbeiro[0].BarbeiroNome)
	assert.True(t, rel.PorBarbeiro[0].Faturamento.Equal(dec("200.00")))
	assert.Equal(t, "joao", rel.PorBarbeiro[1].BarbeiroNome)
}

func TestRelatorioMensalDeterministico(t *testing.T) {
	b1 := barbeiroTeste("carlos", "matriz", false)
	b2 := barbeiroTeste("joao", "filial", false)
	lancRepo := &fakeLancamentoRepo{}
	semearMes(lancRepo, b1, b2)
	svc := relatorioTeste(t, lancRepo, nil, nil)

	filtro := dto.RelatorioFilter{Inicio: "2026-03-01", Fim: "2026-03-31"}
	a, err := svc.Mensal(context.Background(), filtro)
	require.NoError(t, err)
	b, err := svc.Mensal(context.Background(), filtro)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRelatorioMensalEmpateNoRankingPorID(t *testing.T) {
	b1 := barbeiroTeste("carlos", "matriz", false)
	b2 := barbeiroTeste("joao", "matriz", false)
	lancRepo := &fakeLancamentoRepo{}
	dia := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	lancRepo.rows = append(lancRepo.rows,
		lancTeste(b1, dia, model.TipoServico, "Dinheiro", "100.00", "50.00"),
		lancTeste(b2, dia, model.TipoServico, "Dinheiro", "100.00", "50.00"),
	)
	svc := relatorioTeste(t, lancRepo, nil, nil)

	rel, err := svc.Mensal(context.Background(), dto.RelatorioFilter{Inicio: "2026-03-01", Fim: "2026-03-31"})
	require.NoError(t, err)
	require.Len(t, rel.PorBarbeiro, 2)
	assert.Less(t, rel.PorBarbeiro[0].BarbeiroID, rel.PorBarbeiro[1].BarbeiroID)
}

func TestRelatorioMensalIgnoraLinhaMalformada(t *testing.T) {
	b := barbeiroTeste("carlos", "matriz", false)
	lancRepo := &fakeLancamentoRepo{}
	quebrada := lancTeste(b, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), "", "Dinheiro", "100.00", "50.00")
	boa := lancTeste(b, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), model.TipoServico, "Dinheiro", "60.00", "30.00")
	lancRepo.rows = append(lancRepo.rows, quebrada, boa)
	svc := relatorioTeste(t, lancRepo, nil, nil)

	rel, err := svc.Mensal(context.Background(), dto.RelatorioFilter{Inicio: "2026-03-01", Fim: "2026-03-31"})
	require.NoError(t, err)
	assert.Equal(t, 1, rel.LinhasIgnoradas)
	assert.True(t, rel.Faturamento.Equal(dec("60.00")))
}

func TestRelatorioReceitaExternaDaPlataforma(t *testing.T) {
	b := barbeiroTeste("carlos", "matriz", false)
	lancRepo := &fakeLancamentoRepo{}
	lancRepo.rows = append(lancRepo.rows,
		lancTeste(b, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), model.TipoServico, "Assinante", "0.00", "17.50"),
	)
	svc := relatorioTeste(t, lancRepo, nil, &fakeReceitaExterna{valor: dec("350.00")})

	rel, err := svc.Mensal(context.Background(), dto.RelatorioFilter{Inicio: "2026-03-01", Fim: "2026-03-31"})
	require.NoError(t, err)
	assert.True(t, rel.Assinaturas.ReceitaExterna.Equal(dec("350.00")))
}

func TestRelatorioReceitaExternaIndisponivelViraZero(t *testing.T) {
	b := barbeiroTeste("carlos", "matriz", false)
	lancRepo := &fakeLancamentoRepo{}
	lancRepo.rows = append(lancRepo.rows,
		lancTeste(b, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), model.TipoServico, "Dinheiro", "100.00", "50.00"),
	)
	svc := relatorioTeste(t, lancRepo, nil, &fakeReceitaExterna{err: errors.New("timeout")})

	rel, err := svc.Mensal(context.Background(), dto.RelatorioFilter{Inicio: "2026-03-01", Fim: "2026-03-31"})
	require.NoError(t, err)
	assert.True(t, rel.Assinaturas.ReceitaExterna.IsZero())
}

func TestRelatorioJanelaInvalida(t *testing.T) {
	svc := relatorioTeste(t, &fakeLancamentoRepo{}, nil, nil)

	_, err := svc.Mensal(context.Background(), dto.RelatorioFilter{Inicio: "2026-03-01"})
	assert.ErrorIs(t, err, apperrors.ErrDadosInvalidos)

	_, err = svc.Mensal(context.Background(), dto.RelatorioFilter{Inicio: "2026-03-31", Fim: "2026-03-01"})
	assert.ErrorIs(t, err, apperrors.ErrDadosInvalidos)
}

func TestRelatorioFiltraPorBarbeiro(t *testing.T) {
	b1 := barbeiroTeste("carlos", "matriz", false)
	b2 := barbeiroTeste("joao", "filial", false)
	lancRepo := &fakeLancamentoRepo{}
	semearMes(lancRepo, b1, b2)
	svc := relatorioTeste(t, lancRepo, nil, nil)

	rel, err := svc.Mensal(context.Background(), dto.RelatorioFilter{
		Inicio:     "2026-03-01",
		Fim:        "2026-03-31",
		BarbeiroID: b2.ID.String(),
	})
	require.NoError(t, err)
	assert.True(t, rel.Faturamento.Equal(dec("80.00")))
	require.Len(t, rel.PorBarbeiro, 1)
	assert.Equal(t, "joao", rel.PorBarbeiro[0].BarbeiroNome)
}
