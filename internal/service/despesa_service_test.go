package service

import (
	"context"
	"testing"

	"github.com/adrianopessanha/blacksalon/internal/apperrors"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriarDespesa(t *testing.T) {
	admin := barbeiroTeste("chefe", "matriz", true)
	repo := &fakeDespesaRepo{}
	svc := NewDespesaService(repo)

	resp, err := svc.Criar(context.Background(), atorDe(admin), dto.CriarDespesaRequest{
		LojaID:    "matriz",
		Descricao: "aluguel",
		Valor:     dec("2500.00"),
		Data:      "2026-03-05",
	})
	require.NoError(t, err)
	// sem status explícito a despesa já nasce paga
	assert.Equal(t, model.DespesaPaga, resp.Status)
	assert.Len(t, repo.rows, 1)
}

func TestCriarDespesaValidacoes(t *testing.T) {
	admin := barbeiroTeste("chefe", "matriz", true)
	comum := barbeiroTeste("carlos", "matriz", false)
	svc := NewDespesaService(&fakeDespesaRepo{})

	_, err := svc.Criar(context.Background(), atorDe(comum), dto.CriarDespesaRequest{
		LojaID: "matriz", Descricao: "aluguel", Valor: dec("2500.00"), Data: "2026-03-05",
	})
	assert.ErrorIs(t, err, apperrors.ErrSemPermissao)

	_, err = svc.Criar(context.Background(), atorDe(admin), dto.CriarDespesaRequest{
		LojaID: "matriz", Descricao: "aluguel", Valor: dec("-10.00"), Data: "2026-03-05",
	})
	assert.ErrorIs(t, err, apperrors.ErrDadosInvalidos)
}

func TestMarcarDespesaPaga(t *testing.T) {
	admin := barbeiroTeste("chefe", "matriz", true)
	repo := &fakeDespesaRepo{}
	svc := NewDespesaService(repo)

	resp, err := svc.Criar(context.Background(), atorDe(admin), dto.CriarDespesaRequest{
		LojaID:    "matriz",
		Descricao: "reforma",
		Valor:     dec("800.00"),
		Data:      "2026-03-20",
		Status:    model.DespesaPlanejada,
	})
	require.NoError(t, err)
	assert.Equal(t, model.DespesaPlanejada, resp.Status)

	id := uuid.MustParse(resp.ID)
	paga, err := svc.MarcarPaga(context.Background(), atorDe(admin), id)
	require.NoError(t, err)
	assert.Equal(t, model.DespesaPaga, paga.Status)

	// pagar de novo é idempotente
	paga, err = svc.MarcarPaga(context.Background(), atorDe(admin), id)
	require.NoError(t, err)
	assert.Equal(t, model.DespesaPaga, paga.Status)

	_, err = svc.MarcarPaga(context.Background(), atorDe(admin), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNaoEncontrado)
}

func TestExcluirDespesa(t *testing.T) {
	admin := barbeiroTeste("chefe", "matriz", true)
	comum := barbeiroTeste("carlos", "matriz", false)
	repo := &fakeDespesaRepo{}
	svc := NewDespesaService(repo)

	resp, err := svc.Criar(context.Background(), atorDe(admin), dto.CriarDespesaRequest{
		LojaID: "matriz", Descricao: "aluguel", Valor: dec("2500.00"), Data: "2026-03-05",
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	assert.ErrorIs(t, svc.Excluir(context.Background(), atorDe(comum), id), apperrors.ErrSemPermissao)
	require.NoError(t, svc.Excluir(context.Background(), atorDe(admin), id))
	assert.ErrorIs(t, svc.Excluir(context.Background(), atorDe(admin), id), apperrors.ErrNaoEncontrado)
}

func TestListarDespesasPorPeriodo(t *testing.T) {
	admin := barbeiroTeste("chefe", "matriz", true)
	repo := &fakeDespesaRepo{}
	svc := NewDespesaService(repo)

	for _, d := range []struct{ loja, data string }{
		{"matriz", "2026-03-05"},
		{"matriz", "2026-03-28"},
		{"filial", "2026-03-10"},
		{"matriz", "2026-04-02"},
	} {
		_, err := svc.Criar(context.Background(), atorDe(admin), dto.CriarDespesaRequest{
			LojaID: d.loja, Descricao: "despesa qualquer", Valor: dec("10.00"), Data: d.data,
		})
		require.NoError(t, err)
	}

	todas, err := svc.Listar(context.Background(), "2026-03-01", "2026-03-31", "")
	require.NoError(t, err)
	assert.Len(t, todas, 3)

	matriz, err := svc.Listar(context.Background(), "2026-03-01", "2026-03-31", "matriz")
	require.NoError(t, err)
	assert.Len(t, matriz, 2)

	_, err = svc.Listar(context.Background(), "", "", "")
	assert.ErrorIs(t, err, apperrors.ErrDadosInvalidos)
}
