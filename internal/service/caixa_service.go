package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adrianopessanha/blacksalon/internal/apperrors"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/model"
	"github.com/adrianopessanha/blacksalon/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CaixaService interface {
	// Fechar reconciles one store-day. It is create-once: closing an already
	// closed day fails with ErrFechamentoDuplicado carrying the existing record.
	Fechar(ctx context.Context, ator Ator, req dto.FecharCaixaRequest) (*dto.FechamentoCaixaResponse, error)
	Obter(ctx context.Context, lojaID, dataReferencia string) (*dto.FechamentoCaixaResponse, error)
	Historico(ctx context.Context, lojaID string, limit int) ([]dto.FechamentoCaixaResponse, error)
	// Previa computes the expected totals of an open day without persisting.
	Previa(ctx context.Context, lojaID, dataReferencia string) (*dto.TotaisPorMetodo, error)
}

type caixaService struct {
	repo        repository.FechamentoCaixaRepository
	lancRepo    repository.LancamentoRepository
	despachante Despachante
	loc         *time.Location
	now         func() time.Time
}

func NewCaixaService(
	repo repository.FechamentoCaixaRepository,
	lancRepo repository.LancamentoRepository,
	despachante Despachante,
	loc *time.Location,
) CaixaService {
	return &caixaService{
		repo:        repo,
		lancRepo:    lancRepo,
		despachante: despachante,
		loc:         loc,
		now:         time.Now,
	}
}

// ── Fechar ───────────────────────────────────────────────────────────────────

func (s *caixaService) Fechar(ctx context.Context, ator Ator, req dto.FecharCaixaRequest) (*dto.FechamentoCaixaResponse, error) {
	if req.InformadoDinheiro.IsNegative() {
		return nil, fmt.Errorf("%w: informado_dinheiro não pode ser negativo", apperrors.ErrDadosInvalidos)
	}
	if req.DataReferencia > s.now().In(s.loc).Format("2006-01-02") {
		return nil, fmt.Errorf("%w: não é possível fechar um dia futuro", apperrors.ErrDadosInvalidos)
	}

	if existente, err := s.repo.FindByLojaData(ctx, req.LojaID, req.DataReferencia); err == nil {
		return fechamentoToResponse(existente), apperrors.ErrFechamentoDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	esperado, err := s.totaisEsperados(ctx, req.LojaID, req.DataReferencia)
	if err != nil {
		return nil, err
	}

	diferenca := req.InformadoDinheiro.Sub(esperado.Dinheiro)
	f := &model.FechamentoCaixa{
		LojaID:            req.LojaID,
		DataReferencia:    req.DataReferencia,
		EsperadoDinheiro:  esperado.Dinheiro,
		EsperadoPix:       esperado.Pix,
		EsperadoDebito:    esperado.Debito,
		EsperadoCredito:   esperado.Credito,
		EsperadoTotal:     esperado.Total,
		InformadoDinheiro: req.InformadoDinheiro,
		Diferenca:         diferenca,
		Status:            classificarDiferenca(diferenca),
		Observacoes:       req.Observacoes,
		FechadoPor:        ator.ID,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		// Lost the race against a concurrent closure: the winner's record is
		// the record of the day.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existente, findErr := s.repo.FindByLojaData(ctx, req.LojaID, req.DataReferencia); findErr == nil {
				return fechamentoToResponse(existente), apperrors.ErrFechamentoDuplicado
			}
		}
		return nil, err
	}

	log.Info().
		Str("loja_id", f.LojaID).
		Str("data", f.DataReferencia).
		Str("status", f.Status).
		Str("diferenca", f.Diferenca.String()).
		Msg("caixa fechado")

	if s.despachante != nil {
		if err := s.despachante.EnqueueFechamentoEmail(ctx, f.LojaID, f.DataReferencia); err != nil {
			log.Warn().Err(err).Msg("falha ao enfileirar e-mail de fechamento")
		}
	}
	return fechamentoToResponse(f), nil
}

func (s *caixaService) Obter(ctx context.Context, lojaID, dataReferencia string) (*dto.FechamentoCaixaResponse, error) {
	f, err := s.repo.FindByLojaData(ctx, lojaID, dataReferencia)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNaoEncontrado
		}
		return nil, err
	}
	return fechamentoToResponse(f), nil
}

func (s *caixaService) Historico(ctx context.Context, lojaID string, limit int) ([]dto.FechamentoCaixaResponse, error) {
	if limit < 1 || limit > 366 {
		limit = 31
	}
	rows, err := s.repo.ListPorLoja(ctx, lojaID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FechamentoCaixaResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *fechamentoToResponse(&rows[i]))
	}
	return out, nil
}

func (s *caixaService) Previa(ctx context.Context, lojaID, dataReferencia string) (*dto.TotaisPorMetodo, error) {
	return s.totaisEsperados(ctx, lojaID, dataReferencia)
}

// ── Agregação ────────────────────────────────────────────────────────────────

// totaisEsperados buckets the store-day's revenue rows by payment method.
// Non-revenue rows (subscriber visits, voucher redemptions, voucher and
// subscription sales, ledger rows) never reach the register totals.
func (s *caixaService) totaisEsperados(ctx context.Context, lojaID, dataReferencia string) (*dto.TotaisPorMetodo, error) {
	inicio, err := time.ParseInLocation("2006-01-02", dataReferencia, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: data_referencia inválida", apperrors.ErrDadosInvalidos)
	}
	fim := inicio.AddDate(0, 0, 1)

	rows, err := s.lancRepo.ListPorLojaDia(ctx, lojaID, inicio, fim)
	if err != nil {
		return nil, err
	}

	t := dto.TotaisPorMetodo{
		Dinheiro: decimal.Zero,
		Pix:      decimal.Zero,
		Debito:   decimal.Zero,
		Credito:  decimal.Zero,
		Total:    decimal.Zero,
	}
	for i := range rows {
		l := &rows[i]
		if !ContaFaturamento(l.Tipo, l.FormaPagamento) {
			continue
		}
		switch NormalizarFormaPagamento(l.FormaPagamento) {
		case model.PagamentoDinheiro:
			t.Dinheiro = t.Dinheiro.Add(l.ValorBruto)
		case model.PagamentoPix:
			t.Pix = t.Pix.Add(l.ValorBruto)
		case model.PagamentoDebito:
			t.Debito = t.Debito.Add(l.ValorBruto)
		case model.PagamentoCredito:
			t.Credito = t.Credito.Add(l.ValorBruto)
		default:
			continue
		}
		t.Total = t.Total.Add(l.ValorBruto)
	}
	return &t, nil
}

func classificarDiferenca(d decimal.Decimal) string {
	switch {
	case d.IsZero():
		return model.CaixaBatido
	case d.IsNegative():
		return model.CaixaFalta
	default:
		return model.CaixaSobra
	}
}

func fechamentoToResponse(f *model.FechamentoCaixa) *dto.FechamentoCaixaResponse {
	return &dto.FechamentoCaixaResponse{
		ID:             f.ID.String(),
		LojaID:         f.LojaID,
		DataReferencia: f.DataReferencia,
		Esperado: dto.TotaisPorMetodo{
			Dinheiro: f.EsperadoDinheiro,
			Pix:      f.EsperadoPix,
			Debito:   f.EsperadoDebito,
			Credito:  f.EsperadoCredito,
			Total:    f.EsperadoTotal,
		},
		InformadoDinheiro: f.InformadoDinheiro,
		Diferenca:         f.Diferenca,
		Status:            f.Status,
		Observacoes:       f.Observacoes,
		CreatedAt:         f.CreatedAt.Format(time.RFC3339),
	}
}
