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

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Ator identifies who is performing an operation, extracted from the JWT by
// the middleware. Admin is the only permission distinction the engine uses.
type Ator struct {
	ID     uuid.UUID
	Nome   string
	LojaID string
	Admin  bool
}

// Despachante enqueues async follow-up jobs. Implemented by worker.Dispatcher;
// nil-safe at the call sites so unit tests can run without Redis.
type Despachante interface {
	EnqueueResumo(ctx context.Context, barbeiroID string) error
	EnqueueFechamentoEmail(ctx context.Context, lojaID, dataReferencia string) error
}

type LancamentoService interface {
	Registrar(ctx context.Context, ator Ator, req dto.RegistrarLancamentoRequest) (*dto.LancamentoResponse, error)
	Excluir(ctx context.Context, ator Ator, id uuid.UUID) error
	Listar(ctx context.Context, filter dto.LancamentoFilter) (*dto.LancamentoListResponse, error)
}

type lancamentoService struct {
	repo         repository.LancamentoRepository
	barbeiroRepo repository.BarbeiroRepository
	regras       *RegrasProvider
	despachante  Despachante
	loc          *time.Location
	now          func() time.Time
}

func NewLancamentoService(
	repo repository.LancamentoRepository,
	barbeiroRepo repository.BarbeiroRepository,
	regras *RegrasProvider,
	despachante Despachante,
	loc *time.Location,
) LancamentoService {
	return &lancamentoService{
		repo:         repo,
		barbeiroRepo: barbeiroRepo,
		regras:       regras,
		despachante:  despachante,
		loc:          loc,
		now:          time.Now,
	}
}

// ── Registrar ────────────────────────────────────────────────────────────────
// Commission and revenue classification are baked in at write time; the stored
// row is its own source of truth from then on.

func (s *lancamentoService) Registrar(ctx context.Context, ator Ator, req dto.RegistrarLancamentoRequest) (*dto.LancamentoResponse, error) {
	barbeiro, err := s.resolverBarbeiro(ctx, ator, req.BarbeiroID)
	if err != nil {
		return nil, err
	}

	if !req.ValorBruto.IsPositive() {
		return nil, fmt.Errorf("%w: valor_bruto deve ser positivo", apperrors.ErrDadosInvalidos)
	}
	forma := NormalizarFormaPagamento(req.FormaPagamento)
	if forma == "" {
		return nil, fmt.Errorf("%w: forma_pagamento obrigatória", apperrors.ErrDadosInvalidos)
	}

	data, err := s.resolverData(ator, req.DataManual)
	if err != nil {
		return nil, err
	}

	regras, err := s.regras.Vigentes()
	if err != nil {
		return nil, err
	}
	comissao := CalcularComissao(req.Tipo, forma, req.ValorBruto, req.Quantidade, regras)

	lanc := &model.Lancamento{
		Data:             data,
		BarbeiroID:       barbeiro.ID,
		BarbeiroNome:     barbeiro.Nome,
		LojaID:           barbeiro.LojaID,
		Descricao:        req.Descricao,
		ValorBruto:       req.ValorBruto,
		Quantidade:       req.Quantidade,
		FormaPagamento:   forma,
		Tipo:             req.Tipo,
		ComissaoBarbeiro: comissao,
	}
	if req.ClienteNome != "" {
		lanc.ClienteNome = &req.ClienteNome
	}

	if err := s.repo.Create(ctx, lanc); err != nil {
		return nil, err
	}

	s.notificarResumo(ctx, barbeiro.ID)
	return lancamentoToResponse(lanc), nil
}

// ── Excluir ──────────────────────────────────────────────────────────────────
// Rows are immutable; the only correction path is an admin deletion.

func (s *lancamentoService) Excluir(ctx context.Context, ator Ator, id uuid.UUID) error {
	if !ator.Admin {
		return apperrors.ErrSemPermissao
	}

	lanc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNaoEncontrado
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().
		Str("lancamento_id", id.String()).
		Str("admin", ator.Nome).
		Msg("lançamento excluído")

	s.notificarResumo(ctx, lanc.BarbeiroID)
	return nil
}

// ── Listar ───────────────────────────────────────────────────────────────────

func (s *lancamentoService) Listar(ctx context.Context, filter dto.LancamentoFilter) (*dto.LancamentoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}

	inicio, fim, err := s.janelaPeriodo(filter.Inicio, filter.Fim)
	if err != nil {
		return nil, err
	}

	rows, total, err := s.repo.List(ctx, filter, inicio, fim)
	if err != nil {
		return nil, err
	}

	items := make([]dto.LancamentoResponse, 0, len(rows))
	for i := range rows {
		items = append(items, *lancamentoToResponse(&rows[i]))
	}
	return &dto.LancamentoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// resolverBarbeiro decides on whose behalf the entry is made. Admins may pick
// any active barber; everyone else only themselves.
func (s *lancamentoService) resolverBarbeiro(ctx context.Context, ator Ator, barbeiroID string) (*model.Barbeiro, error) {
	alvo := ator.ID
	if barbeiroID != "" {
		id, err := uuid.Parse(barbeiroID)
		if err != nil {
			return nil, fmt.Errorf("%w: barbeiro_id inválido", apperrors.ErrDadosInvalidos)
		}
		if id != ator.ID && !ator.Admin {
			return nil, apperrors.ErrSemPermissao
		}
		alvo = id
	}

	barbeiro, err := s.barbeiroRepo.FindByID(ctx, alvo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNaoEncontrado
		}
		return nil, err
	}
	if !barbeiro.Ativo {
		return nil, fmt.Errorf("%w: barbeiro inativo", apperrors.ErrDadosInvalidos)
	}
	return barbeiro, nil
}

// resolverData applies the backdating rules: future dates are never accepted;
// a past date requires admin and lands at 12:00 local so it sorts inside the
// intended day; today (or no manual date) uses the current instant.
func (s *lancamentoService) resolverData(ator Ator, dataManual string) (time.Time, error) {
	agora := s.now().In(s.loc)
	if dataManual == "" {
		return agora, nil
	}

	dia, err := time.ParseInLocation("2006-01-02", dataManual, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: data_manual inválida", apperrors.ErrDadosInvalidos)
	}

	hoje := agora.Format("2006-01-02")
	switch {
	case dataManual > hoje:
		return time.Time{}, fmt.Errorf("%w: lançamentos futuros não são permitidos", apperrors.ErrDadosInvalidos)
	case dataManual < hoje:
		if !ator.Admin {
			return time.Time{}, apperrors.ErrSemPermissao
		}
		return dia.Add(12 * time.Hour), nil
	default:
		return agora, nil
	}
}

// janelaPeriodo converts inclusive YYYY-MM-DD bounds into a [inicio, fim)
// local-time window. Defaults to the current day when absent.
func (s *lancamentoService) janelaPeriodo(inicio, fim string) (time.Time, time.Time, error) {
	agora := s.now().In(s.loc)
	if inicio == "" {
		inicio = agora.Format("2006-01-02")
	}
	if fim == "" {
		fim = inicio
	}

	ini, err := time.ParseInLocation("2006-01-02", inicio, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: início inválido", apperrors.ErrDadosInvalidos)
	}
	end, err := time.ParseInLocation("2006-01-02", fim, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fim inválido", apperrors.ErrDadosInvalidos)
	}
	return ini, end.AddDate(0, 0, 1), nil
}

func (s *lancamentoService) notificarResumo(ctx context.Context, barbeiroID uuid.UUID) {
	if s.despachante == nil {
		return
	}
	if err := s.despachante.EnqueueResumo(ctx, barbeiroID.String()); err != nil {
		log.Warn().Err(err).Str("barbeiro_id", barbeiroID.String()).Msg("falha ao enfileirar recálculo de resumo")
	}
}

func lancamentoToResponse(l *model.Lancamento) *dto.LancamentoResponse {
	return &dto.LancamentoResponse{
		ID:               l.ID.String(),
		Data:             l.Data.Format(time.RFC3339),
		BarbeiroID:       l.BarbeiroID.String(),
		BarbeiroNome:     l.BarbeiroNome,
		LojaID:           l.LojaID,
		ClienteNome:      l.ClienteNome,
		Descricao:        l.Descricao,
		ValorBruto:       l.ValorBruto,
		Quantidade:       l.Quantidade,
		FormaPagamento:   l.FormaPagamento,
		Tipo:             l.Tipo,
		ComissaoBarbeiro: l.ComissaoBarbeiro,
	}
}
