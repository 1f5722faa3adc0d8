package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/adrianopessanha/blacksalon/internal/apperrors"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/model"
	"github.com/adrianopessanha/blacksalon/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const extratoCacheTTL = 5 * time.Minute

func extratoCacheKey(barbeiroID uuid.UUID) string {
	return "extrato:" + barbeiroID.String()
}

type ExtratoService interface {
	// Resumo computes the barber's dashboard, serving a cached snapshot when
	// one is fresh. Recalcular bypasses and refreshes the cache.
	Resumo(ctx context.Context, barbeiroID uuid.UUID) (*dto.ExtratoResponse, error)
	Recalcular(ctx context.Context, barbeiroID uuid.UUID) (*dto.ExtratoResponse, error)
	CriarAdiantamento(ctx context.Context, ator Ator, barbeiroID uuid.UUID, req dto.AdiantamentoRequest) (*dto.LancamentoResponse, error)
	FecharComissao(ctx context.Context, ator Ator, barbeiroID uuid.UUID) (*dto.FechamentoComissaoResponse, error)
}

type extratoService struct {
	repo         repository.LancamentoRepository
	barbeiroRepo repository.BarbeiroRepository
	rdb          *redis.Client // optional
	despachante  Despachante
	janela       int
	loc          *time.Location
	now          func() time.Time
}

func NewExtratoService(
	repo repository.LancamentoRepository,
	barbeiroRepo repository.BarbeiroRepository,
	rdb *redis.Client,
	despachante Despachante,
	janela int,
	loc *time.Location,
) ExtratoService {
	if janela <= 0 {
		janela = 1000
	}
	return &extratoService{
		repo:         repo,
		barbeiroRepo: barbeiroRepo,
		rdb:          rdb,
		despachante:  despachante,
		janela:       janela,
		loc:          loc,
		now:          time.Now,
	}
}

// ── Resumo ───────────────────────────────────────────────────────────────────

func (s *extratoService) Resumo(ctx context.Context, barbeiroID uuid.UUID) (*dto.ExtratoResponse, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, extratoCacheKey(barbeiroID)).Result()
		if err == nil {
			var cached dto.ExtratoResponse
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return &cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("cache de extrato indisponível")
		}
	}
	return s.Recalcular(ctx, barbeiroID)
}

func (s *extratoService) Recalcular(ctx context.Context, barbeiroID uuid.UUID) (*dto.ExtratoResponse, error) {
	barbeiro, err := s.barbeiroRepo.FindByID(ctx, barbeiroID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNaoEncontrado
		}
		return nil, err
	}

	rows, err := s.repo.ListRecentesPorBarbeiro(ctx, barbeiroID, s.janela)
	if err != nil {
		return nil, err
	}

	agora := s.now().In(s.loc)
	totais := calcularExtrato(rows, agora, s.loc)

	hoje := make([]dto.LancamentoResponse, 0, len(totais.hoje))
	for i := range totais.hoje {
		hoje = append(hoje, *lancamentoToResponse(&totais.hoje[i]))
	}

	resp := &dto.ExtratoResponse{
		BarbeiroID:         barbeiro.ID.String(),
		BarbeiroNome:       barbeiro.Nome,
		HojeAtendimentos:   totais.hojeAtendimentos,
		HojeFaturamento:    totais.hojeFaturamento,
		HojeComissao:       totais.hojeComissao,
		CicloInicio:        totais.cicloInicio.Format(time.RFC3339),
		CicloSaldoComissao: totais.cicloSaldo,
		CicloAdiantamentos: totais.cicloAdiantamentos,
		Hoje:               hoje,
		GeradoEm:           agora.Format(time.RFC3339),
	}

	if s.rdb != nil {
		if raw, jsonErr := json.Marshal(resp); jsonErr == nil {
			if err := s.rdb.Set(ctx, extratoCacheKey(barbeiroID), raw, extratoCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("falha ao gravar cache de extrato")
			}
		}
	}
	return resp, nil
}

// ── Adiantamento ─────────────────────────────────────────────────────────────
// An advance is a ledger row with a negative commission; the gross value of
// the row records the amount handed out.

func (s *extratoService) CriarAdiantamento(ctx context.Context, ator Ator, barbeiroID uuid.UUID, req dto.AdiantamentoRequest) (*dto.LancamentoResponse, error) {
	if !ator.Admin && ator.ID != barbeiroID {
		return nil, apperrors.ErrSemPermissao
	}
	if !req.Valor.IsPositive() {
		return nil, fmt.Errorf("%w: valor deve ser positivo", apperrors.ErrDadosInvalidos)
	}

	barbeiro, err := s.barbeiroRepo.FindByID(ctx, barbeiroID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNaoEncontrado
		}
		return nil, err
	}

	lanc := &model.Lancamento{
		Data:             s.now().In(s.loc),
		BarbeiroID:       barbeiro.ID,
		BarbeiroNome:     barbeiro.Nome,
		LojaID:           barbeiro.LojaID,
		Descricao:        "Adiantamento (Vale)",
		ValorBruto:       req.Valor,
		FormaPagamento:   "Adiantamento",
		Tipo:             model.TipoAdiantamento,
		ComissaoBarbeiro: req.Valor.Neg(),
	}
	if err := s.repo.Create(ctx, lanc); err != nil {
		return nil, err
	}

	s.invalidar(ctx, barbeiroID)
	return lancamentoToResponse(lanc), nil
}

// ── Fechamento de comissão ───────────────────────────────────────────────────
// Pays out the cycle balance and starts a new cycle. The closure row's
// negative commission is what zeroes the ledger; no balance is stored.

func (s *extratoService) FecharComissao(ctx context.Context, ator Ator, barbeiroID uuid.UUID) (*dto.FechamentoComissaoResponse, error) {
	if !ator.Admin && ator.ID != barbeiroID {
		return nil, apperrors.ErrSemPermissao
	}

	barbeiro, err := s.barbeiroRepo.FindByID(ctx, barbeiroID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNaoEncontrado
		}
		return nil, err
	}

	rows, err := s.repo.ListRecentesPorBarbeiro(ctx, barbeiroID, s.janela)
	if err != nil {
		return nil, err
	}

	agora := s.now().In(s.loc)
	totais := calcularExtrato(rows, agora, s.loc)
	saldo := totais.cicloSaldo
	if !saldo.IsPositive() {
		return nil, apperrors.ErrSaldoInsuficiente
	}

	lanc := &model.Lancamento{
		Data:             agora,
		BarbeiroID:       barbeiro.ID,
		BarbeiroNome:     barbeiro.Nome,
		LojaID:           barbeiro.LojaID,
		Descricao:        "Fechamento de Comissão",
		ValorBruto:       decimal.Zero,
		FormaPagamento:   "Pagamento",
		Tipo:             model.TipoFechamentoComissao,
		ComissaoBarbeiro: saldo.Neg(),
	}
	if err := s.repo.Create(ctx, lanc); err != nil {
		return nil, err
	}

	log.Info().
		Str("barbeiro_id", barbeiroID.String()).
		Str("saldo_pago", saldo.String()).
		Msg("comissão fechada")

	s.invalidar(ctx, barbeiroID)
	return &dto.FechamentoComissaoResponse{
		Lancamento:  *lancamentoToResponse(lanc),
		SaldoPago:   saldo,
		BarbeiroID:  barbeiroID.String(),
		RegistradoA: agora.Format(time.RFC3339),
	}, nil
}

func (s *extratoService) invalidar(ctx context.Context, barbeiroID uuid.UUID) {
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, extratoCacheKey(barbeiroID)).Err(); err != nil {
			log.Warn().Err(err).Msg("falha ao invalidar cache de extrato")
		}
	}
	if s.despachante != nil {
		if err := s.despachante.EnqueueResumo(ctx, barbeiroID.String()); err != nil {
			log.Warn().Err(err).Msg("falha ao enfileirar recálculo de resumo")
		}
	}
}

// ── Agregação pura ───────────────────────────────────────────────────────────

type extratoTotais struct {
	hojeAtendimentos   int
	hojeFaturamento    decimal.Decimal
	hojeComissao       decimal.Decimal
	cicloInicio        time.Time
	cicloSaldo         decimal.Decimal
	cicloAdiantamentos decimal.Decimal
	hoje               []model.Lancamento
	ignoradas          int
}

// calcularExtrato folds the barber's recent rows into cycle and same-day
// totals. The cycle starts at the latest fechamento_comissao, or at the start
// of the current month when none exists; only rows strictly after that
// instant count toward the balance, so the closure row itself never does.
func calcularExtrato(rows []model.Lancamento, agora time.Time, loc *time.Location) extratoTotais {
	ordenadas := make([]model.Lancamento, len(rows))
	copy(ordenadas, rows)
	sort.SliceStable(ordenadas, func(i, j int) bool {
		if !ordenadas[i].Data.Equal(ordenadas[j].Data) {
			return ordenadas[i].Data.After(ordenadas[j].Data)
		}
		return ordenadas[i].ID.String() > ordenadas[j].ID.String()
	})

	t := extratoTotais{
		hojeFaturamento:    decimal.Zero,
		hojeComissao:       decimal.Zero,
		cicloSaldo:         decimal.Zero,
		cicloAdiantamentos: decimal.Zero,
	}

	t.cicloInicio = time.Date(agora.Year(), agora.Month(), 1, 0, 0, 0, 0, loc)
	for i := range ordenadas {
		if ordenadas[i].Tipo == model.TipoFechamentoComissao {
			t.cicloInicio = ordenadas[i].Data
			break
		}
	}

	inicioHoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, loc)
	fimHoje := inicioHoje.AddDate(0, 0, 1)

	for i := range ordenadas {
		l := &ordenadas[i]
		if l.Data.IsZero() || l.Tipo == "" {
			t.ignoradas++
			log.Warn().Str("lancamento_id", l.ID.String()).Msg("lançamento malformado ignorado no extrato")
			continue
		}

		if l.Data.After(t.cicloInicio) {
			t.cicloSaldo = t.cicloSaldo.Add(l.ComissaoBarbeiro)
			if l.Tipo == model.TipoAdiantamento {
				t.cicloAdiantamentos = t.cicloAdiantamentos.Add(l.ComissaoBarbeiro.Abs())
			}
		}

		if !l.Data.Before(inicioHoje) && l.Data.Before(fimHoje) {
			if ContaAtividade(l.Tipo) {
				t.hojeAtendimentos++
				if ContaFaturamento(l.Tipo, l.FormaPagamento) {
					t.hojeFaturamento = t.hojeFaturamento.Add(l.ValorBruto)
				}
			}
			t.hojeComissao = t.hojeComissao.Add(l.ComissaoBarbeiro)
			t.hoje = append(t.hoje, *l)
		}
	}
	return t
}
