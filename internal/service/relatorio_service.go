package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/adrianopessanha/blacksalon/internal/apperrors"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/model"
	"github.com/adrianopessanha/blacksalon/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReceitaExternaClient fetches the subscription-platform revenue for a period.
// Implemented by infra.CelcoinClient; nil when the integration is not
// configured.
type ReceitaExternaClient interface {
	ReceitaAssinaturas(ctx context.Context, inicio, fim string) (decimal.Decimal, error)
}

// RelatorioPDF renders a monthly report into a downloadable document.
type RelatorioPDF interface {
	GerarRelatorioMensal(rel *dto.RelatorioMensalResponse) ([]byte, error)
}

type RelatorioService interface {
	// Mensal aggregates a closed period. Reading stored rows only — commissions
	// are never recomputed, so the same window always yields the same report.
	Mensal(ctx context.Context, filter dto.RelatorioFilter) (*dto.RelatorioMensalResponse, error)
	MensalPDF(ctx context.Context, filter dto.RelatorioFilter) ([]byte, error)
}

type relatorioService struct {
	lancRepo    repository.LancamentoRepository
	despesaRepo repository.DespesaRepository
	regras      *RegrasProvider
	celcoin     ReceitaExternaClient
	pdf         RelatorioPDF
	loc         *time.Location
}

func NewRelatorioService(
	lancRepo repository.LancamentoRepository,
	despesaRepo repository.DespesaRepository,
	regras *RegrasProvider,
	celcoin ReceitaExternaClient,
	pdf RelatorioPDF,
	loc *time.Location,
) RelatorioService {
	return &relatorioService{
		lancRepo:    lancRepo,
		despesaRepo: despesaRepo,
		regras:      regras,
		celcoin:     celcoin,
		pdf:         pdf,
		loc:         loc,
	}
}

func (s *relatorioService) Mensal(ctx context.Context, filter dto.RelatorioFilter) (*dto.RelatorioMensalResponse, error) {
	inicio, fim, err := s.janela(filter.Inicio, filter.Fim)
	if err != nil {
		return nil, err
	}

	var barbeiroID *uuid.UUID
	if filter.BarbeiroID != "" {
		id, parseErr := uuid.Parse(filter.BarbeiroID)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: barbeiro_id inválido", apperrors.ErrDadosInvalidos)
		}
		barbeiroID = &id
	}

	rows, err := s.lancRepo.ListPorPeriodo(ctx, inicio, fim, filter.LojaID, barbeiroID)
	if err != nil {
		return nil, err
	}

	regras, err := s.regras.Vigentes()
	if err != nil {
		return nil, err
	}

	rel := agregarMensal(rows, regras)
	rel.Inicio = filter.Inicio
	rel.Fim = filter.Fim

	despesas, err := s.despesaRepo.ListPorPeriodo(ctx, filter.Inicio, filter.Fim, filter.LojaID)
	if err != nil {
		return nil, err
	}
	for i := range despesas {
		if despesas[i].Status == model.DespesaPaga {
			rel.Resultado.DespesasManuais = rel.Resultado.DespesasManuais.Add(despesas[i].Valor)
		}
	}
	rel.Resultado.Resultado = rel.Resultado.Faturamento.
		Sub(rel.Resultado.TaxasPagamento).
		Sub(rel.Resultado.ComissaoCusto).
		Sub(rel.Resultado.DespesasManuais)

	rel.Assinaturas.ReceitaExterna = s.receitaExterna(ctx, filter)
	rel.Assinaturas.Resultado = rel.Assinaturas.ReceitaExterna.
		Add(rel.Assinaturas.ReceitaVendasInternas).
		Sub(rel.Assinaturas.ComissaoCusto)

	return rel, nil
}

func (s *relatorioService) MensalPDF(ctx context.Context, filter dto.RelatorioFilter) ([]byte, error) {
	rel, err := s.Mensal(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.pdf.GerarRelatorioMensal(rel)
}

// receitaExterna prefers the manually entered figure; otherwise asks the
// subscription platform. A missing figure is zero, never an error — the rest
// of the report stands on its own.
func (s *relatorioService) receitaExterna(ctx context.Context, filter dto.RelatorioFilter) decimal.Decimal {
	if filter.ReceitaExterna != nil {
		return *filter.ReceitaExterna
	}
	if s.celcoin == nil {
		return decimal.Zero
	}
	valor, err := s.celcoin.ReceitaAssinaturas(ctx, filter.Inicio, filter.Fim)
	if err != nil {
		log.Warn().Err(err).Msg("receita externa de assinaturas indisponível, usando zero")
		return decimal.Zero
	}
	return valor
}

func (s *relatorioService) janela(inicio, fim string) (time.Time, time.Time, error) {
	if inicio == "" || fim == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: período obrigatório", apperrors.ErrDadosInvalidos)
	}
	ini, err := time.ParseInLocation("2006-01-02", inicio, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: início inválido", apperrors.ErrDadosInvalidos)
	}
	end, err := time.ParseInLocation("2006-01-02", fim, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fim inválido", apperrors.ErrDadosInvalidos)
	}
	if end.Before(ini) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fim anterior ao início", apperrors.ErrDadosInvalidos)
	}
	return ini, end.AddDate(0, 0, 1), nil
}

// ── Agregação pura ───────────────────────────────────────────────────────────

// agregarMensal folds stored rows into the monthly totals. Commission cost is
// the positive commission of activity rows; advances and closures are
// settlements of that same balance and would double-count the cost. Payment
// fees are estimated from the current rules since only the net effect was
// stored per row.
func agregarMensal(rows []model.Lancamento, regras *model.RegrasComissao) *dto.RelatorioMensalResponse {
	rel := &dto.RelatorioMensalResponse{
		Faturamento:   decimal.Zero,
		ComissaoTotal: decimal.Zero,
		Resultado: dto.ResultadoSimplificado{
			Faturamento:     decimal.Zero,
			TaxasPagamento:  decimal.Zero,
			ComissaoCusto:   decimal.Zero,
			DespesasManuais: decimal.Zero,
			Resultado:       decimal.Zero,
		},
		Assinaturas: dto.ResumoAssinaturas{
			ComissaoCusto:         decimal.Zero,
			ReceitaExterna:        decimal.Zero,
			ReceitaVendasInternas: decimal.Zero,
			Resultado:             decimal.Zero,
		},
	}

	porLoja := map[string]*dto.ResumoLoja{}
	porBarbeiro := map[uuid.UUID]*dto.ResumoBarbeiro{}

	for i := range rows {
		l := &rows[i]
		if l.Data.IsZero() || l.Tipo == "" {
			rel.LinhasIgnoradas++
			log.Warn().Str("lancamento_id", l.ID.String()).Msg("lançamento malformado ignorado no relatório")
			continue
		}
		if l.EhLedger() {
			continue
		}

		forma := NormalizarFormaPagamento(l.FormaPagamento)
		receita := ContaFaturamento(l.Tipo, l.FormaPagamento)

		if receita {
			rel.Faturamento = rel.Faturamento.Add(l.ValorBruto)
			rel.Resultado.Faturamento = rel.Resultado.Faturamento.Add(l.ValorBruto)
			taxa := regras.Taxa(forma)
			if taxa.IsPositive() {
				rel.Resultado.TaxasPagamento = rel.Resultado.TaxasPagamento.
					Add(l.ValorBruto.Mul(taxa).Round(2))
			}
		}

		if ContaAtividade(l.Tipo) {
			rel.Atendimentos++
			rel.ComissaoTotal = rel.ComissaoTotal.Add(l.ComissaoBarbeiro)
			rel.Resultado.ComissaoCusto = rel.Resultado.ComissaoCusto.Add(l.ComissaoBarbeiro)

			loja := porLoja[l.LojaID]
			if loja == nil {
				loja = &dto.ResumoLoja{LojaID: l.LojaID, Faturamento: decimal.Zero, Comissao: decimal.Zero}
				porLoja[l.LojaID] = loja
			}
			loja.Atendimentos++
			loja.Comissao = loja.Comissao.Add(l.ComissaoBarbeiro)
			if receita {
				loja.Faturamento = loja.Faturamento.Add(l.ValorBruto)
			}

			barb := porBarbeiro[l.BarbeiroID]
			if barb == nil {
				barb = &dto.ResumoBarbeiro{
					BarbeiroID:   l.BarbeiroID.String(),
					BarbeiroNome: l.BarbeiroNome,
					Faturamento:  decimal.Zero,
					Comissao:     decimal.Zero,
				}
				porBarbeiro[l.BarbeiroID] = barb
			}
			barb.Atendimentos++
			barb.Comissao = barb.Comissao.Add(l.ComissaoBarbeiro)
			if receita {
				barb.Faturamento = barb.Faturamento.Add(l.ValorBruto)
			}
		}

		// Subscription economics: visits paid by the platform cost commission
		// without register revenue; in-shop plan sales bring cash in.
		if forma == model.PagamentoAssinante && ContaAtividade(l.Tipo) {
			rel.Assinaturas.AtendimentosAssinante++
			rel.Assinaturas.ComissaoCusto = rel.Assinaturas.ComissaoCusto.Add(l.ComissaoBarbeiro)
		}
		if l.Tipo == model.TipoVendaAssinatura {
			rel.Assinaturas.ReceitaVendasInternas = rel.Assinaturas.ReceitaVendasInternas.Add(l.ValorBruto)
		}
	}

	rel.PorLoja = make([]dto.ResumoLoja, 0, len(porLoja))
	for _, v := range porLoja {
		rel.PorLoja = append(rel.PorLoja, *v)
	}
	sort.Slice(rel.PorLoja, func(i, j int) bool {
		return rel.PorLoja[i].LojaID < rel.PorLoja[j].LojaID
	})

	rel.PorBarbeiro = make([]dto.ResumoBarbeiro, 0, len(porBarbeiro))
	for _, v := range porBarbeiro {
		rel.PorBarbeiro = append(rel.PorBarbeiro, *v)
	}
	// Ranking by gross production, ID as the stable tie-break.
	sort.Slice(rel.PorBarbeiro, func(i, j int) bool {
		if !rel.PorBarbeiro[i].Faturamento.Equal(rel.PorBarbeiro[j].Faturamento) {
			return rel.PorBarbeiro[i].Faturamento.GreaterThan(rel.PorBarbeiro[j].Faturamento)
		}
		return rel.PorBarbeiro[i].BarbeiroID < rel.PorBarbeiro[j].BarbeiroID
	})

	return rel
}
