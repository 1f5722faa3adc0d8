package service

import (
	"context"
	"errors"
	"sync"

	"github.com/adrianopessanha/blacksalon/internal/apperrors"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/model"
	"github.com/adrianopessanha/blacksalon/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegrasProvider loads the commission rules once at startup and hands the same
// row to every calculation. There is no hidden per-call cache: the lifetime is
// owned by the caller (main loads it, an admin endpoint reloads it after a
// rules change). If no rules exist the process must not serve traffic —
// a guessed default would mis-pay every commission.
type RegrasProvider struct {
	repo repository.RegrasRepository

	mu    sync.RWMutex
	atual *model.RegrasComissao
}

func NewRegrasProvider(repo repository.RegrasRepository) *RegrasProvider {
	return &RegrasProvider{repo: repo}
}

// Carregar fetches the rule set in force. Returns ErrRegrasAusentes when the
// table is empty.
func (p *RegrasProvider) Carregar(ctx context.Context) error {
	regras, err := p.repo.FindVigente(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRegrasAusentes
		}
		return err
	}
	p.mu.Lock()
	p.atual = regras
	p.mu.Unlock()
	return nil
}

// Vigentes returns the loaded rules. ErrRegrasAusentes if Carregar never
// succeeded — callers must treat that as fatal to the calculation, not as a
// default-to-zero.
func (p *RegrasProvider) Vigentes() (*model.RegrasComissao, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.atual == nil {
		return nil, apperrors.ErrRegrasAusentes
	}
	return p.atual, nil
}

// ToResponse shapes the rules for the admin endpoint.
func (p *RegrasProvider) ToResponse() (*dto.RegrasComissaoResponse, error) {
	regras, err := p.Vigentes()
	if err != nil {
		return nil, err
	}
	return &dto.RegrasComissaoResponse{
		ServicoPercentual: regras.ServicoPercentual,
		ProdutoPorItem:    regras.ProdutoPorItem,
		Taxas: map[string]decimal.Decimal{
			model.PagamentoDinheiro: regras.TaxaDinheiro,
			model.PagamentoPix:      regras.TaxaPix,
			model.PagamentoCredito:  regras.TaxaCredito,
			model.PagamentoDebito:   regras.TaxaDebito,
		},
		VigenteDesde: regras.VigenteDesde.Format("2006-01-02"),
	}, nil
}
