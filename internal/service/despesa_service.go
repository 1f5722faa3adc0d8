package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/adrianopessanha/blacksalon/internal/apperrors"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/model"
	"github.com/adrianopessanha/blacksalon/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DespesaService interface {
	Criar(ctx context.Context, ator Ator, req dto.CriarDespesaRequest) (*dto.DespesaResponse, error)
	MarcarPaga(ctx context.Context, ator Ator, id uuid.UUID) (*dto.DespesaResponse, error)
	Excluir(ctx context.Context, ator Ator, id uuid.UUID) error
	Listar(ctx context.Context, inicio, fim, lojaID string) ([]dto.DespesaResponse, error)
}

type despesaService struct {
	repo repository.DespesaRepository
}

func NewDespesaService(repo repository.DespesaRepository) DespesaService {
	return &despesaService{repo: repo}
}

func (s *despesaService) Criar(ctx context.Context, ator Ator, req dto.CriarDespesaRequest) (*dto.DespesaResponse, error) {
	if !ator.Admin {
		return nil, apperrors.ErrSemPermissao
	}
	if !req.Valor.IsPositive() {
		return nil, fmt.Errorf("%w: valor deve ser positivo", apperrors.ErrDadosInvalidos)
	}
	status := req.Status
	if status == "" {
		status = model.DespesaPaga
	}

	d := &model.Despesa{
		LojaID:    req.LojaID,
		Descricao: req.Descricao,
		Valor:     req.Valor,
		Data:      req.Data,
		Status:    status,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return despesaToResponse(d), nil
}

// MarcarPaga settles a planned expense; paying it again is a no-op.
func (s *despesaService) MarcarPaga(ctx context.Context, ator Ator, id uuid.UUID) (*dto.DespesaResponse, error) {
	if !ator.Admin {
		return nil, apperrors.ErrSemPermissao
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNaoEncontrado
		}
		return nil, err
	}
	if d.Status != model.DespesaPaga {
		if err := s.repo.UpdateStatus(ctx, id, model.DespesaPaga); err != nil {
			return nil, err
		}
		d.Status = model.DespesaPaga
	}
	return despesaToResponse(d), nil
}

func (s *despesaService) Excluir(ctx context.Context, ator Ator, id uuid.UUID) error {
	if !ator.Admin {
		return apperrors.ErrSemPermissao
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNaoEncontrado
		}
		return err
	}
	return nil
}

func (s *despesaService) Listar(ctx context.Context, inicio, fim, lojaID string) ([]dto.DespesaResponse, error) {
	if inicio == "" || fim == "" {
		return nil, fmt.Errorf("%w: período obrigatório", apperrors.ErrDadosInvalidos)
	}
	rows, err := s.repo.ListPorPeriodo(ctx, inicio, fim, lojaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DespesaResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *despesaToResponse(&rows[i]))
	}
	return out, nil
}

func despesaToResponse(d *model.Despesa) *dto.DespesaResponse {
	return &dto.DespesaResponse{
		ID:        d.ID.String(),
		LojaID:    d.LojaID,
		Descricao: d.Descricao,
		Valor:     d.Valor,
		Data:      d.Data,
		Status:    d.Status,
	}
}
