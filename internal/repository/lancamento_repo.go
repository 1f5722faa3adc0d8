package repository

import (
	"context"
	"time"

	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LancamentoRepository interface {
	Create(ctx context.Context, l *model.Lancamento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lancamento, error)
	// Delete removes a row permanently. Lancamentos are never updated —
	// corrections are admin deletions followed by a fresh entry.
	Delete(ctx context.Context, id uuid.UUID) error
	// ListRecentesPorBarbeiro returns the barber's most recent rows ordered by
	// data DESC with a stable id tie-break, bounded by limit. The cycle ledger
	// depends on this ordering.
	ListRecentesPorBarbeiro(ctx context.Context, barbeiroID uuid.UUID, limit int) ([]model.Lancamento, error)
	// ListPorLojaDia returns every row of one store inside [inicio, fim).
	ListPorLojaDia(ctx context.Context, lojaID string, inicio, fim time.Time) ([]model.Lancamento, error)
	// ListPorPeriodo returns rows in [inicio, fim) with optional store/barber scoping.
	ListPorPeriodo(ctx context.Context, inicio, fim time.Time, lojaID string, barbeiroID *uuid.UUID) ([]model.Lancamento, error)
	List(ctx context.Context, filter dto.LancamentoFilter, inicio, fim time.Time) ([]model.Lancamento, int64, error)
}

type lancamentoRepo struct{ db *gorm.DB }

func NewLancamentoRepository(db *gorm.DB) LancamentoRepository { return &lancamentoRepo{db: db} }

func (r *lancamentoRepo) Create(ctx context.Context, l *model.Lancamento) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *lancamentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lancamento, error) {
	var l model.Lancamento
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lancamentoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Lancamento{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *lancamentoRepo) ListRecentesPorBarbeiro(ctx context.Context, barbeiroID uuid.UUID, limit int) ([]model.Lancamento, error) {
	var rows []model.Lancamento
	err := r.db.WithContext(ctx).
		Where("barbeiro_id = ?", barbeiroID).
		Order("data DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *lancamentoRepo) ListPorLojaDia(ctx context.Context, lojaID string, inicio, fim time.Time) ([]model.Lancamento, error) {
	var rows []model.Lancamento
	err := r.db.WithContext(ctx).
		Where("loja_id = ? AND data >= ? AND data < ?", lojaID, inicio, fim).
		Order("data ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *lancamentoRepo) ListPorPeriodo(ctx context.Context, inicio, fim time.Time, lojaID string, barbeiroID *uuid.UUID) ([]model.Lancamento, error) {
	q := r.db.WithContext(ctx).Where("data >= ? AND data < ?", inicio, fim)
	if lojaID != "" {
		q = q.Where("loja_id = ?", lojaID)
	}
	if barbeiroID != nil {
		q = q.Where("barbeiro_id = ?", *barbeiroID)
	}
	var rows []model.Lancamento
	err := q.Order("data ASC, id ASC").Find(&rows).Error
	return rows, err
}

func (r *lancamentoRepo) List(ctx context.Context, filter dto.LancamentoFilter, inicio, fim time.Time) ([]model.Lancamento, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Lancamento{}).
		Where("data >= ? AND data < ?", inicio, fim)
	if filter.LojaID != "" {
		q = q.Where("loja_id = ?", filter.LojaID)
	}
	if filter.BarbeiroID != "" {
		q = q.Where("barbeiro_id = ?", filter.BarbeiroID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.Lancamento
	err := q.Order("data DESC, id DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&rows).Error
	return rows, total, err
}
