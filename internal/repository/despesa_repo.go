package repository

import (
	"context"

	"github.com/adrianopessanha/blacksalon/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DespesaRepository interface {
	Create(ctx context.Context, d *model.Despesa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Despesa, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// ListPorPeriodo returns expenses with data in [inicio, fim] (YYYY-MM-DD,
	// lexicographic compare works for ISO dates), optionally scoped to a store.
	ListPorPeriodo(ctx context.Context, inicio, fim, lojaID string) ([]model.Despesa, error)
}

type despesaRepo struct{ db *gorm.DB }

func NewDespesaRepository(db *gorm.DB) DespesaRepository { return &despesaRepo{db: db} }

func (r *despesaRepo) Create(ctx context.Context, d *model.Despesa) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *despesaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Despesa, error) {
	var d model.Despesa
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *despesaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Despesa{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *despesaRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Despesa{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *despesaRepo) ListPorPeriodo(ctx context.Context, inicio, fim, lojaID string) ([]model.Despesa, error) {
	q := r.db.WithContext(ctx).Where("data >= ? AND data <= ?", inicio, fim)
	if lojaID != "" {
		q = q.Where("loja_id = ?", lojaID)
	}
	var rows []model.Despesa
	err := q.Order("data DESC").Find(&rows).Error
	return rows, err
}
