package repository

import (
	"context"

	"github.com/adrianopessanha/blacksalon/internal/model"

	"gorm.io/gorm"
)

type FechamentoCaixaRepository interface {
	// Create inserts the closure. The composite unique index on
	// (loja_id, data_referencia) makes this create-once: a duplicate surfaces
	// as gorm.ErrDuplicatedKey for the service to translate.
	Create(ctx context.Context, f *model.FechamentoCaixa) error
	FindByLojaData(ctx context.Context, lojaID, dataReferencia string) (*model.FechamentoCaixa, error)
	ListPorLoja(ctx context.Context, lojaID string, limit int) ([]model.FechamentoCaixa, error)
}

type fechamentoRepo struct{ db *gorm.DB }

func NewFechamentoCaixaRepository(db *gorm.DB) FechamentoCaixaRepository {
	return &fechamentoRepo{db: db}
}

func (r *fechamentoRepo) Create(ctx context.Context, f *model.FechamentoCaixa) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fechamentoRepo) FindByLojaData(ctx context.Context, lojaID, dataReferencia string) (*model.FechamentoCaixa, error) {
	var f model.FechamentoCaixa
	err := r.db.WithContext(ctx).
		Where("loja_id = ? AND data_referencia = ?", lojaID, dataReferencia).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fechamentoRepo) ListPorLoja(ctx context.Context, lojaID string, limit int) ([]model.FechamentoCaixa, error) {
	var rows []model.FechamentoCaixa
	err := r.db.WithContext(ctx).
		Where("loja_id = ?", lojaID).
		Order("data_referencia DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
