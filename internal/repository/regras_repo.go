package repository

import (
	"context"

	"github.com/adrianopessanha/blacksalon/internal/model"

	"gorm.io/gorm"
)

type RegrasRepository interface {
	// FindVigente returns the rule set currently in force (latest
	// vigente_desde). gorm.ErrRecordNotFound when no rules were ever seeded.
	FindVigente(ctx context.Context) (*model.RegrasComissao, error)
	Create(ctx context.Context, r *model.RegrasComissao) error
}

type regrasRepo struct{ db *gorm.DB }

func NewRegrasRepository(db *gorm.DB) RegrasRepository { return &regrasRepo{db: db} }

func (r *regrasRepo) FindVigente(ctx context.Context) (*model.RegrasComissao, error) {
	var regras model.RegrasComissao
	err := r.db.WithContext(ctx).Order("vigente_desde DESC").First(&regras).Error
	if err != nil {
		return nil, err
	}
	return &regras, nil
}

func (r *regrasRepo) Create(ctx context.Context, regras *model.RegrasComissao) error {
	return r.db.WithContext(ctx).Create(regras).Error
}
