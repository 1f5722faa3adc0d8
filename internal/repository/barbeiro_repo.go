package repository

import (
	"context"

	"github.com/adrianopessanha/blacksalon/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BarbeiroRepository interface {
	Create(ctx context.Context, b *model.Barbeiro) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Barbeiro, error)
	FindByEmail(ctx context.Context, email string) (*model.Barbeiro, error)
	List(ctx context.Context, incluirInativos bool) ([]model.Barbeiro, error)
	Update(ctx context.Context, b *model.Barbeiro) error
	SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error
}

type barbeiroRepo struct{ db *gorm.DB }

func NewBarbeiroRepository(db *gorm.DB) BarbeiroRepository { return &barbeiroRepo{db: db} }

func (r *barbeiroRepo) Create(ctx context.Context, b *model.Barbeiro) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *barbeiroRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Barbeiro, error) {
	var b model.Barbeiro
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *barbeiroRepo) FindByEmail(ctx context.Context, email string) (*model.Barbeiro, error) {
	var b model.Barbeiro
	if err := r.db.WithContext(ctx).First(&b, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *barbeiroRepo) List(ctx context.Context, incluirInativos bool) ([]model.Barbeiro, error) {
	q := r.db.WithContext(ctx)
	if !incluirInativos {
		q = q.Where("ativo = true")
	}
	var rows []model.Barbeiro
	err := q.Order("nome ASC").Find(&rows).Error
	return rows, err
}

func (r *barbeiroRepo) Update(ctx context.Context, b *model.Barbeiro) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *barbeiroRepo) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	res := r.db.WithContext(ctx).Model(&model.Barbeiro{}).
		Where("id = ?", id).
		Update("ativo", ativo)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
