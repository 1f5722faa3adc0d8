package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrianopessanha/blacksalon/internal/apperrors"
	"github.com/adrianopessanha/blacksalon/internal/config"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/model"
	"github.com/adrianopessanha/blacksalon/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)

	CriarBarbeiro(ctx context.Context, ator Ator, req dto.CriarBarbeiroRequest) (*dto.BarbeiroResponse, error)
	ListarBarbeiros(ctx context.Context, incluirInativos bool) ([]dto.BarbeiroResponse, error)
	AtualizarBarbeiro(ctx context.Context, ator Ator, id uuid.UUID, req dto.AtualizarBarbeiroRequest) (*dto.BarbeiroResponse, error)
	DesativarBarbeiro(ctx context.Context, ator Ator, id uuid.UUID) error
	ReativarBarbeiro(ctx context.Context, ator Ator, id uuid.UUID) error
}

type authService struct {
	repo repository.BarbeiroRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.BarbeiroRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	barbeiro, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !barbeiro.Ativo {
		return nil, apperrors.ErrCredenciaisInvalidas
	}

	if err := bcrypt.CompareHashAndPassword([]byte(barbeiro.SenhaHash), []byte(req.Senha)); err != nil {
		return nil, apperrors.ErrCredenciaisInvalidas
	}

	return s.emitirTokens(barbeiro)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrCredenciaisInvalidas
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.ErrCredenciaisInvalidas
	}
	idStr, ok := claims["barbeiro_id"].(string)
	if !ok {
		return nil, apperrors.ErrCredenciaisInvalidas
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, apperrors.ErrCredenciaisInvalidas
	}

	barbeiro, err := s.repo.FindByID(ctx, id)
	if err != nil || !barbeiro.Ativo {
		return nil, apperrors.ErrCredenciaisInvalidas
	}

	return s.emitirTokens(barbeiro)
}

func (s *authService) CriarBarbeiro(ctx context.Context, ator Ator, req dto.CriarBarbeiroRequest) (*dto.BarbeiroResponse, error) {
	if !ator.Admin {
		return nil, apperrors.ErrSemPermissao
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), 12)
	if err != nil {
		return nil, err
	}
	barbeiro := &model.Barbeiro{
		Nome:      req.Nome,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		SenhaHash: string(hash),
		LojaID:    req.LojaID,
		Admin:     req.Admin,
		Ativo:     true,
	}
	if err := s.repo.Create(ctx, barbeiro); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: e-mail já cadastrado", apperrors.ErrDadosInvalidos)
		}
		return nil, err
	}
	return barbeiroToResponse(barbeiro), nil
}

func (s *authService) ListarBarbeiros(ctx context.Context, incluirInativos bool) ([]dto.BarbeiroResponse, error) {
	rows, err := s.repo.List(ctx, incluirInativos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BarbeiroResponse, len(rows))
	for i := range rows {
		resp[i] = *barbeiroToResponse(&rows[i])
	}
	return resp, nil
}

func (s *authService) AtualizarBarbeiro(ctx context.Context, ator Ator, id uuid.UUID, req dto.AtualizarBarbeiroRequest) (*dto.BarbeiroResponse, error) {
	if !ator.Admin {
		return nil, apperrors.ErrSemPermissao
	}

	barbeiro, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNaoEncontrado
		}
		return nil, err
	}

	if req.Nome != nil {
		barbeiro.Nome = *req.Nome
	}
	if req.LojaID != nil {
		barbeiro.LojaID = *req.LojaID
	}
	if req.Admin != nil {
		barbeiro.Admin = *req.Admin
	}
	if req.Senha != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Senha), 12)
		if err != nil {
			return nil, err
		}
		barbeiro.SenhaHash = string(hash)
	}

	if err := s.repo.Update(ctx, barbeiro); err != nil {
		return nil, err
	}
	return barbeiroToResponse(barbeiro), nil
}

// DesativarBarbeiro keeps the row and its history; past commissions stay
// attributed, the account just cannot log in or receive new entries.
func (s *authService) DesativarBarbeiro(ctx context.Context, ator Ator, id uuid.UUID) error {
	if !ator.Admin {
		return apperrors.ErrSemPermissao
	}
	if err := s.repo.SetAtivo(ctx, id, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNaoEncontrado
		}
		return err
	}
	return nil
}

func (s *authService) ReativarBarbeiro(ctx context.Context, ator Ator, id uuid.UUID) error {
	if !ator.Admin {
		return apperrors.ErrSemPermissao
	}
	if err := s.repo.SetAtivo(ctx, id, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNaoEncontrado
		}
		return err
	}
	return nil
}

func (s *authService) emitirTokens(barbeiro *model.Barbeiro) (*dto.LoginResponse, error) {
	accessToken, err := s.gerarToken(barbeiro, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.gerarToken(barbeiro, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Barbeiro:     *barbeiroToResponse(barbeiro),
	}, nil
}

func (s *authService) gerarToken(barbeiro *model.Barbeiro, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"barbeiro_id": barbeiro.ID.String(),
		"nome":        barbeiro.Nome,
		"loja_id":     barbeiro.LojaID,
		"admin":       barbeiro.Admin,
		"exp":         time.Now().Add(duration).Unix(),
		"iat":         time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func barbeiroToResponse(b *model.Barbeiro) *dto.BarbeiroResponse {
	return &dto.BarbeiroResponse{
		ID:     b.ID.String(),
		Nome:   b.Nome,
		Email:  b.Email,
		LojaID: b.LojaID,
		Admin:  b.Admin,
		Ativo:  b.Ativo,
	}
}
