package service

import (
	"context"
	"testing"

	"github.com/adrianopessanha/blacksalon/internal/apperrors"
	"github.com/adrianopessanha/blacksalon/internal/config"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func configTeste() *config.Config {
	return &config.Config{
		JWTSecret:          "segredo-de-teste",
		JWTExpirationHours: 12,
		JWTRefreshHours:    72,
	}
}

func barbeiroComSenha(t *testing.T, nome, senha string, admin bool) *model.Barbeiro {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	require.NoError(t, err)
	b := barbeiroTeste(nome, "matriz", admin)
	b.SenhaHash = string(hash)
	return b
}

func TestLogin(t *testing.T) {
	b := barbeiroComSenha(t, "carlos", "senha123", false)
	svc := NewAuthService(newFakeBarbeiroRepo(b), configTeste())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "carlos@blacksalon.com.br", Senha: "senha123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 12*3600, resp.ExpiresIn)
	assert.Equal(t, b.ID.String(), resp.Barbeiro.ID)
}

func TestLoginNormalizaEmail(t *testing.T) {
	b := barbeiroComSenha(t, "carlos", "senha123", false)
	svc := NewAuthService(newFakeBarbeiroRepo(b), configTeste())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "  CARLOS@blacksalon.com.br ", Senha: "senha123"})
	assert.NoError(t, err)
}

func TestLoginSenhaErrada(t *testing.T) {
	b := barbeiroComSenha(t, "carlos", "senha123", false)
	svc := NewAuthService(newFakeBarbeiroRepo(b), configTeste())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "carlos@blacksalon.com.br", Senha: "outra"})
	assert.ErrorIs(t, err, apperrors.ErrCredenciaisInvalidas)
}

func TestLoginContaInativa(t *testing.T) {
	b := barbeiroComSenha(t, "carlos", "senha123", false)
	b.Ativo = false
	svc := NewAuthService(newFakeBarbeiroRepo(b), configTeste())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "carlos@blacksalon.com.br", Senha: "senha123"})
	assert.ErrorIs(t, err, apperrors.ErrCredenciaisInvalidas)
}

func TestRefresh(t *testing.T) {
	b := barbeiroComSenha(t, "carlos", "senha123", false)
	repo := newFakeBarbeiroRepo(b)
	svc := NewAuthService(repo, configTeste())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Email: "carlos@blacksalon.com.br", Senha: "senha123"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, b.ID.String(), renovado.Barbeiro.ID)

	// desativar a conta invalida o refresh na hora
	require.NoError(t, repo.SetAtivo(context.Background(), b.ID, false))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrCredenciaisInvalidas)
}

func TestRefreshTokenAdulterado(t *testing.T) {
	svc := NewAuthService(newFakeBarbeiroRepo(), configTeste())

	_, err := svc.Refresh(context.Background(), "nao-e-um-token")
	assert.ErrorIs(t, err, apperrors.ErrCredenciaisInvalidas)
}

func TestCriarBarbeiro(t *testing.T) {
	admin := barbeiroTeste("chefe", "matriz", true)
	repo := newFakeBarbeiroRepo(admin)
	svc := NewAuthService(repo, configTeste())

	resp, err := svc.CriarBarbeiro(context.Background(), atorDe(admin), dto.CriarBarbeiroRequest{
		Nome:   "Novo Barbeiro",
		Email:  "Novo@BlackSalon.com.br",
		Senha:  "senha123",
		LojaID: "filial",
	})
	require.NoError(t, err)
	assert.Equal(t, "novo@blacksalon.com.br", resp.Email)
	assert.True(t, resp.Ativo)
	assert.False(t, resp.Admin)

	// e-mail duplicado
	_, err = svc.CriarBarbeiro(context.Background(), atorDe(admin), dto.CriarBarbeiroRequest{
		Nome:   "Clone",
		Email:  "novo@blacksalon.com.br",
		Senha:  "senha123",
		LojaID: "filial",
	})
	assert.ErrorIs(t, err, apperrors.ErrDadosInvalidos)
}

func TestCriarBarbeiroExigeAdmin(t *testing.T) {
	b := barbeiroTeste("carlos", "matriz", false)
	svc := NewAuthService(newFakeBarbeiroRepo(b), configTeste())

	_, err := svc.CriarBarbeiro(context.Background(), atorDe(b), dto.CriarBarbeiroRequest{
		Nome: "x", Email: "x@y.com", Senha: "senha123", LojaID: "matriz",
	})
	assert.ErrorIs(t, err, apperrors.ErrSemPermissao)
}

func TestAtualizarBarbeiroCamposParciais(t *testing.T) {
	admin := barbeiroTeste("chefe", "matriz", true)
	b := barbeiroTeste("carlos", "matriz", false)
	repo := newFakeBarbeiroRepo(admin, b)
	svc := NewAuthService(repo, configTeste())

	novoNome := "Carlos Silva"
	novaLoja := "filial"
	resp, err := svc.AtualizarBarbeiro(context.Background(), atorDe(admin), b.ID, dto.AtualizarBarbeiroRequest{
		Nome:   &novoNome,
		LojaID: &novaLoja,
	})
	require.NoError(t, err)
	assert.Equal(t, "Carlos Silva", resp.Nome)
	assert.Equal(t, "filial", resp.LojaID)
	// e-mail intocado
	assert.Equal(t, b.Email, resp.Email)
}

func TestDesativarEReativarBarbeiro(t *testing.T) {
	admin := barbeiroTeste("chefe", "matriz", true)
	b := barbeiroTeste("carlos", "matriz", false)
	repo := newFakeBarbeiroRepo(admin, b)
	svc := NewAuthService(repo, configTeste())

	require.NoError(t, svc.DesativarBarbeiro(context.Background(), atorDe(admin), b.ID))
	guardado, err := repo.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.False(t, guardado.Ativo)

	require.NoError(t, svc.ReativarBarbeiro(context.Background(), atorDe(admin), b.ID))
	guardado, err = repo.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, guardado.Ativo)

	err = svc.DesativarBarbeiro(context.Background(), atorDe(admin), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNaoEncontrado)
}

func TestListarBarbeirosFiltraInativos(t *testing.T) {
	admin := barbeiroTeste("chefe", "matriz", true)
	inativo := barbeiroTeste("antigo", "matriz", false)
	inativo.Ativo = false
	svc := NewAuthService(newFakeBarbeiroRepo(admin, inativo), configTeste())

	ativos, err := svc.ListarBarbeiros(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, ativos, 1)

	todos, err := svc.ListarBarbeiros(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}
