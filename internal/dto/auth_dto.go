package dto

// ─── Auth ────────────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	TokenType    string           `json:"token_type"`
	ExpiresIn    int              `json:"expires_in"`
	Barbeiro     BarbeiroResponse `json:"barbeiro"`
}

// ─── Barbeiros (admin management) ────────────────────────────────────────────

type CriarBarbeiroRequest struct {
	Nome   string `json:"nome"    validate:"required,min=2"`
	Email  string `json:"email"   validate:"required,email"`
	Senha  string `json:"senha"   validate:"required,min=6"`
	LojaID string `json:"loja_id" validate:"required"`
	Admin  bool   `json:"admin"`
}

type AtualizarBarbeiroRequest struct {
	Nome   *string `json:"nome"    validate:"omitempty,min=2"`
	Senha  *string `json:"senha"   validate:"omitempty,min=6"`
	LojaID *string `json:"loja_id"`
	Admin  *bool   `json:"admin"`
}

type BarbeiroResponse struct {
	ID     string `json:"id"`
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	LojaID string `json:"loja_id"`
	Admin  bool   `json:"admin"`
	Ativo  bool   `json:"ativo"`
}
