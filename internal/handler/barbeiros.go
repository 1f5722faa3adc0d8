package handler

import (
	"net/http"

	"github.com/adrianopessanha/blacksalon/internal/apierror"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BarbeiroHandler exposes the admin-only account management endpoints.
type BarbeiroHandler struct{ svc service.AuthService }

func NewBarbeiroHandler(svc service.AuthService) *BarbeiroHandler {
	return &BarbeiroHandler{svc: svc}
}

func (h *BarbeiroHandler) Criar(c *gin.Context) {
	var req dto.CriarBarbeiroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarBarbeiro(c.Request.Context(), atorFromClaims(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BarbeiroHandler) Listar(c *gin.Context) {
	incluirInativos := c.Query("incluir_inativos") == "true"
	resp, err := h.svc.ListarBarbeiros(c.Request.Context(), incluirInativos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BarbeiroHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarBarbeiroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarBarbeiro(c.Request.Context(), atorFromClaims(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BarbeiroHandler) Desativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.DesativarBarbeiro(c.Request.Context(), atorFromClaims(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BarbeiroHandler) Reativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.ReativarBarbeiro(c.Request.Context(), atorFromClaims(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
