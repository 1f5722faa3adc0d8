package handler

import (
	"net/http"

	"github.com/adrianopessanha/blacksalon/internal/apierror"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExtratoHandler struct{ svc service.ExtratoService }

func NewExtratoHandler(svc service.ExtratoService) *ExtratoHandler {
	return &ExtratoHandler{svc: svc}
}

// Resumo godoc
// @Summary Painel do barbeiro: números do dia e saldo do ciclo
// @Tags extrato
// @Produce json
// @Security BearerAuth
// @Param barbeiroId path string true "ID do barbeiro"
// @Success 200 {object} dto.ExtratoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/extrato/{barbeiroId} [get]
func (h *ExtratoHandler) Resumo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("barbeiroId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Resumo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CriarAdiantamento godoc
// @Summary Registra um vale (adiantamento) contra o saldo do ciclo
// @Tags extrato
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param barbeiroId path string true "ID do barbeiro"
// @Param body body dto.AdiantamentoRequest true "Valor do vale"
// @Success 201 {object} dto.LancamentoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/extrato/{barbeiroId}/adiantamentos [post]
func (h *ExtratoHandler) CriarAdiantamento(c *gin.Context) {
	id, err := uuid.Parse(c.Param("barbeiroId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AdiantamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarAdiantamento(c.Request.Context(), atorFromClaims(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// FecharComissao godoc
// @Summary Fecha o ciclo de comissão e zera o saldo
// @Tags extrato
// @Produce json
// @Security BearerAuth
// @Param barbeiroId path string true "ID do barbeiro"
// @Success 201 {object} dto.FechamentoComissaoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/extrato/{barbeiroId}/fechar-comissao [post]
func (h *ExtratoHandler) FecharComissao(c *gin.Context) {
	id, err := uuid.Parse(c.Param("barbeiroId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.FecharComissao(c.Request.Context(), atorFromClaims(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
