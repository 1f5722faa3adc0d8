package handler

import (
	"net/http"
	"strconv"

	"github.com/adrianopessanha/blacksalon/internal/apierror"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LancamentoHandler struct{ svc service.LancamentoService }

func NewLancamentoHandler(svc service.LancamentoService) *LancamentoHandler {
	return &LancamentoHandler{svc: svc}
}

// Registrar godoc
// @Summary Registra um lançamento de venda ou serviço
// @Tags lancamentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarLancamentoRequest true "Dados do lançamento"
// @Success 201 {object} dto.LancamentoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/lancamentos [post]
func (h *LancamentoHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarLancamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), atorFromClaims(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Excluir godoc
// @Summary Exclui um lançamento (somente admin)
// @Tags lancamentos
// @Security BearerAuth
// @Param id path string true "ID do lançamento"
// @Success 204
// @Failure 403 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/lancamentos/{id} [delete]
func (h *LancamentoHandler) Excluir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), atorFromClaims(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Listar godoc
// @Summary Lista lançamentos por período com filtros opcionais
// @Tags lancamentos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LancamentoListResponse
// @Router /v1/lancamentos [get]
func (h *LancamentoHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	filter := dto.LancamentoFilter{
		BarbeiroID: c.Query("barbeiro_id"),
		LojaID:     c.Query("loja_id"),
		Inicio:     c.Query("inicio"),
		Fim:        c.Query("fim"),
		Page:       page,
		Limit:      limit,
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
