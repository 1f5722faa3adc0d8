package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adrianopessanha/blacksalon/internal/apierror"
	"github.com/adrianopessanha/blacksalon/internal/apperrors"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/service"

	"github.com/gin-gonic/gin"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// Fechar godoc
// @Summary Fecha o caixa de uma loja para um dia (create-once)
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.FecharCaixaRequest true "Dados do fechamento"
// @Success 201 {object} dto.FechamentoCaixaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixa/fechamentos [post]
func (h *CaixaHandler) Fechar(c *gin.Context) {
	var req dto.FecharCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Fechar(c.Request.Context(), atorFromClaims(c), req)
	if err != nil {
		// The duplicate case still carries the existing closure so the client
		// can show what was already recorded.
		if errors.Is(err, apperrors.ErrFechamentoDuplicado) && resp != nil {
			c.JSON(http.StatusConflict, gin.H{
				"detail":     err.Error(),
				"fechamento": resp,
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obter godoc
// @Summary Consulta o fechamento de uma loja em uma data
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Param lojaId path string true "ID da loja"
// @Param data path string true "Data de referência (YYYY-MM-DD)"
// @Success 200 {object} dto.FechamentoCaixaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caixa/fechamentos/{lojaId}/{data} [get]
func (h *CaixaHandler) Obter(c *gin.Context) {
	resp, err := h.svc.Obter(c.Request.Context(), c.Param("lojaId"), c.Param("data"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historico godoc
// @Summary Lista os fechamentos recentes de uma loja
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Param lojaId path string true "ID da loja"
// @Success 200 {array} dto.FechamentoCaixaResponse
// @Router /v1/caixa/fechamentos/{lojaId} [get]
func (h *CaixaHandler) Historico(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "31"))
	resp, err := h.svc.Historico(c.Request.Context(), c.Param("lojaId"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Previa godoc
// @Summary Totais esperados do dia ainda aberto, sem persistir nada
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Param lojaId path string true "ID da loja"
// @Param data query string true "Data de referência (YYYY-MM-DD)"
// @Success 200 {object} dto.TotaisPorMetodo
// @Router /v1/caixa/previa/{lojaId} [get]
func (h *CaixaHandler) Previa(c *gin.Context) {
	data := c.Query("data")
	if data == "" {
		c.JSON(http.StatusBadRequest, apierror.New("parâmetro data obrigatório"))
		return
	}
	resp, err := h.svc.Previa(c.Request.Context(), c.Param("lojaId"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
