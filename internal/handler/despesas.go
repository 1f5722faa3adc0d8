package handler

import (
	"net/http"

	"github.com/adrianopessanha/blacksalon/internal/apierror"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DespesaHandler struct{ svc service.DespesaService }

func NewDespesaHandler(svc service.DespesaService) *DespesaHandler {
	return &DespesaHandler{svc: svc}
}

func (h *DespesaHandler) Criar(c *gin.Context) {
	var req dto.CriarDespesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), atorFromClaims(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DespesaHandler) MarcarPaga(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.MarcarPaga(c.Request.Context(), atorFromClaims(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DespesaHandler) Excluir(c *gin.Context) {
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

func (h *DespesaHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("inicio"), c.Query("fim"), c.Query("loja_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
