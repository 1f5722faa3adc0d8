package handler

import (
	"fmt"
	"net/http"

	"github.com/adrianopessanha/blacksalon/internal/apierror"
	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RelatorioHandler struct{ svc service.RelatorioService }

func NewRelatorioHandler(svc service.RelatorioService) *RelatorioHandler {
	return &RelatorioHandler{svc: svc}
}

// Mensal godoc
// @Summary Relatório mensal consolidado (faturamento, comissões, P&L, assinaturas)
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param inicio query string true "Início (YYYY-MM-DD)"
// @Param fim query string true "Fim (YYYY-MM-DD)"
// @Success 200 {object} dto.RelatorioMensalResponse
// @Router /v1/relatorios/mensal [get]
func (h *RelatorioHandler) Mensal(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.Mensal(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MensalPDF godoc
// @Summary Relatório mensal em PDF
// @Tags relatorios
// @Produce application/pdf
// @Security BearerAuth
// @Param inicio query string true "Início (YYYY-MM-DD)"
// @Param fim query string true "Fim (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Router /v1/relatorios/mensal/pdf [get]
func (h *RelatorioHandler) MensalPDF(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	pdfBytes, err := h.svc.MensalPDF(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	fileName := fmt.Sprintf("relatorio_%s_%s.pdf", filter.Inicio, filter.Fim)
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *RelatorioHandler) parseFilter(c *gin.Context) (dto.RelatorioFilter, bool) {
	filter := dto.RelatorioFilter{
		Inicio:     c.Query("inicio"),
		Fim:        c.Query("fim"),
		LojaID:     c.Query("loja_id"),
		BarbeiroID: c.Query("barbeiro_id"),
	}
	if raw := c.Query("receita_externa"); raw != "" {
		valor, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("receita_externa inválida"))
			return filter, false
		}
		filter.ReceitaExterna = &valor
	}
	return filter, true
}
