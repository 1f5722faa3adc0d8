package handler

import (
	"net/http"

	"github.com/adrianopessanha/blacksalon/internal/service"

	"github.com/gin-gonic/gin"
)

// RegrasHandler exposes the commission rules currently in effect.
type RegrasHandler struct{ provider *service.RegrasProvider }

func NewRegrasHandler(provider *service.RegrasProvider) *RegrasHandler {
	return &RegrasHandler{provider: provider}
}

func (h *RegrasHandler) Vigentes(c *gin.Context) {
	resp, err := h.provider.ToResponse()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recarregar re-reads the rules from the database. Admin-only: new rules
// affect only entries written after the reload, existing rows keep the
// commission they were stored with.
func (h *RegrasHandler) Recarregar(c *gin.Context) {
	if err := h.provider.Carregar(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	resp, err := h.provider.ToResponse()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
