package infra

// pdf.go — monthly report rendering using go-pdf/fpdf. A4 portrait, one page
// in the common case: period header, consolidated totals, per-store table,
// barber ranking, simplified P&L and the subscription summary.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrianopessanha/blacksalon/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// PDFGenerator renders reports. When storagePath is non-empty a copy of every
// generated report is kept on disk for audit.
type PDFGenerator struct {
	storagePath string
}

func NewPDFGenerator(storagePath string) *PDFGenerator {
	return &PDFGenerator{storagePath: storagePath}
}

// GerarRelatorioMensal renders the monthly report and returns the PDF bytes.
func (g *PDFGenerator) GerarRelatorioMensal(rel *dto.RelatorioMensalResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Black Salon", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Relatório Mensal de Comissões e Faturamento", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Período: %s a %s", rel.Inicio, rel.Fim), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Consolidated totals ──────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Consolidado", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	g.linhaValor(pdf, contentW, "Faturamento", rel.Faturamento)
	g.linhaValor(pdf, contentW, "Comissões", rel.ComissaoTotal)
	pdf.CellFormat(contentW*0.6, 5, "Atendimentos", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 5, fmt.Sprintf("%d", rel.Atendimentos), "", 1, "R", false, 0, "")
	pdf.Ln(3)

	// ── Per-store ────────────────────────────────────────────────────────────
	if len(rel.PorLoja) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, "Por Loja", "B", 1, "L", false, 0, "")

		col1 := contentW * 0.34
		col2 := contentW * 0.24
		col3 := contentW * 0.24
		col4 := contentW * 0.18

		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(col1, 6, "Loja", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "Faturamento", "B", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 6, "Comissão", "B", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "Atend.", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		for _, loja := range rel.PorLoja {
			pdf.CellFormat(col1, 5, loja.LojaID, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 5, "R$ "+loja.Faturamento.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(col3, 5, "R$ "+loja.Comissao.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(col4, 5, fmt.Sprintf("%d", loja.Atendimentos), "", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	// ── Barber ranking ───────────────────────────────────────────────────────
	if len(rel.PorBarbeiro) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, "Ranking de Barbeiros", "B", 1, "L", false, 0, "")

		col0 := contentW * 0.08
		col1 := contentW * 0.36
		col2 := contentW * 0.22
		col3 := contentW * 0.22
		col4 := contentW * 0.12

		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(col0, 6, "#", "B", 0, "C", false, 0, "")
		pdf.CellFormat(col1, 6, "Barbeiro", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "Faturamento", "B", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 6, "Comissão", "B", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "Atend.", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		for i, barb := range rel.PorBarbeiro {
			nome := barb.BarbeiroNome
			if len(nome) > 30 {
				nome = nome[:29] + "…"
			}
			pdf.CellFormat(col0, 5, fmt.Sprintf("%d", i+1), "", 0, "C", false, 0, "")
			pdf.CellFormat(col1, 5, nome, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 5, "R$ "+barb.Faturamento.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(col3, 5, "R$ "+barb.Comissao.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(col4, 5, fmt.Sprintf("%d", barb.Atendimentos), "", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	// ── Simplified P&L ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Resultado Simplificado", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	g.linhaValor(pdf, contentW, "Faturamento", rel.Resultado.Faturamento)
	g.linhaValor(pdf, contentW, "(−) Taxas de pagamento", rel.Resultado.TaxasPagamento)
	g.linhaValor(pdf, contentW, "(−) Comissões", rel.Resultado.ComissaoCusto)
	g.linhaValor(pdf, contentW, "(−) Despesas pagas", rel.Resultado.DespesasManuais)
	pdf.SetFont("Helvetica", "B", 10)
	g.linhaValor(pdf, contentW, "Resultado", rel.Resultado.Resultado)
	pdf.Ln(3)

	// ── Subscriptions ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Assinaturas", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW*0.6, 5, "Atendimentos de assinantes", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 5, fmt.Sprintf("%d", rel.Assinaturas.AtendimentosAssinante), "", 1, "R", false, 0, "")
	g.linhaValor(pdf, contentW, "Receita externa (plataforma)", rel.Assinaturas.ReceitaExterna)
	g.linhaValor(pdf, contentW, "Vendas internas de planos", rel.Assinaturas.ReceitaVendasInternas)
	g.linhaValor(pdf, contentW, "(−) Comissão de assinantes", rel.Assinaturas.ComissaoCusto)
	pdf.SetFont("Helvetica", "B", 10)
	g.linhaValor(pdf, contentW, "Resultado do programa", rel.Assinaturas.Resultado)

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Gerado em "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}

	if g.storagePath != "" {
		if err := os.MkdirAll(g.storagePath, 0755); err == nil {
			fileName := fmt.Sprintf("relatorio_%s_%s.pdf", rel.Inicio, rel.Fim)
			_ = os.WriteFile(filepath.Join(g.storagePath, fileName), buf.Bytes(), 0644)
		}
	}
	return buf.Bytes(), nil
}

func (g *PDFGenerator) linhaValor(pdf *fpdf.Fpdf, contentW float64, label string, valor decimal.Decimal) {
	pdf.CellFormat(contentW*0.6, 5, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 5, "R$ "+valor.StringFixed(2), "", 1, "R", false, 0, "")
}
