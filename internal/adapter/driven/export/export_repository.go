package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
	"github.com/dustin/go-humanize"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// ExportJSON serializa v com indentação de dois espaços.
func (r *ExportRepositoryImpl) ExportJSON(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding JSON: %w", err)
	}
	return data, nil
}

// --- Funções Auxiliares ---

var (
	headerColor       = [3]int{40, 40, 40}
	headerTextColor   = [3]int{255, 255, 255}
	sectionTitleColor = [3]int{0, 0, 0}
	bodyTextColor     = [3]int{50, 50, 50}
	lineColor         = [3]int{200, 200, 200}
	tableHeaderColor  = [3]int{200, 200, 200}
	bandColor         = [3]int{230, 230, 250}

	statusGreen  = [3]int{0, 128, 0}
	statusRed    = [3]int{255, 0, 0}
	statusOrange = [3]int{255, 165, 0}
	statusBlack  = [3]int{0, 0, 0}
)

// document agrupa o pdf e o tradutor unicode usados por todos os relatórios.
type document struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// newDocument cria um A4 retrato com rodapé "footer | data" e numeração de página.
func newDocument(footer string, generatedAt time.Time) *document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("%s | %s", footer, generatedAt.Format("2006-01-02"))), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d/{nb}", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	return &document{pdf: pdf, tr: tr}
}

func (d *document) setTextColor(c [3]int) {
	d.pdf.SetTextColor(c[0], c[1], c[2])
}

func (d *document) setFillColor(c [3]int) {
	d.pdf.SetFillColor(c[0], c[1], c[2])
}

// headerBar desenha a faixa escura de título seguida das linhas de contexto.
func (d *document) headerBar(title string, lines ...string) {
	d.setFillColor(headerColor)
	d.setTextColor(headerTextColor)
	d.pdf.SetFont("Arial", "B", 14)
	d.pdf.CellFormat(0, 12, d.tr("  "+title), "", 1, "L", true, 0, "")

	d.pdf.SetFont("Arial", "", 10)
	d.pdf.SetFillColor(240, 240, 240)
	d.setTextColor(bodyTextColor)
	for _, line := range lines {
		d.pdf.CellFormat(0, 8, d.tr("  "+line), "", 1, "L", true, 0, "")
	}
	d.pdf.Ln(6)
}

// centered escreve uma linha centralizada.
func (d *document) centered(style string, size float64, h float64, text string) {
	d.pdf.SetFont("Arial", style, size)
	d.pdf.CellFormat(0, h, d.tr(text), "", 1, "C", false, 0, "")
}

// sectionTitle escreve o título com a linha separadora.
func (d *document) sectionTitle(title string) {
	d.pdf.SetFont("Arial", "B", 12)
	d.setTextColor(sectionTitleColor)
	d.pdf.CellFormat(0, 8, d.tr(title), "", 1, "L", false, 0, "")
	d.pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	d.pdf.Line(d.pdf.GetX(), d.pdf.GetY(), d.pdf.GetX()+190, d.pdf.GetY())
	d.pdf.Ln(4)
}

// drawSection escreve um bloco de texto livre; conteúdo vazio não gera seção.
func (d *document) drawSection(title, content string) {
	if content == "" {
		return
	}
	d.sectionTitle(title)
	d.pdf.SetFont("Arial", "", 10)
	d.setTextColor(bodyTextColor)
	d.pdf.MultiCell(190, 5, d.tr(content), "", "L", false)
	d.pdf.Ln(8)
}

// tableHeader desenha a linha de cabeçalho cinza.
func (d *document) tableHeader(headers []string, widths []float64, h float64) {
	d.pdf.SetFont("Arial", "B", 9)
	d.setFillColor(tableHeaderColor)
	d.setTextColor(statusBlack)
	for i, header := range headers {
		d.pdf.CellFormat(widths[i], h, d.tr(header), "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(h)
}

// row desenha uma linha de tabela; aligns pode ser mais curto que cells ("L" por padrão).
func (d *document) row(cells []string, widths []float64, h float64, aligns ...string) {
	for i, cell := range cells {
		align := "L"
		if i < len(aligns) && aligns[i] != "" {
			align = aligns[i]
		}
		d.pdf.CellFormat(widths[i], h, d.tr(cell), "1", 0, align, false, 0, "")
	}
	d.pdf.Ln(h)
}

// bytes finaliza o documento.
func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// truncate corta s em max caracteres acrescentando "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// formatCost usa seis casas abaixo de 1 e duas a partir daí, com separador de milhar.
func formatCost(amount float64) string {
	if amount < 1 {
		return humanize.FormatFloat("#,###.######", amount)
	}
	return humanize.FormatFloat("#,###.##", amount)
}

// formatTotal sempre usa duas casas.
func formatTotal(amount float64) string {
	return humanize.FormatFloat("#,###.##", amount)
}

func statusColor(state string) [3]int {
	switch state {
	case "COMPLETED":
		return statusGreen
	case "FAILED":
		return statusRed
	case "RUNNING", "PENDING", "CREATED":
		return statusOrange
	default:
		return statusBlack
	}
}
