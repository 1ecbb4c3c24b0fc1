package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mazoon-pos/api/internal/enum"
	"github.com/mazoon-pos/api/internal/i18n"
)

// ReportOptions configures a tabular order report.
type ReportOptions struct {
	Title          string    // empty selects "Order Report"
	Lang           string    // dashboard language; table chrome stays English
	IncludeSummary bool      // append the aggregate block after the last row
	IncludeFooter  bool      // "Page N of M" on every page
	GeneratedAt    time.Time // zero means now
}

// Report pages are A4 landscape. All values in mm.
const (
	reportLeftMargin   = 10.0
	reportTopMargin    = 12.0
	reportBottomMargin = 14.0

	reportTitleY     = 20.0
	reportTimestampY = 26.0
	reportHeaderTop  = 32.0
	reportHeaderH    = 9.0
	reportFirstRowY  = 41.0
	reportRowH       = 8.0

	reportCellPad   = 2.0
	reportCellFont  = 9.0
	reportTitleFont = 16.0
)

type reportColumn struct {
	label string
	width float64
	align Align
}

// reportColumns sum to 257mm, inside the 277mm usable width of an A4
// landscape page with 10mm side margins.
var reportColumns = []reportColumn{
	{"Receipt No", 24, AlignLeft},
	{"Customer", 38, AlignLeft},
	{"Details", 58, AlignLeft},
	{"Phone", 26, AlignLeft},
	{"Type", 20, AlignLeft},
	{"Date", 22, AlignLeft},
	{"Time", 16, AlignLeft},
	{"Status", 26, AlignLeft},
	{"Total", 27, AlignRight},
}

func reportTableWidth() float64 {
	var w float64
	for _, c := range reportColumns {
		w += c.width
	}
	return w
}

// Report renders records as a paginated table. Every page repeats the
// title, generation timestamp, and column header, so page capacity is
// constant and the page count is ceil(len(records)/rowsPerPage) when
// the summary block is disabled.
func (r *Renderer) Report(records []OrderRecord, opts ReportOptions) *Document {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Order Report"
	}
	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	d := r.newDocument("L", title, generatedAt)
	d.fileName = reportFileName(title, generatedAt)

	if opts.IncludeFooter {
		d.pdf.AliasNbPages("")
		d.pdf.SetFooterFunc(func() {
			d.DrawText(fmt.Sprintf("Page %d of {nb}", d.page()), d.pageW/2, d.pageH-8,
				TextStyle{FontSize: 8, Color: colorMuted})
		})
	}

	if len(records) == 0 {
		d.addPage()
		r.drawReportHeader(d, title, generatedAt)
		d.DrawText(i18n.T(opts.Lang, "no_orders"), d.pageW/2, 80,
			TextStyle{FontSize: 12, Color: colorMuted})
		return d
	}

	bottom := d.pageH - reportBottomMargin
	y := r.newReportPage(d, title, generatedAt)
	for i, rec := range records {
		if y+reportRowH > bottom {
			y = r.newReportPage(d, title, generatedAt)
		}
		r.drawReportRow(d, rec, i, y)
		y += reportRowH
	}

	if opts.IncludeSummary {
		r.drawReportSummary(d, records, y)
	}
	return d
}

// newReportPage starts a page with the full header block and column
// header, returning the y of the first table row.
func (r *Renderer) newReportPage(d *Document, title string, generatedAt time.Time) float64 {
	d.addPage()
	r.drawReportHeader(d, title, generatedAt)
	r.drawReportColumnHeader(d)
	return reportFirstRowY
}

func (r *Renderer) drawReportHeader(d *Document, title string, generatedAt time.Time) {
	d.DrawText(title, reportLeftMargin, reportTitleY,
		TextStyle{Align: AlignLeft, Bold: true, FontSize: reportTitleFont})
	d.DrawText("Generated: "+generatedAt.Format("2006-01-02 15:04"), reportLeftMargin, reportTimestampY,
		TextStyle{Align: AlignLeft, FontSize: 9, Color: colorMuted})
}

func (r *Renderer) drawReportColumnHeader(d *Document) {
	d.fillRect(reportLeftMargin, reportHeaderTop, reportTableWidth(), reportHeaderH, colorHeaderBg)
	x := reportLeftMargin
	baseline := reportHeaderTop + 6
	for _, col := range reportColumns {
		d.DrawText(col.label, x+reportCellPad, baseline, TextStyle{
			Align:    AlignLeft,
			MaxWidth: col.width - 2*reportCellPad,
			FontSize: reportCellFont,
			Bold:     true,
			Color:    colorHeaderTxt,
		})
		x += col.width
	}
}

func reportCells(rec OrderRecord) []string {
	return []string{
		valueOrNA(rec.ReceiptNo),
		valueOrNA(rec.CustomerName),
		valueOrNA(rec.OrderDetails),
		valueOrNA(rec.Phone),
		deliveryLabel(rec.DeliveryType),
		valueOrNA(rec.Date),
		valueOrNA(rec.Time),
		statusLabel(rec.CookStatus),
		valueOrNA(rec.Total),
	}
}

// drawReportRow paints one table row at top y. Odd row indexes get the
// stripe background. The anchor x for each cell is computed from the
// column's configured alignment; RTL values only flip which side of
// that anchor the glyphs land on.
func (r *Renderer) drawReportRow(d *Document, rec OrderRecord, idx int, y float64) {
	if idx%2 == 1 {
		d.fillRect(reportLeftMargin, y, reportTableWidth(), reportRowH, colorStripe)
	}
	cells := reportCells(rec)
	x := reportLeftMargin
	baseline := y + 5.5
	for i, col := range reportColumns {
		d.strokeRect(x, y, col.width, reportRowH, colorBorder)
		anchor := x + reportCellPad
		if col.align == AlignRight {
			anchor = x + col.width - reportCellPad
		}
		d.DrawText(truncateCell(cells[i]), anchor, baseline, TextStyle{
			Align:    col.align,
			MaxWidth: col.width - 2*reportCellPad,
			FontSize: reportCellFont,
		})
		x += col.width
	}
}

// drawReportSummary appends the aggregate block below the last row,
// moving to a fresh page (without a column header) when it cannot fit.
func (r *Renderer) drawReportSummary(d *Document, records []OrderRecord, y float64) {
	const blockH = 40.0
	bottom := d.pageH - reportBottomMargin
	if y+blockH > bottom {
		d.addPage()
		y = reportTopMargin + 8
	} else {
		y += 8
	}

	total := decimal.Zero
	parsed := 0
	counts := map[string]int{}
	for _, rec := range records {
		if v, err := decimal.NewFromString(strings.TrimSpace(rec.Total)); err == nil {
			total = total.Add(v)
			parsed++
		}
		counts[rec.CookStatus]++
	}
	average := "N/A"
	if parsed > 0 {
		average = r.money(total.Div(decimal.NewFromInt(int64(parsed))).StringFixed(3))
	}

	x := reportLeftMargin
	y += d.DrawText("Summary", x, y, TextStyle{Align: AlignLeft, Bold: true, FontSize: 12}) + 3
	y += d.DrawText(fmt.Sprintf("Orders: %d", len(records)), x, y,
		TextStyle{Align: AlignLeft, FontSize: reportCellFont}) + 2
	y += d.DrawText("Total: "+r.money(total.StringFixed(3)), x, y,
		TextStyle{Align: AlignLeft, FontSize: reportCellFont}) + 2
	y += d.DrawText("Average: "+average, x, y,
		TextStyle{Align: AlignLeft, FontSize: reportCellFont}) + 2
	d.DrawText("Status: "+summarizeStatuses(counts), x, y,
		TextStyle{Align: AlignLeft, FontSize: reportCellFont})
}

// summarizeStatuses lists non-zero status counts in kitchen order.
func summarizeStatuses(counts map[string]int) string {
	ordered := []string{
		enum.CookStatusPending,
		enum.CookStatusPreparing,
		enum.CookStatusReady,
		enum.CookStatusDelivered,
		enum.CookStatusCompleted,
	}
	var parts []string
	for _, s := range ordered {
		if n := counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, statusLabel(s)))
		}
	}
	other := 0
	for s, n := range counts {
		if statusLabel(s) == "Unknown" {
			other += n
		}
	}
	if other > 0 {
		parts = append(parts, fmt.Sprintf("%d Unknown", other))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
