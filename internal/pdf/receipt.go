package pdf

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mazoon-pos/api/internal/i18n"
)

// ReceiptOptions configures a single-order receipt.
type ReceiptOptions struct {
	Lang        string    // language for the thank-you footer
	GeneratedAt time.Time // zero means now
}

// Receipts are A4 portrait, single page. All values in mm.
const (
	receiptMargin   = 15.0
	receiptLogoW    = 40.0
	receiptLogoH    = 22.0
	receiptHeadFont = 11.0
	receiptBodyFont = 10.0
	receiptValueX   = receiptMargin + 32
)

// Receipt renders one order as a printable receipt: branding, receipt
// identity, customer block, free-form order details, delivery state,
// and the payment summary with its conditional amount lines.
func (r *Renderer) Receipt(rec OrderRecord, opts ReceiptOptions) *Document {
	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	d := r.newDocument("P", "Receipt "+receiptIdentity(rec), generatedAt)
	d.fileName = receiptFileName(rec)
	d.addPage()

	y := 14.0
	if len(r.logo) > 0 && d.drawImage("receipt-logo", r.logo, (d.pageW-receiptLogoW)/2, y, receiptLogoW, receiptLogoH) {
		y += receiptLogoH + 10
	} else {
		y += 8
		d.DrawText(r.name, d.pageW/2, y, TextStyle{Bold: true, FontSize: 20})
		y += 12
	}

	d.DrawText("Receipt #"+receiptIdentity(rec), receiptMargin, y,
		TextStyle{Align: AlignLeft, Bold: true, FontSize: 12})
	d.DrawText("Date: "+valueOrNA(rec.Date)+"  Time: "+valueOrNA(rec.Time), d.pageW-receiptMargin, y,
		TextStyle{Align: AlignRight, FontSize: receiptBodyFont})
	y += 4
	d.drawLine(receiptMargin, y, d.pageW-receiptMargin, y, colorBorder)
	y += 9

	y = r.receiptSection(d, "Customer Information", y)
	y = r.receiptRow(d, "Name", valueOrNA(rec.CustomerName), y)
	y = r.receiptRow(d, "Phone", valueOrNA(rec.Phone), y)
	y = r.receiptRow(d, "Location", valueOrNA(rec.Location), y)
	y += 5

	y = r.receiptSection(d, "Order Details", y)
	for _, line := range d.wrapText(valueOrNA(rec.OrderDetails), d.pageW-2*receiptMargin,
		TextStyle{FontSize: receiptBodyFont}) {
		d.DrawText(line, receiptMargin, y, TextStyle{Align: AlignLeft, FontSize: receiptBodyFont})
		y += 6
	}
	y += 5

	y = r.receiptSection(d, "Delivery Information", y)
	y = r.receiptRow(d, "Type", deliveryLabel(rec.DeliveryType), y)
	y = r.receiptRow(d, "Status", statusLabel(rec.CookStatus), y)
	paid := "Unpaid"
	if rec.Paid {
		paid = "Paid"
	}
	y = r.receiptRow(d, "Payment", paid, y)
	y += 5

	y = r.receiptSection(d, "Payment Summary", y)
	y = r.receiptRow(d, "Total", r.money(rec.Total), y)
	if positiveAmount(rec.AdvancePayment) {
		y = r.receiptRow(d, "Advance Paid", r.money(rec.AdvancePayment), y)
	}
	if positiveAmount(rec.BalanceDue) {
		y = r.receiptRow(d, "Balance Due", r.money(rec.BalanceDue), y)
	}
	if positiveAmount(rec.Discount) {
		y = r.receiptRow(d, "Discount", r.money(rec.Discount), y)
	}
	if strings.TrimSpace(rec.PaymentType) != "" {
		y = r.receiptRow(d, "Method", paymentLabel(rec.PaymentType), y)
	}
	y += 12

	d.DrawText(i18n.T(opts.Lang, "thank_you"), d.pageW/2, y,
		TextStyle{FontSize: receiptBodyFont, Color: colorMuted})
	return d
}

func (r *Renderer) receiptSection(d *Document, heading string, y float64) float64 {
	d.DrawText(heading, receiptMargin, y,
		TextStyle{Align: AlignLeft, Bold: true, FontSize: receiptHeadFont, Color: colorHeaderBg})
	y += 2.5
	d.drawLine(receiptMargin, y, d.pageW-receiptMargin, y, colorBorder)
	return y + 6.5
}

func (r *Renderer) receiptRow(d *Document, label, value string, y float64) float64 {
	d.DrawText(label+":", receiptMargin, y,
		TextStyle{Align: AlignLeft, Bold: true, FontSize: receiptBodyFont})
	d.DrawText(value, receiptValueX, y,
		TextStyle{Align: AlignLeft, FontSize: receiptBodyFont})
	return y + 6
}

// positiveAmount reports whether s parses as a number strictly greater
// than zero. Blank and unparseable values both read as "no amount".
func positiveAmount(s string) bool {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	return err == nil && v.IsPositive()
}

// receiptIdentity prefers the printed receipt number, then the order
// id, for display and file naming.
func receiptIdentity(rec OrderRecord) string {
	if strings.TrimSpace(rec.ReceiptNo) != "" {
		return rec.ReceiptNo
	}
	if strings.TrimSpace(rec.OrderID) != "" {
		return rec.OrderID
	}
	return "N/A"
}
