package pdf

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mazoon-pos/api/internal/enum"
	"github.com/mazoon-pos/api/internal/model"
)

// OrderRecord is the renderer's view of one order. Every field is a
// display string exactly as entered; the renderer performs no parsing
// beyond what the report summary needs. Missing values render as "N/A".
type OrderRecord struct {
	OrderID        string
	ReceiptNo      string
	CustomerName   string
	Phone          string
	Location       string
	OrderDetails   string
	DeliveryType   string
	PaymentType    string
	Total          string
	AdvancePayment string
	BalanceDue     string
	Discount       string
	Paid           bool
	CookStatus     string
	Date           string
	Time           string
}

// RecordFromOrder flattens a stored order into the renderer's input
// shape. Shared by the export handlers and the exportpdf CLI. A nil
// order ID stays empty so the "N/A" fallbacks engage downstream.
func RecordFromOrder(o model.Order) OrderRecord {
	rec := OrderRecord{
		ReceiptNo:      o.ReceiptNo,
		CustomerName:   o.CustomerName,
		Phone:          o.Phone,
		Location:       o.Location,
		OrderDetails:   o.OrderDetails,
		DeliveryType:   o.DeliveryType,
		PaymentType:    o.PaymentType,
		Total:          o.Total,
		AdvancePayment: o.AdvancePayment,
		BalanceDue:     o.BalanceDue,
		Discount:       o.Discount,
		Paid:           o.Paid,
		CookStatus:     o.CookStatus,
		Date:           o.Date,
		Time:           o.Time,
	}
	if o.ID != uuid.Nil {
		rec.OrderID = o.ID.String()
	}
	return rec
}

func valueOrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func statusLabel(s string) string {
	switch s {
	case enum.CookStatusPending:
		return "Pending"
	case enum.CookStatusPreparing:
		return "Preparing"
	case enum.CookStatusReady:
		return "Ready"
	case enum.CookStatusDelivered:
		return "Delivered"
	case enum.CookStatusCompleted:
		return "Completed"
	}
	return "Unknown"
}

func deliveryLabel(s string) string {
	switch s {
	case enum.DeliveryTypeDelivery:
		return "Delivery"
	case enum.DeliveryTypePickup:
		return "Pickup"
	case enum.DeliveryTypeOther:
		return "Other"
	}
	return valueOrNA(s)
}

func paymentLabel(s string) string {
	switch s {
	case enum.PaymentTypeCash:
		return "Cash"
	case enum.PaymentTypeATM:
		return "ATM"
	case enum.PaymentTypeTransfer:
		return "Transfer"
	}
	return valueOrNA(s)
}

// money prefixes an amount string with the currency code. The amount is
// shown as entered; nothing is reformatted.
func (r *Renderer) money(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return r.currency + " " + s
}

const (
	cellMaxRunes  = 30
	cellKeepRunes = 27
)

// truncateCell caps a table cell at cellMaxRunes runes, keeping the
// first cellKeepRunes and appending an ellipsis. Counted in runes so
// Arabic text is never cut mid-character.
func truncateCell(s string) string {
	runes := []rune(s)
	if len(runes) <= cellMaxRunes {
		return s
	}
	return string(runes[:cellKeepRunes]) + string(ellipsis)
}
