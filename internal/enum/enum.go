package enum

// ── State machines ──

const (
	CookStatusPending   = "PENDING"
	CookStatusPreparing = "PREPARING"
	CookStatusReady     = "READY"
	CookStatusDelivered = "DELIVERED"
	CookStatusCompleted = "COMPLETED"
)

// ── Access control ──

const (
	UserRoleAdmin     = "ADMIN"
	UserRoleStaff     = "STAFF"
	UserRoleKitchen   = "KITCHEN"
	UserRoleReception = "RECEPTION"
)

// ── Configurable labels ──

const (
	DeliveryTypeDelivery = "DELIVERY"
	DeliveryTypePickup   = "PICKUP"
	DeliveryTypeOther    = "OTHER"
)

const (
	PaymentTypeCash     = "CASH"
	PaymentTypeATM      = "ATM"
	PaymentTypeTransfer = "TRANSFER"
)

const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

// ValidCookStatus reports whether s is a recognized kitchen state.
func ValidCookStatus(s string) bool {
	switch s {
	case CookStatusPending, CookStatusPreparing, CookStatusReady, CookStatusDelivered, CookStatusCompleted:
		return true
	}
	return false
}

// ValidDeliveryType reports whether s is a recognized fulfilment type.
func ValidDeliveryType(s string) bool {
	switch s {
	case DeliveryTypeDelivery, DeliveryTypePickup, DeliveryTypeOther:
		return true
	}
	return false
}

// ValidPaymentType reports whether s is a recognized payment method.
func ValidPaymentType(s string) bool {
	switch s {
	case PaymentTypeCash, PaymentTypeATM, PaymentTypeTransfer:
		return true
	}
	return false
}
