// Package i18n serves the dashboard's UI dictionaries. The API ships the
// full dictionary per language so the frontend can switch without a reload.
package i18n

import "github.com/mazoon-pos/api/internal/enum"

var english = map[string]string{
	"app_title":       "Mazoon Grill",
	"dashboard":       "Dashboard",
	"orders":          "Orders",
	"new_order":       "New Order",
	"edit_order":      "Edit Order",
	"delete_order":    "Delete Order",
	"receipt_no":      "Receipt No",
	"customer_name":   "Customer Name",
	"phone":           "Phone",
	"location":        "Location",
	"order_details":   "Order Details",
	"delivery_type":   "Delivery Type",
	"payment_type":    "Payment Type",
	"total":           "Total",
	"advance_payment": "Advance Payment",
	"balance_due":     "Balance Due",
	"discount":        "Discount",
	"paid":            "Paid",
	"unpaid":          "Unpaid",
	"cook_status":     "Cook Status",
	"date":            "Date",
	"time":            "Time",

	"status_pending":   "Pending",
	"status_preparing": "Preparing",
	"status_ready":     "Ready",
	"status_delivered": "Delivered",
	"status_completed": "Completed",
	"type_delivery":    "Delivery",
	"type_pickup":      "Pickup",
	"type_other":       "Other",
	"pay_cash":         "Cash",
	"pay_atm":          "ATM",
	"pay_transfer":     "Transfer",

	"export_pdf":    "Export PDF",
	"export_report": "Export Report",
	"print_receipt": "Print Receipt",
	"search":        "Search",
	"login":         "Login",
	"logout":        "Logout",
	"email":         "Email",
	"password":      "Password",
	"total_orders":  "Total Orders",
	"total_revenue": "Total Revenue",
	"outstanding":   "Outstanding Balance",
	"no_orders":     "No orders to display",
	"thank_you":     "Thank you for dining with us!",
}

var arabic = map[string]string{
	"app_title":       "مطعم مزون",
	"dashboard":       "لوحة المعلومات",
	"orders":          "الطلبات",
	"new_order":       "طلب جديد",
	"edit_order":      "تعديل الطلب",
	"delete_order":    "حذف الطلب",
	"receipt_no":      "رقم الإيصال",
	"customer_name":   "اسم الزبون",
	"phone":           "رقم الهاتف",
	"location":        "الموقع",
	"order_details":   "تفاصيل الطلب",
	"delivery_type":   "نوع التوصيل",
	"payment_type":    "طريقة الدفع",
	"total":           "المجموع",
	"advance_payment": "الدفعة المقدمة",
	"balance_due":     "المبلغ المتبقي",
	"discount":        "الخصم",
	"paid":            "مدفوع",
	"unpaid":          "غير مدفوع",
	"cook_status":     "حالة الطلب",
	"date":            "التاريخ",
	"time":            "الوقت",

	"status_pending":   "قيد الانتظار",
	"status_preparing": "قيد التحضير",
	"status_ready":     "جاهز",
	"status_delivered": "تم التوصيل",
	"status_completed": "مكتمل",
	"type_delivery":    "توصيل",
	"type_pickup":      "استلام",
	"type_other":       "أخرى",
	"pay_cash":         "نقداً",
	"pay_atm":          "بطاقة",
	"pay_transfer":     "تحويل",

	"export_pdf":    "تصدير PDF",
	"export_report": "تصدير التقرير",
	"print_receipt": "طباعة الإيصال",
	"search":        "بحث",
	"login":         "تسجيل الدخول",
	"logout":        "تسجيل الخروج",
	"email":         "البريد الإلكتروني",
	"password":      "كلمة المرور",
	"total_orders":  "إجمالي الطلبات",
	"total_revenue": "إجمالي الإيرادات",
	"outstanding":   "المبالغ المتبقية",
	"no_orders":     "لا توجد طلبات للعرض",
	"thank_you":     "شكراً لزيارتكم!",
}

var dictionaries = map[string]map[string]string{
	enum.LangEnglish: english,
	enum.LangArabic:  arabic,
}

// Dict returns the full dictionary for lang, or ok=false for an
// unsupported language code.
func Dict(lang string) (map[string]string, bool) {
	d, ok := dictionaries[lang]
	return d, ok
}

// Languages lists the supported language codes.
func Languages() []string {
	return []string{enum.LangEnglish, enum.LangArabic}
}

// T resolves key in lang, falling back to English and finally to the
// key itself so a missing translation never blanks a label.
func T(lang, key string) string {
	if d, ok := dictionaries[lang]; ok {
		if v, ok := d[key]; ok {
			return v
		}
	}
	if v, ok := english[key]; ok {
		return v
	}
	return key
}
