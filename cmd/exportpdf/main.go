package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mazoon-pos/api/internal/config"
	"github.com/mazoon-pos/api/internal/model"
	"github.com/mazoon-pos/api/internal/pdf"
)

func main() {
	// CLI flags
	ordersPath := flag.String("orders", "orders.json", "Path to an orders JSON file (array of orders)")
	outDir := flag.String("out", "", "Output directory (defaults to EXPORT_DIR)")
	receipt := flag.String("receipt", "", "Render a single receipt for this order ID or receipt number")
	title := flag.String("title", "", "Report title")
	lang := flag.String("lang", "en", "Language for translated text (en or ar)")
	summary := flag.Bool("summary", false, "Append the aggregate summary block to the report")
	footer := flag.Bool("footer", false, "Number report pages (Page N of M)")
	flag.Parse()

	cfg := config.Load()
	if *outDir == "" {
		*outDir = cfg.ExportDir
	}

	orders, err := readOrders(*ordersPath)
	if err != nil {
		log.Fatalf("Failed to read orders: %v", err)
	}

	renderer := pdf.NewRenderer(pdf.DefaultFontRegistry(), pdf.DefaultLogo(), cfg.RestaurantName, cfg.CurrencyCode)

	var doc *pdf.Document
	if *receipt != "" {
		order, ok := findOrder(orders, *receipt)
		if !ok {
			log.Fatalf("No order matches %q", *receipt)
		}
		doc = renderer.Receipt(pdf.RecordFromOrder(order), pdf.ReceiptOptions{Lang: *lang})
	} else {
		records := make([]pdf.OrderRecord, len(orders))
		for i, o := range orders {
			records[i] = pdf.RecordFromOrder(o)
		}
		doc = renderer.Report(records, pdf.ReportOptions{
			Title:          *title,
			Lang:           *lang,
			IncludeSummary: *summary,
			IncludeFooter:  *footer,
		})
	}

	path, err := doc.Save(*outDir)
	if err != nil {
		log.Fatalf("Failed to save PDF: %v", err)
	}
	fmt.Println(path)
}

func readOrders(path string) ([]model.Order, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var orders []model.Order
	if err := json.Unmarshal(b, &orders); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return orders, nil
}

func findOrder(orders []model.Order, key string) (model.Order, bool) {
	for _, o := range orders {
		if o.ID.String() == key || (o.ReceiptNo != "" && o.ReceiptNo == key) {
			return o, true
		}
	}
	return model.Order{}, false
}
