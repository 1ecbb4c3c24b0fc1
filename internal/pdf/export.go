package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// Bytes renders the document to a PDF byte stream. Any generation error
// accumulated by the canvas surfaces here, wrapped with the document's
// file name.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", d.fileName, err)
	}
	return buf.Bytes(), nil
}

// DataURI returns the document as a base64 data URI suitable for an
// iframe or object src on the dashboard.
func (d *Document) DataURI() (string, error) {
	b, err := d.Bytes()
	if err != nil {
		return "", err
	}
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(b), nil
}

// Save writes the document into dir under its derived file name,
// creating dir as needed, and returns the full path.
func (d *Document) Save(dir string) (string, error) {
	b, err := d.Bytes()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save %s: %w", d.fileName, err)
	}
	path := filepath.Join(dir, d.fileName)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", d.fileName, err)
	}
	return path, nil
}

// sanitizeFileToken lower-cases s, drops everything outside [a-z0-9]
// and whitespace, and collapses whitespace runs to single hyphens.
// "Today's Orders!" becomes "todays-orders".
func sanitizeFileToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

func reportFileName(title string, generatedAt time.Time) string {
	token := sanitizeFileToken(title)
	if token == "" {
		token = "report"
	}
	return token + "-" + generatedAt.Format("2006-01-02") + ".pdf"
}

func receiptFileName(rec OrderRecord) string {
	id := strings.TrimSpace(rec.ReceiptNo)
	if id == "" {
		id = strings.TrimSpace(rec.OrderID)
	}
	id = sanitizeFileToken(id)
	if id == "" {
		id = "order"
	}
	name := sanitizeFileToken(rec.CustomerName)
	if name == "" {
		name = "guest"
	}
	return "receipt-" + id + "-" + name + ".pdf"
}
