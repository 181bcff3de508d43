// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	ReceiptNumber string       `json:"receipt_number"`
	ReceiptDate   string       `json:"receipt_date"`
	StoreName     string       `json:"store_name"`
	BuyerName     string       `json:"buyer_name"`
	ProductName   string       `json:"product_name"`
	UnitPrice     float64      `json:"unit_price"`
	Order         *order.Order `json:"order"`
	Total         float64      `json:"total"`
}

// GenerateReceipt generates a PDF receipt for an order
func (s *Service) GenerateReceipt(o *order.Order, buyerName, productName string) (*bytes.Buffer, error) {
	unitPrice := float64(0)
	if o.Quantity > 0 {
		unitPrice = float64(o.TotalPrice) / float64(o.Quantity) / 100
	}

	data := ReceiptData{
		ReceiptNumber: fmt.Sprintf("RCP-%06d", o.ID),
		ReceiptDate:   time.Now().Format("January 2, 2006"),
		StoreName:     s.config.App.Name,
		BuyerName:     buyerName,
		ProductName:   productName,
		UnitPrice:     unitPrice,
		Order:         o,
		Total:         o.GetFormattedTotal(),
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data ReceiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            border-bottom: 2px solid #333;
            padding-bottom: 16px;
            margin-bottom: 24px;
        }
        .store-name {
            font-size: 24px;
            font-weight: bold;
        }
        .receipt-meta {
            text-align: right;
            font-size: 13px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-top: 16px;
        }
        th, td {
            text-align: left;
            padding: 8px 12px;
            border-bottom: 1px solid #ddd;
            font-size: 13px;
        }
        th {
            background: #f5f5f5;
            text-transform: uppercase;
            font-size: 11px;
        }
        .amount {
            text-align: right;
        }
        .total-row td {
            font-weight: bold;
            font-size: 15px;
            border-top: 2px solid #333;
        }
        .status {
            margin-top: 24px;
            font-size: 13px;
        }
        .footer {
            margin-top: 48px;
            font-size: 11px;
            color: #888;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="store-name">{{.StoreName}}</div>
        <div class="receipt-meta">
            <div><strong>Receipt:</strong> {{.ReceiptNumber}}</div>
            <div><strong>Date:</strong> {{.ReceiptDate}}</div>
            <div><strong>Billed to:</strong> {{.BuyerName}}</div>
        </div>
    </div>

    <table>
        <thead>
            <tr>
                <th>Item</th>
                <th class="amount">Unit Price</th>
                <th class="amount">Quantity</th>
                <th class="amount">Total</th>
            </tr>
        </thead>
        <tbody>
            <tr>
                <td>{{.ProductName}}</td>
                <td class="amount">${{printf "%.2f" .UnitPrice}}</td>
                <td class="amount">{{.Order.Quantity}}</td>
                <td class="amount">${{printf "%.2f" .Total}}</td>
            </tr>
            <tr class="total-row">
                <td colspan="3">Total</td>
                <td class="amount">${{printf "%.2f" .Total}}</td>
            </tr>
        </tbody>
    </table>

    <div class="status">Order status: <strong>{{.Order.Status}}</strong></div>

    <div class="footer">Thank you for your purchase.</div>
</body>
</html>
`
