package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// TicketDocument carries everything the ticket PDF shows
type TicketDocument struct {
	TicketNumber string
	BuyerLabel   string
	EventTitle   string
	EventStarts  time.Time
	VenueLine    string
	Price        decimal.Decimal
	QRPNG        []byte
}

// Renderer produces printable A4 e-tickets
type Renderer struct{}

// NewRenderer creates a PDF renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the e-ticket as a PDF document
func (r *Renderer) Render(doc TicketDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("CityTickets e-ticket", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "CityTickets", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, "Electronic ticket", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	if len(doc.QRPNG) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(doc.QRPNG))
		// 55mm square in the top right corner
		pdf.ImageOptions("ticket-qr", 140, 15, 55, 55, false, opts, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, doc.EventTitle, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(40, 8, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	row("Ticket", doc.TicketNumber)
	row("Holder", doc.BuyerLabel)
	row("Date", doc.EventStarts.Format("02.01.2006"))
	row("Time", doc.EventStarts.Format("15:04"))
	if doc.VenueLine != "" {
		row("Venue", doc.VenueLine)
	}
	row("Price", doc.Price.StringFixed(2))

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(0, 5, "Present the QR code at the entrance. The ticket admits one person once.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}
