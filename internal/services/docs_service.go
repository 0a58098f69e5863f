package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/repositories"
	"flightschool/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the printable sign-out sheet and invoice PDFs.
type DocsService struct {
	Store     repositories.Store
	RequestID string
	Now       func() time.Time
}

type signoutSheetData struct {
	BookingID   int64
	Student     string
	Instructor  string
	Aircraft    string
	Date        string
	Lesson      string
	Description string
}

type invoiceDocData struct {
	Invoice models.InvoiceDetail
	Member  string
	Email   string
}

func (s DocsService) SignoutSheet(ctx context.Context, actor domain.Actor, bookingID int64) ([]byte, string, error) {
	v, err := s.Store.Bookings().GetView(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	if err := requireSelfOrStaff(actor, v.UserID); err != nil {
		return nil, "", err
	}
	data := signoutSheetData{
		BookingID:   v.ID,
		Student:     v.MemberName,
		Instructor:  safePtr(v.InstructorName, "-"),
		Aircraft:    strings.TrimSpace(v.AircraftReg + " " + v.AircraftType),
		Date:        utils.FormatDate(v.StartTime) + " " + utils.FormatClock(v.StartTime) + "-" + utils.FormatClock(v.EndTime),
		Lesson:      safePtr(v.LessonName, "-"),
		Description: safePtr(v.Description, "-"),
	}
	utils.LogEvent(s.RequestID, "docs", "signout_sheet", fmt.Sprintf("booking_id=%d", bookingID))
	return buildSignoutSheetPDF(data)
}

func (s DocsService) InvoicePDF(ctx context.Context, actor domain.Actor, invoiceID int64) ([]byte, string, error) {
	inv, err := s.Store.Invoices().Get(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if err := requireSelfOrStaff(actor, inv.UserID); err != nil {
		return nil, "", err
	}
	payments, err := s.Store.Payments().ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	u, err := s.Store.Users().Get(ctx, inv.UserID)
	if err != nil {
		return nil, "", err
	}
	data := invoiceDocData{
		Invoice: invoiceDetail(inv, payments, clock(s.Now)),
		Member:  u.FullName(),
		Email:   u.Email,
	}
	utils.LogEvent(s.RequestID, "docs", "invoice_pdf", "invoice="+inv.InvoiceNumber)
	return buildInvoicePDF(data)
}

func buildSignoutSheetPDF(d signoutSheetData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Flight Sign-out Sheet", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "FLIGHT SIGN-OUT SHEET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Student     : %s", safe(d.Student, "-")),
		fmt.Sprintf("Instructor  : %s", safe(d.Instructor, "-")),
		fmt.Sprintf("Aircraft    : %s", safe(d.Aircraft, "-")),
		fmt.Sprintf("Date        : %s", safe(d.Date, "-")),
		fmt.Sprintf("Lesson      : %s", safe(d.Lesson, "-")),
		fmt.Sprintf("Booking     : #%d", d.BookingID),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}
	pdf.MultiCell(0, 6, "Description : "+safe(d.Description, "-"), "", "", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Navigation Log")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "B", 9)
	cols := []string{"Waypoint", "Track", "Alt", "TAS", "W/V", "HDG", "GS", "Dist", "ETI", "ETA", "ATA"}
	widths := []float64{30, 15, 15, 15, 18, 15, 15, 15, 15, 15, 12}
	for i, c := range cols {
		pdf.CellFormat(widths[i], 7, c, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for row := 0; row < 10; row++ {
		for i := range cols {
			pdf.CellFormat(widths[i], 7, "", "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Time & Fuel Record")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
	boxes := []string{"Tacho Start", "Tacho End", "Hobbs Start", "Hobbs End", "Fuel Start (L)", "Fuel Added (L)"}
	for i, label := range boxes {
		pdf.CellFormat(30, 10, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 10, "", "1", 0, "L", false, 0, "")
		if i%2 == 1 {
			pdf.Ln(-1)
		}
	}
	pdf.Ln(8)
	pdf.Cell(0, 7, "Pilot signature: ______________________   Authorised by: ______________________")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("SIGNOUT_%d_%s.pdf", d.BookingID, safeFilenamePart(d.Student))
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(d invoiceDocData) ([]byte, string, error) {
	inv := d.Invoice
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : "+inv.InvoiceNumber)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+utils.FormatDate(inv.CreatedAt))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Due        : "+utils.FormatDate(inv.DueDate))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Status     : "+strings.ToUpper(string(inv.Status)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Bill to:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, safe(d.Member, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, safe(d.Email, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(95, 7, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty/Hrs", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Rate", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range inv.FlightCharges {
		pdf.CellFormat(95, 7, l.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, l.Hours.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, utils.FormatMoney(l.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, utils.FormatMoney(l.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	for _, l := range inv.AdditionalCharges {
		pdf.CellFormat(95, 7, l.Name+" ("+l.Category+")", "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", l.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, utils.FormatMoney(l.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, utils.FormatMoney(l.Total()), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	totals := [][2]string{
		{"Flight charges", utils.FormatMoney(inv.FlightChargeTotal)},
		{"Additional charges", utils.FormatMoney(inv.AdditionalChargesTotal)},
		{"Total", utils.FormatMoney(inv.TotalAmount)},
		{"Paid", utils.FormatMoney(inv.Paid)},
		{"Balance due", utils.FormatMoney(inv.Balance)},
	}
	for i, t := range totals {
		style := ""
		if i == 2 || i == 4 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(150, 7, t[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, t[1], "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if len(inv.Payments) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, "Payments received")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, p := range inv.Payments {
			pdf.CellFormat(60, 6, utils.FormatDateTime(p.PaymentDate), "", 0, "L", false, 0, "")
			pdf.CellFormat(60, 6, string(p.PaymentMethod), "", 0, "L", false, 0, "")
			pdf.CellFormat(60, 6, utils.FormatMoney(p.Amount), "", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("INVOICE_%s.pdf", safeFilenamePart(inv.InvoiceNumber))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safePtr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return safe(*v, fallback)
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
