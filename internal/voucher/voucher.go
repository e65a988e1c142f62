// Package voucher renders booking vouchers as PDF documents.
package voucher

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/roamio/tour-booking/internal/repository"
)

// Build renders a confirmed booking as a one-page A4 voucher and returns
// the PDF bytes with a suggested filename. The caller guarantees the
// booking is confirmed and owned by the requesting user.
func Build(b *repository.BookingDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Voucher", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TOUR BOOKING VOUCHER")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Reference : #%d", b.ID),
		fmt.Sprintf("Package           : %s", safe(b.PackageName)),
		fmt.Sprintf("Destination       : %s, %s", safe(b.DestinationName), safe(b.Country)),
		fmt.Sprintf("Travel Date       : %s", b.TravelDate.Format("02 Jan 2006")),
		fmt.Sprintf("Travellers        : %d", b.NumberOfPeople),
		fmt.Sprintf("Total Paid        : %.2f", b.TotalAmount),
	}
	if b.PaymentDate != nil {
		lines = append(lines, fmt.Sprintf("Payment Date      : %s", b.PaymentDate.Format("02 Jan 2006 15:04")))
	}
	if b.CardLastFour != nil {
		lines = append(lines, fmt.Sprintf("Paid With         : card ending %s", *b.CardLastFour))
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, "Please present this voucher together with a valid ID at the meeting point.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("voucher-booking-%d.pdf", b.ID)
	return buf.Bytes(), name, nil
}

func safe(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
