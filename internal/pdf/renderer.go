// Package pdf renders a stored receipt as a styled, paginated PDF document.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/adityapw/kuitansihub/internal/domain/kuitansi"
)

const logoPath = "logo_indibiz.png"

var months = []string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Render lays out one receipt: company header, title band, boxed receipt
// number, label/value rows, amount highlight, printed-by block, signature
// columns and a validation-code footer. printedBy is the display name of the
// requesting identity.
func Render(k kuitansi.Kuitansi, printedBy string, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetMargins(15, 15, 15)

	if _, err := os.Stat(logoPath); err == nil {
		pdf.ImageOptions(logoPath, 15, 15, 35, 25, false, fpdf.ImageOptions{}, 0, "")
	}

	// Company header
	pdf.SetY(20)
	pdf.SetX(60)
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 100, 150)
	pdf.CellFormat(0, 10, "PT. TELKOM INDONESIA", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(80, 80, 80)
	for _, line := range []string{
		"Jl. Telekomunikasi No. 1, Bandung 40257",
		"Telp: (022) 1234567 | Fax: (022) 1234568",
		"Email: info@telkom.co.id | www.telkom.co.id",
	} {
		pdf.SetX(60)
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	pdf.Ln(10)

	// Double separator rule
	pdf.SetDrawColor(0, 100, 150)
	pdf.SetLineWidth(1.5)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.SetLineWidth(0.5)
	pdf.Line(15, pdf.GetY()+2, 195, pdf.GetY()+2)
	pdf.Ln(8)

	// Title band
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(0, 100, 150)
	pdf.CellFormat(0, 12, "KUITANSI PEMBAYARAN", "", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(8)

	// Receipt number in a box
	pdf.SetFont("Arial", "B", 12)
	pdf.SetDrawColor(0, 100, 150)
	pdf.Rect(15, pdf.GetY(), 180, 10, "D")
	pdf.SetX(20)
	pdf.CellFormat(0, 10, "No. Kuitansi: "+k.NomorKuitansi, "", 1, "L", false, 0, "")
	pdf.Ln(8)

	addLabelValue(pdf, "Telah Diterima Dari", k.Nama, false)
	addLabelValue(pdf, "Tanggal Pembayaran", FormatDateIndonesian(k.Tanggal), false)
	addLabelValue(pdf, "Jumlah Pembayaran", FormatCurrency(k.Jumlah), true)
	addLabelValue(pdf, "Terbilang", k.Terbilang+" Rupiah", false)
	addLabelValue(pdf, "Untuk Pembayaran", k.Deskripsi, false)

	// Amount highlight box
	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetDrawColor(150, 150, 150)
	pdf.Rect(15, pdf.GetY(), 180, 15, "D")
	pdf.SetXY(20, pdf.GetY()+3)
	pdf.CellFormat(0, 10, "TOTAL PEMBAYARAN: "+FormatCurrency(k.Jumlah), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	// Print information
	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Ln(5)
	pdf.CellFormat(0, 6, "Dokumen ini dicetak oleh: "+printedBy, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Tanggal cetak: %s pukul %s WIB", FormatDateIndonesian(now), now.Format("15:04:05")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Sistem: Aplikasi Kuitansi Digital PT. Telkom Indonesia", "", 1, "L", false, 0, "")

	// Signature section, two columns on the same baseline
	pdf.Ln(8)
	pdf.SetTextColor(0, 0, 0)

	currentY := pdf.GetY()
	if currentY > 230 {
		pdf.AddPage()
		currentY = 30
		pdf.SetY(currentY)
	}

	pdf.SetFont("Arial", "", 11)

	pdf.SetXY(120, currentY)
	pdf.CellFormat(70, 6, "Bandung, "+FormatDateIndonesian(now), "", 1, "C", false, 0, "")

	pdf.Ln(2)

	labelY := pdf.GetY()
	pdf.SetXY(30, labelY)
	pdf.CellFormat(70, 6, "Penerima,", "", 0, "C", false, 0, "")
	pdf.SetXY(120, labelY)
	pdf.CellFormat(70, 6, "Petugas,", "", 0, "C", false, 0, "")

	pdf.Ln(15)
	lineY := pdf.GetY()
	pdf.SetXY(30, lineY)
	pdf.CellFormat(70, 6, "(_________________________)", "", 0, "C", false, 0, "")
	pdf.SetXY(120, lineY)
	pdf.CellFormat(70, 6, "(_________________________)", "", 0, "C", false, 0, "")

	pdf.Ln(8)
	nameY := pdf.GetY()
	pdf.SetXY(30, nameY)
	pdf.CellFormat(70, 6, k.Nama, "", 0, "C", false, 0, "")
	pdf.SetXY(120, nameY)
	pdf.CellFormat(70, 6, printedBy, "", 0, "C", false, 0, "")

	// Footer
	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 4, "Dokumen ini dibuat secara elektronik dan sah tanpa tanda tangan basah.", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4, "Kode Validasi: "+k.NomorKuitansi+"-"+now.Format("20060102"), "", 1, "C", false, 0, "")

	// Page border
	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(10, 10, 190, 277, "D")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func addLabelValue(pdf *fpdf.Fpdf, label, value string, isAmount bool) {
	currentY := pdf.GetY()

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(60, 60, 60)
	pdf.SetXY(20, currentY)
	pdf.CellFormat(50, 8, label, "", 0, "L", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(5, 8, ":", "", 0, "L", false, 0, "")

	if isAmount {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(200, 0, 0)
	} else {
		pdf.SetFont("Arial", "", 11)
		pdf.SetTextColor(0, 0, 0)
	}

	// long values wrap into a multi-line cell
	if len(value) > 80 {
		pdf.SetXY(75, currentY)
		pdf.MultiCell(115, 8, value, "", "L", false)
		pdf.Ln(2)
	} else {
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}
}

// FormatDateIndonesian renders a date as "2 Januari 2024".
func FormatDateIndonesian(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// FormatCurrency renders an amount as "Rp 1.250.000" (dot thousands separator).
func FormatCurrency(amount float64) string {
	n := int64(amount)

	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprintf("%d", n)

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return "Rp " + sign + strings.Join(groups, ".")
}
