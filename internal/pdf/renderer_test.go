package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/adityapw/kuitansihub/internal/domain/kuitansi"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{1000, "Rp 1.000"},
		{1250000, "Rp 1.250.000"},
		{1000000000, "Rp 1.000.000.000"},
		{-25000, "Rp -25.000"},
		{1250000.99, "Rp 1.250.000"},
	}

	for _, tt := range tests {
		if got := FormatCurrency(tt.amount); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatDateIndonesian(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "2 Januari 2024"},
		{time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), "31 Desember 2023"},
		{time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC), "17 Agustus 2024"},
	}

	for _, tt := range tests {
		if got := FormatDateIndonesian(tt.date); got != tt.want {
			t.Errorf("FormatDateIndonesian(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	k := kuitansi.Kuitansi{
		IDKuitansi:    7,
		NomorKuitansi: "KW-007",
		Nama:          "Budi Santoso",
		Tanggal:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Jumlah:        1250000,
		Terbilang:     "Satu Juta Dua Ratus Lima Puluh Ribu",
		Deskripsi:     "Pembayaran layanan internet bulan Maret",
		IDUser:        2,
	}

	doc, err := Render(k, "Ops Petugas", time.Date(2024, 3, 16, 10, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
	if len(doc) < 1000 {
		t.Fatalf("document suspiciously small: %d bytes", len(doc))
	}
}

func TestRenderLongDescriptionWraps(t *testing.T) {
	long := bytes.Repeat([]byte("pembayaran layanan "), 10)

	k := kuitansi.Kuitansi{
		NomorKuitansi: "KW-008",
		Nama:          "Budi",
		Tanggal:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Jumlah:        5000,
		Terbilang:     "Lima Ribu",
		Deskripsi:     string(long),
	}

	doc, err := Render(k, "Ops", time.Now())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
}
