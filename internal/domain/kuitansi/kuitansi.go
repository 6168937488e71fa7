package kuitansi

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("Invalid date format. Use YYYY-MM-DD")

// Kuitansi is a payment receipt. IDUser is the owning creator and is set once
// at creation; edits never touch it.
type Kuitansi struct {
	IDKuitansi    int64     `json:"id_kuitansi"`
	NomorKuitansi string    `json:"nomor_kuitansi"`
	Nama          string    `json:"nama"`
	Tanggal       time.Time `json:"-"`
	Jumlah        float64   `json:"jumlah"`
	Terbilang     string    `json:"terbilang"`
	Deskripsi     string    `json:"deskripsi"`
	IDUser        int64     `json:"id_user"`
}

// ParseDate validates the ISO calendar date used by tanggal fields.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	return t, nil
}

// Serialized is the wire shape: tanggal formatted as YYYY-MM-DD.
type Serialized struct {
	IDKuitansi    int64   `json:"id_kuitansi"`
	NomorKuitansi string  `json:"nomor_kuitansi"`
	Nama          string  `json:"nama"`
	Tanggal       string  `json:"tanggal"`
	Jumlah        float64 `json:"jumlah"`
	Terbilang     string  `json:"terbilang"`
	Deskripsi     string  `json:"deskripsi"`
	IDUser        int64   `json:"id_user"`
}

func (k Kuitansi) Serialize() Serialized {
	return Serialized{
		IDKuitansi:    k.IDKuitansi,
		NomorKuitansi: k.NomorKuitansi,
		Nama:          k.Nama,
		Tanggal:       k.Tanggal.Format(DateLayout),
		Jumlah:        k.Jumlah,
		Terbilang:     k.Terbilang,
		Deskripsi:     k.Deskripsi,
		IDUser:        k.IDUser,
	}
}

func SerializeAll(list []Kuitansi) []Serialized {
	out := make([]Serialized, 0, len(list))
	for _, k := range list {
		out = append(out, k.Serialize())
	}
	return out
}
