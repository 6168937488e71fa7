package mutate

import (
	"encoding/json"

	"github.com/adityapw/kuitansihub/internal/domain/kuitansi"
)

// KuitansiSpec is the mutation whitelist for one receipt. The owner reference
// (id_user) is silently dropped rather than rejected, matching the edit
// contract: ownership is set once at creation and never altered by an edit.
func KuitansiSpec(current kuitansi.Kuitansi) Spec {
	stringRule := func(field, column string, old func() string) Rule {
		return Rule{
			Column: column,
			Old:    old,
			New: func(raw json.RawMessage) (any, string, error) {
				v, err := DecodeString(field, raw)
				if err != nil {
					return nil, "", err
				}
				return v, v, nil
			},
		}
	}

	return Spec{
		Immutable: map[string]*Error{
			"id_kuitansi": {Message: "Kuitansi ID cannot be changed"},
		},
		Skip: []string{"id_user"},
		Rules: map[string]Rule{
			"nomor_kuitansi": stringRule("nomor_kuitansi", "nomor_kuitansi", func() string { return current.NomorKuitansi }),
			"nama":           stringRule("nama", "nama", func() string { return current.Nama }),
			"terbilang":      stringRule("terbilang", "terbilang", func() string { return current.Terbilang }),
			"deskripsi":      stringRule("deskripsi", "deskripsi", func() string { return current.Deskripsi }),
			"tanggal": {
				Column: "tanggal",
				Old:    func() string { return current.Tanggal.Format(kuitansi.DateLayout) },
				New: func(raw json.RawMessage) (any, string, error) {
					v, err := DecodeString("tanggal", raw)
					if err != nil {
						return nil, "", err
					}
					t, err := kuitansi.ParseDate(v)
					if err != nil {
						return nil, "", err
					}
					return t, t.Format(kuitansi.DateLayout), nil
				},
			},
			"jumlah": {
				Column: "jumlah",
				Old:    func() string { return formatFloat(current.Jumlah) },
				New: func(raw json.RawMessage) (any, string, error) {
					v, err := DecodeNumber("jumlah", raw)
					if err != nil {
						return nil, "", err
					}
					return v, formatFloat(v), nil
				},
			},
		},
	}
}
