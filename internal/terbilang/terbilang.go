// Package terbilang spells monetary amounts in Indonesian, used to fill the
// terbilang field of a receipt when the creator does not supply one.
package terbilang

import "strings"

var units = []string{"", "Satu", "Dua", "Tiga", "Empat", "Lima", "Enam", "Tujuh", "Delapan", "Sembilan", "Sepuluh", "Sebelas"}

// Spell renders the integer part of an amount in words, e.g.
// 1250000 -> "Satu Juta Dua Ratus Lima Puluh Ribu".
func Spell(amount float64) string {
	n := int64(amount)

	if n <= 0 {
		return "Nol"
	}

	return spell(n)
}

func spell(n int64) string {
	switch {
	case n < 12:
		return units[n]
	case n < 20:
		return join(spell(n-10), "Belas")
	case n < 100:
		return join(spell(n/10), "Puluh", spell(n%10))
	case n < 200:
		return join("Seratus", spell(n-100))
	case n < 1_000:
		return join(spell(n/100), "Ratus", spell(n%100))
	case n < 2_000:
		return join("Seribu", spell(n-1_000))
	case n < 1_000_000:
		return join(spell(n/1_000), "Ribu", spell(n%1_000))
	case n < 1_000_000_000:
		return join(spell(n/1_000_000), "Juta", spell(n%1_000_000))
	case n < 1_000_000_000_000:
		return join(spell(n/1_000_000_000), "Miliar", spell(n%1_000_000_000))
	default:
		return join(spell(n/1_000_000_000_000), "Triliun", spell(n%1_000_000_000_000))
	}
}

func join(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
