package transform

import "unicode"

const (
	maskChar = '*'
	// IBANMask replaces everything between the visible IBAN prefix and suffix.
	IBANMask = "****"

	cardVisible = 4
	ibanVisible = 4
)

// MaskCardNumber hides every digit except those in the last four characters.
// Separators keep their positions, so length and grouping are preserved.
func MaskCardNumber(s string) string {
	r := []rune(s)
	if len(r) <= cardVisible {
		return s
	}
	for i := 0; i < len(r)-cardVisible; i++ {
		if unicode.IsDigit(r[i]) {
			r[i] = maskChar
		}
	}
	return string(r)
}

// MaskIBAN keeps the first and last four characters and puts a fixed-width
// token between them. Values shorter than eight characters are returned as is.
func MaskIBAN(s string) string {
	r := []rune(s)
	if len(r) < 2*ibanVisible {
		return s
	}
	return string(r[:ibanVisible]) + IBANMask + string(r[len(r)-ibanVisible:])
}
