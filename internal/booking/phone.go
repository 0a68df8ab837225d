package booking

import "strings"

const (
    countryPrefix = "998"
    localDigits   = 9
)

// NormalizePhone renders raw into the +998 XX XXX XX XX form the backend
// and the operators expect.  Non-digits are dropped, a leading 998 country
// prefix is removed and the local part is cut to nine digits.  Partial
// numbers render the groups typed so far, so "9012" becomes "+998 90 12".
func NormalizePhone(raw string) string {
    digits := LocalDigits(raw)
    var b strings.Builder
    b.WriteString("+" + countryPrefix)
    groups := []int{2, 3, 2, 2}
    pos := 0
    for _, n := range groups {
        if pos >= len(digits) {
            break
        }
        end := pos + n
        if end > len(digits) {
            end = len(digits)
        }
        b.WriteByte(' ')
        b.WriteString(digits[pos:end])
        pos = end
    }
    return b.String()
}

// LocalDigits returns the national part of raw: at most nine digits with
// the country prefix removed.
func LocalDigits(raw string) string {
    var b strings.Builder
    for _, r := range raw {
        if r >= '0' && r <= '9' {
            b.WriteRune(r)
        }
    }
    digits := strings.TrimPrefix(b.String(), countryPrefix)
    if len(digits) > localDigits {
        digits = digits[:localDigits]
    }
    return digits
}
