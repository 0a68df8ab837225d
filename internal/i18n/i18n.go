// Package i18n is the flat translation dictionary used by the front end.
// Lookups never fail: a missing key falls back to the default language and
// then to the key itself.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iliyamo/dacha-booking/internal/model"
)

// Language is a two-letter language code.
type Language string

const (
	Uzbek   Language = "uz"
	Russian Language = "ru"
	English Language = "en"
)

// Default is used when nothing better matches.
const Default = Uzbek

// Supported lists the languages with a dictionary, default first.
var Supported = []Language{Uzbek, Russian, English}

var (
	tags    = []language.Tag{language.Uzbek, language.Russian, language.English}
	matcher = language.NewMatcher(tags)
)

// Tag returns the x/text tag for l.
func (l Language) Tag() language.Tag {
	switch l {
	case Russian:
		return language.Russian
	case English:
		return language.English
	default:
		return language.Uzbek
	}
}

// Valid reports whether l has a dictionary.
func (l Language) Valid() bool {
	_, ok := dictionaries[l]
	return ok
}

// ParseLanguage picks the supported language closest to s.  s may be a bare
// code ("ru"), a regional tag ("ru-RU", "uz-Latn-UZ") or an Accept-Language
// list.  Anything unrecognised yields Default.
func ParseLanguage(s string) Language {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default
	}
	wanted, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(wanted) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(wanted...)
	if conf == language.No {
		return Default
	}
	return Supported[idx]
}

// Lookup translates key into l.
func Lookup(l Language, key string) string {
	if v, ok := dictionaries[l][key]; ok {
		return v
	}
	if v, ok := dictionaries[Default][key]; ok {
		return v
	}
	return key
}

// FormatPrice renders an amount with the language's digit grouping and
// currency name, e.g. "1,050,000 UZS" in English.
func FormatPrice(l Language, amount int64) string {
	p := message.NewPrinter(l.Tag())
	return p.Sprintf("%d", amount) + " " + Lookup(l, "currency")
}

// AmenityLabel returns the display name of an amenity.  Keys outside the
// known set are shown as they are stored.
func AmenityLabel(l Language, a model.Amenity) string {
	switch a {
	case model.AmenityPool, model.AmenitySauna, model.AmenityBBQ,
		model.AmenityWifi, model.AmenityAC, model.AmenityKitchen:
		return Lookup(l, "amenity."+string(a))
	default:
		return string(a)
	}
}

// RegionLabel returns the display name of a region.
func RegionLabel(l Language, r model.Region) string {
	if !r.Valid() {
		return Lookup(l, "region.any")
	}
	return Lookup(l, "region."+string(r))
}
