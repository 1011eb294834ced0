// Package i18n holds the interface strings in every supported language.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported interface languages, in preference order
var supported = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

// apiLanguages maps an interface language to the TMDB language parameter
var apiLanguages = map[language.Tag]string{
	language.English:           "en-US",
	language.SimplifiedChinese: "zh-CN",
}

var (
	matcher = language.NewMatcher(supported)
	cat     = buildCatalog()
)

// Translator formats interface strings for one language
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a translator for the closest supported match of lang. lang may
// be a BCP 47 tag ("zh-Hans"), a POSIX locale ("zh_CN.UTF-8") or empty, in
// which case English is used.
func New(lang string) *Translator {
	tag := Match(lang)
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// Match resolves lang to one of the supported tags
func Match(lang string) language.Tag {
	lang = strings.TrimSpace(lang)
	// POSIX locales: strip encoding and modifier, use '-' separators
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	lang = strings.ReplaceAll(lang, "_", "-")
	if lang == "" || lang == "C" || lang == "POSIX" {
		return supported[0]
	}

	requested, err := language.Parse(lang)
	if err != nil {
		return supported[0]
	}
	_, idx, conf := matcher.Match(requested)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

// T formats the message for key. Unknown keys are returned as-is.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Tag returns the matched interface language
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// TMDBLanguage returns the API language matching the interface ("en-US", "zh-CN")
func (t *Translator) TMDBLanguage() string {
	return apiLanguages[t.tag]
}

// Keys returns every message key with an English translation
func Keys() []string {
	keys := make([]string, 0, len(english))
	for k := range english {
		keys = append(keys, k)
	}
	return keys
}

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range english {
		b.SetString(language.English, key, msg)
	}
	for key, msg := range chinese {
		b.SetString(language.SimplifiedChinese, key, msg)
	}
	return b
}
