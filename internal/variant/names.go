package variant

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const fallbackName = "Variant"

var nameTitler = cases.Title(language.English)

// NameFromURL derives a display label from an asset locator: the final path
// segment without its extension, separators folded to spaces, title-cased.
// Returns "Variant" when nothing usable remains.
func NameFromURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return fallbackName
	}

	base := trimmed
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Path != "" {
		base = parsed.Path
	}
	base = path.Base(base)
	if base == "/" || base == "." {
		return fallbackName
	}
	base = strings.TrimSuffix(base, path.Ext(base))

	replacer := strings.NewReplacer("-", " ", "_", " ", "%20", " ", "+", " ")
	cleaned := strings.Fields(replacer.Replace(base))
	if len(cleaned) == 0 {
		return fallbackName
	}
	return nameTitler.String(strings.Join(cleaned, " "))
}
