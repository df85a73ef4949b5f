package directory

import "sort"

// Localized returns values[locale], then values[fallback], then the value of
// the lexically first locale present. Missing maps yield "".
func Localized(values map[string]string, locale, fallback string) string {
	if value := values[locale]; value != "" {
		return value
	}
	if value := values[fallback]; value != "" {
		return value
	}
	keys := make([]string, 0, len(values))
	for key, value := range values {
		if value != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return values[keys[0]]
}
