package transcript

// defaultLanguages are the platform fallbacks tried after any user-requested tag.
var defaultLanguages = []string{"en", "en-US", "en-GB"}

// LanguagePreferences builds the ordered list of language tags to negotiate
// with, most preferred first: the requested tag (if any) followed by the
// platform defaults. Duplicates are allowed; first match wins downstream, so
// deduplication would change nothing.
func LanguagePreferences(requested string) []string {
	langs := make([]string, 0, len(defaultLanguages)+1)
	if requested != "" {
		langs = append(langs, requested)
	}
	return append(langs, defaultLanguages...)
}
