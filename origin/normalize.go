package origin

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Vendor is a canonical vendor name and the lowercase keywords that identify it.
type Vendor struct {
	Name     string
	Keywords []string
}

// Order matters: the first vendor with a matching keyword wins.
var vendors = []Vendor{
	{Name: "OpenAI", Keywords: []string{"openai", "gpt", "chatgpt"}},
	{Name: "Google", Keywords: []string{"google", "gemini", "synthid"}},
	{Name: "Adobe", Keywords: []string{"adobe", "firefly"}},
	{Name: "Microsoft", Keywords: []string{"microsoft", "bing"}},
}

// Vendors returns a copy of the vendor table in match order.
func Vendors() []Vendor {
	out := make([]Vendor, len(vendors))
	for i, v := range vendors {
		out[i] = Vendor{Name: v.Name, Keywords: append([]string(nil), v.Keywords...)}
	}
	return out
}

// NormalizeVendor maps a generator name to a canonical vendor.
// Names that match no vendor are returned unchanged; "" stays "".
func NormalizeVendor(name string) string {
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	for _, v := range vendors {
		for _, kw := range v.Keywords {
			if strings.Contains(lower, kw) {
				return v.Name
			}
		}
	}
	return name
}

// FormatLabel renders a hyphenated tag for display: "ai-generated" becomes
// "AI Generated". Each word has its first character title-cased and the rest
// left as is; the word "ai" in any case renders as "AI".
func FormatLabel(tag string) string {
	caser := cases.Title(language.Und, cases.NoLower)
	words := strings.Split(tag, "-")
	for i, w := range words {
		if strings.EqualFold(w, "ai") {
			words[i] = "AI"
			continue
		}
		_, n := utf8.DecodeRuneInString(w)
		words[i] = caser.String(w[:n]) + w[n:]
	}
	return strings.Join(words, " ")
}

// Label is FormatLabel applied to c.
func (c Classification) Label() string {
	return FormatLabel(string(c))
}
