package registry

import (
	"strings"
	"unicode"
)

// FilterSlug keeps only characters valid in a slug and lower-cases the result
func FilterSlug(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch {
		case c == '_' || c == '-':
			b.WriteRune(c)
		case unicode.IsLetter(c) || unicode.IsDigit(c):
			b.WriteRune(unicode.ToLower(c))
		}
	}
	return b.String()
}

// FilterText strips free-text fields down to a safe character set.
// Newlines are flattened to spaces.
func FilterText(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch {
		case c == '\n':
			b.WriteRune(' ')
		case strings.ContainsRune(" _.-,!()/=:+?#%|", c):
			b.WriteRune(c)
		case unicode.IsLetter(c) || unicode.IsDigit(c):
			b.WriteRune(c)
		}
	}
	return b.String()
}

// sanitize cleans all free-form fields of the input in place
func (self *ListingInput) sanitize() {
	self.Slug = FilterSlug(self.Slug)
	self.Title = FilterText(self.Title)
	self.Oneliner = FilterText(self.Oneliner)
	self.Description = FilterText(self.Description)
}
