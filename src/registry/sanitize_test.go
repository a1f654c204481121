package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSlug(t *testing.T) {
	assert.Equal(t, "my-app_2", FilterSlug("My-App_2"))
	assert.Equal(t, "noscript", FilterSlug("no<script>"))
	assert.Equal(t, "", FilterSlug("!@#$"))
	assert.Equal(t, "späß", FilterSlug("SpÄß"))
}

func TestFilterText(t *testing.T) {
	assert.Equal(t, "Hello, world!", FilterText("Hello, world!"))
	assert.Equal(t, "a b", FilterText("a\nb"))
	assert.Equal(t, "alertx", FilterText("<alert>\"x\""))
	assert.Equal(t, "50% off: 1+1=2", FilterText("50% off: 1+1=2"))
}

func TestSanitizeInput(t *testing.T) {
	input := &ListingInput{
		Slug:        "My App!",
		Title:       "My\nApp",
		Oneliner:    "<b>best</b>",
		Description: "a;b",
	}
	input.sanitize()

	assert.Equal(t, "myapp", input.Slug)
	assert.Equal(t, "My App", input.Title)
	assert.Equal(t, "bbest/b", input.Oneliner)
	assert.Equal(t, "ab", input.Description)
}
