package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Spices", "spices"},
		{"two words", "Chili Peppers", "chili-peppers"},
		{"punctuation and non-ascii stripped", "Café & Spice!!", "caf-spice"},
		{"whitespace runs collapse", "Herbs   and\tTeas", "herbs-and-teas"},
		{"existing hyphens collapse", "pre--sliced -- meats", "pre-sliced-meats"},
		{"leading and trailing junk", "  --Fresh Produce--  ", "fresh-produce"},
		{"digits survive", "Top 10 Deals", "top-10-deals"},
		{"only junk", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{"Café & Spice!!", "Chili Peppers", "Top 10 Deals"}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once))
		assert.Equal(t, once, Slugify(in))
	}
}
