package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerCamel(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"FullAddress": "fullAddress",
		"URL":         "url",
		"HTTPServer":  "httpServer",
		"ImageURL":    "imageURL",
		"city":        "city",
		"ID":          "id",
	}

	for in, want := range tests {
		assert.Equal(t, want, ToLowerCamel(in), in)
	}
}
