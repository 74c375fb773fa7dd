package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"email lowercases", Email, "  Owner@CampusStays.NG ", "owner@campusstays.ng"},
		{"email blank", Email, "   ", ""},

		{"name keeps case", Name, "Palm COURT", "Palm COURT"},
		{"name collapses whitespace", Name, "  Ada   Obi\tNwosu ", "Ada Obi Nwosu"},
		{"name blank", Name, "\t", ""},

		{"status folds case", Status, "  Confirmed ", "confirmed"},
		{"status room type", Status, "SELF-CONTAINED", "self-contained"},

		{"phone international", Phone, "+234 803 555 0101", "+2348035550101"},
		{"phone punctuation", Phone, "(0803) 555-0101", "08035550101"},
		{"phone dots", Phone, "080.355.50101", "08035550101"},
		{"phone inner plus dropped", Phone, "12+34", "1234"},
		{"phone blank", Phone, "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}
