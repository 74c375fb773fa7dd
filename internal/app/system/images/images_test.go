package images

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1740564293/hostels/abc123.jpg", "hostels/abc123", true},
		{"https://res.cloudinary.com/demo/image/upload/abc123.png", "abc123", true},
		{"https://res.cloudinary.com/demo/image/upload/c_fill,w_300/v17/hostels/x/y.webp", "hostels/x/y", true},
		{"https://res.cloudinary.com/demo/image/upload/w_300/hostels/y.webp", "hostels/y", true},
		{"https://example.com/image/upload/v1/abc.jpg", "", false},
		{"https://res.cloudinary.com/demo/image/upload/", "", false},
		{"not a url at all", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := PublicIDFromURL(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNoop(t *testing.T) {
	assert.Zero(t, Noop{}.DeleteURLs(context.Background(), []string{"https://res.cloudinary.com/demo/image/upload/a.jpg"}))
}
