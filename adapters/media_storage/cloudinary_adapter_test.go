package media_storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{
			name: "versioned url with folder",
			url:  "https://res.cloudinary.com/demo/image/upload/v1723456789/portfolio/abc123.png",
			want: "portfolio/abc123",
			ok:   true,
		},
		{
			name: "nested folder",
			url:  "https://res.cloudinary.com/demo/image/upload/v1/portfolio/projects/xyz.jpg",
			want: "portfolio/projects/xyz",
			ok:   true,
		},
		{
			name: "no version segment",
			url:  "https://res.cloudinary.com/demo/image/upload/portfolio/abc123.webp",
			want: "portfolio/abc123",
			ok:   true,
		},
		{
			name: "segment starting with v but not a version",
			url:  "https://res.cloudinary.com/demo/image/upload/vault/abc.png",
			want: "vault/abc",
			ok:   true,
		},
		{
			name: "foreign url",
			url:  "https://example.com/images/photo.png",
			want: "",
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := publicIDFromURL(tc.url)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
