package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceTypeFor(t *testing.T) {
	assert.Equal(t, ResourceImage, ResourceTypeFor("image/jpeg"))
	assert.Equal(t, ResourceImage, ResourceTypeFor("image/png"))
	assert.Equal(t, ResourceImage, ResourceTypeFor("application/pdf"))
	assert.Equal(t, ResourceRaw, ResourceTypeFor("application/msword"))
	assert.Equal(t, ResourceRaw, ResourceTypeFor("application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
}

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			"photo delivery url",
			"https://res.cloudinary.com/demo/image/upload/v123/family-portal/photos/abc123.jpg",
			"family-portal/photos/abc123",
		},
		{
			"document without extension",
			"https://res.cloudinary.com/demo/image/upload/v123/family-portal/documents/doc456",
			"family-portal/documents/doc456",
		},
		{
			"thumbnail",
			"https://res.cloudinary.com/demo/image/upload/c_fill,h_300,w_300/family-portal/thumbnails/xyz.png",
			"family-portal/thumbnails/xyz",
		},
		{"missing folder path", "photos/abc.jpg", ""},
		{"too short", "nope", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PublicIDFromURL(tc.url))
		})
	}
}
