package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectPathFromURLRoundTrip(t *testing.T) {
	url := PublicURL("my-bucket", "avatars/u1/abc.png")
	assert.Equal(t, "https://storage.googleapis.com/my-bucket/avatars/u1/abc.png", url)
	assert.Equal(t, "avatars/u1/abc.png", ObjectPathFromURL("my-bucket", url))
}

func TestObjectPathFromURLForeignBucket(t *testing.T) {
	url := PublicURL("other-bucket", "avatars/u1/abc.png")
	assert.Equal(t, "", ObjectPathFromURL("my-bucket", url))
	assert.Equal(t, "", ObjectPathFromURL("my-bucket", "https://example.com/x.png"))
}
