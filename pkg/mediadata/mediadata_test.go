package mediadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideoId(t *testing.T) {
	tests := []struct {
		url     string
		videoId string
		ok      bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ", true},
		{"https://example.com/movie.mp4", "", false},
	}

	for _, tt := range tests {
		videoId, ok := VideoId(tt.url)
		assert.Equal(t, tt.ok, ok, tt.url)
		assert.Equal(t, tt.videoId, videoId, tt.url)
	}
}

func TestThumbnail(t *testing.T) {
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", Thumbnail("https://youtu.be/dQw4w9WgXcQ"))
	assert.Equal(t, "", Thumbnail("https://example.com/movie.mp4"))
}

func TestEmbedURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", EmbedURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.Equal(t, "https://example.com/movie.mp4", EmbedURL("https://example.com/movie.mp4"))
}
