package mediadata

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"golang.org/x/net/html"
)

// ItemData holds everything that can be derived from a pasted media URL.
type ItemData struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

var ytVideoIdRe = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\s?]+)`)

var httpClient = &http.Client{Timeout: 5 * time.Second}

// VideoId extracts the YouTube video id from a watch, share or embed URL.
func VideoId(videoUrl string) (string, bool) {
	m := ytVideoIdRe.FindStringSubmatch(videoUrl)
	if m == nil {
		return "", false
	}

	return m[1], true
}

// Thumbnail returns the thumbnail URL for the video, or "" when the URL is
// not recognized.
func Thumbnail(videoUrl string) string {
	videoId, ok := VideoId(videoUrl)
	if !ok {
		return ""
	}

	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoId)
}

// EmbedURL rewrites a recognized video URL into its embeddable form; other
// URLs pass through unchanged.
func EmbedURL(videoUrl string) string {
	videoId, ok := VideoId(videoUrl)
	if !ok {
		return videoUrl
	}

	return fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=1", videoId)
}

// Get resolves title and thumbnail for the URL. Title resolution fetches the
// video page and is best effort.
func Get(videoUrl string) (*ItemData, error) {
	videoId, ok := VideoId(videoUrl)
	if !ok {
		return &ItemData{}, nil
	}

	data := ItemData{
		ThumbnailURL: fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoId),
	}

	title, err := getTitleFromPage(videoId)
	if err != nil {
		return &data, fmt.Errorf("failed to get video title: %w", err)
	}
	data.Title = title

	return &data, nil
}

func getTitleFromPage(videoId string) (string, error) {
	resp, err := httpClient.Get("https://youtu.be/" + videoId)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", err
	}

	return getTitle(doc), nil
}

func getTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
		return n.FirstChild.Data
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := getTitle(c); title != "" {
			return title
		}
	}
	return ""
}
