package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	httpURLPattern  = regexp.MustCompile(`^https?://.+`)
	videoURLPattern = regexp.MustCompile(`^https?://(www\.)?(youtube\.com/(embed/|watch\?v=)|vimeo\.com/)`)
)

// IsImageSource accepts absolute http(s) URLs, local upload paths and inline image data.
func IsImageSource(v string) bool {
	return httpURLPattern.MatchString(v) || strings.HasPrefix(v, "/uploads/") || strings.HasPrefix(v, "data:image/")
}

// IsMediaSource is IsImageSource widened to inline video data.
func IsMediaSource(v string) bool {
	return IsImageSource(v) || strings.HasPrefix(v, "data:video/")
}

// IsVideoURL accepts YouTube embed or watch URLs and Vimeo URLs.
func IsVideoURL(v string) bool {
	return videoURLPattern.MatchString(v)
}

// EmbedVideoURL rewrites a YouTube watch URL to its embed form. Other URLs are returned unchanged.
func EmbedVideoURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "youtube.com/watch") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if id := u.Query().Get("v"); id != "" {
		return "https://www.youtube.com/embed/" + id
	}
	return raw
}
