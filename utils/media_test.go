package utils

import "testing"

func TestEmbedVideoURL(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=abc123&t=10": "https://www.youtube.com/embed/abc123",
		"https://www.youtube.com/embed/abc123":        "https://www.youtube.com/embed/abc123",
		"https://vimeo.com/42":                        "https://vimeo.com/42",
		"https://www.youtube.com/watch?list=x":        "https://www.youtube.com/watch?list=x",
	}
	for in, want := range cases {
		if got := EmbedVideoURL(in); got != want {
			t.Errorf("EmbedVideoURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMediaSources(t *testing.T) {
	for _, ok := range []string{"https://cdn.example.com/a.jpg", "/uploads/a.png", "data:image/png;base64,AA"} {
		if !IsImageSource(ok) {
			t.Errorf("IsImageSource(%q) = false", ok)
		}
	}
	for _, bad := range []string{"ftp://host/a.jpg", "uploads/a.png", "data:video/mp4;base64,AA", ""} {
		if IsImageSource(bad) {
			t.Errorf("IsImageSource(%q) = true", bad)
		}
	}
	if !IsMediaSource("data:video/mp4;base64,AA") {
		t.Error("video data should be a media source")
	}
	if IsVideoURL("https://example.com/video") || !IsVideoURL("https://youtube.com/watch?v=x") {
		t.Error("IsVideoURL mismatch")
	}
}
