package races

import "regexp"

var (
	youtubeURLRe  = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\s?]+)`)
	youtubeBareRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// YouTubeID extracts the video identifier from watch?v=, youtu.be/ and embed/
// URL shapes, or accepts a bare 11-character ID. Returns "" when nothing
// matches.
func YouTubeID(url string) string {
	if url == "" {
		return ""
	}
	if m := youtubeURLRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if youtubeBareRe.MatchString(url) {
		return url
	}
	return ""
}

// ThumbnailURL builds the platform's thumbnail location for a video ID.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg"
}
