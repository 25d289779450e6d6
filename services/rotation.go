package services

import (
	"strings"

	"SocialAutoPoster/models"
)

// FormatPost renders a content item for one platform. The Facebook footer
// applies to Facebook only; hashtags apply everywhere and are appended as
// a single "#a #b #c" line.
func FormatPost(post *models.Post, platform models.Platform) string {
	text := post.Text

	if platform == models.Facebook && post.FacebookFooter != "" {
		text += "\n\n" + post.FacebookFooter
	}

	if len(post.Hashtags) > 0 {
		tags := make([]string, len(post.Hashtags))
		for i, tag := range post.Hashtags {
			tags[i] = "#" + tag
		}
		text += "\n\n" + strings.Join(tags, " ")
	}

	return text
}

// nextPost returns the next rotation item listing platform, scanning from
// cursor to the end and wrapping to the start, together with the cursor
// value to store after a successful send. When no item targets the
// platform it returns nil and a reset cursor.
func nextPost(posts []models.Post, platform models.Platform, cursor int) (*models.Post, int) {
	if cursor < 0 || cursor > len(posts) {
		cursor = 0
	}

	for i := cursor; i < len(posts); i++ {
		if posts[i].HasPlatform(platform) {
			return &posts[i], i + 1
		}
	}
	for i := 0; i < cursor && i < len(posts); i++ {
		if posts[i].HasPlatform(platform) {
			return &posts[i], i + 1
		}
	}

	return nil, 0
}
