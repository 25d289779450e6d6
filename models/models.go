package models

import (
	"fmt"
	"time"
)

type Platform string

const (
	Facebook Platform = "facebook"
	Twitter  Platform = "twitter"
)

// DefaultPlatforms is the publishing order for a run. Platforms are
// processed sequentially; state is saved once after the last one.
var DefaultPlatforms = []Platform{Facebook, Twitter}

type PostType string

const (
	PostTypeDaily   PostType = "daily"
	PostTypeFriday  PostType = "friday"
	PostTypeRamadan PostType = "ramadan"
)

func ParsePostType(s string) (PostType, error) {
	switch PostType(s) {
	case PostTypeDaily, PostTypeFriday, PostTypeRamadan:
		return PostType(s), nil
	default:
		return "", fmt.Errorf("unknown post type %q (expected daily, friday or ramadan)", s)
	}
}

// Post is a pre-authored content item from a posts.yaml rotation file.
type Post struct {
	Text           string   `yaml:"text" json:"text"`
	FacebookFooter string   `yaml:"facebook_footer,omitempty" json:"facebook_footer,omitempty"`
	Hashtags       []string `yaml:"hashtags,omitempty" json:"hashtags,omitempty"`
	Platforms      []string `yaml:"platforms" json:"platforms"`
}

func (p *Post) HasPlatform(platform Platform) bool {
	for _, name := range p.Platforms {
		if name == string(platform) {
			return true
		}
	}
	return false
}

// PreparedPost is a content item formatted for one platform, ready to
// hand to a publisher. An empty ImagePath means a text-only post.
type PreparedPost struct {
	Platform  Platform
	Text      string
	ImagePath string
}

// PlatformState is the rotation cursor for a single platform.
type PlatformState struct {
	PostIndex  int `yaml:"post_index" json:"post_index"`
	ImageIndex int `yaml:"image_index" json:"image_index"`
}

// RotationState maps a platform name to its rotation cursor. Keys are
// plain strings so entries for platforms this build does not publish to
// survive a load/save round trip.
type RotationState map[string]*PlatformState

// For returns the cursor for platform, creating a zero cursor when absent.
func (s RotationState) For(p Platform) *PlatformState {
	ps, ok := s[string(p)]
	if !ok {
		ps = &PlatformState{}
		s[string(p)] = ps
	}
	return ps
}

type PublishResult struct {
	Platform Platform `json:"platform"`
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	PostID   string   `json:"post_id,omitempty"`
}

// RunRecord is one posting run as stored in the optional history database.
type RunRecord struct {
	ID         string          `json:"id"`
	PostType   PostType        `json:"post_type"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Results    []PublishResult `json:"results"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
}
