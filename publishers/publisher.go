package publishers

import (
	"context"
	"fmt"

	"SocialAutoPoster/config"
	"SocialAutoPoster/models"
)

// PlatformPublisher publishes one prepared post to a single platform.
// Publish never panics and never returns an error: every outcome,
// including vendor rejections, is folded into the PublishResult so the
// run can log it and move on to the next platform.
type PlatformPublisher interface {
	Platform() models.Platform
	Publish(ctx context.Context, post *models.PreparedPost) models.PublishResult
}

// New returns the publisher for a platform, configured from cfg.
func New(platform models.Platform, cfg *config.Config) (PlatformPublisher, error) {
	switch platform {
	case models.Facebook:
		return NewFacebookPublisher(cfg.Facebook, nil), nil
	case models.Twitter:
		return NewTwitterPublisher(cfg.Twitter, nil), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}
}
