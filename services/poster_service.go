package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"SocialAutoPoster/config"
	"SocialAutoPoster/content"
	"SocialAutoPoster/database"
	"SocialAutoPoster/models"
	"SocialAutoPoster/publishers"
	"SocialAutoPoster/state"
	"SocialAutoPoster/utils"
)

// PosterService runs one posting pass: pick the next due rotation item per
// platform, publish it, and advance the persisted cursors. Platforms are
// handled sequentially; a failure on one never blocks the others.
type PosterService struct {
	cfg        *config.Config
	publishers map[models.Platform]publishers.PlatformPublisher
	db         *database.Database
}

// NewPosterService builds the service with real publishers. db may be nil,
// which disables run history.
func NewPosterService(cfg *config.Config, db *database.Database) *PosterService {
	pubs := make(map[models.Platform]publishers.PlatformPublisher, len(models.DefaultPlatforms))
	for _, platform := range models.DefaultPlatforms {
		pub, err := publishers.New(platform, cfg)
		if err != nil {
			utils.Errorf("skipping platform %s: %v", platform, err)
			continue
		}
		pubs[platform] = pub
	}

	return &PosterService{
		cfg:        cfg,
		publishers: pubs,
		db:         db,
	}
}

// Run executes one posting pass for the given category. It returns the
// per-platform results and an error only when nothing could be attempted
// or every attempted platform failed; partial failure is a normal outcome
// (the next scheduled invocation is the retry).
func (ps *PosterService) Run(ctx context.Context, postType models.PostType) ([]models.PublishResult, error) {
	utils.Infof("Starting %s posts", postType)
	started := time.Now()
	defer func() {
		utils.Infof("Finished %s posts", postType)
	}()

	posts, err := content.LoadPosts(ps.cfg.Paths.ContentDir, postType)
	if err != nil {
		utils.Errorf("Error loading %s posts: %v", postType, err)
		return nil, err
	}
	images := content.ListImages(ps.cfg.Paths.ContentDir, postType)

	statePath := state.FileFor(ps.cfg.Paths.StateDir, postType)
	st := state.Load(statePath)

	var results []models.PublishResult
	for _, platform := range models.DefaultPlatforms {
		res := ps.publishNext(ctx, platform, posts, images, st)
		if res == nil {
			continue
		}
		results = append(results, *res)
	}

	if err := state.Save(statePath, st); err != nil {
		utils.Errorf("Error saving state to %s: %v", statePath, err)
	}

	ps.recordRun(postType, started, results)

	if len(results) > 0 && allFailed(results) {
		return results, fmt.Errorf("all platforms failed for %s run", postType)
	}
	return results, nil
}

// publishNext handles a single platform. It returns nil when the rotation
// holds nothing for the platform or no publisher is configured for it.
// Cursors advance only after a successful send, so a failed item is
// retried by the next invocation.
func (ps *PosterService) publishNext(ctx context.Context, platform models.Platform, posts []models.Post, images []string, st models.RotationState) *models.PublishResult {
	pub, ok := ps.publishers[platform]
	if !ok {
		return nil
	}

	cursor := st.For(platform)
	post, nextIndex := nextPost(posts, platform, cursor.PostIndex)
	if post == nil {
		utils.Warnf("No posts found for %s. Skipping.", platform)
		return nil
	}

	imagePath, nextImage := content.ImageAt(images, cursor.ImageIndex)

	prepared := &models.PreparedPost{
		Platform:  platform,
		Text:      FormatPost(post, platform),
		ImagePath: imagePath,
	}

	result := pub.Publish(ctx, prepared)
	if result.Success {
		cursor.PostIndex = nextIndex
		cursor.ImageIndex = nextImage
		utils.Infof("%s: %s (post_id=%s)", platform, result.Message, result.PostID)
	} else {
		utils.Errorf("%s: %s", platform, result.Message)
	}

	return &result
}

func (ps *PosterService) recordRun(postType models.PostType, started time.Time, results []models.PublishResult) {
	if ps.db == nil {
		return
	}

	run := &models.RunRecord{
		ID:         uuid.New().String(),
		PostType:   postType,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Results:    results,
	}
	if err := ps.db.SaveRun(run); err != nil {
		utils.Errorf("Error recording run history: %v", err)
	}
}

func allFailed(results []models.PublishResult) bool {
	for _, r := range results {
		if r.Success {
			return false
		}
	}
	return true
}
