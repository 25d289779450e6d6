package services

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"SocialAutoPoster/config"
	"SocialAutoPoster/models"
	"SocialAutoPoster/utils"
)

// Scheduler drives the posting categories from in-process cron entries,
// for deployments that run the bot as a long-lived service instead of a
// CI cron. The specs mirror the GitHub Actions workflow crons.
type Scheduler struct {
	cron   *cron.Cron
	cfg    *config.Config
	poster *PosterService
}

func NewScheduler(cfg *config.Config, poster *PosterService) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		cfg:    cfg,
		poster: poster,
	}
}

func (s *Scheduler) Start() error {
	entries := []struct {
		spec     string
		postType models.PostType
		enabled  bool
	}{
		{s.cfg.Schedule.Daily, models.PostTypeDaily, true},
		{s.cfg.Schedule.Friday, models.PostTypeFriday, true},
		{s.cfg.Schedule.Ramadan, models.PostTypeRamadan, s.cfg.Schedule.RamadanEnabled},
	}

	for _, entry := range entries {
		if !entry.enabled {
			continue
		}
		postType := entry.postType
		_, err := s.cron.AddFunc(entry.spec, func() {
			if _, err := s.poster.Run(context.Background(), postType); err != nil {
				utils.Errorf("Scheduled %s run failed: %v", postType, err)
			}
		})
		if err != nil {
			return fmt.Errorf("invalid cron spec %q for %s posts: %w", entry.spec, postType, err)
		}
		utils.Infof("Scheduled %s posts: %s", postType, entry.spec)
	}

	s.cron.Start()
	utils.Infof("Scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
