package handlers

import (
	"SocialAutoPoster/config"
	"SocialAutoPoster/database"
	"SocialAutoPoster/services"
)

type Handler struct {
	cfg         *config.Config
	poster      *services.PosterService
	authService *services.AuthService
	db          *database.Database
}

func NewHandler(cfg *config.Config, poster *services.PosterService, authService *services.AuthService, db *database.Database) *Handler {
	return &Handler{
		cfg:         cfg,
		poster:      poster,
		authService: authService,
		db:          db,
	}
}
