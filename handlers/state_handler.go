package handlers

import (
	"net/http"

	"SocialAutoPoster/models"
	"SocialAutoPoster/state"
	"SocialAutoPoster/utils"
)

// GetState reports the rotation cursors for one category, or for all
// three when no type is given.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	typeParam := r.URL.Query().Get("type")

	if typeParam != "" {
		postType, err := models.ParsePostType(typeParam)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		st := state.Load(state.FileFor(h.cfg.Paths.StateDir, postType))
		utils.RespondWithJSON(w, http.StatusOK, map[models.PostType]models.RotationState{postType: st})
		return
	}

	all := make(map[models.PostType]models.RotationState)
	for _, postType := range []models.PostType{models.PostTypeDaily, models.PostTypeFriday, models.PostTypeRamadan} {
		all[postType] = state.Load(state.FileFor(h.cfg.Paths.StateDir, postType))
	}
	utils.RespondWithJSON(w, http.StatusOK, all)
}
