package handlers

import (
	"net/http"

	"SocialAutoPoster/models"
	"SocialAutoPoster/utils"
)

// TriggerPost runs one posting pass on demand, the manual counterpart of
// the cron trigger. The run itself never aborts on a platform failure, so
// the response always carries the per-platform results.
func (h *Handler) TriggerPost(w http.ResponseWriter, r *http.Request) {
	postType, err := models.ParsePostType(r.URL.Query().Get("type"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.poster.Run(r.Context(), postType)
	if err != nil && len(results) == 0 {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"post_type": postType,
		"results":   results,
	})
}
