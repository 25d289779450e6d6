package handlers

import (
	"net/http"

	"SocialAutoPoster/utils"
)

const historyLimit = 20

// GetHistory returns recent runs from the history database.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Run history disabled: DATABASE_URL not set")
		return
	}

	runs, err := h.db.RecentRuns(historyLimit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching run history")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}
