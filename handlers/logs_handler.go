package handlers

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"SocialAutoPoster/utils"
)

const defaultLogLines = 100

// GetLogs returns the tail of the append-only run log.
func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	lines := defaultLogLines
	if param := r.URL.Query().Get("lines"); param != "" {
		n, err := strconv.Atoi(param)
		if err != nil || n <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "lines must be a positive integer")
			return
		}
		lines = n
	}

	data, err := os.ReadFile(h.cfg.Paths.LogFile)
	if err != nil {
		if os.IsNotExist(err) {
			utils.RespondWithJSON(w, http.StatusOK, map[string][]string{"lines": {}})
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading log file")
		return
	}

	all := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(all) == 1 && all[0] == "" {
		all = nil
	}
	if len(all) > lines {
		all = all[len(all)-lines:]
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string][]string{"lines": all})
}
