package handlers

import (
	"net/http"

	"linkstats/config"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	sqliteDB, dbErr := config.DB.DB()
	if dbErr != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status":  "unhealthy",
			"message": "Database connectivity failed",
			"error":   dbErr.Error(),
		})
		return
	}

	if err := sqliteDB.Ping(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status":  "unhealthy",
			"message": "Database connectivity failed",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"message": "Server and database are up and running",
	})
}
