package health

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// GetHealth reports liveness plus a database ping in one payload.
func (hrm *HealthRoutesManager) GetHealth(w http.ResponseWriter, r *http.Request) {
	serverStatus := hrm.healthService.GetServerHealthStatus()
	dbStatus := hrm.healthService.GetDatabaseHealthStatus(r.Context())

	if !dbStatus.Connected {
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("Database unreachable"),
			gecho.WithData(map[string]any{
				"server":   serverStatus,
				"database": dbStatus,
			}),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"server":   serverStatus,
			"database": dbStatus,
		}),
		gecho.Send(),
	)
}
