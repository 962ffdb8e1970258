package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/service/dashboard"
)

// dashboardService defines the minimal interface needed by DashboardHandler.
type dashboardService interface {
	Overview(ctx context.Context, filter domain.TimeFilter, customStart, customEnd *time.Time) (*dashboard.Overview, error)
}

// DashboardHandler serves the aggregated dashboard endpoint.
type DashboardHandler struct {
	svc dashboardService
	log *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(svc dashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: logger.With("handler", "dashboard")}
}

// Overview handles GET /dashboard?filter=this_month. Custom windows take
// start and end as RFC 3339 dates or timestamps.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.TimeFilter(q.Get("filter"))
	if filter == "" {
		filter = domain.FilterThisMonth
	}

	var customStart, customEnd *time.Time
	if v := q.Get("start"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start parameter")
			return
		}
		customStart = &t
	}
	if v := q.Get("end"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end parameter")
			return
		}
		customEnd = &t
	}

	overview, err := h.svc.Overview(r.Context(), filter, customStart, customEnd)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

func parseTimeParam(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
