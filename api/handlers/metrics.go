package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/georeconexion/campo-api/config"
	"github.com/georeconexion/campo-api/models"
	"github.com/georeconexion/campo-api/store"
)

// Metrics exported for testing purposes
type Metrics struct {
	Store *store.Store
}

// RejectionCount is one rejection reason with its tally
type RejectionCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// Summary is the command-center dashboard aggregate
type Summary struct {
	TotalCaptures   int              `json:"totalCaptures"`
	TotalVoters     int              `json:"totalVoters"`
	Favorable       int              `json:"favorable"`
	Unfavorable     int              `json:"unfavorable"`
	Undecided       int              `json:"undecided"`
	HighPriority    int              `json:"highPriority"`
	TopRejections   []RejectionCount `json:"topRejections"`
	CapturesByZone  map[string]int   `json:"capturesByZone"`
	ActivityTotal   int              `json:"activityTotal"`
	ActivityPending int              `json:"activityPending"`
	ActivityHeld    int              `json:"activityHeld"`
	ActivityMissed  int              `json:"activityMissed"`
}

// topRejectionLimit keeps the dashboard chart readable
const topRejectionLimit = 5

// SummaryHandler aggregates the current snapshot into supervisor metrics
func (m Metrics) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	points := m.Store.SurveyPoints()
	activities := m.Store.Activities()

	s := Summary{
		TotalCaptures:  len(points),
		CapturesByZone: map[string]int{},
		ActivityTotal:  len(activities),
	}

	rejections := map[string]int{}
	for _, p := range points {
		s.TotalVoters += p.VoterCount
		switch p.Support {
		case models.SupportFavorable:
			s.Favorable++
		case models.SupportUnfavorable:
			s.Unfavorable++
		case models.SupportUndecided:
			s.Undecided++
		}
		if p.Priority == models.PriorityHigh {
			s.HighPriority++
		}
		if p.RejectionReason != "" {
			rejections[p.RejectionReason]++
		}
		s.CapturesByZone[p.Zone]++
	}

	for reason, count := range rejections {
		s.TopRejections = append(s.TopRejections, RejectionCount{Reason: reason, Count: count})
	}
	sort.Slice(s.TopRejections, func(i, j int) bool {
		if s.TopRejections[i].Count != s.TopRejections[j].Count {
			return s.TopRejections[i].Count > s.TopRejections[j].Count
		}
		return s.TopRejections[i].Reason < s.TopRejections[j].Reason
	})
	if len(s.TopRejections) > topRejectionLimit {
		s.TopRejections = s.TopRejections[:topRejectionLimit]
	}

	for _, a := range activities {
		switch a.ActualAttendance {
		case models.AttendanceYes:
			s.ActivityHeld++
		case models.AttendanceNo:
			s.ActivityMissed++
		default:
			s.ActivityPending++
		}
	}

	b, err := json.Marshal(s)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
