package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"time"
)

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		fmt.Fprintf(w, "Method not available: %s", r.Method)
		return
	}
	fmt.Fprint(w, "Im alive!")
}

type scheduleResponse struct {
	Name    string    `json:"name"`
	Spec    string    `json:"spec"`
	NextRun time.Time `json:"nextRun"`
}

// GetSchedules lists the cron tasks registered on the worker.
func (h *Handler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	tasks := h.Controller.GetSchedulers()
	schedules := make([]scheduleResponse, 0, len(tasks))
	for name, task := range tasks {
		schedules = append(schedules, scheduleResponse{Name: name, Spec: task.Spec(), NextRun: task.Next()})
	}
	sort.Slice(schedules, func(i, j int) bool { return schedules[i].Name < schedules[j].Name })
	h.respond(w, r, schedules, http.StatusOK)
}
