package service

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TypeTimetableRefresh is the asynq task type for background cache refresh.
const TypeTimetableRefresh = "timetable:refresh"

// RefreshPayload identifies the timetable to re-fetch.
type RefreshPayload struct {
	Identifier string `json:"identifier"`
}

// NewRefreshTask builds a delayed refresh task for one timetable.
func NewRefreshTask(identifier string, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	payload, err := json.Marshal(RefreshPayload{Identifier: identifier})
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.ProcessIn(delay),
		asynq.MaxRetry(2),
	}
	return asynq.NewTask(TypeTimetableRefresh, payload), opts, nil
}
