package worker

import (
	"context"
	"encoding/json"

	"moim-api/core/errors"
	"moim-api/core/logger"
	"moim-api/modules/timetable/service"

	"github.com/hibiken/asynq"
)

// RefreshHandler processes background timetable refresh tasks.
type RefreshHandler struct {
	svc service.TimetableService
}

func NewRefreshHandler(svc service.TimetableService) *RefreshHandler {
	return &RefreshHandler{svc: svc}
}

// ProcessTask re-fetches one timetable and rewrites its cache entry.
// Content-level failures (private or empty timetable) are final: retrying
// will not change the provider's answer. Transport failures are returned so
// asynq retries them.
func (h *RefreshHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload service.RefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("TimetableWorker:BadPayload", err)
		return nil
	}

	_, appErr := h.svc.RefreshTimetable(ctx, payload.Identifier)
	if appErr != nil {
		switch appErr.Code {
		case errors.ErrTimetableNotPublic, errors.ErrTimetableEmpty:
			logger.Info("TimetableWorker:RefreshSkipped", "identifier", payload.Identifier, "code", appErr.Code)
			return nil
		default:
			logger.Warn("TimetableWorker:RefreshFailed", "identifier", payload.Identifier, "error", appErr)
			return appErr
		}
	}

	logger.Info("TimetableWorker:Refreshed", "identifier", payload.Identifier)
	return nil
}
