package controller

import (
	"moim-api/core/constants"
	"moim-api/core/controller"
	"moim-api/core/errors"
	"moim-api/core/utils"
	"moim-api/modules/event/dto"
	"moim-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// EventController handles event HTTP requests.
type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
}

// NewEventController creates a new controller.
func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
	}
}

// participantFromContext resolves the caller's participant identity from the
// token claims set by the middleware. Member tokens must belong to the event
// addressed by the request.
func (c *EventController) participantFromContext(ctx echo.Context, code string) (service.Participant, *errors.AppError) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return service.Participant{}, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return service.Participant{}, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	switch claims.Scope {
	case utils.ScopeMember:
		event, appErr := c.EventService.GetEventByShareCode(ctx.Request().Context(), code)
		if appErr != nil {
			return service.Participant{}, appErr
		}
		if event.ID != claims.EventID.String() {
			return service.Participant{}, errors.NewAppError(errors.ErrForbidden, "Member token is for a different event", nil)
		}
		return service.Participant{Kind: service.ParticipantMember, ID: claims.UserID, Name: claims.Name}, nil
	case utils.ScopeUser:
		return service.Participant{Kind: service.ParticipantUser, ID: claims.UserID, Name: claims.Name}, nil
	}
	return service.Participant{}, errors.NewAppError(errors.ErrForbidden, "Unknown token scope", nil)
}

// CreateEvent handles POST /events
func (c *EventController) CreateEvent(ctx echo.Context) error {
	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.EventService.CreateEvent(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event created successfully")
}

// GetEvent handles GET /events/:code
func (c *EventController) GetEvent(ctx echo.Context) error {
	result, appErr := c.EventService.GetEventByShareCode(ctx.Request().Context(), ctx.Param("code"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// DeleteEvent handles DELETE /events/:code
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	if appErr := c.EventService.DeleteEvent(ctx.Request().Context(), ctx.Param("code")); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Event deleted successfully")
}

// CreateRange handles POST /events/:code/ranges
func (c *EventController) CreateRange(ctx echo.Context) error {
	var req dto.CreateRangeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.EventService.CreateRange(ctx.Request().Context(), ctx.Param("code"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Slots generated successfully")
}

// GetSlots handles GET /events/:code/slots
func (c *EventController) GetSlots(ctx echo.Context) error {
	result, appErr := c.EventService.GetSlots(ctx.Request().Context(), ctx.Param("code"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// JoinMember handles POST /events/:code/members
func (c *EventController) JoinMember(ctx echo.Context) error {
	var req dto.JoinMemberRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.EventService.JoinMember(ctx.Request().Context(), ctx.Param("code"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Joined event")
}

// JoinUser handles POST /events/:code/join (user token required)
func (c *EventController) JoinUser(ctx echo.Context) error {
	code := ctx.Param("code")
	participant, appErr := c.participantFromContext(ctx, code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	if participant.Kind != service.ParticipantUser {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrForbidden, "User token required", nil))
	}

	result, joinErr := c.EventService.JoinUser(ctx.Request().Context(), code, participant.ID, participant.Name)
	if joinErr != nil {
		return c.ErrorResponse(ctx, joinErr)
	}

	return c.SuccessResponse(ctx, result, "Joined event")
}

// SubmitSelections handles PUT /events/:code/selections
func (c *EventController) SubmitSelections(ctx echo.Context) error {
	code := ctx.Param("code")
	participant, appErr := c.participantFromContext(ctx, code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	var req dto.SubmitSelectionsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	if appErr := c.EventService.SubmitSelections(ctx.Request().Context(), code, participant, &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Selections saved")
}

// GetCandidates handles GET /events/:code/candidates
func (c *EventController) GetCandidates(ctx echo.Context) error {
	result, appErr := c.EventService.GetCandidates(ctx.Request().Context(), ctx.Param("code"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
