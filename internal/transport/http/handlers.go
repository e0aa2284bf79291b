package http

import (
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/malik0174/fitclub/internal/domain"
	"github.com/malik0174/fitclub/internal/metrics"
	"github.com/malik0174/fitclub/internal/service/members"
	"github.com/malik0174/fitclub/internal/service/scheduling"
	"github.com/malik0174/fitclub/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

type createRoomRequest struct {
	AdminID     int64  `json:"admin_id" binding:"required"`
	Name        string `json:"name"`
	MaxCapacity int    `json:"max_capacity"`
}

func (h *Handlers) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	room, err := h.scheduling.CreateRoom(c.Request.Context(), scheduling.CreateRoomInput{
		AdminID:     req.AdminID,
		Name:        req.Name,
		MaxCapacity: req.MaxCapacity,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	metrics.RoomsCreatedTotal.Inc()
	c.JSON(nethttp.StatusCreated, room)
}

type createAvailabilityRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

func (h *Handlers) CreateAvailability(c *gin.Context) {
	trainerID, ok := pathID(c, "trainerID")
	if !ok {
		return
	}
	var req createAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	window, err := h.scheduling.CreateAvailability(c.Request.Context(), scheduling.CreateAvailabilityInput{
		TrainerID: trainerID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	metrics.AvailabilityWindowsTotal.Inc()
	c.JSON(nethttp.StatusCreated, window)
}

type schedulePTRequest struct {
	MemberID  int64     `json:"member_id" binding:"required"`
	TrainerID int64     `json:"trainer_id" binding:"required"`
	RoomID    int64     `json:"room_id" binding:"required"`
	AdminID   int64     `json:"admin_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

func (h *Handlers) SchedulePTSession(c *gin.Context) {
	var req schedulePTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	sess, err := h.scheduling.SchedulePTSession(c.Request.Context(), scheduling.SchedulePTInput{
		MemberID:  req.MemberID,
		TrainerID: req.TrainerID,
		RoomID:    req.RoomID,
		AdminID:   req.AdminID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	metrics.SessionsScheduledTotal.WithLabelValues(string(sess.Type)).Inc()
	c.JSON(nethttp.StatusCreated, sess)
}

type createClassRequest struct {
	AdminID     int64     `json:"admin_id" binding:"required"`
	TrainerID   int64     `json:"trainer_id" binding:"required"`
	RoomID      int64     `json:"room_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	MaxCapacity int       `json:"max_capacity"`
}

func (h *Handlers) CreateClassSession(c *gin.Context) {
	var req createClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	sess, err := h.scheduling.CreateClassSession(c.Request.Context(), scheduling.CreateClassInput{
		AdminID:     req.AdminID,
		TrainerID:   req.TrainerID,
		RoomID:      req.RoomID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxCapacity: req.MaxCapacity,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	metrics.SessionsScheduledTotal.WithLabelValues(string(sess.Type)).Inc()
	c.JSON(nethttp.StatusCreated, sess)
}

func (h *Handlers) GetSession(c *gin.Context) {
	sessionID, ok := pathID(c, "sessionID")
	if !ok {
		return
	}
	sess, err := h.scheduling.Session(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, sess)
}

type registerMemberRequest struct {
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Gender        string     `json:"gender"`
	Email         string     `json:"email"`
	Phone         *string    `json:"phone"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	GoalWeight    *float64   `json:"goal_weight"`
	CurrentWeight *float64   `json:"current_weight"`
}

func (h *Handlers) RegisterMember(c *gin.Context) {
	var req registerMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	m, err := h.members.Register(c.Request.Context(), members.RegisterInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Gender:        req.Gender,
		Email:         req.Email,
		Phone:         req.Phone,
		DateOfBirth:   req.DateOfBirth,
		GoalWeight:    req.GoalWeight,
		CurrentWeight: req.CurrentWeight,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	metrics.MembersRegisteredTotal.Inc()
	c.JSON(nethttp.StatusCreated, m)
}

type updateMemberRequest struct {
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

func (h *Handlers) UpdateMemberProfile(c *gin.Context) {
	memberID, ok := pathID(c, "memberID")
	if !ok {
		return
	}
	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	m, err := h.members.UpdateProfile(c.Request.Context(), members.UpdateProfileInput{
		MemberID: memberID,
		NewPhone: req.Phone,
		NewEmail: req.Email,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, m)
}

func (h *Handlers) MemberSchedule(c *gin.Context) {
	memberID, ok := pathID(c, "memberID")
	if !ok {
		return
	}
	entries, err := h.dashboard.UpcomingForMember(c.Request.Context(), memberID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, entries)
}

func (h *Handlers) TrainerSchedule(c *gin.Context) {
	trainerID, ok := pathID(c, "trainerID")
	if !ok {
		return
	}
	entries, err := h.dashboard.UpcomingForTrainer(c.Request.Context(), trainerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, entries)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(nethttp.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid %s", name)})
		return 0, false
	}
	return id, true
}

func (h *Handlers) bindError(c *gin.Context, err error) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fields := make([]string, 0, len(vErrs))
		for _, fe := range vErrs {
			fields = append(fields, fe.Field())
		}
		c.JSON(nethttp.StatusBadRequest, errorResponse{
			Error: "missing or invalid fields: " + strings.Join(fields, ", "),
		})
		return
	}
	c.JSON(nethttp.StatusBadRequest, errorResponse{Error: "invalid request body"})
}

func (h *Handlers) respondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == nethttp.StatusConflict {
		metrics.BookingConflictsTotal.WithLabelValues(conflictKind(err)).Inc()
	}
	if status == nethttp.StatusInternalServerError {
		h.log.Error("request failed",
			slog.Any("err", err),
			slog.String("request_id", c.GetString("request_id")),
		)
		c.JSON(status, errorResponse{Error: "internal error"})
		return
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}

func statusForError(err error) int {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return nethttp.StatusNotFound
	}

	var memberValidation *members.ValidationError
	switch {
	case errors.Is(err, scheduling.ErrInvalidWindow),
		errors.Is(err, scheduling.ErrPastStart),
		errors.Is(err, scheduling.ErrInvalidName),
		errors.Is(err, scheduling.ErrInvalidCapacity),
		errors.Is(err, scheduling.ErrCapacityExceeded),
		errors.As(err, &memberValidation):
		return nethttp.StatusBadRequest
	}

	var availabilityConflict *scheduling.AvailabilityConflictError
	var trainerBooked *scheduling.TrainerDoubleBookedError
	var memberBooked *scheduling.MemberDoubleBookedError
	var constraint *store.ConstraintViolationError
	switch {
	case errors.Is(err, scheduling.ErrDuplicateName),
		errors.Is(err, scheduling.ErrTrainerUnavailable),
		errors.Is(err, scheduling.ErrRoomConflict),
		errors.Is(err, members.ErrEmailInUse),
		errors.Is(err, members.ErrPhoneInUse),
		errors.As(err, &availabilityConflict),
		errors.As(err, &trainerBooked),
		errors.As(err, &memberBooked),
		errors.As(err, &constraint):
		return nethttp.StatusConflict
	}

	return nethttp.StatusInternalServerError
}

// conflictKind labels rejected attempts for the conflict counter.
func conflictKind(err error) string {
	var availabilityConflict *scheduling.AvailabilityConflictError
	var trainerBooked *scheduling.TrainerDoubleBookedError
	var memberBooked *scheduling.MemberDoubleBookedError
	switch {
	case errors.Is(err, scheduling.ErrRoomConflict):
		return "room"
	case errors.As(err, &trainerBooked), errors.Is(err, scheduling.ErrTrainerUnavailable):
		return "trainer"
	case errors.As(err, &memberBooked):
		return "member"
	case errors.As(err, &availabilityConflict):
		return "availability"
	case errors.Is(err, scheduling.ErrDuplicateName):
		return "room_name"
	case errors.Is(err, members.ErrEmailInUse), errors.Is(err, members.ErrPhoneInUse):
		return "member_identity"
	}
	return "store_constraint"
}
