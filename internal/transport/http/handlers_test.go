package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malik0174/fitclub/internal/domain"
	"github.com/malik0174/fitclub/internal/service/members"
	"github.com/malik0174/fitclub/internal/service/scheduling"
	"github.com/malik0174/fitclub/internal/store"
)

type stubScheduling struct {
	createAvailability func(context.Context, scheduling.CreateAvailabilityInput) (domain.TrainerAvailability, error)
	schedulePT         func(context.Context, scheduling.SchedulePTInput) (domain.Session, error)
	createClass        func(context.Context, scheduling.CreateClassInput) (domain.Session, error)
	createRoom         func(context.Context, scheduling.CreateRoomInput) (domain.Room, error)
	session            func(context.Context, int64) (domain.Session, error)
}

func (s *stubScheduling) CreateAvailability(ctx context.Context, in scheduling.CreateAvailabilityInput) (domain.TrainerAvailability, error) {
	return s.createAvailability(ctx, in)
}

func (s *stubScheduling) SchedulePTSession(ctx context.Context, in scheduling.SchedulePTInput) (domain.Session, error) {
	return s.schedulePT(ctx, in)
}

func (s *stubScheduling) CreateClassSession(ctx context.Context, in scheduling.CreateClassInput) (domain.Session, error) {
	return s.createClass(ctx, in)
}

func (s *stubScheduling) CreateRoom(ctx context.Context, in scheduling.CreateRoomInput) (domain.Room, error) {
	return s.createRoom(ctx, in)
}

func (s *stubScheduling) Session(ctx context.Context, id int64) (domain.Session, error) {
	return s.session(ctx, id)
}

type stubMembers struct {
	register      func(context.Context, members.RegisterInput) (domain.Member, error)
	updateProfile func(context.Context, members.UpdateProfileInput) (domain.Member, error)
}

func (s *stubMembers) Register(ctx context.Context, in members.RegisterInput) (domain.Member, error) {
	return s.register(ctx, in)
}

func (s *stubMembers) UpdateProfile(ctx context.Context, in members.UpdateProfileInput) (domain.Member, error) {
	return s.updateProfile(ctx, in)
}

type stubDashboard struct {
	forMember  func(context.Context, int64) ([]domain.MemberScheduleEntry, error)
	forTrainer func(context.Context, int64) ([]domain.TrainerScheduleEntry, error)
}

func (s *stubDashboard) UpcomingForMember(ctx context.Context, memberID int64) ([]domain.MemberScheduleEntry, error) {
	return s.forMember(ctx, memberID)
}

func (s *stubDashboard) UpcomingForTrainer(ctx context.Context, trainerID int64) ([]domain.TrainerScheduleEntry, error) {
	return s.forTrainer(ctx, trainerID)
}

func newTestRouter(sch *stubScheduling, mem *stubMembers, dash *stubDashboard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if sch == nil {
		sch = &stubScheduling{}
	}
	if mem == nil {
		mem = &stubMembers{}
	}
	if dash == nil {
		dash = &stubDashboard{}
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(NewHandlers(sch, mem, dash, log))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSchedulePTSession_Created(t *testing.T) {
	start := time.Date(2027, 2, 1, 9, 0, 0, 0, time.UTC)
	memberID := int64(3)
	sch := &stubScheduling{
		schedulePT: func(ctx context.Context, in scheduling.SchedulePTInput) (domain.Session, error) {
			assert.Equal(t, int64(3), in.MemberID)
			assert.Equal(t, int64(2), in.TrainerID)
			return domain.Session{
				ID: 10, Type: domain.SessionTypePT,
				StartTime: in.StartTime, EndTime: in.EndTime,
				MaxCapacity: 1, RoomID: in.RoomID, AdminID: in.AdminID,
				TrainerID: in.TrainerID, MemberID: &memberID,
			}, nil
		},
	}
	router := newTestRouter(sch, nil, nil)

	rec := doJSON(t, router, nethttp.MethodPost, "/api/v1/sessions/pt", gin.H{
		"member_id": 3, "trainer_id": 2, "room_id": 4, "admin_id": 1,
		"start_time": start, "end_time": start.Add(time.Hour),
	})

	require.Equal(t, nethttp.StatusCreated, rec.Code)
	var got domain.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(10), got.ID)
	assert.Equal(t, domain.SessionTypePT, got.Type)
	require.NotNil(t, got.MemberID)
	assert.Equal(t, int64(3), *got.MemberID)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestSchedulePTSession_MissingFields(t *testing.T) {
	router := newTestRouter(nil, nil, nil)

	rec := doJSON(t, router, nethttp.MethodPost, "/api/v1/sessions/pt", gin.H{
		"member_id": 3,
	})

	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing or invalid fields")
}

func TestErrorStatusMapping(t *testing.T) {
	start := time.Date(2027, 2, 1, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid window", scheduling.ErrInvalidWindow, nethttp.StatusBadRequest},
		{"past start", scheduling.ErrPastStart, nethttp.StatusBadRequest},
		{"capacity exceeded", scheduling.ErrCapacityExceeded, nethttp.StatusBadRequest},
		{"member not found", &domain.NotFoundError{Kind: domain.KindMember, ID: 3}, nethttp.StatusNotFound},
		{"trainer unavailable", scheduling.ErrTrainerUnavailable, nethttp.StatusConflict},
		{"room conflict", scheduling.ErrRoomConflict, nethttp.StatusConflict},
		{"trainer double booked", &scheduling.TrainerDoubleBookedError{SessionID: 8}, nethttp.StatusConflict},
		{"member double booked", &scheduling.MemberDoubleBookedError{}, nethttp.StatusConflict},
		{"raw constraint violation", &store.ConstraintViolationError{Constraint: "ck_sessions_end_after_start"}, nethttp.StatusConflict},
		{"unexpected", fmt.Errorf("connection reset"), nethttp.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sch := &stubScheduling{
				schedulePT: func(ctx context.Context, in scheduling.SchedulePTInput) (domain.Session, error) {
					return domain.Session{}, tc.err
				},
			}
			router := newTestRouter(sch, nil, nil)

			rec := doJSON(t, router, nethttp.MethodPost, "/api/v1/sessions/pt", gin.H{
				"member_id": 3, "trainer_id": 2, "room_id": 4, "admin_id": 1,
				"start_time": start, "end_time": start.Add(time.Hour),
			})

			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == nethttp.StatusInternalServerError {
				// Internals never leak to the client.
				assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), "error")
			}
		})
	}
}

func TestCreateAvailability(t *testing.T) {
	start := time.Date(2027, 2, 1, 9, 0, 0, 0, time.UTC)
	sch := &stubScheduling{
		createAvailability: func(ctx context.Context, in scheduling.CreateAvailabilityInput) (domain.TrainerAvailability, error) {
			assert.Equal(t, int64(2), in.TrainerID)
			return domain.TrainerAvailability{ID: 1, TrainerID: in.TrainerID, StartTime: in.StartTime, EndTime: in.EndTime}, nil
		},
	}
	router := newTestRouter(sch, nil, nil)

	rec := doJSON(t, router, nethttp.MethodPost, "/api/v1/trainers/2/availability", gin.H{
		"start_time": start, "end_time": start.Add(3 * time.Hour),
	})
	require.Equal(t, nethttp.StatusCreated, rec.Code)

	// Conflicts carry the existing window's bounds in the message.
	sch.createAvailability = func(ctx context.Context, in scheduling.CreateAvailabilityInput) (domain.TrainerAvailability, error) {
		return domain.TrainerAvailability{}, &scheduling.AvailabilityConflictError{Start: start, End: start.Add(time.Hour)}
	}
	rec = doJSON(t, router, nethttp.MethodPost, "/api/v1/trainers/2/availability", gin.H{
		"start_time": start, "end_time": start.Add(3 * time.Hour),
	})
	require.Equal(t, nethttp.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "existing window")
}

func TestPathIDValidation(t *testing.T) {
	router := newTestRouter(nil, nil, nil)

	for _, path := range []string{
		"/api/v1/trainers/abc/availability",
		"/api/v1/trainers/0/availability",
		"/api/v1/trainers/-4/availability",
	} {
		rec := doJSON(t, router, nethttp.MethodPost, path, gin.H{
			"start_time": time.Now(), "end_time": time.Now().Add(time.Hour),
		})
		assert.Equal(t, nethttp.StatusBadRequest, rec.Code, path)
	}
}

func TestRegisterMember(t *testing.T) {
	mem := &stubMembers{
		register: func(ctx context.Context, in members.RegisterInput) (domain.Member, error) {
			assert.Equal(t, "Mia", in.FirstName)
			return domain.Member{ID: 1, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}, nil
		},
	}
	router := newTestRouter(nil, mem, nil)

	rec := doJSON(t, router, nethttp.MethodPost, "/api/v1/members", gin.H{
		"first_name": "Mia", "last_name": "Nguyen", "gender": "Female", "email": "mia@example.com",
	})
	require.Equal(t, nethttp.StatusCreated, rec.Code)

	mem.register = func(ctx context.Context, in members.RegisterInput) (domain.Member, error) {
		return domain.Member{}, members.ErrEmailInUse
	}
	rec = doJSON(t, router, nethttp.MethodPost, "/api/v1/members", gin.H{
		"first_name": "Mia", "last_name": "Nguyen", "gender": "Female", "email": "mia@example.com",
	})
	require.Equal(t, nethttp.StatusConflict, rec.Code)
}

func TestMemberSchedule(t *testing.T) {
	start := time.Date(2027, 2, 1, 9, 0, 0, 0, time.UTC)
	dash := &stubDashboard{
		forMember: func(ctx context.Context, memberID int64) ([]domain.MemberScheduleEntry, error) {
			assert.Equal(t, int64(3), memberID)
			return []domain.MemberScheduleEntry{{
				SessionID: 10, SessionType: domain.SessionTypePT,
				StartTime: start, EndTime: start.Add(time.Hour),
				RoomName: "Studio A", TrainerName: "Tom Trainer",
			}}, nil
		},
	}
	router := newTestRouter(nil, nil, dash)

	rec := doJSON(t, router, nethttp.MethodGet, "/api/v1/members/3/schedule", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var entries []domain.MemberScheduleEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Studio A", entries[0].RoomName)
	assert.Equal(t, "Tom Trainer", entries[0].TrainerName)
}

func TestTrainerSchedule_EmptyIsJSONArray(t *testing.T) {
	dash := &stubDashboard{
		forTrainer: func(ctx context.Context, trainerID int64) ([]domain.TrainerScheduleEntry, error) {
			return []domain.TrainerScheduleEntry{}, nil
		},
	}
	router := newTestRouter(nil, nil, dash)

	rec := doJSON(t, router, nethttp.MethodGet, "/api/v1/trainers/2/schedule", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	router := newTestRouter(nil, nil, nil)

	rec := doJSON(t, router, nethttp.MethodGet, "/health", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRequestIDPropagation(t *testing.T) {
	sch := &stubScheduling{
		session: func(ctx context.Context, id int64) (domain.Session, error) {
			return domain.Session{ID: id, Type: domain.SessionTypeClass}, nil
		},
	}
	router := newTestRouter(sch, nil, nil)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/sessions/7", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}
