// Package http exposes the booking core over a JSON API. It is a thin
// consumer of the service layer: handlers bind and forward, and translate
// the service error taxonomy into status codes.
package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	nethttp "net/http"

	"github.com/malik0174/fitclub/internal/domain"
	"github.com/malik0174/fitclub/internal/service/members"
	"github.com/malik0174/fitclub/internal/service/scheduling"
)

type schedulingService interface {
	CreateAvailability(ctx context.Context, in scheduling.CreateAvailabilityInput) (domain.TrainerAvailability, error)
	SchedulePTSession(ctx context.Context, in scheduling.SchedulePTInput) (domain.Session, error)
	CreateClassSession(ctx context.Context, in scheduling.CreateClassInput) (domain.Session, error)
	CreateRoom(ctx context.Context, in scheduling.CreateRoomInput) (domain.Room, error)
	Session(ctx context.Context, id int64) (domain.Session, error)
}

type membersService interface {
	Register(ctx context.Context, in members.RegisterInput) (domain.Member, error)
	UpdateProfile(ctx context.Context, in members.UpdateProfileInput) (domain.Member, error)
}

type dashboardService interface {
	UpcomingForMember(ctx context.Context, memberID int64) ([]domain.MemberScheduleEntry, error)
	UpcomingForTrainer(ctx context.Context, trainerID int64) ([]domain.TrainerScheduleEntry, error)
}

type Handlers struct {
	scheduling schedulingService
	members    membersService
	dashboard  dashboardService
	log        *slog.Logger
}

func NewHandlers(sch schedulingService, mem membersService, dash dashboardService, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{
		scheduling: sch,
		members:    mem,
		dashboard:  dash,
		log:        log.With(slog.String("component", "http")),
	}
}

// NewRouter wires middleware and routes. gin mode is the caller's business.
func NewRouter(h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware(h.log), MetricsMiddleware())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/members", h.RegisterMember)
		v1.PATCH("/members/:memberID", h.UpdateMemberProfile)
		v1.GET("/members/:memberID/schedule", h.MemberSchedule)

		v1.POST("/rooms", h.CreateRoom)

		v1.POST("/trainers/:trainerID/availability", h.CreateAvailability)
		v1.GET("/trainers/:trainerID/schedule", h.TrainerSchedule)

		v1.POST("/sessions/pt", h.SchedulePTSession)
		v1.POST("/sessions/class", h.CreateClassSession)
		v1.GET("/sessions/:sessionID", h.GetSession)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
