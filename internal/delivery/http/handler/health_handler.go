package handler

import (
	"context"
	"time"

	"skillsync/internal/domain"
	"skillsync/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	redis Pinger
	now   func() time.Time
}

func NewHealthHandler(db, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, now: time.Now}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Live)
	r.Get("/health/ready", h.Ready)
}

func (h *HealthHandler) Live(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// Ready reports 503 when Postgres is down. Redis is optional, so a failed
// ping is reported but does not flip readiness.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	st := domain.ReadinessStatus{
		Database:   ping(ctx, h.db),
		Redis:      ping(ctx, h.redis),
		ServerTime: h.now().UTC(),
	}
	st.Ready = st.Database.Healthy

	status := fiber.StatusOK
	if !st.Ready {
		status = fiber.StatusServiceUnavailable
	}
	return response.Success(c, status, "", st)
}

func ping(ctx context.Context, p Pinger) domain.DependencyStatus {
	if p == nil {
		return domain.DependencyStatus{Healthy: false, Error: "not configured"}
	}
	if err := p.Ping(ctx); err != nil {
		return domain.DependencyStatus{Healthy: false, Error: err.Error()}
	}
	return domain.DependencyStatus{Healthy: true}
}
