package v1

import (
	"github.com/gofiber/fiber/v3"
)

func RegisterJobs(r fiber.Router, h Handlers, requireAuth, employerOnly fiber.Handler) {
	if r == nil {
		return
	}

	if h.Application != nil {
		h.Application.RegisterRoutes(r, nil, requireAuth, employerOnly)
	}
	if h.Job != nil {
		h.Job.RegisterRoutes(r, requireAuth, employerOnly)
	}
}
