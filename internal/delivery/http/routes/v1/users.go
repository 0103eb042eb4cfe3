package v1

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterUsers mounts everything under /users. The /users/me group is
// registered before /users/:id.
func RegisterUsers(r fiber.Router, h Handlers, requireAuth fiber.Handler) {
	if r == nil {
		return
	}

	me := r.Group("/users/me", requireAuth)
	if h.UserSkill != nil {
		h.UserSkill.RegisterRoutes(me)
	}
	if h.JobMatch != nil {
		h.JobMatch.RegisterRoutes(me)
	}
	if h.Course != nil {
		h.Course.RegisterRoutes(r, me)
	}
	if h.CVAnalysis != nil {
		h.CVAnalysis.RegisterRoutes(nil, me, requireAuth)
	}
	if h.Application != nil {
		h.Application.RegisterRoutes(nil, me, requireAuth, nil)
	}

	if h.User != nil {
		h.User.RegisterRoutes(me, r.Group("/users"))
	}
}
