package router

import (
	"net/http/pprof"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var profiles = []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"}

// debugRouter mounts net/http/pprof under /debug/pprof when http.pprof is set
func (rt *Router) debugRouter(r fiber.Router) {
	r.Get("/", adaptor.HTTPHandlerFunc(pprof.Index))
	r.Get("/cmdline", adaptor.HTTPHandlerFunc(pprof.Cmdline))
	r.Get("/profile", adaptor.HTTPHandlerFunc(pprof.Profile))
	r.Get("/trace", adaptor.HTTPHandlerFunc(pprof.Trace))
	r.Add(fiber.MethodGet, "/symbol", adaptor.HTTPHandlerFunc(pprof.Symbol))
	r.Add(fiber.MethodPost, "/symbol", adaptor.HTTPHandlerFunc(pprof.Symbol))
	for _, name := range profiles {
		r.Get("/"+name, adaptor.HTTPHandler(pprof.Handler(name)))
	}
}
