package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthCheckHandler)
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	// user service
	router.HandlerFunc(http.MethodPost, "/api/users", app.createUserHandler)
	router.HandlerFunc(http.MethodGet, "/api/users", app.getUsersHandler)
	router.HandlerFunc(http.MethodGet, "/api/users/:id/blogs", app.getUserBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/api/login", app.loginHandler)

	// blog service
	router.HandlerFunc(http.MethodGet, "/api/blogs", app.getBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/api/blogs", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/api/blogs/:id", app.getBlogHandler)
	router.HandlerFunc(http.MethodPut, "/api/blogs/:id", app.requireAuthUser(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/api/blogs/:id", app.requireAuthUser(app.deleteBlogHandler))
	router.HandlerFunc(http.MethodGet, "/api/stats", app.statsHandler)

	return app.recoverPanic(app.requestMetrics(app.logRequest(app.enableCORS(app.rateLimit(app.authenticate(router))))))
}
