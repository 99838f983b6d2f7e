package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httputils "github.com/twitsprout/tools/http"
)

// Handler mounts all the handlers at the appropriate routes and adds any required middleware.
func (h *Handler) Handler() http.Handler {
	r := mux.NewRouter()

	r.Use(httputils.TimeoutMiddleware(1 * time.Minute))
	r.Use(httputils.RequestIDMiddleware)
	r.Use(httputils.RealIPMiddleware)
	r.Use(httputils.LimitReaderMiddleware(1 << 20))
	r.Use(httputils.LoggingMiddleware(h.Logger))
	r.Use(httputils.RecoverMiddleware(h.Logger, httputils.InternalServerErrorHandler(h.Logger)))
	r.Use(httputils.MaxConnectionsMiddleware(5000, httputils.ServiceUnavailableHandler(h.Logger)))
	r.Use(httputils.ConcurrentLimitMiddleware(250, httputils.ServiceUnavailableHandler(h.Logger)))

	r.MethodNotAllowedHandler = httputils.MethodNotAllowedHandler(h.Logger)
	r.NotFoundHandler = httputils.NotFoundHandler(h.Logger)

	versionHandler := httputils.VersionHandler(h.AppName, h.Version, h.Logger)
	r.Methods("GET").Path("/").Name("root").Handler(versionHandler)
	r.Methods("GET").Path("/version").Name("version").Handler(versionHandler)

	// Login stays outside the token check so a stale token cannot block it.
	r.Methods("POST").Path("/v1/login").Name("login").HandlerFunc(h.Login)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(h.AuthMiddleware)

	v1.Methods("GET").Path("/me").Name("me").HandlerFunc(h.Me)

	v1.Methods("GET").Path("/albums").Name("list_albums").HandlerFunc(h.ListAlbums)
	v1.Methods("GET").Path("/album/{name}/photos").Name("album_photos").HandlerFunc(h.AlbumPhotos)

	v1.Methods("GET").Path("/photos").Name("list_photos").HandlerFunc(h.ListPhotos)
	v1.Methods("GET").Path("/photo/{id}").Name("get_photo").HandlerFunc(h.GetPhoto)
	v1.Methods("PATCH").Path("/photo/{id}").Name("update_photo").HandlerFunc(h.UpdatePhoto)
	v1.Methods("POST").Path("/photo/{id}/tags").Name("add_tag").HandlerFunc(h.AddTag)

	v1.Methods("GET").Path("/courses").Name("list_courses").HandlerFunc(h.ListCourses)
	v1.Methods("GET").Path("/course/{code}").Name("get_course").HandlerFunc(h.GetCourse)
	v1.Methods("PUT").Path("/course/{code}/capacity").Name("update_course_capacity").HandlerFunc(h.UpdateCourseCapacity)
	h.router = r
	return r
}
