package http

import (
	cl "media-catalog/pkg/catelog"
	"net/http"

	"github.com/gorilla/mux"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()

	courses, err := h.Catalog.ListCourses(ctx)
	if err != nil {
		h.writeError(w, r, "ListCourses", err)
		return
	}

	_ = httputils.WriteJSON(w, v, cl.ListCoursesRes{Courses: courses}, http.StatusOK)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()

	c, err := h.Catalog.GetCourse(ctx, mux.Vars(r)["code"])
	if err != nil {
		h.writeError(w, r, "GetCourse", err)
		return
	}

	_ = httputils.WriteJSON(w, v, cl.GetCourseRes{Course: &c}, http.StatusOK)
}

// UpdateCourseCapacity sets the capacity of a course owned by the caller.
func (h *Handler) UpdateCourseCapacity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	uid, err := requireUser(ctx)
	if err != nil {
		h.writeError(w, r, "UpdateCourseCapacity", err)
		return
	}
	req, err := parseUpdateCapacityRequest(r)
	if err != nil {
		h.Logger.Error("[UpdateCourseCapacity] error parsing request",
			"request_id", reqID,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.Catalog.UpdateCourseCapacity(ctx, req.Code, int(req.Capacity.Int64), uid)
	if err != nil {
		h.writeError(w, r, "UpdateCourseCapacity", err)
		return
	}

	_ = httputils.WriteJSON(w, v, cl.GetCourseRes{Course: &c}, http.StatusOK)
}

func parseUpdateCapacityRequest(r *http.Request) (cl.UpdateCapacityRequest, error) {
	var req cl.UpdateCapacityRequest
	if err := httputils.ReadJSON(r.Body, &req); err != nil {
		return req, err
	}
	if !req.Capacity.Valid || !cl.ValidCapacity(req.Capacity.Int64) {
		return req, cl.ErrInvalidCapacity
	}
	req.Code = mux.Vars(r)["code"]
	return req, nil
}
