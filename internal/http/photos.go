package http

import (
	cl "media-catalog/pkg/catelog"
	"net/http"

	"github.com/gorilla/mux"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

// ListPhotos lists every photo, or only the caller's photos when the request
// is authenticated.
func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()

	photos, err := h.Catalog.ListPhotos(ctx, userID(ctx))
	if err != nil {
		h.writeError(w, r, "ListPhotos", err)
		return
	}

	_ = httputils.WriteJSON(w, v, cl.ListPhotosRes{Photos: photos}, http.StatusOK)
}

// GetPhoto gets the details of a photo owned by the caller.
func (h *Handler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()

	uid, err := requireUser(ctx)
	if err != nil {
		h.writeError(w, r, "GetPhoto", err)
		return
	}
	req, err := parseGetPhotoRequest(r)
	if err != nil {
		h.writeError(w, r, "GetPhoto", err)
		return
	}

	p, err := h.Catalog.GetPhoto(ctx, req.PhotoID, uid)
	if err != nil {
		h.writeError(w, r, "GetPhoto", err)
		return
	}

	_ = httputils.WriteJSON(w, v, cl.GetPhotoRes{Photo: &p}, http.StatusOK)
}

func parseGetPhotoRequest(r *http.Request) (cl.GetPhotoReq, error) {
	var req cl.GetPhotoReq
	id, err := cl.ParseID(mux.Vars(r)["id"])
	if err != nil {
		return req, err
	}
	req.PhotoID = id
	return req, nil
}

// UpdatePhoto merges the fields in the request body into a photo owned by
// the caller.
func (h *Handler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	uid, err := requireUser(ctx)
	if err != nil {
		h.writeError(w, r, "UpdatePhoto", err)
		return
	}
	req, err := parseUpdatePhotoRequest(r)
	if err != nil {
		h.Logger.Error("[UpdatePhoto] error parsing request",
			"request_id", reqID,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.Catalog.UpdatePhoto(ctx, req.PhotoID, req.Update, uid)
	if err != nil {
		h.writeError(w, r, "UpdatePhoto", err)
		return
	}

	_ = httputils.WriteJSON(w, v, cl.UpdatePhotoResponse{Photo: &p}, http.StatusOK)
}

func parseUpdatePhotoRequest(r *http.Request) (cl.UpdatePhotoRequest, error) {
	var req cl.UpdatePhotoRequest
	id, err := cl.ParseID(mux.Vars(r)["id"])
	if err != nil {
		return req, err
	}
	if err := httputils.ReadJSON(r.Body, &req.Update); err != nil {
		return req, err
	}
	req.PhotoID = id
	return req, nil
}

// AddTag adds a tag to a photo owned by the caller. Adding a tag the photo
// already has is not an error; the response reports added=false.
func (h *Handler) AddTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	uid, err := requireUser(ctx)
	if err != nil {
		h.writeError(w, r, "AddTag", err)
		return
	}
	req, err := parseAddTagRequest(r)
	if err != nil {
		h.Logger.Error("[AddTag] error parsing request",
			"request_id", reqID,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := h.Catalog.AddTag(ctx, req.PhotoID, req.Tag, uid)
	if err != nil {
		h.writeError(w, r, "AddTag", err)
		return
	}

	code := http.StatusOK
	if added {
		code = http.StatusCreated
	}
	_ = httputils.WriteJSON(w, v, cl.AddTagResponse{Added: added}, code)
}

func parseAddTagRequest(r *http.Request) (cl.AddTagRequest, error) {
	var req cl.AddTagRequest
	id, err := cl.ParseID(mux.Vars(r)["id"])
	if err != nil {
		return req, err
	}
	if err := httputils.ReadJSON(r.Body, &req); err != nil {
		return req, err
	}
	req.PhotoID = id
	return req, nil
}
