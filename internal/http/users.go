package http

import (
	cl "media-catalog/pkg/catelog"
	"net/http"

	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

// Login checks the username and password in the body and responds with a
// bearer token for the user.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	var req cl.LoginRequest
	if err := httputils.ReadJSON(r.Body, &req); err != nil {
		h.Logger.Error("[Login] error parsing request",
			"request_id", reqID,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.Catalog.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, "Login", err)
		return
	}
	token, err := h.Tokens.Issue(u.ID)
	if err != nil {
		h.writeError(w, r, "Login", err)
		return
	}

	h.Logger.Info("[Login] user logged in",
		"request_id", reqID,
		"user_id", u.ID,
	)
	res := cl.LoginResponse{
		Token:    token,
		UserID:   u.ID,
		Username: u.Username,
	}
	_ = httputils.WriteJSON(w, v, res, http.StatusOK)
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()

	uid, err := requireUser(ctx)
	if err != nil {
		h.writeError(w, r, "Me", err)
		return
	}
	u, err := h.Catalog.GetUser(ctx, uid)
	if err != nil {
		h.writeError(w, r, "Me", err)
		return
	}

	_ = httputils.WriteJSON(w, v, u, http.StatusOK)
}
