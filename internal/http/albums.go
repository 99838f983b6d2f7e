package http

import (
	cl "media-catalog/pkg/catelog"
	"net/http"

	"github.com/gorilla/mux"
	httputils "github.com/twitsprout/tools/http"
)

// ListAlbums get the list of all the albums
func (h *Handler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()

	albums, err := h.Catalog.ListAlbums(ctx)
	if err != nil {
		h.writeError(w, r, "ListAlbums", err)
		return
	}

	_ = httputils.WriteJSON(w, v, cl.ListAlbumsRes{Albums: albums}, http.StatusOK)
}

// AlbumPhotos gets the album matching the name in the path, ignoring case,
// with its photos. Authenticated callers only see their own photos.
func (h *Handler) AlbumPhotos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()

	req := cl.GetAlbumReq{AlbumName: mux.Vars(r)["name"]}

	album, photos, err := h.Catalog.PhotosInAlbum(ctx, req.AlbumName, userID(ctx))
	if err != nil {
		h.writeError(w, r, "AlbumPhotos", err)
		return
	}

	_ = httputils.WriteJSON(w, v, cl.AlbumPhotosRes{Album: &album, Photos: photos}, http.StatusOK)
}
