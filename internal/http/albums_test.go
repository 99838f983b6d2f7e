package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"media-catalog/internal/mock"
	cl "media-catalog/pkg/catelog"

	"gopkg.in/guregu/null.v3"
)

func TestListAlbums(t *testing.T) {
	albums := []cl.Album{{ID: 10, Name: "Vacation"}, {ID: 11, Name: "Winter"}}

	h := newTestHandler(&mock.Catalog{
		ListAlbumsFn: func(ctx context.Context) ([]cl.Album, error) {
			return albums, nil
		},
	})
	wr := serve(h, "GET", "/v1/albums", "", "")
	checkResponse(t, wr, http.StatusOK, cl.ListAlbumsRes{Albums: albums})

	h = newTestHandler(&mock.Catalog{
		ListAlbumsFn: func(ctx context.Context) ([]cl.Album, error) {
			return nil, errors.New("internal server error")
		},
	})
	wr = serve(h, "GET", "/v1/albums", "", "")
	checkResponse(t, wr, http.StatusInternalServerError, errRes("internal server error"))
}

func TestAlbumPhotos(t *testing.T) {
	album := cl.Album{ID: 10, Name: "Vacation"}
	photos := []cl.Photo{{ID: 1, Tags: []string{}, Albums: []int{10}, Owner: 7}}

	var gotName string
	var gotUser null.Int
	c := &mock.Catalog{
		PhotosInAlbumFn: func(ctx context.Context, albumName string, userID null.Int) (cl.Album, []cl.Photo, error) {
			gotName = albumName
			gotUser = userID
			if albumName != "vacation" && albumName != "VACATION" {
				return cl.Album{}, nil, cl.ErrAlbumNotFound
			}
			return album, photos, nil
		},
	}
	h := newTestHandler(c)

	wr := serve(h, "GET", "/v1/album/Summer/photos", "", "")
	checkResponse(t, wr, http.StatusNotFound, errRes(cl.ErrAlbumNotFound.Error()))

	wr = serve(h, "GET", "/v1/album/VACATION/photos", "", tokenFor(t, 7))
	checkResponse(t, wr, http.StatusOK, cl.AlbumPhotosRes{Album: &album, Photos: photos})
	if gotName != "VACATION" || gotUser != null.IntFrom(7) {
		t.Fatalf("unexpected arguments: %q %v", gotName, gotUser)
	}

	wr = serve(h, "GET", "/v1/album/vacation/photos", "", "")
	checkResponse(t, wr, http.StatusOK, cl.AlbumPhotosRes{Album: &album, Photos: photos})
	if gotUser.Valid {
		t.Fatalf("anonymous request must not filter by user")
	}
}
