package catelog

import (
	"slices"

	"gopkg.in/guregu/null.v3"
)

type Photo struct {
	ID          int      `json:"id" db:"id"`
	Title       string   `json:"title" db:"title"`
	Description string   `json:"description" db:"description"`
	Date        string   `json:"date" db:"date"`
	Filename    string   `json:"filename" db:"filename"`
	Resolution  string   `json:"resolution" db:"resolution"`
	Tags        []string `json:"tags" db:"-"`
	Albums      []int    `json:"albums" db:"-"`
	Owner       int      `json:"owner" db:"owner"`
}

// HasTag reports whether tag is already in the photo's tag set.
func (p Photo) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

// InAlbum reports whether the photo belongs to the album with the given id.
func (p Photo) InAlbum(albumID int) bool {
	return slices.Contains(p.Albums, albumID)
}

// OwnedBy reports whether userID is the photo's owner.
func (p Photo) OwnedBy(userID int) bool {
	return p.Owner == userID
}

// PhotoUpdate holds the fields of a partial photo update. Fields that are not
// set are left untouched when the update is applied.
type PhotoUpdate struct {
	Title       null.String `json:"title"`
	Description null.String `json:"description"`
	Date        null.String `json:"date"`
	Filename    null.String `json:"filename"`
	Resolution  null.String `json:"resolution"`
}

// IsEmpty returns true when no field of the update is set.
func (u PhotoUpdate) IsEmpty() bool {
	return !u.Title.Valid &&
		!u.Description.Valid &&
		!u.Date.Valid &&
		!u.Filename.Valid &&
		!u.Resolution.Valid
}

// Apply merges the set fields of u into p and returns the result.
func (u PhotoUpdate) Apply(p Photo) Photo {
	if u.Title.Valid {
		p.Title = u.Title.String
	}
	if u.Description.Valid {
		p.Description = u.Description.String
	}
	if u.Date.Valid {
		p.Date = u.Date.String
	}
	if u.Filename.Valid {
		p.Filename = u.Filename.String
	}
	if u.Resolution.Valid {
		p.Resolution = u.Resolution.String
	}
	return p
}

type ListPhotosRes struct {
	Photos []Photo `json:"photos"`
}

type GetPhotoReq struct {
	PhotoID int
}

type GetPhotoRes struct {
	Photo *Photo `json:"photo"`
}

type UpdatePhotoRequest struct {
	PhotoID int
	Update  PhotoUpdate
}

type UpdatePhotoResponse struct {
	Photo *Photo `json:"photo"`
}

type AddTagRequest struct {
	PhotoID int    `json:"-"`
	Tag     string `json:"tag"`
}

type AddTagResponse struct {
	Added bool `json:"added"`
}
