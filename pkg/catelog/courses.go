package catelog

import (
	"math"

	"gopkg.in/guregu/null.v3"
)

// MaxCapacity is the largest capacity the stores can hold.
const MaxCapacity = math.MaxInt32

type Course struct {
	Code     string `json:"code" db:"code"`
	Name     string `json:"name" db:"name"`
	Capacity int    `json:"capacity" db:"capacity"`
	Owner    int    `json:"owner" db:"owner"`
}

// ValidCapacity reports whether n fits a course's capacity column.
func ValidCapacity(n int64) bool {
	return n >= 0 && n <= MaxCapacity
}

// OwnedBy reports whether userID is the course's owner.
func (c Course) OwnedBy(userID int) bool {
	return c.Owner == userID
}

type ListCoursesRes struct {
	Courses []Course `json:"courses"`
}

type GetCourseRes struct {
	Course *Course `json:"course"`
}

type UpdateCapacityRequest struct {
	Code     string   `json:"-"`
	Capacity null.Int `json:"capacity"`
}
