package catelog

import (
	"strconv"
	"strings"
)

// ParseID converts a user supplied record id into an int. Anything that is
// not a positive base-10 integer yields ErrInvalidID.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
