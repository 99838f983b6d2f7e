package catelog

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// CheckUnique returns ErrDuplicateKey for the first record whose key was
// already seen.
func CheckUnique[T any, K comparable](recs []T, key func(T) K) error {
	seen := mapset.NewThreadUnsafeSet[K]()
	for _, r := range recs {
		k := key(r)
		if !seen.Add(k) {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, k)
		}
	}
	return nil
}

// CheckCatalog verifies that every collection is keyed uniquely: photo, album
// and user ids, usernames and course codes.
func CheckCatalog(photos []Photo, albums []Album, users []User, courses []Course) error {
	if err := CheckUnique(photos, func(p Photo) int { return p.ID }); err != nil {
		return fmt.Errorf("photos: %w", err)
	}
	if err := CheckUnique(albums, func(a Album) int { return a.ID }); err != nil {
		return fmt.Errorf("albums: %w", err)
	}
	if err := CheckUnique(users, func(u User) int { return u.ID }); err != nil {
		return fmt.Errorf("users: %w", err)
	}
	if err := CheckUnique(users, func(u User) string { return u.Username }); err != nil {
		return fmt.Errorf("usernames: %w", err)
	}
	if err := CheckUnique(courses, func(c Course) string { return c.Code }); err != nil {
		return fmt.Errorf("courses: %w", err)
	}
	return nil
}
