package jsonfile

import cl "media-catalog/pkg/catelog"

// Seed replaces the contents of every collection. It is meant for loading a
// fresh data directory and for tests. Collections with duplicate keys are
// rejected before anything is written.
func (s *Store) Seed(photos []cl.Photo, albums []cl.Album, users []cl.User, courses []cl.Course) error {
	if err := cl.CheckCatalog(photos, albums, users, courses); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.photos.replaceAll(photos); err != nil {
		return err
	}
	if err := s.albums.replaceAll(albums); err != nil {
		return err
	}
	if err := s.users.replaceAll(users); err != nil {
		return err
	}
	return s.courses.replaceAll(courses)
}
