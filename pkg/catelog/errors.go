package catelog

import "errors"

var ErrNotFound = errors.New("not found")
var ErrAlbumNotFound = errors.New("album not found")
var ErrNotOwner = errors.New("record is not owned by the user")
var ErrStorage = errors.New("storage fault")

var ErrInvalidID = errors.New("id must be a positive integer")
var ErrInvalidTag = errors.New("tag must not be empty")
var ErrEmptyUpdate = errors.New("at least one field must be provided in request body")
var ErrInvalidCapacity = errors.New("capacity must be provided and must be between 0 and 2147483647")
var ErrDuplicateKey = errors.New("duplicate key")
var ErrInvalidCredentials = errors.New("invalid username or password")
