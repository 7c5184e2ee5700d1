package model

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDataCorruption   = errors.New("data corruption")
	ErrStoreUnavailable = errors.New("backing store unavailable")
)
