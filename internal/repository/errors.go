package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// 外部キー/一意制約違反
	ErrConflict = errors.New("conflict")
)
