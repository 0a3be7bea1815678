package adb

import "errors"

var (
	ErrNotFound   = errors.New("adb: debug bridge not found")
	ErrNoDevice   = errors.New("adb: no device attached")
	ErrEmptyValue = errors.New("adb: empty property value")
)
