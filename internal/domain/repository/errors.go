package repository

import "errors"

// ErrDuplicateKey is returned by repositories when a write violates a unique
// constraint. Callers decide whether that means retry or conflict.
var ErrDuplicateKey = errors.New("duplicate key")
