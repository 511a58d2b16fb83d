package repository

import "context"

// Settings is a namespaced key/value store for feature settings. Values are
// stored as strings; typed accessors fall back to the given default when the
// key is absent.
type Settings interface {
	GetString(ctx context.Context, section, key, def string) (string, error)
	GetInt(ctx context.Context, section, key string, def int) (int, error)
	GetBool(ctx context.Context, section, key string, def bool) (bool, error)
	SetString(ctx context.Context, section, key, value string) error
	SetInt(ctx context.Context, section, key string, value int) error
	SetBool(ctx context.Context, section, key string, value bool) error
}
