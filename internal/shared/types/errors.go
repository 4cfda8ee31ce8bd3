package types

import "errors"

var (
	ErrMissingBucket      = errors.New("report bucket is not configured")
	ErrNoVaultsEnabled    = errors.New("no vaults enabled for reporting")
	ErrInvalidPeriod      = errors.New("invalid report period")
	ErrUnsupportedFormat  = errors.New("unsupported output format")
	ErrDotNotFound        = errors.New("graphviz dot binary not found")
	ErrSameDerivedKey     = errors.New("derived key equals source key")
	ErrEmptySnapshotInput = errors.New("snapshot object is empty")
)
