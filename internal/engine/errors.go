package engine

import "errors"

// Validation failures, rejected locally before any network call.
var (
	ErrEmptyListingURL   = errors.New("listing url is empty")
	ErrEmptyMessage      = errors.New("chat message is empty")
	ErrEmptyInstructions = errors.New("asset instructions are empty")
	ErrEmptyAssetName    = errors.New("asset name is empty")
	ErrNoActiveView      = errors.New("no active view")
	ErrUnknownSession    = errors.New("unknown saved session")
	ErrUnknownCard       = errors.New("unknown image card")
)
