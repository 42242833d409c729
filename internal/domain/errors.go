package domain

import "errors"

var (
	// ErrQueryRequired is returned when a live-search operation is missing its query
	ErrQueryRequired = errors.New("query is required")

	// ErrSourceUnavailable is returned when a connector capability is not registered or disabled
	ErrSourceUnavailable = errors.New("source connector unavailable")

	// ErrSourceFailure is returned by connectors that could not reach or parse their source
	ErrSourceFailure = errors.New("source request failed")

	// ErrStoreNotFound is returned when an inventory item references a missing store
	ErrStoreNotFound = errors.New("store does not exist")

	// ErrProductNotFound is returned when an inventory item references a missing product
	ErrProductNotFound = errors.New("product does not exist")
)
