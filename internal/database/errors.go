package database

import "errors"

// ErrProviderClosed is returned once the provider has been shut down.
var ErrProviderClosed = errors.New("mongo provider closed")
