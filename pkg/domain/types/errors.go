package types

import "github.com/m-mizutani/goerr/v2"

// ErrStoreUnavailable indicates the exchange store connection could not
// be established or the operation timed out. Repository implementations
// wrap their transport errors with this sentinel so that upper layers
// can classify the failure without depending on backend packages.
var ErrStoreUnavailable = goerr.New("exchange store unavailable")
