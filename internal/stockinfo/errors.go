package stockinfo

import (
	"errors"
	"fmt"
)

// ErrSymbolNotFound marks an empty provider result: the symbol is unknown,
// delisted, or has no price history. The HTTP layer maps this to 404.
var ErrSymbolNotFound = errors.New("symbol not found")

// ErrNoData marks a render attempt before any successful Fetch call.
var ErrNoData = errors.New("no price data cached, call Fetch first")

// ProviderError wraps an upstream query failure with the symbol that
// triggered it. The cause is never swallowed; errors.Unwrap reaches it.
type ProviderError struct {
	Symbol string
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("error fetching data for %s: %v", e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
