package application

import "errors"

// ErrNoData means no symbol produced a record; nothing was written.
var ErrNoData = errors.New("no stock data fetched")

// ErrNotFound is returned by archive reads when no row matches.
var ErrNotFound = errors.New("not found")
