package repos

import "errors"

var (
	ErrNoRecord           = errors.New("no matching record found")
	ErrUnknownSessionKind = errors.New("unknown session store")
)
