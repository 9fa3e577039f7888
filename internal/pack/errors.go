package pack

import "errors"

// Sentinel errors distinguish the small failure taxonomy this package can
// produce, so callers (and tests) can branch on category without needing a
// typed exception hierarchy.
var (
	ErrUnknownType       = errors.New("pack: object type must be 1-4, 6 or 7")
	ErrOfsDeltaUnsupported = errors.New("pack: ofs-delta objects are not supported")
	ErrMissingBase       = errors.New("pack: ref-delta base object not found in index")
	ErrBadDelta          = errors.New("pack: invalid delta instruction")
	ErrBadCopyRange      = errors.New("pack: copy instruction references data outside the base object")
)
