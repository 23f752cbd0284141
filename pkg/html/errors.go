package html

import herrors "github.com/vango-dev/htmlkit/internal/errors"

// Error is the structured error returned by this module.
type Error = herrors.Error

// Sentinels for errors.Is.
var (
	ErrInvalidArgument = herrors.ErrInvalidArgument
	ErrNotFound        = herrors.ErrNotFound
	ErrLogic           = herrors.ErrLogic
	ErrRender          = herrors.ErrRender
)
