package services

import (
	"errors"
	"strings"

	"spendwise/internal/engine"
	apperrors "spendwise/internal/errors"
)

// engineError maps an aggregation failure onto an AppError. Validation errors
// on caller-supplied values become 4xx; invalid stored data is an internal
// error.
func engineError(err error) error {
	var verr *engine.ValidationError
	if !errors.As(err, &verr) {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	switch {
	case verr.Field == "period":
		return apperrors.WithMessage(apperrors.ErrInvalidPeriod, verr.Error())
	case verr.Field == "window" || verr.Field == "reference_month":
		return apperrors.WithMessage(apperrors.ErrInvalidMonth, verr.Error())
	case strings.HasPrefix(verr.Field, "expenses"):
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, verr.Error())
}
