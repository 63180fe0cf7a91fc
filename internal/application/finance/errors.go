package finance

import (
	"errors"

	"github.com/xborder/finance-engine/internal/domain/shared"
)

// itemError converts a failure into the in-band error shape carried on batch
// items. Domain errors keep their machine-readable code; anything else maps
// to INTERNAL_ERROR.
func itemError(err error) *ItemError {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return &ItemError{Code: domainErr.Code, Message: domainErr.Message}
	}
	return &ItemError{Code: "INTERNAL_ERROR", Message: err.Error()}
}
