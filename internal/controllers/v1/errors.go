package v1

import (
	"errors"
	"net/http"

	"github.com/foerdercheck/backend/internal/checklist"
	"github.com/foerdercheck/backend/internal/models"
	"gorm.io/gorm"
)

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) || errors.Is(err, errNoExtractionClient) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, checklist.ErrLineOutOfRange) || errors.Is(err, checklist.ErrLineNotEditable) {
		return http.StatusBadRequest
	}

	return http.StatusBadRequest
}

var (
	errNoExtractionClient = errors.New("the document AI service is not configured")
	errInvalidBlob        = errors.New("one of the submitted data blobs is not valid for its record type")
)
