package dto

import (
	"fmt"
	"strings"

	"github.com/feral-file/ff-lead-analytics/internal/api/shared/constants"
	apierrors "github.com/feral-file/ff-lead-analytics/internal/api/shared/errors"
	"github.com/feral-file/ff-lead-analytics/internal/domain"
)

// PageViewRequest represents the body of a page-view beacon
type PageViewRequest struct {
	ListingID string        `json:"listing_id" binding:"required"`
	Source    domain.Source `json:"source" binding:"required"`
}

// Validate validates the request body
func (r *PageViewRequest) Validate() error {
	if !domain.ListingID(r.ListingID).Valid() {
		return apierrors.NewValidationError(fmt.Sprintf("invalid listing_id: %s", r.ListingID))
	}

	if !domain.IsPageViewSource(r.Source) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid source: %s. Must be one of: microsite, direct", r.Source))
	}

	return nil
}

// SubmitLeadRequest represents the body of a lead submitted from a listing page
type SubmitLeadRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone"`
	Message *string `json:"message"`
	Source  string  `json:"source"`
}

// Normalize trims surrounding whitespace and drops empty optional fields
func (r *SubmitLeadRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Source = strings.TrimSpace(r.Source)
	r.Phone = trimOptional(r.Phone)
	r.Message = trimOptional(r.Message)
}

// Validate validates the request body
func (r *SubmitLeadRequest) Validate() error {
	if r.Name == "" {
		return apierrors.NewValidationError("name is required")
	}
	if len(r.Name) > constants.MAX_LEAD_NAME_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("name must be at most %d characters", constants.MAX_LEAD_NAME_LENGTH))
	}
	if len(r.Email) > constants.MAX_LEAD_EMAIL_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("email must be at most %d characters", constants.MAX_LEAD_EMAIL_LENGTH))
	}
	if r.Phone != nil && len(*r.Phone) > constants.MAX_LEAD_PHONE_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("phone must be at most %d characters", constants.MAX_LEAD_PHONE_LENGTH))
	}
	if r.Message != nil && len(*r.Message) > constants.MAX_LEAD_MESSAGE_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("message must be at most %d characters", constants.MAX_LEAD_MESSAGE_LENGTH))
	}
	if len(r.Source) > constants.MAX_SOURCE_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("source must be at most %d characters", constants.MAX_SOURCE_LENGTH))
	}

	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
