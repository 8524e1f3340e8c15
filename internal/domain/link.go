package domain

// Link is a tracked URL attached to a signature.
type Link struct {
	ID          string      `json:"id,omitempty"`
	SignatureID SignatureID `json:"signature_id"`
	URL         string      `json:"url"`
}

// CreateLinkRequest is the body of POST /links.
type CreateLinkRequest struct {
	SignatureID SignatureID `json:"signature_id" form:"signature_id" validate:"required"`
	URL         string      `json:"url" form:"url" validate:"required,nonblank"`
}
