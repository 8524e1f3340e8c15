package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureID identifies a signature. The remote API is free to use numeric
// or string identifiers; both decode into a SignatureID.
type SignatureID string

// UnmarshalJSON accepts a JSON number or string.
func (id *SignatureID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = SignatureID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("signature id: %w", err)
	}
	*id = SignatureID(n.String())
	return nil
}

// MarshalJSON writes canonical decimal identifiers back as numbers so they
// round-trip unchanged. Anything else, "007" included, stays a string.
func (id SignatureID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id SignatureID) numeric() bool {
	if id == "" {
		return false
	}
	n, err := strconv.ParseUint(string(id), 10, 64)
	return err == nil && strconv.FormatUint(n, 10) == string(id)
}

func (id SignatureID) String() string { return string(id) }

// ParseSignatureID validates an identifier taken from a URL or argument.
func ParseSignatureID(raw string) (SignatureID, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, "/?#") {
		return "", NewError(KindValidation, 0, "Invalid signature identifier.", nil)
	}
	return SignatureID(s), nil
}

// SocialLinks holds the optional social profile URLs of a signature.
type SocialLinks struct {
	LinkedIn string `json:"linkedin" form:"social_links.linkedin"`
	Twitter  string `json:"twitter" form:"social_links.twitter"`
}

// TemplateData is the structured content a signature is rendered from.
// Only presence is checked; URL fields are not format-validated.
type TemplateData struct {
	Name        string      `json:"name" form:"name" validate:"required,nonblank"`
	JobTitle    string      `json:"job_title" form:"job_title" validate:"required,nonblank"`
	Company     string      `json:"company" form:"company" validate:"required,nonblank"`
	Phone       string      `json:"phone" form:"phone" validate:"required,nonblank"`
	Website     string      `json:"website" form:"website" validate:"required,nonblank"`
	SocialLinks SocialLinks `json:"social_links"`
}

// Signature is a user-owned record of templated identity fields.
type Signature struct {
	ID           SignatureID  `json:"id"`
	TemplateData TemplateData `json:"template_data"`
	CreatedAt    time.Time    `json:"created_at"`
}

// DisplayName returns the signature's name, or a placeholder when unset.
func (s Signature) DisplayName() string {
	if name := strings.TrimSpace(s.TemplateData.Name); name != "" {
		return name
	}
	return "Unnamed Signature"
}

// CreateSignatureRequest is the body of POST /signature.
type CreateSignatureRequest struct {
	TemplateData TemplateData `json:"template_data"`
}

// Preview is the rendered markup returned for a signature.
type Preview struct {
	HTML string `json:"html"`
}

// Artifact is an exported signature ready to be saved or downloaded.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// DefaultExportContentType is used when the API does not name one.
const DefaultExportContentType = "text/html"

// ExportFilename is the deterministic download name for a signature export.
func ExportFilename(id SignatureID) string {
	return fmt.Sprintf("signature_%s.html", id)
}
