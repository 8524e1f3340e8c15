package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nfrund/sigboard/internal/domain"
)

// Login exchanges credentials for a session token. It never sends a bearer
// header and never touches a TokenStore; storing the token is the caller's job.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var out domain.Session
	if err := c.request(ctx, http.MethodPost, "/login", creds, &out, false); err != nil {
		return "", err
	}
	token := strings.TrimSpace(out.Token)
	if token == "" {
		return "", domain.NewError(domain.KindServerError, http.StatusOK, "", errors.New("apiclient: login response did not include a token"))
	}
	return token, nil
}

// Register creates an account. Only email and password are sent.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	return c.request(ctx, http.MethodPost, "/register", reg, nil, false)
}

// ListSignatures returns the session owner's signatures.
func (c *Client) ListSignatures(ctx context.Context) ([]domain.Signature, error) {
	var out struct {
		Signatures []domain.Signature `json:"signatures"`
	}
	if err := c.Request(ctx, http.MethodGet, "/signatures", nil, &out); err != nil {
		return nil, err
	}
	if out.Signatures == nil {
		return []domain.Signature{}, nil
	}
	return out.Signatures, nil
}

// CountSignatures returns GET /signatures/count.
func (c *Client) CountSignatures(ctx context.Context) (int64, error) {
	return c.count(ctx, "/signatures/count")
}

// CountAnalytics returns GET /analytics/count.
func (c *Client) CountAnalytics(ctx context.Context) (int64, error) {
	return c.count(ctx, "/analytics/count")
}

// CountLinks returns GET /links/count.
func (c *Client) CountLinks(ctx context.Context) (int64, error) {
	return c.count(ctx, "/links/count")
}

func (c *Client) count(ctx context.Context, endpoint string) (int64, error) {
	var out struct {
		Count int64 `json:"count"`
	}
	if err := c.Request(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// CreateSignature submits template data whole as a single create call.
func (c *Client) CreateSignature(ctx context.Context, tpl domain.TemplateData) (domain.Signature, error) {
	req := domain.CreateSignatureRequest{TemplateData: tpl}
	if err := domain.Validate(req); err != nil {
		return domain.Signature{}, err
	}
	var out domain.Signature
	if err := c.Request(ctx, http.MethodPost, "/signature", req, &out); err != nil {
		return domain.Signature{}, err
	}
	if out.TemplateData.Name == "" {
		out.TemplateData = tpl
	}
	return out, nil
}

// PreviewSignature returns the rendered markup for a signature.
func (c *Client) PreviewSignature(ctx context.Context, id domain.SignatureID) (string, error) {
	var out domain.Preview
	if err := c.Request(ctx, http.MethodGet, signaturePath(id, "preview"), nil, &out); err != nil {
		return "", err
	}
	return out.HTML, nil
}

// ExportSignature downloads the exported payload, whatever its content type.
func (c *Client) ExportSignature(ctx context.Context, id domain.SignatureID) (domain.Artifact, error) {
	body, contentType, err := c.raw(ctx, http.MethodGet, signaturePath(id, "export"))
	if err != nil {
		return domain.Artifact{}, err
	}
	if contentType == "" {
		contentType = domain.DefaultExportContentType
	}
	return domain.Artifact{
		Filename:    domain.ExportFilename(id),
		ContentType: contentType,
		Body:        body,
	}, nil
}

// DeleteSignature removes a signature.
func (c *Client) DeleteSignature(ctx context.Context, id domain.SignatureID) error {
	return c.Request(ctx, http.MethodDelete, signaturePath(id, ""), nil, nil)
}

// CreateLink attaches a tracked URL to a signature.
func (c *Client) CreateLink(ctx context.Context, req domain.CreateLinkRequest) (domain.Link, error) {
	if err := domain.Validate(req); err != nil {
		return domain.Link{}, err
	}
	var out domain.Link
	if err := c.Request(ctx, http.MethodPost, "/links", req, &out); err != nil {
		return domain.Link{}, err
	}
	if out.URL == "" {
		out.SignatureID, out.URL = req.SignatureID, req.URL
	}
	return out, nil
}

func signaturePath(id domain.SignatureID, action string) string {
	p := fmt.Sprintf("/signature/%s", url.PathEscape(id.String()))
	if action != "" {
		p += "/" + action
	}
	return p
}
