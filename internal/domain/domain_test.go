package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTemplate() TemplateData {
	return TemplateData{
		Name:     "Ada Lovelace",
		JobTitle: "Engineer",
		Company:  "Analytical Engines",
		Phone:    "+44 20 0000 0000",
		Website:  "https://example.com",
	}
}

func TestSignatureID_JSON(t *testing.T) {
	t.Run("numeric id decodes and re-encodes as a number", func(t *testing.T) {
		var sig Signature
		require.NoError(t, json.Unmarshal([]byte(`{"id":42,"template_data":{"name":"A"}}`), &sig))
		assert.Equal(t, SignatureID("42"), sig.ID)

		out, err := json.Marshal(CreateLinkRequest{SignatureID: sig.ID, URL: "https://x.test"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"signature_id":42,"url":"https://x.test"}`, string(out))
	})

	t.Run("string id stays a string", func(t *testing.T) {
		var sig Signature
		require.NoError(t, json.Unmarshal([]byte(`{"id":"sig_7f3a"}`), &sig))
		assert.Equal(t, SignatureID("sig_7f3a"), sig.ID)

		out, err := json.Marshal(sig.ID)
		require.NoError(t, err)
		assert.Equal(t, `"sig_7f3a"`, string(out))
	})

	t.Run("zero-padded string id stays a string", func(t *testing.T) {
		var sig Signature
		require.NoError(t, json.Unmarshal([]byte(`{"id":"007"}`), &sig))
		assert.Equal(t, SignatureID("007"), sig.ID)

		out, err := json.Marshal(CreateLinkRequest{SignatureID: sig.ID, URL: "https://x.test"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"signature_id":"007","url":"https://x.test"}`, string(out))

		for _, id := range []SignatureID{"+7", "18446744073709551616"} {
			out, err := json.Marshal(id)
			require.NoError(t, err)
			assert.True(t, json.Valid(out), "%s encodes as %s", id, out)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		var id SignatureID
		assert.Error(t, json.Unmarshal([]byte(`{"nested":true}`), &id))
	})
}

func TestParseSignatureID(t *testing.T) {
	id, err := ParseSignatureID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, SignatureID("42"), id)

	for _, raw := range []string{"", "   ", "../etc", "1?x=2"} {
		_, err := ParseSignatureID(raw)
		assert.ErrorIs(t, err, ErrValidation, "input %q", raw)
	}
}

func TestSignature_DisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Signature{TemplateData: validTemplate()}.DisplayName())
	assert.Equal(t, "Unnamed Signature", Signature{}.DisplayName())
	assert.Equal(t, "Unnamed Signature", Signature{TemplateData: TemplateData{Name: "  "}}.DisplayName())
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "signature_42.html", ExportFilename("42"))
	assert.Contains(t, ExportFilename("abc"), "abc")
}

func TestValidate(t *testing.T) {
	t.Run("complete template passes", func(t *testing.T) {
		assert.NoError(t, Validate(CreateSignatureRequest{TemplateData: validTemplate()}))
	})

	t.Run("social links are optional and not format checked", func(t *testing.T) {
		tpl := validTemplate()
		tpl.Website = "not a url"
		tpl.SocialLinks.Twitter = "@ada"
		assert.NoError(t, Validate(CreateSignatureRequest{TemplateData: tpl}))
	})

	t.Run("missing fields are reported by wire name", func(t *testing.T) {
		tpl := validTemplate()
		tpl.JobTitle = ""
		tpl.Phone = "   "
		err := Validate(CreateSignatureRequest{TemplateData: tpl})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "template_data.job_title")
		assert.Contains(t, err.Error(), "template_data.phone")
	})

	t.Run("link url is required", func(t *testing.T) {
		err := Validate(CreateLinkRequest{SignatureID: "1"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestError_Matching(t *testing.T) {
	err := fmt.Errorf("load: %w", NewError(KindNotFound, 404, "", nil))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, KindOf(errors.New("plain")), Kind(0))
	assert.Contains(t, err.Error(), "not_found (404)")
}

func TestMessageOr(t *testing.T) {
	withMsg := NewError(KindValidation, 422, "Email already taken", nil)
	noMsg := NewError(KindServerError, 500, "", nil)

	assert.Equal(t, "Email already taken", MessageOr(withMsg, "fallback"))
	assert.Equal(t, "fallback", MessageOr(noMsg, "fallback"))
	assert.Equal(t, "fallback", MessageOr(errors.New("boom"), "fallback"))
	assert.Equal(t, GenericMessage(KindServerError), noMsg.UserMessage())
}

func TestRegistration_PasswordsMatch(t *testing.T) {
	assert.True(t, Registration{Password: "pw", ConfirmPassword: "pw"}.PasswordsMatch())
	assert.False(t, Registration{Password: "pw", ConfirmPassword: "PW"}.PasswordsMatch())
}
