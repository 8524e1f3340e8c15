package view

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
	formValuePrefix  = "form_"
)

// FlashData holds the one-shot messages shown at the top of the next page.
type FlashData struct {
	Success []string
	Error   []string
}

// Empty reports whether there is nothing to show.
func (f FlashData) Empty() bool {
	return len(f.Success) == 0 && len(f.Error) == 0
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key string, value any) {
	sess, err := session.Get(flashSessionName, c)
	if sess == nil {
		slog.Error("Failed to load flash session", "error", err)
		return
	}
	sess.AddFlash(value, key)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.Error("Failed to save flash session", "error", err)
	}
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// SetFormValue keeps a submitted value, such as the email of a failed login,
// so the next render of the form can pre-fill it.
func SetFormValue(c echo.Context, field, value string) {
	setFlash(c, formValuePrefix+field, value)
}

// PopFormValue returns and clears a value stored by SetFormValue.
func PopFormValue(c echo.Context, field string) string {
	sess, _ := session.Get(flashSessionName, c)
	if sess == nil {
		return ""
	}
	flashes := sess.Flashes(formValuePrefix + field)
	if len(flashes) == 0 {
		return ""
	}
	_ = sess.Save(c.Request(), c.Response())
	value, _ := flashes[0].(string)
	return value
}

// GetFlashData retrieves and clears flash messages from the session.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	sess, _ := session.Get(flashSessionName, c)
	if sess == nil {
		return data
	}

	// Flashes() retrieves and then clears the flashes from the session.
	successFlashes := sess.Flashes(flashKeySuccess)
	errorFlashes := sess.Flashes(flashKeyError)

	if len(successFlashes) == 0 && len(errorFlashes) == 0 {
		return data
	}
	data.Success = toStrings(successFlashes)
	data.Error = toStrings(errorFlashes)

	// Persist the clearing of the flashes we just read.
	_ = sess.Save(c.Request(), c.Response())
	return data
}

func toStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		} else {
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}
