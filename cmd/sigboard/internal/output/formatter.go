// Package output prints CLI results as a table or as JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nfrund/sigboard/internal/dashboard"
	"github.com/nfrund/sigboard/internal/domain"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Printer writes results in one format.
type Printer struct {
	w      io.Writer
	format string
}

// New returns a Printer for format, which must be table or json.
func New(w io.Writer, format string) (*Printer, error) {
	switch format {
	case FormatTable, FormatJSON:
		return &Printer{w: w, format: format}, nil
	default:
		return nil, fmt.Errorf("invalid format %q: valid formats are table, json", format)
	}
}

// JSON reports whether the printer emits JSON.
func (p *Printer) JSON() bool { return p.format == FormatJSON }

// CountDisplay is one count as printed in JSON. Value is nil when it failed.
type CountDisplay struct {
	Name  string `json:"name"`
	Value *int64 `json:"value"`
	Error string `json:"error,omitempty"`
}

// SignatureDisplay is one signature as printed in JSON.
type SignatureDisplay struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	JobTitle  string `json:"job_title"`
	Company   string `json:"company"`
	CreatedAt string `json:"created_at,omitempty"`
}

// DashboardDisplay is the whole dashboard as printed in JSON.
type DashboardDisplay struct {
	Counts     []CountDisplay     `json:"counts,omitempty"`
	CountError string             `json:"count_error,omitempty"`
	Signatures []SignatureDisplay `json:"signatures"`
	ListError  string             `json:"list_error,omitempty"`
}

func countDisplays(counts dashboard.Counts) []CountDisplay {
	named := []struct {
		name  string
		count dashboard.Count
	}{
		{"analytics", counts.Analytics},
		{"signatures", counts.Signatures},
		{"links", counts.Links},
	}
	out := make([]CountDisplay, 0, len(named))
	for _, n := range named {
		d := CountDisplay{Name: n.name}
		if n.count.OK() {
			v := n.count.Value
			d.Value = &v
		} else {
			d.Error = domain.MessageOr(n.count.Err, domain.GenericMessage(domain.KindOf(n.count.Err)))
		}
		out = append(out, d)
	}
	return out
}

func signatureDisplays(sigs []domain.Signature) []SignatureDisplay {
	out := make([]SignatureDisplay, 0, len(sigs))
	for _, s := range sigs {
		d := SignatureDisplay{
			ID:       s.ID.String(),
			Name:     s.DisplayName(),
			JobTitle: s.TemplateData.JobTitle,
			Company:  s.TemplateData.Company,
		}
		if !s.CreatedAt.IsZero() {
			d.CreatedAt = s.CreatedAt.Format("2006-01-02")
		}
		out = append(out, d)
	}
	return out
}

// Dashboard prints counts and the signature list. withCounts is false when
// only the list was loaded.
func (p *Printer) Dashboard(v *dashboard.View, withCounts bool) error {
	display := DashboardDisplay{Signatures: signatureDisplays(v.Signatures())}
	if withCounts {
		display.Counts = countDisplays(v.Counts)
		if v.Errored() {
			display.CountError = dashboard.LoadFailedMessage
		}
	}
	if v.ListErr != nil {
		display.ListError = "Failed to load signatures."
	}

	if p.JSON() {
		return p.encode(display)
	}

	if withCounts {
		p.countsTable(display)
		fmt.Fprintln(p.w)
	}
	p.signaturesTable(display)
	return nil
}

func (p *Printer) countsTable(d DashboardDisplay) {
	title := cases.Title(language.English)
	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	for _, c := range d.Counts {
		value := "-"
		if c.Value != nil {
			value = fmt.Sprint(*c.Value)
		}
		fmt.Fprintf(w, "%s\t%s\n", title.String(c.Name), value)
	}
	w.Flush()
	if d.CountError != "" {
		fmt.Fprintln(p.w, d.CountError)
	}
}

func (p *Printer) signaturesTable(d DashboardDisplay) {
	switch {
	case d.ListError != "":
		fmt.Fprintln(p.w, d.ListError)
		return
	case len(d.Signatures) == 0:
		fmt.Fprintln(p.w, "No signatures yet.")
		return
	}

	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "ID\tNAME\tJOB TITLE\tCOMPANY\tCREATED")
	for _, s := range d.Signatures {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			s.ID,
			truncateString(s.Name, 30),
			truncateString(s.JobTitle, 30),
			truncateString(s.Company, 30),
			s.CreatedAt)
	}
}

// Message prints a confirmation line, or {"message": ...} in JSON.
func (p *Printer) Message(msg string, fields map[string]string) error {
	if p.JSON() {
		out := map[string]string{"message": msg}
		for k, v := range fields {
			out[k] = v
		}
		return p.encode(out)
	}
	fmt.Fprintln(p.w, msg)
	return nil
}

func (p *Printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncateString truncates a string to the specified length, adding "..." if truncated
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
