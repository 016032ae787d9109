// Package progress prints human-readable progress lines for an upload run.
package progress

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/halalquebec/photouploader/internal/models"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// Printer writes one line per processed file.
type Printer struct {
	out io.Writer
	err io.Writer
}

// New returns a Printer writing progress to out and failures to errOut.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, err: errOut}
}

func (p *Printer) Uploaded(record models.ImageRecord, url string) {
	if url == "" {
		url = dimStyle.Render("(host returned no URL)")
	}
	fmt.Fprintln(p.out, okStyle.Render("Uploaded")+" "+record.RelativePath+" -> "+url)
}

// Planned reports a file a dry run would upload to destination.
func (p *Printer) Planned(record models.ImageRecord, destination string) {
	fmt.Fprintln(p.out, okStyle.Render("Would upload")+" "+record.RelativePath+" -> "+destination)
}

func (p *Printer) Failed(record models.ImageRecord, err error) {
	fmt.Fprintf(p.err, "%s %s : %v\n", errStyle.Render("Error with"), record.RelativePath, err)
}

func (p *Printer) Skipped(_ models.ImageRecord, reason string) {
	fmt.Fprintln(p.out, skipStyle.Render(reason))
}

// Saved confirms an output file was written.
func (p *Printer) Saved(what, path string) {
	fmt.Fprintf(p.out, "%s saved: %s\n", what, path)
}

// Note prints a secondary message.
func (p *Printer) Note(msg string) {
	fmt.Fprintln(p.out, dimStyle.Render(msg))
}
