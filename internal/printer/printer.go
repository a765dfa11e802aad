// Package printer renders user-facing command output. Operational logging
// goes through zerolog; this package is only for the terminal surface.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Printer writes styled status lines to a terminal, or plain lines when
// the output is not a tty.
type Printer struct {
	out   io.Writer
	plain bool
}

// New creates a Printer writing to out. Styling is disabled automatically
// when out is not a terminal.
func New(out io.Writer) *Printer {
	plain := true
	if f, ok := out.(*os.File); ok {
		plain = !term.IsTerminal(int(f.Fd()))
	}
	return &Printer{out: out, plain: plain}
}

func (p *Printer) line(prefix string, style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.plain {
		fmt.Fprintf(p.out, "%s %s\n", prefix, msg)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", style.Render(prefix), msg)
}

// Infof prints a neutral status line.
func (p *Printer) Infof(format string, args ...any) {
	p.line("•", styleInfo, format, args...)
}

// Successf prints a success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line("✓", styleSuccess, format, args...)
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line("!", styleWarn, format, args...)
}

// Errorf prints an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line("✗", styleError, format, args...)
}

type ctxKey struct{}

// WithCtx attaches a printer to the context.
func WithCtx(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer from the context, or a stdout printer if none
// was attached.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}
