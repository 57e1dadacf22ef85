package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/genie/internal/app"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/ui/output"
	"go.trai.ch/genie/internal/ui/style"
)

// printer renders command results with the brand styles.
type printer struct {
	w      io.Writer
	styles style.Styles
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, styles: style.NewStyles(output.NewRenderer(w))}
}

func (p *printer) line(s string) {
	_, _ = fmt.Fprintln(p.w, s)
}

func (p *printer) success(msg string) {
	p.line(p.styles.Success.Render(style.Check) + " " + msg)
}

func (p *printer) muted(msg string) {
	p.line(p.styles.Muted.Render(msg))
}

func (p *printer) title(msg string) {
	p.line(p.styles.Title.Render(msg))
}

func (p *printer) field(label, value string) {
	if value == "" {
		return
	}
	p.line(p.styles.Label.Render(fmt.Sprintf("%-10s", label)) + " " + value)
}

func (p *printer) user(u *domain.LoginUser) {
	p.title(u.DisplayName())
	p.field("account", u.UserAccount)
	p.field("id", strconv.FormatInt(u.ID, 10))
	p.field("role", string(u.UserRole))
	p.field("profile", u.UserProfile)
}

func (p *printer) app(a *domain.App, deployedURL string) {
	p.title(appName(a))
	p.field("id", strconv.FormatInt(a.ID, 10))
	p.field("type", string(a.CodeGenType))
	p.field("prompt", a.InitPrompt)
	if a.User != nil {
		p.field("owner", a.User.UserAccount)
	}
	p.field("created", a.CreateTime)
	if a.Deployed() {
		p.field("deployed", deployedURL)
	}
}

// page renders a page of apps as aligned rows: status marker, id, name and type.
func (p *printer) page(heading string, page *app.AppPage) {
	p.title(heading)
	if page == nil || len(page.Records) == 0 {
		p.muted("  no apps")
		return
	}

	idWidth := 0
	for _, a := range page.Records {
		idWidth = max(idWidth, len(strconv.FormatInt(a.ID, 10)))
	}

	idStyle := lipgloss.NewStyle().Width(idWidth).Align(lipgloss.Right)
	for _, a := range page.Records {
		marker := p.styles.Muted.Render(style.Circle)
		if a.Deployed() {
			marker = p.styles.Success.Render(style.Dot)
		}
		row := []string{" ", marker, idStyle.Render(strconv.FormatInt(a.ID, 10)), appName(&a)}
		if a.CodeGenType != "" {
			row = append(row, p.styles.Muted.Render(string(a.CodeGenType)))
		}
		p.line(strings.Join(row, " "))
	}

	if page.Pages > 1 {
		p.muted(fmt.Sprintf("  page %d of %d, %d apps", page.Current, page.Pages, page.Total))
	}
}

// chunk renders one increment of generation output. Tool activity is set apart from the
// generated content.
func (p *printer) chunk(c domain.GenerationChunk) {
	switch c.Type {
	case domain.MessageToolRequest:
		_, _ = fmt.Fprint(p.w, "\n"+p.styles.Tool.Render(style.Arrow+" "+c.Content)+"\n")
	case domain.MessageToolExecuted:
		_, _ = fmt.Fprint(p.w, p.styles.Tool.Render(style.Check+" "+c.Content)+"\n")
	default:
		_, _ = fmt.Fprint(p.w, c.Content)
	}
}

func appName(a *domain.App) string {
	if a.AppName != "" {
		return a.AppName
	}
	return "untitled app " + strconv.FormatInt(a.ID, 10)
}
