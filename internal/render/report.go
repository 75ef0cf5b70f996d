package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"firewall-rule-generator/internal/engine"
	"firewall-rule-generator/internal/model"
)

var (
	colorAccent = lipgloss.Color("#A8D8EA")
	colorMuted  = lipgloss.Color("#6c757d")
	colorGood   = lipgloss.Color("#4ECDC4")
	colorFair   = lipgloss.Color("#FFE66D")
	colorPoor   = lipgloss.Color("#FF6B6B")
	colorCode   = lipgloss.Color("#7CFC00")
)

type palette struct {
	color bool

	title    lipgloss.Style
	muted    lipgloss.Style
	code     lipgloss.Style
	grades   map[Grade]lipgloss.Style
	severity map[model.Severity]lipgloss.Style
}

func newPalette(color bool) palette {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)

	return palette{
		color: color,
		title: r.NewStyle().Foreground(colorAccent).Bold(true),
		muted: r.NewStyle().Foreground(colorMuted).Italic(true),
		code:  r.NewStyle().Foreground(colorCode),
		grades: map[Grade]lipgloss.Style{
			GradeGood: r.NewStyle().Foreground(colorGood).Bold(true),
			GradeFair: r.NewStyle().Foreground(colorFair).Bold(true),
			GradePoor: r.NewStyle().Foreground(colorPoor).Bold(true),
		},
		severity: map[model.Severity]lipgloss.Style{
			model.SeverityCritical: r.NewStyle().Foreground(colorPoor).Bold(true),
			model.SeverityWarning:  r.NewStyle().Foreground(colorFair).Bold(true),
			model.SeverityInfo:     r.NewStyle().Foreground(colorAccent),
		},
	}
}

func (p palette) paint(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Report renders the human-readable view: score, warnings, rules with their
// rationale, the comparison and the learning points.
func Report(res model.Result, opts Options) string {
	p := newPalette(opts.Color)
	var b strings.Builder

	grade := ScoreGrade(res.Score)
	fmt.Fprintf(&b, "%s %s\n", p.paint(p.title, "Least-Privilege Score:"),
		p.paint(p.grades[grade], fmt.Sprintf("%d/%d (%s)", res.Score, engine.MaxScore, grade)))
	for _, e := range res.ScoreBreakdown {
		points := fmt.Sprintf("%d/%d", e.Points, e.MaxPoints)
		fmt.Fprintf(&b, "  %-28s %s\n", e.Category, p.paint(p.grades[EntryGrade(e)], points))
	}
	b.WriteString("\n" + p.paint(p.title, "Score Breakdown:") + "\n")
	for _, e := range res.ScoreBreakdown {
		fmt.Fprintf(&b, "  • %s\n", e.Reason)
	}

	if len(res.Warnings) > 0 {
		b.WriteString("\n" + p.paint(p.title, "Security Warnings") + "\n")
		for _, w := range res.Warnings {
			label := fmt.Sprintf("[%s]", strings.ToUpper(string(w.Severity)))
			fmt.Fprintf(&b, "  %s %s\n", p.paint(p.severity[w.Severity], label), w.Message)
			fmt.Fprintf(&b, "      Recommendation: %s\n", w.Recommendation)
		}
	}

	b.WriteString("\n" + p.paint(p.title, "Generated iptables Rules") + "\n")
	for _, r := range res.Rules {
		fmt.Fprintf(&b, "  %s\n", p.paint(p.code, r.Rule))
		fmt.Fprintf(&b, "      What: %s\n", r.Explanation)
		fmt.Fprintf(&b, "      Why:  %s\n", r.Threat)
	}

	b.WriteString("\n" + p.paint(p.title, "Insecure vs Secure") + "\n")
	writeExample(&b, p, "Insecure", res.Comparison.Insecure)
	writeExample(&b, p, "Secure", res.Comparison.Secure)

	b.WriteString("\n" + p.paint(p.title, "Learning Points") + "\n")
	for i, point := range res.LearningPoints {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, point)
	}

	b.WriteString("\n" + p.paint(p.muted, Disclaimer) + "\n")
	return b.String()
}

func writeExample(b *strings.Builder, p palette, label string, ex model.Example) {
	fmt.Fprintf(b, "  %s:\n", label)
	for _, r := range ex.Rules {
		fmt.Fprintf(b, "    %s\n", p.paint(p.code, r))
	}
	for _, line := range strings.Split(ex.Why, "\n") {
		fmt.Fprintf(b, "    %s\n", line)
	}
}
