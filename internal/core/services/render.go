package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// RenderReport formats a report in the given share format.
func RenderReport(report *domain.Report, format domain.ShareFormat) ([]byte, error) {
	if report == nil {
		return nil, domain.NewFieldError("report", "is required")
	}
	switch format {
	case domain.ShareFormatText:
		return []byte(reportText(report)), nil
	case domain.ShareFormatMarkdown:
		return []byte(reportMarkdown(report)), nil
	case domain.ShareFormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal report: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("share format %q: %w", format, domain.ErrUnsupportedType)
	}
}

// htmlConverter renders report Markdown, tables included.
var htmlConverter = goldmark.New(goldmark.WithExtensions(extension.GFM))

// reportHTML converts the Markdown rendering to HTML for email bodies.
func reportHTML(report *domain.Report) (string, error) {
	var buf bytes.Buffer
	if err := htmlConverter.Convert([]byte(reportMarkdown(report)), &buf); err != nil {
		return "", fmt.Errorf("convert report to html: %w", err)
	}
	return buf.String(), nil
}

// reportText is a plain-text rendering, one number per line.
func reportText(r *domain.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Numerology report for %s\n", r.Profile.FullName)
	fmt.Fprintf(&b, "Born %s, calculated on %s\n\n", r.Profile.BirthDate, r.On)

	for _, n := range r.Numbers {
		if n.Kind == domain.KindKarmicLessons {
			continue
		}
		line := n.String()
		if text, ok := r.Interpretations[n.Kind]; ok && n.Kind != domain.KindCurrentDestiny {
			line += " - " + text.Title
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Karmic Lessons: %s\n", joinInts(r.KarmicLessons))

	if len(r.Pinnacles) > 0 {
		b.WriteString("\nPinnacle periods:\n")
		for i, p := range r.Pinnacles {
			fmt.Fprintf(&b, "  %d. %d %s\n", i+1, p.Number, ageRange(p))
		}
	}
	return b.String()
}

// reportMarkdown is a Markdown rendering with interpretations.
func reportMarkdown(r *domain.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Numerology report for %s\n\n", r.Profile.FullName)
	fmt.Fprintf(&b, "Born **%s**, calculated on %s.\n\n", r.Profile.BirthDate, r.On)

	b.WriteString("| Number | Value |\n|---|---|\n")
	for _, n := range r.Numbers {
		if n.Kind == domain.KindKarmicLessons {
			continue
		}
		label := n.Kind.Description()
		if n.Label != "" {
			label += " (" + n.Label + ")"
		}
		fmt.Fprintf(&b, "| %s | %d |\n", label, n.Value)
	}
	fmt.Fprintf(&b, "| Karmic Lessons | %s |\n", joinInts(r.KarmicLessons))

	if len(r.Pinnacles) > 0 {
		b.WriteString("\n## Pinnacles\n\n")
		for i, p := range r.Pinnacles {
			fmt.Fprintf(&b, "%d. **%d**, %s\n", i+1, p.Number, ageRange(p))
		}
	}

	wrote := false
	for _, kind := range domain.AllNumberKinds() {
		text, ok := r.Interpretations[kind]
		if !ok {
			continue
		}
		if !wrote {
			b.WriteString("\n## Interpretations\n")
			wrote = true
		}
		fmt.Fprintf(&b, "\n### %s %d: %s\n\n", kind.Description(), text.Number, text.Title)
		if len(text.Keywords) > 0 {
			fmt.Fprintf(&b, "*%s*\n\n", strings.Join(text.Keywords, ", "))
		}
		b.WriteString(text.Description)
		b.WriteString("\n")
	}

	if len(r.KarmicNotes) > 0 {
		b.WriteString("\n## Karmic lessons\n\n")
		for _, digit := range r.KarmicLessons {
			if note, ok := r.KarmicNotes[digit]; ok {
				fmt.Fprintf(&b, "- **%d**: %s\n", digit, note)
			}
		}
	}
	return b.String()
}

// reportSummary is a compact one-line-per-number summary for LLM prompts.
func reportSummary(r *domain.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s. Born: %s.\n", r.Profile.FullName, r.Profile.BirthDate)
	for _, n := range r.Numbers {
		if n.Kind == domain.KindKarmicLessons {
			continue
		}
		b.WriteString(n.String())
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Karmic Lessons: %s\n", joinInts(r.KarmicLessons))
	return b.String()
}

func ageRange(p domain.PinnacleSpan) string {
	if p.ToAge == 0 {
		return fmt.Sprintf("from age %d", p.FromAge)
	}
	return fmt.Sprintf("ages %d to %d", p.FromAge, p.ToAge)
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return "none"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
