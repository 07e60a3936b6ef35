// Package calculator provides the profile form and report view for the TUI.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
)

// Form field indices.
const (
	fieldName = iota
	fieldDate
	fieldCurrentName
	fieldNicknames
	fieldOn
	fieldCount
)

// fieldIndex maps a validation error field to the input that holds it.
var fieldIndex = map[string]int{
	"full_name":    fieldName,
	"birth_date":   fieldDate,
	"current_name": fieldCurrentName,
	"on":           fieldOn,
}

// View is the calculator: a profile form that turns into a report.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	fields    []*input.Field
	statusbar *status.Bar

	numerology driving.NumerologyService
	profiles   driving.ProfileService
	share      driving.ShareService
	ctx        context.Context
	today      func() domain.Date

	focused      int
	report       *domain.Report
	lines        []string
	scrollOffset int
	err          error
	width        int
	height       int
	ready        bool
}

// NewView creates a calculator view. profiles and share may be nil, which
// disables saving and copying.
func NewView(
	s *styles.Styles,
	numerology driving.NumerologyService,
	profiles driving.ProfileService,
	share driving.ShareService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	v := &View{
		styles: s,
		keymap: km,
		fields: []*input.Field{
			input.NewField(s, "Full name", "name given at birth"),
			input.NewField(s, "Birth date", "YYYY-MM-DD"),
			input.NewField(s, "Current name", "optional"),
			input.NewField(s, "Nicknames", "optional, comma separated"),
			input.NewField(s, "Reference", "optional date, default today"),
		},
		statusbar:  status.NewBar(s, km),
		numerology: numerology,
		profiles:   profiles,
		share:      share,
		ctx:        context.Background(),
		today:      domain.Today,
		width:      80,
		height:     24,
	}
	v.statusbar.SetHints(km.FormHelp())
	return v
}

// WithContext sets the context for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithToday overrides the clock used for validation and personal cycles.
func (v *View) WithToday(today func() domain.Date) *View {
	v.today = today
	return v
}

// Init focuses the first field.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.focus(v.focused), v.fields[v.focused].Init())
}

// Update handles messages for the calculator view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.report != nil {
			return v.handleReportKeys(msg)
		}
		return v.handleFormKeys(msg)

	case messages.ReportComputed:
		v.handleReportComputed(msg)
		return v, nil

	case messages.ProfileSaved:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.statusbar.SetState(status.StateInfo)
		v.statusbar.SetMessage(fmt.Sprintf("Saved profile %s", msg.Profile.ID))
		return v, nil

	case messages.ReportCopied:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.statusbar.SetState(status.StateInfo)
		v.statusbar.SetMessage("Report copied to clipboard")
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
	return v, cmd
}

func (v *View) handleFormKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "tab", "down":
		return v, v.focus((v.focused + 1) % fieldCount)
	case "shift+tab", "up":
		return v, v.focus((v.focused + fieldCount - 1) % fieldCount)
	case "enter":
		v.statusbar.SetState(status.StateLoading)
		v.statusbar.SetMessage("Calculating")
		return v, v.compute()
	}

	var cmd tea.Cmd
	v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
	return v, cmd
}

func (v *View) handleReportKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		v.report = nil
		v.lines = nil
		v.scrollOffset = 0
		v.statusbar.Clear()
		v.statusbar.SetHints(v.keymap.FormHelp())
		return v, v.focus(v.focused)
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "s":
		return v, v.saveProfile()
	case "c":
		return v, v.copyReport()
	}
	return v, nil
}

// focus moves focus to field i and blurs the rest.
func (v *View) focus(i int) tea.Cmd {
	v.focused = i
	var cmd tea.Cmd
	for j, f := range v.fields {
		if j == i {
			cmd = f.Focus()
		} else {
			f.Blur()
		}
	}
	return cmd
}

// compute validates the form and requests a report.
func (v *View) compute() tea.Cmd {
	in := domain.ProfileInput{
		FullName:    v.fields[fieldName].Value(),
		BirthDate:   v.fields[fieldDate].Value(),
		CurrentName: v.fields[fieldCurrentName].Value(),
		Nicknames:   splitNicknames(v.fields[fieldNicknames].Value()),
	}
	onValue := strings.TrimSpace(v.fields[fieldOn].Value())
	ctx, today, svc := v.ctx, v.today(), v.numerology

	return func() tea.Msg {
		if svc == nil {
			return messages.ReportComputed{Err: errors.New("numerology service not available")}
		}
		on := today
		if onValue != "" {
			d, err := domain.ParseDate(onValue)
			if err != nil {
				var fe *domain.FieldError
				if errors.As(err, &fe) {
					fe.Field = "on"
				}
				return messages.ReportComputed{Err: err}
			}
			on = d
		}
		profile, err := domain.NewBirthProfile(in, today)
		if err != nil {
			return messages.ReportComputed{Err: err}
		}
		report, err := svc.Report(ctx, profile, on)
		return messages.ReportComputed{Report: report, Err: err}
	}
}

// SetProfile fills the form from a saved profile and computes its report.
func (v *View) SetProfile(p domain.BirthProfile) tea.Cmd {
	v.Reset()
	v.fields[fieldName].SetValue(p.FullName)
	v.fields[fieldDate].SetValue(p.BirthDate.String())
	v.fields[fieldCurrentName].SetValue(p.CurrentName)
	v.fields[fieldNicknames].SetValue(strings.Join(p.Nicknames, ", "))

	ctx, on, svc := v.ctx, v.today(), v.numerology
	return func() tea.Msg {
		if svc == nil {
			return messages.ReportComputed{Err: errors.New("numerology service not available")}
		}
		report, err := svc.Report(ctx, p, on)
		return messages.ReportComputed{Report: report, Err: err}
	}
}

func (v *View) saveProfile() tea.Cmd {
	if v.profiles == nil {
		v.setError(errors.New("profile storage not available"))
		return nil
	}
	profile := v.report.Profile
	ctx, svc := v.ctx, v.profiles
	return func() tea.Msg {
		saved, err := svc.Add(ctx, profile)
		return messages.ProfileSaved{Profile: saved, Err: err}
	}
}

func (v *View) copyReport() tea.Cmd {
	if v.share == nil {
		v.setError(errors.New("sharing not available"))
		return nil
	}
	report := v.report
	ctx, svc := v.ctx, v.share
	return func() tea.Msg {
		return messages.ReportCopied{Err: svc.CopyToClipboard(ctx, report)}
	}
}

func (v *View) handleReportComputed(msg messages.ReportComputed) {
	if msg.Err != nil {
		v.setError(msg.Err)
		var fe *domain.FieldError
		if errors.As(msg.Err, &fe) {
			if i, ok := fieldIndex[fe.Field]; ok {
				v.focus(i)
			}
		}
		return
	}
	v.err = nil
	v.report = msg.Report
	v.scrollOffset = 0
	v.lines = strings.Split(v.renderReport(), "\n")
	v.statusbar.Clear()
	v.statusbar.SetCount(len(msg.Report.Numbers), "numbers")
	v.statusbar.SetHints(v.keymap.ReportHelp())
	for _, f := range v.fields {
		f.Blur()
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func splitNicknames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// renderReport formats the report body. The header and footer are added by View.
func (v *View) renderReport() string {
	r := v.report
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%s, born %s", r.Profile.FullName, r.Profile.BirthDate)))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Reference date %s", r.On)))
	b.WriteString("\n\n")

	for _, n := range r.Numbers {
		if n.Kind == domain.KindKarmicLessons {
			continue
		}
		label := n.Kind.Description()
		if n.Label != "" {
			label = fmt.Sprintf("%s (%s)", label, n.Label)
		}
		line := fmt.Sprintf("  %-28s %s", label, v.styles.RenderNumber(n.Value))
		if interp, ok := r.Interpretations[n.Kind]; ok && n.Label == "" {
			line += "  " + v.styles.Muted.Render(interp.Title)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(r.Pinnacles) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Pinnacles"))
		b.WriteString("\n")
		for i, p := range r.Pinnacles {
			span := fmt.Sprintf("from %d", p.FromAge)
			if p.ToAge > 0 {
				span = fmt.Sprintf("%d to %d", p.FromAge, p.ToAge)
			}
			b.WriteString(fmt.Sprintf("  %d. %s  %s\n", i+1, v.styles.RenderNumber(p.Number), v.styles.Muted.Render(span)))
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Karmic Lessons"))
	b.WriteString("\n")
	if len(r.KarmicLessons) == 0 {
		b.WriteString(v.styles.Muted.Render("  none, every digit is present"))
		b.WriteString("\n")
	}
	for _, d := range r.KarmicLessons {
		line := fmt.Sprintf("  %d", d)
		if note, ok := r.KarmicNotes[d]; ok {
			line += "  " + v.styles.Muted.Render(note)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (v *View) visibleLines() int {
	// Title, separator, status bar and help.
	available := v.height - 7
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	maxOffset := len(v.lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// View renders the calculator.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Numerology Calculator"))
	b.WriteString("\n\n")

	if v.report == nil {
		for _, f := range v.fields {
			b.WriteString(f.View())
			b.WriteString("\n")
		}
		if v.err != nil {
			b.WriteString("\n")
			b.WriteString(v.styles.Error.Render(v.err.Error()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[tab] next field  [enter] calculate  [esc] back"))
	} else {
		visible := v.visibleLines()
		for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
			b.WriteString(v.lines[i])
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[j/k] scroll  [s] save profile  [c] copy  [n] new  [esc] back"))
	}

	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.statusbar.SetWidth(width)
	for _, f := range v.fields {
		f.SetWidth(width)
	}
}

// Reset clears the form and any report.
func (v *View) Reset() {
	for _, f := range v.fields {
		f.Reset()
	}
	v.report = nil
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	v.focused = fieldName
	v.statusbar.Clear()
	v.statusbar.SetHints(v.keymap.FormHelp())
}

// Report returns the computed report, or nil while the form is shown.
func (v *View) Report() *domain.Report {
	return v.report
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Focused returns the index of the focused field.
func (v *View) Focused() int {
	return v.focused
}
