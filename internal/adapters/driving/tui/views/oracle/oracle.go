// Package oracle provides the dice oracle view for the TUI.
package oracle

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
)

// historyLimit is how many past readings are listed under the current one.
const historyLimit = 5

// dieFaces draws each face value as a Unicode die.
var dieFaces = [...]string{"", "⚀", "⚁", "⚂", "⚃", "⚄", "⚅"}

// View is the oracle: ask a question, roll the dice, read the card.
type View struct {
	styles        *styles.Styles
	oracleService driving.OracleService
	ctx           context.Context

	question *input.Field
	reading  *domain.OracleReading
	history  []domain.OracleReading
	rolling  bool
	err      error
	width    int
	height   int
	ready    bool
}

// NewView creates a new oracle view.
func NewView(s *styles.Styles, oracleService driving.OracleService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		oracleService: oracleService,
		ctx:           context.Background(),
		question:      input.NewField(s, "Question", "optional, press enter to roll"),
	}
}

// WithContext sets the context for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the question and loads recent readings.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.question.Focus(), v.loadHistory())
}

func (v *View) loadHistory() tea.Cmd {
	ctx, svc := v.ctx, v.oracleService
	return func() tea.Msg {
		if svc == nil {
			return messages.HistoryLoaded{Err: fmt.Errorf("oracle service not available")}
		}
		readings, err := svc.History(ctx, historyLimit)
		return messages.HistoryLoaded{Readings: readings, Err: err}
	}
}

func (v *View) roll() tea.Cmd {
	question := strings.TrimSpace(v.question.Value())
	ctx, svc := v.ctx, v.oracleService
	return func() tea.Msg {
		if svc == nil {
			return messages.OracleRolled{Err: fmt.Errorf("oracle service not available")}
		}
		reading, err := svc.Roll(ctx, question)
		return messages.OracleRolled{Reading: reading, Err: err}
	}
}

// Update handles messages for the oracle view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "enter":
			if v.rolling {
				return v, nil
			}
			v.rolling = true
			return v, v.roll()
		}

	case messages.OracleRolled:
		v.rolling = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.reading = msg.Reading
		v.question.Reset()
		return v, v.loadHistory()

	case messages.HistoryLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.history = msg.Readings
		return v, nil
	}

	var cmd tea.Cmd
	v.question, cmd = v.question.Update(msg)
	return v, cmd
}

// View renders the oracle.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Dice Oracle"))
	b.WriteString("\n\n")
	b.WriteString(v.question.View())
	b.WriteString("\n\n")

	switch {
	case v.rolling:
		b.WriteString(v.styles.Muted.Render("Rolling..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	case v.reading != nil:
		b.WriteString(v.renderReading(v.reading))
		b.WriteString("\n")
	}

	if past := v.pastReadings(); len(past) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Recent readings"))
		b.WriteString("\n")
		for _, r := range past {
			q := r.Question
			if q == "" {
				q = "(no question)"
			}
			b.WriteString(fmt.Sprintf("  %2d  %-20s %s\n", r.Total, r.Card.Name, v.styles.Muted.Render(q)))
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] roll  [esc] back"))
	return b.String()
}

func (v *View) renderReading(r *domain.OracleReading) string {
	faces := make([]string, len(r.Dice))
	for i, d := range r.Dice {
		face := fmt.Sprintf("%d", d)
		if d > 0 && d < len(dieFaces) {
			face = dieFaces[d] + " " + face
		}
		faces[i] = face
	}

	var b strings.Builder
	if r.Question != "" {
		b.WriteString(v.styles.Muted.Render("You asked: " + r.Question))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("%s   total %d, core %s\n\n",
		strings.Join(faces, "  "), r.Total, v.styles.RenderNumber(r.Core)))

	card := v.styles.Subtitle.Render(r.Card.Name) + "\n" + v.styles.Normal.Render(r.Card.Message)
	width := v.width - 4
	if width < 30 {
		width = 30
	}
	b.WriteString(v.styles.Border.Width(width).Padding(0, 1).Render(card))
	return b.String()
}

// pastReadings returns the history without the reading shown above it.
func (v *View) pastReadings() []domain.OracleReading {
	if v.reading == nil {
		return v.history
	}
	past := make([]domain.OracleReading, 0, len(v.history))
	for _, r := range v.history {
		if r.ID != v.reading.ID {
			past = append(past, r)
		}
	}
	return past
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.question.SetWidth(width)
}

// Reset clears the question and the current reading.
func (v *View) Reset() {
	v.question.Reset()
	v.reading = nil
	v.err = nil
	v.rolling = false
}

// Reading returns the most recent reading rolled in this view.
func (v *View) Reading() *domain.OracleReading {
	return v.reading
}

// History returns the loaded readings.
func (v *View) History() []domain.OracleReading {
	return v.history
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
