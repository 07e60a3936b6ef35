package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// ErrOracleUnavailable is returned by oracle_roll when no oracle is configured.
var ErrOracleUnavailable = errors.New("mcp: oracle is not available")

// ProfileInput identifies the person a calculation is for.
type ProfileInput struct {
	FullName    string   `json:"full_name" jsonschema:"full name given at birth"`
	BirthDate   string   `json:"birth_date" jsonschema:"date of birth as YYYY-MM-DD"`
	CurrentName string   `json:"current_name,omitempty" jsonschema:"name in use today if different from the birth name"`
	Nicknames   []string `json:"nicknames,omitempty" jsonschema:"other names the person goes by"`
	On          string   `json:"on,omitempty" jsonschema:"reference date for personal cycles as YYYY-MM-DD (default today)"`
}

// ReportInput is the input schema for the numerology_report tool.
type ReportInput = ProfileInput

// CalculateInput is the input schema for the calculate_number tool.
type CalculateInput struct {
	Kind        string   `json:"kind" jsonschema:"number kind such as life_path, destiny, soul_urge or personal_year"`
	FullName    string   `json:"full_name" jsonschema:"full name given at birth"`
	BirthDate   string   `json:"birth_date" jsonschema:"date of birth as YYYY-MM-DD"`
	CurrentName string   `json:"current_name,omitempty" jsonschema:"name in use today, required for current_destiny and bridge"`
	Nicknames   []string `json:"nicknames,omitempty" jsonschema:"other names, required for nickname"`
	On          string   `json:"on,omitempty" jsonschema:"reference date for personal cycles as YYYY-MM-DD (default today)"`
}

func (in CalculateInput) profile() ProfileInput {
	return ProfileInput{
		FullName:    in.FullName,
		BirthDate:   in.BirthDate,
		CurrentName: in.CurrentName,
		Nicknames:   in.Nicknames,
		On:          in.On,
	}
}

// NumberOutput is one derived number.
type NumberOutput struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Value int    `json:"value"`
	Label string `json:"label,omitempty"`
	Title string `json:"title,omitempty"`
}

// ReportOutput is the output schema for the numerology_report tool.
type ReportOutput struct {
	FullName      string         `json:"full_name"`
	BirthDate     string         `json:"birth_date"`
	On            string         `json:"on"`
	Numbers       []NumberOutput `json:"numbers"`
	KarmicLessons []int          `json:"karmic_lessons"`
}

// CalculateOutput is the output schema for the calculate_number tool.
type CalculateOutput struct {
	Numbers []NumberOutput `json:"numbers"`
}

// OracleInput is the input schema for the oracle_roll tool.
type OracleInput struct {
	Question string `json:"question,omitempty" jsonschema:"the question to put to the oracle"`
}

// OracleOutput is the output schema for the oracle_roll tool.
type OracleOutput struct {
	ID       string `json:"id"`
	Dice     []int  `json:"dice"`
	Total    int    `json:"total"`
	Core     int    `json:"core"`
	CardName string `json:"card_name"`
	Message  string `json:"message"`
}

// InterpretInput is the input schema for the interpret_number tool.
type InterpretInput struct {
	Number int `json:"number" jsonschema:"a core number: 0 to 9, 11, 22 or 33"`
}

// InterpretOutput is the output schema for the interpret_number tool.
type InterpretOutput struct {
	Number      int      `json:"number"`
	Title       string   `json:"title"`
	Keywords    []string `json:"keywords"`
	Description string   `json:"description"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "numerology_report",
		Description: "Compute a full Pythagorean numerology report from a birth name and date",
	}, s.handleReport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "calculate_number",
		Description: "Compute a single numerology number, such as the life path",
	}, s.handleCalculate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "oracle_roll",
		Description: "Roll three dice and draw the matching oracle card",
	}, s.handleOracleRoll)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "interpret_number",
		Description: "Return the meaning of a core number",
	}, s.handleInterpret)
}

// handleReport handles the numerology_report tool invocation.
func (s *Server) handleReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReportInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	profile, on, err := input.resolve()
	if err != nil {
		return nil, ReportOutput{}, err
	}

	report, err := s.ports.Numerology.Report(ctx, profile, on)
	if err != nil {
		return nil, ReportOutput{}, err
	}

	output := ReportOutput{
		FullName:      report.Profile.FullName,
		BirthDate:     report.Profile.BirthDate.String(),
		On:            report.On.String(),
		Numbers:       make([]NumberOutput, len(report.Numbers)),
		KarmicLessons: report.KarmicLessons,
	}
	for i, n := range report.Numbers {
		output.Numbers[i] = numberOutput(n)
		if text, ok := report.Interpretations[n.Kind]; ok && text.Number == n.Value {
			output.Numbers[i].Title = text.Title
		}
	}
	return nil, output, nil
}

// handleCalculate handles the calculate_number tool invocation.
func (s *Server) handleCalculate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CalculateInput,
) (*mcp.CallToolResult, CalculateOutput, error) {
	profile, on, err := input.profile().resolve()
	if err != nil {
		return nil, CalculateOutput{}, err
	}

	kind := domain.NumberKind(strings.ToLower(strings.TrimSpace(input.Kind)))
	numbers, err := s.ports.Numerology.Calculate(kind, profile, on)
	if err != nil {
		return nil, CalculateOutput{}, err
	}

	output := CalculateOutput{Numbers: make([]NumberOutput, len(numbers))}
	for i, n := range numbers {
		output.Numbers[i] = numberOutput(n)
	}
	return nil, output, nil
}

// handleOracleRoll handles the oracle_roll tool invocation.
func (s *Server) handleOracleRoll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OracleInput,
) (*mcp.CallToolResult, OracleOutput, error) {
	if s.ports.Oracle == nil {
		return nil, OracleOutput{}, ErrOracleUnavailable
	}

	reading, err := s.ports.Oracle.Roll(ctx, input.Question)
	if err != nil {
		return nil, OracleOutput{}, err
	}

	return nil, OracleOutput{
		ID:       reading.ID,
		Dice:     reading.Dice,
		Total:    reading.Total,
		Core:     reading.Core,
		CardName: reading.Card.Name,
		Message:  reading.Card.Message,
	}, nil
}

// handleInterpret handles the interpret_number tool invocation.
func (s *Server) handleInterpret(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InterpretInput,
) (*mcp.CallToolResult, InterpretOutput, error) {
	text, err := s.ports.Numerology.Interpret(ctx, input.Number)
	if err != nil {
		return nil, InterpretOutput{}, err
	}

	return nil, InterpretOutput{
		Number:      text.Number,
		Title:       text.Title,
		Keywords:    text.Keywords,
		Description: text.Description,
	}, nil
}

// resolve validates the input into a profile and reference date.
func (in ProfileInput) resolve() (domain.BirthProfile, domain.Date, error) {
	on := domain.Today()
	if strings.TrimSpace(in.On) != "" {
		parsed, err := domain.ParseDate(in.On)
		if err != nil {
			var fe *domain.FieldError
			if errors.As(err, &fe) {
				fe.Field = "on"
			}
			return domain.BirthProfile{}, domain.Date{}, err
		}
		on = parsed
	}

	profile, err := domain.NewBirthProfile(domain.ProfileInput{
		FullName:    in.FullName,
		CurrentName: in.CurrentName,
		Nicknames:   in.Nicknames,
		BirthDate:   in.BirthDate,
	}, on)
	if err != nil {
		return domain.BirthProfile{}, domain.Date{}, err
	}
	return profile, on, nil
}

func numberOutput(n domain.DerivedNumber) NumberOutput {
	return NumberOutput{
		Kind:  n.Kind.String(),
		Name:  n.Kind.Description(),
		Value: n.Value,
		Label: n.Label,
	}
}
