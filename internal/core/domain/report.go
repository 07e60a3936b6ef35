package domain

// Interpretation is the canned prose attached to a number.
type Interpretation struct {
	// Number is the value this text describes.
	Number int `json:"number" toml:"number"`

	// Title is a short name, e.g. "The Leader".
	Title string `json:"title" toml:"title"`

	// Keywords summarise the number's themes.
	Keywords []string `json:"keywords" toml:"keywords"`

	// Description is one or two paragraphs of interpretation.
	Description string `json:"description" toml:"description"`
}

// PinnacleSpan is the age range a pinnacle covers.
type PinnacleSpan struct {
	// Number is the pinnacle value.
	Number int `json:"number"`

	// FromAge is the first age of the span.
	FromAge int `json:"from_age"`

	// ToAge is the last age of the span. Zero means open-ended.
	ToAge int `json:"to_age,omitempty"`
}

// Report holds every derived number for a profile on a reference date.
type Report struct {
	// Profile is the input the report was computed from.
	Profile BirthProfile `json:"profile"`

	// On is the reference date used for the personal cycle numbers.
	On Date `json:"on"`

	// Numbers are the derived numbers in AllNumberKinds order.
	Numbers []DerivedNumber `json:"numbers"`

	// KarmicLessons are the digits missing from the full name.
	KarmicLessons []int `json:"karmic_lessons"`

	// Pinnacles are the four pinnacles with their age spans.
	Pinnacles []PinnacleSpan `json:"pinnacles"`

	// Interpretations maps a kind to the text for its value.
	// Kinds without catalog text are absent.
	Interpretations map[NumberKind]Interpretation `json:"interpretations,omitempty"`

	// KarmicNotes maps each missing digit to its lesson text.
	KarmicNotes map[int]string `json:"karmic_notes,omitempty"`
}

// Get returns the first number of the given kind.
func (r *Report) Get(kind NumberKind) (DerivedNumber, bool) {
	for _, n := range r.Numbers {
		if n.Kind == kind {
			return n, true
		}
	}
	return DerivedNumber{}, false
}

// All returns every number of the given kind.
func (r *Report) All(kind NumberKind) []DerivedNumber {
	var out []DerivedNumber
	for _, n := range r.Numbers {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}
