package domain

import "fmt"

// NumberKind tags which derivation produced a DerivedNumber.
type NumberKind string

// Available number kinds.
const (
	KindLifePath       NumberKind = "life_path"
	KindDestiny        NumberKind = "destiny"
	KindSoulUrge       NumberKind = "soul_urge"
	KindPersonality    NumberKind = "personality"
	KindBirthday       NumberKind = "birthday"
	KindMaturity       NumberKind = "maturity"
	KindBalance        NumberKind = "balance"
	KindBridge         NumberKind = "bridge"
	KindChallenge1     NumberKind = "challenge_1"
	KindChallenge2     NumberKind = "challenge_2"
	KindChallenge3     NumberKind = "challenge_3"
	KindChallenge4     NumberKind = "challenge_4"
	KindPinnacle1      NumberKind = "pinnacle_1"
	KindPinnacle2      NumberKind = "pinnacle_2"
	KindPinnacle3      NumberKind = "pinnacle_3"
	KindPinnacle4      NumberKind = "pinnacle_4"
	KindPersonalYear   NumberKind = "personal_year"
	KindPersonalMonth  NumberKind = "personal_month"
	KindPersonalDay    NumberKind = "personal_day"
	KindKarmicLessons  NumberKind = "karmic_lessons"
	KindHiddenPassion  NumberKind = "hidden_passion"
	KindCurrentDestiny NumberKind = "current_destiny"
	KindNickname       NumberKind = "nickname"
)

var kindDescriptions = map[NumberKind]string{
	KindLifePath:       "Life Path",
	KindDestiny:        "Destiny (Expression)",
	KindSoulUrge:       "Soul Urge",
	KindPersonality:    "Personality",
	KindBirthday:       "Birthday",
	KindMaturity:       "Maturity",
	KindBalance:        "Balance",
	KindBridge:         "Bridge",
	KindChallenge1:     "First Challenge",
	KindChallenge2:     "Second Challenge",
	KindChallenge3:     "Third Challenge",
	KindChallenge4:     "Fourth Challenge",
	KindPinnacle1:      "First Pinnacle",
	KindPinnacle2:      "Second Pinnacle",
	KindPinnacle3:      "Third Pinnacle",
	KindPinnacle4:      "Fourth Pinnacle",
	KindPersonalYear:   "Personal Year",
	KindPersonalMonth:  "Personal Month",
	KindPersonalDay:    "Personal Day",
	KindKarmicLessons:  "Karmic Lessons",
	KindHiddenPassion:  "Hidden Passion",
	KindCurrentDestiny: "Current Name Destiny",
	KindNickname:       "Nickname",
}

// IsValid returns true if the kind is recognised.
func (k NumberKind) IsValid() bool {
	_, ok := kindDescriptions[k]
	return ok
}

// String returns the string representation.
func (k NumberKind) String() string {
	return string(k)
}

// Description returns a human-readable name for the kind.
func (k NumberKind) Description() string {
	if d, ok := kindDescriptions[k]; ok {
		return d
	}
	return unknownDescription
}

// AllNumberKinds returns every kind in report order.
func AllNumberKinds() []NumberKind {
	return []NumberKind{
		KindLifePath,
		KindDestiny,
		KindSoulUrge,
		KindPersonality,
		KindBirthday,
		KindMaturity,
		KindBalance,
		KindHiddenPassion,
		KindKarmicLessons,
		KindChallenge1,
		KindChallenge2,
		KindChallenge3,
		KindChallenge4,
		KindPinnacle1,
		KindPinnacle2,
		KindPinnacle3,
		KindPinnacle4,
		KindPersonalYear,
		KindPersonalMonth,
		KindPersonalDay,
		KindCurrentDestiny,
		KindBridge,
		KindNickname,
	}
}

// DerivedNumber is one computed numerology value.
// Value is in {0..9, 11, 22, 33}, except the birthday number which keeps
// days 10 to 22 as they are.
type DerivedNumber struct {
	// Kind identifies the derivation.
	Kind NumberKind `json:"kind"`

	// Value is the computed number.
	Value int `json:"value"`

	// Label qualifies repeated kinds, e.g. the nickname the number belongs to.
	Label string `json:"label,omitempty"`
}

// String formats the number as "Life Path: 9".
func (n DerivedNumber) String() string {
	if n.Label != "" {
		return fmt.Sprintf("%s (%s): %d", n.Kind.Description(), n.Label, n.Value)
	}
	return fmt.Sprintf("%s: %d", n.Kind.Description(), n.Value)
}
