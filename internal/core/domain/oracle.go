package domain

import "time"

// Oracle dice configuration.
const (
	// OracleDiceCount is the number of dice rolled per reading.
	OracleDiceCount = 3

	// OracleDieFaces is the number of faces on each die.
	OracleDieFaces = 6

	// OracleMinTotal and OracleMaxTotal bound the sum of a roll.
	OracleMinTotal = OracleDiceCount
	OracleMaxTotal = OracleDiceCount * OracleDieFaces
)

// OracleCard is the canned text for one dice total.
type OracleCard struct {
	// Total is the dice sum this card answers.
	Total int `json:"total" toml:"total"`

	// Name is the card title.
	Name string `json:"name" toml:"name"`

	// Message is the interpretive text.
	Message string `json:"message" toml:"message"`
}

// OracleReading is one recorded roll.
type OracleReading struct {
	// ID is the unique identifier for the reading.
	ID string `json:"id"`

	// Question is what the user asked. May be empty.
	Question string `json:"question,omitempty"`

	// Dice holds the face value of each die.
	Dice []int `json:"dice"`

	// Total is the sum of Dice.
	Total int `json:"total"`

	// Core is Total reduced with the numerology rule.
	Core int `json:"core"`

	// Card is the drawn card for Total.
	Card OracleCard `json:"card"`

	// CreatedAt is when the roll happened.
	CreatedAt time.Time `json:"created_at"`
}
