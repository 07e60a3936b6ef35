package content

import (
	"embed"
	"fmt"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/numerology"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
)

//go:embed data/*.toml
var dataFS embed.FS

// Ensure Catalog implements the interfaces.
var (
	_ driven.InterpretationCatalog = (*Catalog)(nil)
	_ driven.OracleDeck            = (*Catalog)(nil)
)

// Catalog holds number interpretations, karmic lesson notes and oracle cards.
type Catalog struct {
	numbers map[int]domain.Interpretation
	karmic  map[int]string
	cards   map[int]domain.OracleCard
}

type interpretationsFile struct {
	Numbers []domain.Interpretation `toml:"numbers"`
	Karmic  map[string]string       `toml:"karmic"`
}

type oracleFile struct {
	Cards []domain.OracleCard `toml:"cards"`
}

// NewCatalog loads the built-in catalog.
func NewCatalog() (*Catalog, error) {
	interpretations, err := dataFS.ReadFile("data/interpretations.toml")
	if err != nil {
		return nil, fmt.Errorf("read interpretations: %w", err)
	}
	oracle, err := dataFS.ReadFile("data/oracle.toml")
	if err != nil {
		return nil, fmt.Errorf("read oracle deck: %w", err)
	}
	return ParseCatalog(interpretations, oracle)
}

// ParseCatalog builds a catalog from TOML documents. Every core value must
// have an interpretation and every dice total must have a card.
func ParseCatalog(interpretations, oracle []byte) (*Catalog, error) {
	var inf interpretationsFile
	if err := toml.Unmarshal(interpretations, &inf); err != nil {
		return nil, fmt.Errorf("parse interpretations: %w", err)
	}
	var of oracleFile
	if err := toml.Unmarshal(oracle, &of); err != nil {
		return nil, fmt.Errorf("parse oracle deck: %w", err)
	}

	c := &Catalog{
		numbers: make(map[int]domain.Interpretation, len(inf.Numbers)),
		karmic:  make(map[int]string, len(inf.Karmic)),
		cards:   make(map[int]domain.OracleCard, len(of.Cards)),
	}

	for _, n := range inf.Numbers {
		if _, dup := c.numbers[n.Number]; dup {
			return nil, fmt.Errorf("interpretation %d defined twice", n.Number)
		}
		c.numbers[n.Number] = n
	}
	for _, n := range coreValues() {
		if _, ok := c.numbers[n]; !ok {
			return nil, fmt.Errorf("interpretation for %d: %w", n, domain.ErrNotFound)
		}
	}

	for key, note := range inf.Karmic {
		digit, err := strconv.Atoi(key)
		if err != nil || digit < 1 || digit > 9 {
			return nil, fmt.Errorf("karmic lesson key %q must be a digit 1-9", key)
		}
		c.karmic[digit] = note
	}

	for _, card := range of.Cards {
		if card.Total < domain.OracleMinTotal || card.Total > domain.OracleMaxTotal {
			return nil, fmt.Errorf("oracle card %q has total %d outside %d-%d",
				card.Name, card.Total, domain.OracleMinTotal, domain.OracleMaxTotal)
		}
		if _, dup := c.cards[card.Total]; dup {
			return nil, fmt.Errorf("oracle card for %d defined twice", card.Total)
		}
		c.cards[card.Total] = card
	}
	for total := domain.OracleMinTotal; total <= domain.OracleMaxTotal; total++ {
		if _, ok := c.cards[total]; !ok {
			return nil, fmt.Errorf("oracle card for %d: %w", total, domain.ErrNotFound)
		}
	}

	return c, nil
}

// Number returns the interpretation for n.
func (c *Catalog) Number(n int) (domain.Interpretation, bool) {
	text, ok := c.numbers[n]
	if ok {
		text.Keywords = append([]string(nil), text.Keywords...)
	}
	return text, ok
}

// KarmicLesson returns the note for a missing digit.
func (c *Catalog) KarmicLesson(digit int) (string, bool) {
	note, ok := c.karmic[digit]
	return note, ok
}

// Card returns the oracle card for a dice total.
func (c *Catalog) Card(total int) (domain.OracleCard, bool) {
	card, ok := c.cards[total]
	return card, ok
}

// coreValues lists every value ReduceToCore can return.
func coreValues() []int {
	values := make([]int, 0, 13)
	for n := 0; n <= 9; n++ {
		values = append(values, n)
	}
	return append(values, numerology.Master11, numerology.Master22, numerology.Master33)
}
