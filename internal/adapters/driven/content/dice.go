package content

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
)

// Ensure CryptoDice implements the interface.
var _ driven.Dice = CryptoDice{}

// CryptoDice rolls fair dice from crypto/rand.
type CryptoDice struct{}

// Roll returns a value in [1, faces].
func (CryptoDice) Roll(faces int) (int, error) {
	if faces < 1 {
		return 0, fmt.Errorf("die must have at least one face, got %d", faces)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(faces)))
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}
	return int(n.Int64()) + 1, nil
}
