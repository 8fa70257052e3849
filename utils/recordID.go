package utils

import (
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

const idSuffixLength = 9

// NewRecordID returns a client-side id of the form <prefix>_<unix millis>_<random base36>.
// Collisions are not detected.
func NewRecordID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	id := uuid.New()
	s := new(big.Int).SetBytes(id[:]).Text(36)
	for len(s) < idSuffixLength {
		s = "0" + s
	}
	return s[:idSuffixLength]
}
