package booking

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
)

const ReferencePrefix = "WW"

var referenceRegex = regexp.MustCompile(`^WW-\d{8}-\d{4}$`)

type ReferenceGenerator interface {
	Generate(now time.Time) string
}

type RandomReferenceGenerator struct {
	intN func(n int) int
}

func NewRandomReferenceGenerator() *RandomReferenceGenerator {
	return &RandomReferenceGenerator{intN: rand.IntN}
}

// Generate returns WW-YYYYMMDD-NNNN with NNNN in [1000, 9999].
func (g *RandomReferenceGenerator) Generate(now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", ReferencePrefix, now.Format("20060102"), 1000+g.intN(9000))
}

func NormalizeReference(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func IsValidReference(s string) bool {
	return referenceRegex.MatchString(s)
}

// NewReferenceGeneratorWithSource draws the numeric suffix from intN, which must behave like rand.IntN.
func NewReferenceGeneratorWithSource(intN func(n int) int) *RandomReferenceGenerator {
	return &RandomReferenceGenerator{intN: intN}
}
