// Package roomcode generates and validates the 6-digit codes that identify
// quiz rooms.
package roomcode

import (
	"fmt"
	"math/rand"
	"regexp"
)

var pattern = regexp.MustCompile(`^\d{6}$`)

// Valid reports whether code is a well-formed room code. Any 6 digits are
// accepted, not only codes Generate could emit.
func Valid(code string) bool {
	return pattern.MatchString(code)
}

// Generate returns a code of two triplets, each opening with a repeated
// digit, e.g. "442333".
func Generate() string {
	d1 := rand.Intn(10)
	d2 := rand.Intn(10)
	return fmt.Sprintf("%d%d%d%d%d%d", d1, d1, rand.Intn(10), d2, d2, rand.Intn(10))
}
