package vehicles

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidPlate = errors.New("invalid plate format")

var (
	plateOld      = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	plateMercosul = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

// NormalizePlate uppercases and strips separators, so "abc-1234" and
// "ABC 1234" store as "ABC1234".
func NormalizePlate(plate string) string {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	plate = strings.ReplaceAll(plate, "-", "")
	plate = strings.ReplaceAll(plate, " ", "")
	return plate
}

// ValidPlate accepts the old Brazilian format (ABC1234) and Mercosul
// (ABC1D23). Input must already be normalized.
func ValidPlate(plate string) bool {
	return plateOld.MatchString(plate) || plateMercosul.MatchString(plate)
}

// CheckPlate normalizes and validates in one step, returning the storable
// form.
func CheckPlate(plate string) (string, error) {
	p := NormalizePlate(plate)
	if !ValidPlate(p) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlate, plate)
	}
	return p, nil
}
