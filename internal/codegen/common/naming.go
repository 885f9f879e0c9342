package common

import (
	"strings"
)

// ToSnakeCase converts a device name to the stem used for its files and C
// symbols, e.g. "PressureSensor" -> "pressure_sensor".
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		isUpper := r >= 'A' && r <= 'Z'

		if i > 0 && isUpper && runes[i-1] != '_' {
			// Check if previous char is lowercase or a digit (e.g., "someWord" -> "some_word")
			prevIsLower := (runes[i-1] >= 'a' && runes[i-1] <= 'z') || (runes[i-1] >= '0' && runes[i-1] <= '9')

			// Check if next char is lowercase (e.g., "HTTPSensor" -> "http_sensor", not "h_t_t_p_sensor")
			nextIsLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'

			if prevIsLower || nextIsLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// ToMacroCase is ToSnakeCase in upper case, for header guards and macros.
func ToMacroCase(s string) string {
	return strings.ToUpper(ToSnakeCase(s))
}
