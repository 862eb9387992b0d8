package models

import "unicode/utf8"

// MaxNameLength bounds aggregate and item names, counted in characters.
const MaxNameLength = 255

func validNameLength(name string) bool {
	return name != "" && utf8.RuneCountInString(name) <= MaxNameLength
}

// TruncateName cuts s to MaxNameLength characters.
func TruncateName(s string) string {
	if utf8.RuneCountInString(s) <= MaxNameLength {
		return s
	}
	return string([]rune(s)[:MaxNameLength])
}
