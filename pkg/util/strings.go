package util

import "strings"

func RemoveDuplicateStrings(strings []string, ignoreList []string) []string {
	presentStrings := make(map[string]bool)
	var list []string

	for _, ignoreString := range ignoreList {
		presentStrings[ignoreString] = true
	}

	for _, item := range strings {
		if _, value := presentStrings[item]; !value && item != "" {
			presentStrings[item] = true
			list = append(list, item)
		}
	}
	return list
}

// StripBracketSuffix removes a trailing bracketed qualifier from a name, accepting both
// full-width "（" and ASCII "(" brackets. "Meijo Line (clockwise)" becomes "Meijo Line".
func StripBracketSuffix(s string) string {
	cut := len(s)
	if i := strings.Index(s, "（"); i >= 0 && i < cut {
		cut = i
	}
	if i := strings.Index(s, "("); i >= 0 && i < cut {
		cut = i
	}

	return strings.TrimSpace(s[:cut])
}
