package domain

import (
	"strconv"
	"strings"
)

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func atoiSafe(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
