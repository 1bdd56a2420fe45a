package core

import (
	"strings"

	"golang.org/x/text/cases"
)

// User is a joined participant. It lives exactly as long as its connection.
type User struct {
	ConnID   string
	Username string
	Room     string
}

// foldKey normalizes names and rooms for case-insensitive comparison.
func foldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
