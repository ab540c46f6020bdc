// Package forms holds the dialog state behind each table's create/edit
// action: field values, validation and the submit branch between create and
// update.
package forms

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ValidationErrors maps field name to the first problem found with it.
type ValidationErrors map[string]string

func (v ValidationErrors) Ok() bool { return len(v) == 0 }

// Error joins field problems in stable order so a failed submit can be
// reported as a single message.
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return strings.Join(parts, "; ")
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validEmail(s string) bool { return emailPattern.MatchString(s) }

// validAmount accepts a positive decimal with at most two fraction digits.
func validAmount(s string) bool {
	if s == "" {
		return false
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > 2 {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f > 0
}
