// Package intent maps a small set of known question shapes onto fixed
// database lookups. Matching is keyword containment over the lowered
// question; the first intent in table order wins.
package intent

import (
	"regexp"
	"strings"
)

type Intent string

const (
	AssetsUnderMaintenance Intent = "assets_under_maintenance"
	LastServiceDate        Intent = "last_service_date"
	EmployeeDesignation    Intent = "employee_designation"
)

type definition struct {
	intent   Intent
	keywords []string
}

// Ordered table. Insertion order breaks ties when a question mentions
// keywords of more than one intent.
var definitions = []definition{
	{AssetsUnderMaintenance, []string{"under maintenance", "currently under maintenance"}},
	{LastServiceDate, []string{"last service", "recent service", "last maintenance"}},
	{EmployeeDesignation, []string{"designation", "role", "position"}},
}

// Match returns the first intent whose keyword appears in the question,
// or false when none match.
func Match(question string) (Intent, bool) {
	lowered := strings.ToLower(question)
	for _, def := range definitions {
		for _, keyword := range def.keywords {
			if strings.Contains(lowered, keyword) {
				return def.intent, true
			}
		}
	}
	return "", false
}

var assetTagPattern = regexp.MustCompile(`\b[A-Z]{2,}-\d{1,}\b`)

// ExtractAssetTag pulls an asset tag such as "GNT-243" out of the question.
func ExtractAssetTag(question string) (string, bool) {
	match := assetTagPattern.FindString(question)
	if match == "" {
		return "", false
	}
	return match, true
}

var employeeNamePattern = regexp.MustCompile(`designation of ([a-zA-Z ]+)`)

// ExtractEmployeeName pulls the employee name following "designation of"
// and title-cases it word by word.
func ExtractEmployeeName(question string) (string, bool) {
	matches := employeeNamePattern.FindStringSubmatch(strings.ToLower(question))
	if len(matches) != 2 {
		return "", false
	}
	name := strings.TrimSpace(matches[1])
	if name == "" {
		return "", false
	}
	words := strings.Fields(name)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " "), true
}
