package main

import (
	"github.com/sahilm/fuzzy"

	"github.com/kingrea/licwatch/internal/dashboard"
)

// filterOrgs returns the organizations whose names fuzzy-match pattern,
// keeping their original inventory order.
func filterOrgs(orgs []dashboard.Organization, pattern string) []dashboard.Organization {
	names := make([]string, len(orgs))
	for i, org := range orgs {
		names[i] = org.Name
	}

	keep := make(map[int]bool)
	for _, m := range fuzzy.Find(pattern, names) {
		keep[m.Index] = true
	}

	matched := make([]dashboard.Organization, 0, len(keep))
	for i, org := range orgs {
		if keep[i] {
			matched = append(matched, org)
		}
	}
	return matched
}
