// Package department classifies lecturer departments into subject
// categories and assigns vote weights. The two name sets are fixed at
// startup; a department on neither list is Unrecognized and can only be
// voted for by accounts without a semester restriction.
package department

import "strings"

// Category is the subject category of a lecturer's department.
type Category string

const (
	Basic        Category = "BASIC"
	Specialized  Category = "SPECIALIZED"
	Unrecognized Category = "UNRECOGNIZED"
)

// Vote weights per category. Unrecognized departments weigh the same as
// specialized ones in totals even though the eligibility rules reject
// them for semester-restricted accounts.
const (
	BasicWeight       = 1
	SpecializedWeight = 2
)

var basicSubjects = toSet([]string{
	"Mathematics",
	"Physics",
	"Chemistry",
	"History",
	"Philosophy",
	"Foreign Languages",
	"Physical Education",
})

var specializedSubjects = toSet([]string{
	"Computer Science",
	"Software Engineering",
	"Information Security",
	"Applied Informatics",
	"Control Systems",
	"Radio Engineering",
	"Economics",
	"Management",
})

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[normalize(n)] = struct{}{}
	}
	return set
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Categorize resolves a department name to its category using exact
// case-insensitive matching.
func Categorize(name string) Category {
	key := normalize(name)
	if _, ok := basicSubjects[key]; ok {
		return Basic
	}
	if _, ok := specializedSubjects[key]; ok {
		return Specialized
	}
	return Unrecognized
}

// Weight returns how many points a single vote for the given category
// contributes to a lecturer's total.
func Weight(c Category) int {
	if c == Basic {
		return BasicWeight
	}
	return SpecializedWeight
}
