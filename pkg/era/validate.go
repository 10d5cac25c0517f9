package era

import (
	"fmt"
	"regexp"
	"strings"
)

var eraIDPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks a set of eras for the problems that would break
// expansion or lookup. It returns one message per problem found.
func Validate(eras []Era) []string {
	var problems []string
	ids := make(map[string]bool, len(eras))

	for i, e := range eras {
		label := fmt.Sprintf("era[%d]", i)
		if e.ID != "" {
			label = fmt.Sprintf("era %q", e.ID)
		}

		switch {
		case e.ID == "":
			problems = append(problems, label+": id is required")
		case !eraIDPattern.MatchString(e.ID):
			problems = append(problems, fmt.Sprintf("%s: id must be lowercase kebab-case (e.g. classical-antiquity)", label))
		case ids[e.ID]:
			problems = append(problems, label+": duplicate id")
		}
		ids[e.ID] = true

		if strings.TrimSpace(e.Name) == "" {
			problems = append(problems, label+": name is required")
		}
		if len(e.RegionNames) == 0 {
			problems = append(problems, label+": at least one region is required")
		}

		names := make(map[string]bool, len(e.RegionNames))
		for j, name := range e.RegionNames {
			if strings.TrimSpace(name) == "" {
				problems = append(problems, fmt.Sprintf("%s: region[%d] name is blank", label, j))
				continue
			}
			if RegionID(name) == "" {
				problems = append(problems, fmt.Sprintf("%s: region %q needs a letter or digit", label, name))
			}
			if names[name] {
				problems = append(problems, fmt.Sprintf("%s: duplicate region %q", label, name))
			}
			names[name] = true
		}
	}
	return problems
}
