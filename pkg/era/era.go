package era

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Era is a named span of history and the regions that belong to it.
// Eras are defined once at startup and never mutated.
type Era struct {
	ID          string   `json:"id" yaml:"id" toml:"id"`
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	RegionNames []string `json:"regions" yaml:"regions" toml:"regions"`
	Facts       []string `json:"facts,omitempty" yaml:"facts,omitempty" toml:"facts,omitempty"`
}

// Region is a sub-division of an era with its own descriptive text.
type Region struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	EraID       string `json:"era_id"`
}

// World is an era expanded into full Region records.
type World struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Facts       []string `json:"facts,omitempty"`
	Regions     []Region `json:"regions"`
}

// Describer supplies the prose for a region.
type Describer interface {
	Describe(e Era, regionName string) string
}

// DescriberFunc adapts a plain function to the Describer interface.
type DescriberFunc func(e Era, regionName string) string

func (f DescriberFunc) Describe(e Era, regionName string) string {
	return f(e, regionName)
}

// DefaultDescriber fabricates a region description from the era's own text.
var DefaultDescriber Describer = DescriberFunc(func(e Era, regionName string) string {
	return fmt.Sprintf("%s was one of the defining regions of the %s. %s", regionName, e.Name, e.Description)
})

// fallbackRegionID is the base ID of a region whose name has no letters or digits.
const fallbackRegionID = "region"

// Expand turns an era and its region names into a World. One Region is
// created per name, in order, each pointing back at the era. Region IDs are
// unique within the world: a taken ID gets the first free -2, -3, ... suffix.
func Expand(e Era, d Describer) World {
	if d == nil {
		d = DefaultDescriber
	}

	w := World{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Facts:       e.Facts,
		Regions:     make([]Region, 0, len(e.RegionNames)),
	}

	taken := make(map[string]bool, len(e.RegionNames))
	for _, name := range e.RegionNames {
		base := RegionID(name)
		if base == "" {
			base = fallbackRegionID
		}
		id := base
		for n := 2; taken[id]; n++ {
			id = base + "-" + strconv.Itoa(n)
		}
		taken[id] = true
		w.Regions = append(w.Regions, Region{
			ID:          id,
			Name:        name,
			Description: d.Describe(e, name),
			EraID:       e.ID,
		})
	}
	return w
}

// RegionID derives a kebab-case identifier from a region name.
// "Shang Dynasty China" becomes "shang-dynasty-china", "Café Society"
// becomes "cafe-society".
func RegionID(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var out strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && out.Len() > 0 {
				out.WriteByte('-')
			}
			out.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return out.String()
}

// Preview returns the short teaser shown on a collapsed region card.
func Preview(description string) string {
	r := []rune(description)
	if len(r) > 100 {
		r = r[:100]
	}
	return string(r) + "..."
}

// WordCount counts space-separated pieces the way the region card does.
func WordCount(description string) int {
	return len(strings.Split(description, " "))
}
