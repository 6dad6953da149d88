package services

import (
	"sort"
	"strings"

	"golf-atlas/models"
)

// MinSuggestLength is the shortest query that produces suggestions.
const MinSuggestLength = 2

// unrankedTop100 orders Top-100 courses without a known rank after ranked ones.
const unrankedTop100 = 9999

// searchText is the lower-cased text a query is matched against.
func searchText(c *models.Course) string {
	parts := make([]string, 0, 5)
	for _, s := range []string{c.Name, c.Resort, c.City, c.State, c.Region} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Location joins city and state for display, skipping blanks.
func Location(c *models.Course) string {
	parts := make([]string, 0, 2)
	if c.City != "" {
		parts = append(parts, c.City)
	}
	if c.State != "" {
		parts = append(parts, c.State)
	}
	return strings.Join(parts, ", ")
}

func foldQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// ApplyFilter returns the courses passing the Top-100 gate whose search text
// contains query. The result keeps full-set order and shares no backing
// array with full.
func ApplyFilter(full []*models.Course, query string, top100Only bool) []*models.Course {
	term := foldQuery(query)
	out := make([]*models.Course, 0, len(full))
	for _, c := range full {
		if top100Only && !c.IsTop100 {
			continue
		}
		if term != "" && !strings.Contains(searchText(c), term) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func featureScore(c *models.Course) int {
	score := 0
	if c.IsBuddyHotspot {
		score += 2
	}
	if c.IsTop100 {
		score++
	}
	return score
}

func top100Rank(c *models.Course) int {
	if c.Rank > 0 {
		return c.Rank
	}
	return unrankedTop100
}

// RankFeatured picks the highlight list: between two Top-100 courses the
// better rank wins outright, otherwise the higher score does. Ties keep
// their original order.
func RankFeatured(filtered []*models.Course, limit int) []*models.Course {
	ranked := make([]*models.Course, len(filtered))
	copy(ranked, filtered)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.IsTop100 && b.IsTop100 {
			if ra, rb := top100Rank(a), top100Rank(b); ra != rb {
				return ra < rb
			}
		}
		return featureScore(a) > featureScore(b)
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Suggest collects course names, resort names and "city, state" strings that
// contain the query, de-duplicated in first-seen order.
func Suggest(full []*models.Course, query string, limit int) []string {
	term := foldQuery(query)
	if len([]rune(term)) < MinSuggestLength || limit <= 0 {
		return []string{}
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, limit)
	add := func(s string) bool {
		if s == "" || !strings.Contains(strings.ToLower(s), term) {
			return false
		}
		if _, dup := seen[s]; dup {
			return false
		}
		seen[s] = struct{}{}
		out = append(out, s)
		return len(out) >= limit
	}

	for _, c := range full {
		if add(c.Name) || add(c.Resort) || add(Location(c)) {
			break
		}
	}
	return out
}

// FindBestMatch resolves a query to one course: exact name, then exact resort
// name, then name containing the query, then any searchable field containing it.
func FindBestMatch(full []*models.Course, query string) (*models.Course, bool) {
	term := foldQuery(query)
	if term == "" {
		return nil, false
	}

	tiers := []func(*models.Course) bool{
		func(c *models.Course) bool { return strings.ToLower(c.Name) == term },
		func(c *models.Course) bool { return c.Resort != "" && strings.ToLower(c.Resort) == term },
		func(c *models.Course) bool { return strings.Contains(strings.ToLower(c.Name), term) },
		func(c *models.Course) bool { return strings.Contains(searchText(c), term) },
	}
	for _, match := range tiers {
		for _, c := range full {
			if match(c) {
				return c, true
			}
		}
	}
	return nil, false
}

// Bounds is the lat/lng box around a set of courses.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// BoundsOf returns the box enclosing every course, or false for an empty set.
func BoundsOf(courses []*models.Course) (Bounds, bool) {
	if len(courses) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		South: courses[0].Latitude, North: courses[0].Latitude,
		West: courses[0].Longitude, East: courses[0].Longitude,
	}
	for _, c := range courses[1:] {
		b.South = min(b.South, c.Latitude)
		b.North = max(b.North, c.Latitude)
		b.West = min(b.West, c.Longitude)
		b.East = max(b.East, c.Longitude)
	}
	return b, true
}
