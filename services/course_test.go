package services

import (
	"math"
	"testing"

	"golf-atlas/models"
	"golf-atlas/utils"
)

func normalize(headers []string, rows ...[]string) ([]*models.Course, models.LoadStats) {
	raw := make([]models.RawRow, 0, len(rows))
	for _, r := range rows {
		row := models.RawRow{}
		for i, h := range headers {
			if i < len(r) {
				row[h] = r[i]
			}
		}
		raw = append(raw, row)
	}
	return NewNormalizer(utils.NewDiscardLogger()).Normalize(headers, raw)
}

func TestBuildCourseLegacyHeaders(t *testing.T) {
	courses, stats := normalize(
		[]string{"Course Name", "Lat", "Lng", "Top100", "Top100_Rank"},
		[]string{"Pinehurst No. 2", "35.1947", "-79.4696", "1", "3"},
	)
	if stats.Valid != 1 {
		t.Fatalf("Valid = %d; want 1", stats.Valid)
	}
	c := courses[0]
	if c.Name != "Pinehurst No. 2" {
		t.Errorf("Name = %q", c.Name)
	}
	if math.Abs(c.Latitude-35.1947) > 1e-9 || math.Abs(c.Longitude+79.4696) > 1e-9 {
		t.Errorf("position = %v,%v", c.Latitude, c.Longitude)
	}
	if !c.IsTop100 || c.Rank != 3 {
		t.Errorf("IsTop100, Rank = %v, %d; want true, 3", c.IsTop100, c.Rank)
	}
}

func TestBuildCourseNonBreakingSpaceHeaders(t *testing.T) {
	courses, stats := normalize(
		[]string{"Course\u00a0Name", "Latitude", "Longitude"},
		[]string{"Pebble Beach", "36.5686", "-121.9505"},
	)
	if stats.Valid != 1 || stats.Dropped != 0 {
		t.Fatalf("Valid, Dropped = %d, %d; want 1, 0", stats.Valid, stats.Dropped)
	}
	if courses[0].Name != "Pebble Beach" {
		t.Errorf("Name = %q; want Pebble Beach", courses[0].Name)
	}
}

func TestBuildCourseCurrentHeaders(t *testing.T) {
	courses, _ := normalize(
		[]string{
			"Course Name", "Course Resort", "City", "State", "Latitude", "Longitude",
			"Par", "Yardage(Black Tees)", "Top 100 Ranking", "Buddies Trip Hotspot",
			"Lodging On-Site", "Logo URL(linked)", "Website URL", "Phone",
		},
		[]string{
			"Bandon Dunes", "Bandon Dunes Golf Resort", "Bandon", "OR", "43.1887", "-124.3956",
			"72", "6732", "", "Yes",
			"Yes", "https://example.com/logo.png", "https://bandondunesgolf.com", "541-347-4380",
		},
	)
	if len(courses) != 1 {
		t.Fatalf("got %d courses; want 1", len(courses))
	}
	c := courses[0]
	if c.Resort != "Bandon Dunes Golf Resort" || c.Yardage != "6732" || c.LogoURL != "https://example.com/logo.png" {
		t.Errorf("alias lookups failed: %+v", c)
	}
	if c.IsTop100 {
		t.Error("blank rank and no marker should not be Top-100")
	}
	if !c.IsBuddyHotspot {
		t.Error("Buddies Trip Hotspot = Yes should set IsBuddyHotspot")
	}
	if c.Raw["course_name"] != "Bandon Dunes" {
		t.Errorf("Raw should carry canonical keys, got %v", c.Raw)
	}
}

func TestNormalizeDropsUnplaceableRows(t *testing.T) {
	headers := []string{"course_name", "latitude", "longitude"}
	courses, stats := normalize(headers,
		[]string{"Pebble Beach", "36.5686", "-121.9505"},
		[]string{"No Latitude", "", "-100"},
		[]string{"", "35", "-80"},
		[]string{"Bad Lng", "35", "west"},
		[]string{"Pine Valley", "39.7873", "-74.9763"},
	)
	if stats.TotalRows != 5 || stats.Valid != 2 || stats.Dropped != 3 {
		t.Errorf("stats = %+v; want 5 total, 2 valid, 3 dropped", stats)
	}
	if courses[0].Name != "Pebble Beach" || courses[1].Name != "Pine Valley" {
		t.Errorf("source order not kept: %s, %s", courses[0].Name, courses[1].Name)
	}
	for _, c := range courses {
		if c.Name == "" || math.IsNaN(c.Latitude) || math.IsInf(c.Longitude, 0) {
			t.Errorf("invalid record published: %+v", c)
		}
	}
}

func TestNormalizeMissingLatitudeDropsExactlyOne(t *testing.T) {
	headers := []string{"course", "lat", "lng"}
	rows := [][]string{
		{"A", "1", "2"},
		{"B", "", "2"},
		{"C", "3", "4"},
	}
	courses, _ := normalize(headers, rows...)
	if len(courses) != len(rows)-1 {
		t.Errorf("got %d courses from %d rows; want %d", len(courses), len(rows), len(rows)-1)
	}
}

func TestTop100Precedence(t *testing.T) {
	tests := []struct {
		rank, marker string
		wantTop      bool
		wantRank     int
	}{
		{"12", "", true, 12},
		{"12", "No", true, 12},
		{"", "Yes", true, 0},
		{"", "no", false, 0},
		{"", "7", true, 7},
		{"", "1", true, 1},
		{"n/a", "yes", true, 0},
		{"150", "", false, 0},
		{"150", "y", true, 0},
		{"4.5", "", false, 0},
		{"#9", "", true, 9},
		{"", "", false, 0},
	}
	for _, tt := range tests {
		gotTop, gotRank := top100Status(tt.rank, tt.marker)
		if gotTop != tt.wantTop || gotRank != tt.wantRank {
			t.Errorf("top100Status(%q, %q) = %v, %d; want %v, %d",
				tt.rank, tt.marker, gotTop, gotRank, tt.wantTop, tt.wantRank)
		}
	}
}

func TestCourseIdentity(t *testing.T) {
	headers := []string{"id", "course_name", "city", "state", "lat", "lng"}
	courses, _ := normalize(headers,
		[]string{"pv-001", "Pine Valley", "Pine Valley", "NJ", "39.7873", "-74.9763"},
		[]string{"", "Pine Valley", "Pine Valley", "NJ", "39.7873", "-74.9763"},
	)
	if courses[0].ID != "pv-001" {
		t.Errorf("explicit id = %q; want pv-001", courses[0].ID)
	}
	if courses[1].ID == "" || courses[1].ID == courses[0].ID {
		t.Errorf("fallback id = %q", courses[1].ID)
	}

	again, _ := normalize(headers, []string{"", "PINE VALLEY", "pine valley", "nj", "39.7873", "-74.9763"})
	if again[0].ID != courses[1].ID {
		t.Errorf("fallback id not stable across case: %q vs %q", again[0].ID, courses[1].ID)
	}
}

// Re-ingesting the canonical fields of a record yields the same record.
func TestReingestRoundTrip(t *testing.T) {
	headers := []string{"course_name", "course_resort", "city", "state", "latitude", "longitude", "top_100_ranking", "buddies_trip_hotspot"}
	first, _ := normalize(headers,
		[]string{"Pinehurst No. 2", "Pinehurst Resort", "Pinehurst", "NC", "35.1947", "-79.4696", "3", "yes"},
	)
	c := first[0]

	again, _ := normalize(headers, []string{
		c.Name, c.Resort, c.City, c.State,
		"35.1947", "-79.4696", c.RankText, c.BuddyHotspot,
	})
	d := again[0]
	if d.ID != c.ID || d.Name != c.Name || d.Latitude != c.Latitude || d.Longitude != c.Longitude ||
		d.IsTop100 != c.IsTop100 || d.Rank != c.Rank || d.IsBuddyHotspot != c.IsBuddyHotspot {
		t.Errorf("round trip changed the record:\n first %+v\n again %+v", c, d)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	courses, stats := normalize([]string{"name", "latitude", "longitude"})
	if len(courses) != 0 || !stats.Empty() {
		t.Errorf("empty input = %d courses, %+v", len(courses), stats)
	}
}
