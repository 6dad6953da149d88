package services

import (
	"testing"

	"golf-atlas/models"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Course Name", "course_name"},
		{"\ufeffLatitude", "latitude"},
		{"  Lng  ", "lng"},
		{"Top 100 Ranking", "top_100_ranking"},
		{"Yardage (Black Tees)", "yardage_black_tees"},
		{"Yardage(Black Tees)", "yardageblack_tees"},
		{"Logo URL(linked)", "logo_urllinked"},
		{"Lodging On-Site? (Yes/No)", "lodging_on_site_yes_no"},
		{"Buddies Trip Hotspot (Yes/No)", "buddies_trip_hotspot_yes_no"},
		{"Café Région", "cafe_region"},
		{"Peak Season / Best Time to Visit", "peak_season_best_time_to_visit"},
		{"Course\u00a0Name", "course_name"},
		{"Top\u2009100\u3000Rank", "top_100_rank"},
		{"\u00a0Lat\u00a0", "lat"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeKeyIdempotent(t *testing.T) {
	inputs := []string{
		"Course Name", "\ufeff Top-100 / Rank ", "Yardage (Black Tees)", "Ünïcödé Header",
		"a  --  b", "(x)", "__weird__KEY__", "Player Reviews: Avg Rating",
	}
	for _, in := range inputs {
		once := NormalizeKey(in)
		if twice := NormalizeKey(once); twice != once {
			t.Errorf("NormalizeKey(NormalizeKey(%q)) = %q; want %q", in, twice, once)
		}
	}
}

func TestCanonicalRowLaterHeaderWins(t *testing.T) {
	headers := []string{"Course Name", "course-name", "Lat"}
	row := models.RawRow{"Course Name": "First", "course-name": "Second", "Lat": "1"}
	got := CanonicalRow(row, headers)
	if got["course_name"] != "Second" {
		t.Errorf("course_name = %q; want Second", got["course_name"])
	}
	if got["lat"] != "1" {
		t.Errorf("lat = %q; want 1", got["lat"])
	}
}

func TestPickFirst(t *testing.T) {
	row := map[string]string{"course_name": "  ", "course": "Pine Valley", "name": "Other"}
	tests := []struct {
		keys     []string
		fallback string
		want     string
	}{
		{[]string{"course_name", "course", "name"}, "", "Pine Valley"},
		{[]string{"name", "course"}, "", "Other"},
		{[]string{"missing"}, "fb", "fb"},
		{[]string{"course_name"}, "fb", "fb"},
		{nil, "fb", "fb"},
	}
	for _, tt := range tests {
		if got := PickFirst(row, tt.keys, tt.fallback); got != tt.want {
			t.Errorf("PickFirst(%v, %q) = %q; want %q", tt.keys, tt.fallback, got, tt.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1,200.50", 1200.5, true},
		{"-79.4696", -79.4696, true},
		{" 35.1947 ", 35.1947, true},
		{"#3 overall", 3, true},
		{"5-10", 5, true},
		{".5", 0.5, true},
		{"12.", 12, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"-", 0, false},
		{"--5", 0, false},
		{"..", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"yes", true},
		{" YES ", true},
		{"Y", true},
		{"true", true},
		{"1", true},
		{"no", false},
		{"", false},
		{"2", false},
		{"yes please", false},
	}
	for _, tt := range tests {
		if got := IsAffirmative(tt.in); got != tt.want {
			t.Errorf("IsAffirmative(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}
