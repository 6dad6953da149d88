package services

import (
	"testing"
	"unicode/utf8"

	"golf-atlas/models"
	"golf-atlas/utils"
)

func sampleCourses() []*models.Course {
	return []*models.Course{
		{ID: "1", Name: "Pine Valley", State: "NJ", IsTop100: true, Rank: 1, AvgRating: "4.9"},
		{ID: "2", Name: "Pinehurst No. 2", State: "NC", IsTop100: true, Rank: 3, AvgRating: "4.7", LodgingOnSite: "Yes"},
		{ID: "3", Name: "Bandon Dunes", State: "OR", IsTop100: true, Rank: 12, AvgRating: "4.8", IsBuddyHotspot: true, LodgingOnSite: "yes"},
		{ID: "4", Name: "Pinehurst No. 4", State: "NC", AvgRating: "n/a"},
		{ID: "5", Name: "Sand Valley", State: "WI", IsTop100: true, IsBuddyHotspot: true},
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(utils.NewDiscardLogger())
	r := svc.Generate(sampleCourses())
	if r.TotalCourses != 5 {
		t.Errorf("TotalCourses: got %d, want 5", r.TotalCourses)
	}
	if r.Top100Courses != 4 {
		t.Errorf("Top100Courses: got %d, want 4", r.Top100Courses)
	}
	if r.BuddyHotspots != 2 {
		t.Errorf("BuddyHotspots: got %d, want 2", r.BuddyHotspots)
	}
	if r.WithLodging != 2 {
		t.Errorf("WithLodging: got %d, want 2", r.WithLodging)
	}
}

func TestInsightRatings(t *testing.T) {
	svc := NewInsightService(utils.NewDiscardLogger())
	r := svc.Generate(sampleCourses())
	if r.AverageRating != 4.8 {
		t.Errorf("AverageRating: got %.2f, want 4.80", r.AverageRating)
	}
	if r.HighestRated == nil || r.HighestRated.Name != "Pine Valley" {
		t.Errorf("HighestRated: got %v, want Pine Valley", r.HighestRated)
	}
}

func TestInsightTopRanked(t *testing.T) {
	svc := NewInsightService(utils.NewDiscardLogger())
	r := svc.Generate(sampleCourses())
	if len(r.TopRanked) != 3 {
		t.Fatalf("TopRanked len: got %d, want 3 (unranked excluded)", len(r.TopRanked))
	}
	if r.TopRanked[0].Rank != 1 || r.TopRanked[2].Rank != 12 {
		t.Errorf("TopRanked order: got ranks %d..%d", r.TopRanked[0].Rank, r.TopRanked[2].Rank)
	}
}

func TestInsightStateGrouping(t *testing.T) {
	svc := NewInsightService(utils.NewDiscardLogger())
	r := svc.Generate(sampleCourses())
	if r.CoursesByState["NC"] != 2 {
		t.Errorf("NC count: got %d, want 2", r.CoursesByState["NC"])
	}
	if r.CoursesByState["WI"] != 1 {
		t.Errorf("WI count: got %d, want 1", r.CoursesByState["WI"])
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewDiscardLogger())
	r := svc.Generate(nil)
	if r.TotalCourses != 0 || r.HighestRated != nil || len(r.TopRanked) != 0 {
		t.Errorf("expected an empty report, got %+v", r)
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Pebble Beach", 20, "Pebble Beach"},
		{"Château Élan Golf Club", 10, "Château..."},
		{"ÉÉÉÉÉÉ", 6, "ÉÉÉÉÉÉ"},
		{"ÉÉÉÉÉÉÉ", 6, "ÉÉÉ..."},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.max)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q; want %q", tt.in, tt.max, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) is not valid UTF-8", tt.in, tt.max)
		}
	}
}
