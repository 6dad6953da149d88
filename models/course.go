package models

import "time"

// RawRow holds one unprocessed CSV row keyed by its free-text column header.
type RawRow map[string]string

// Course is the validated, normalized record built from a single row.
// Name is never empty and both coordinates are finite.
type Course struct {
	ID        string  `json:"id"`
	Name      string  `json:"course_name"`
	Resort    string  `json:"course_resort,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Region    string  `json:"region,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Par           string `json:"par,omitempty"`
	Yardage       string `json:"yardage_black_tees,omitempty"`
	RankText      string `json:"top_100_ranking,omitempty"`
	Rank          int    `json:"rank,omitempty"`
	AvgRating     string `json:"avg_rating,omitempty"`
	BuddyHotspot  string `json:"buddies_trip_hotspot,omitempty"`
	LodgingOnSite string `json:"lodging_on_site,omitempty"`
	BestTime      string `json:"best_time,omitempty"`
	CostRange     string `json:"cost_range,omitempty"`
	Architect     string `json:"architect,omitempty"`
	Phone         string `json:"phone,omitempty"`
	WebsiteURL    string `json:"website_url,omitempty"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
	LogoURL       string `json:"logo_url,omitempty"`

	IsTop100       bool `json:"is_top_100"`
	IsBuddyHotspot bool `json:"is_buddy_hotspot"`

	// Raw is the full row under canonical keys.
	Raw map[string]string `json:"-"`
}

// LoadStats summarises one ingestion pass.
type LoadStats struct {
	TotalRows     int `json:"total_rows"`
	Valid         int `json:"valid"`
	Dropped       int `json:"dropped"`
	Top100        int `json:"top_100"`
	BuddyHotspots int `json:"buddy_hotspots"`
}

// Empty reports whether the pass produced no usable courses.
func (s LoadStats) Empty() bool { return s.Valid == 0 }

// Snapshot is the immutable full set produced by one ingestion pass.
type Snapshot struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	Courses  []*Course `json:"-"`
	Stats    LoadStats `json:"stats"`
}

// DatasetReport holds the computed analytics over a snapshot.
type DatasetReport struct {
	TotalCourses   int            `json:"total_courses"`
	Top100Courses  int            `json:"top_100_courses"`
	BuddyHotspots  int            `json:"buddy_hotspots"`
	WithLodging    int            `json:"with_lodging"`
	AverageRating  float64        `json:"average_rating"`
	HighestRated   *Course        `json:"highest_rated,omitempty"`
	TopRanked      []*Course      `json:"top_ranked"`
	CoursesByState map[string]int `json:"courses_by_state"`
}
