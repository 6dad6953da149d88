package storage

import (
	"encoding/json"
	"strconv"

	"golf-atlas/models"
)

// exportColumns is the column order shared by the CSV export and the SQL tables.
var exportColumns = []string{
	"id", "course_name", "course_resort", "city", "state", "region",
	"latitude", "longitude", "par", "yardage_black_tees", "top_100_ranking", "rank",
	"is_top_100", "is_buddy_hotspot", "buddies_trip_hotspot", "avg_rating", "lodging_on_site", "best_time",
	"cost_range", "architect", "phone", "website_url", "thumbnail_url", "logo_url",
}

func courseValues(c *models.Course) []any {
	return []any{
		c.ID, c.Name, c.Resort, c.City, c.State, c.Region,
		c.Latitude, c.Longitude, c.Par, c.Yardage, c.RankText, c.Rank,
		c.IsTop100, c.IsBuddyHotspot, c.BuddyHotspot, c.AvgRating, c.LodgingOnSite, c.BestTime,
		c.CostRange, c.Architect, c.Phone, c.WebsiteURL, c.ThumbnailURL, c.LogoURL,
	}
}

func courseRecord(c *models.Course) []string {
	return []string{
		c.ID, c.Name, c.Resort, c.City, c.State, c.Region,
		strconv.FormatFloat(c.Latitude, 'f', -1, 64),
		strconv.FormatFloat(c.Longitude, 'f', -1, 64),
		c.Par, c.Yardage, c.RankText, strconv.Itoa(c.Rank),
		strconv.FormatBool(c.IsTop100), strconv.FormatBool(c.IsBuddyHotspot),
		c.BuddyHotspot, c.AvgRating, c.LodgingOnSite, c.BestTime,
		c.CostRange, c.Architect, c.Phone, c.WebsiteURL, c.ThumbnailURL, c.LogoURL,
	}
}

func rawJSON(c *models.Course) string {
	if len(c.Raw) == 0 {
		return "{}"
	}
	b, err := json.Marshal(c.Raw)
	if err != nil {
		return "{}"
	}
	return string(b)
}
