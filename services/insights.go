package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"golf-atlas/models"
	"golf-atlas/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(courses []*models.Course) *models.DatasetReport {
	report := &models.DatasetReport{
		CoursesByState: make(map[string]int),
		TopRanked:      []*models.Course{},
	}

	if len(courses) == 0 {
		return report
	}

	report.TotalCourses = len(courses)

	var ranked []*models.Course
	var ratingTotal float64
	var ratedCount int

	for _, c := range courses {
		if c.IsTop100 {
			report.Top100Courses++
			if c.Rank > 0 {
				ranked = append(ranked, c)
			}
		}
		if c.IsBuddyHotspot {
			report.BuddyHotspots++
		}
		if IsAffirmative(c.LodgingOnSite) {
			report.WithLodging++
		}
		if c.State != "" {
			report.CoursesByState[c.State]++
		}

		// Rating stats (only courses with a numeric rating)
		if r, ok := ParseNumber(c.AvgRating); ok && r > 0 {
			ratingTotal += r
			ratedCount++
			if report.HighestRated == nil || r > mustRating(report.HighestRated) {
				report.HighestRated = c
			}
		}
	}

	if ratedCount > 0 {
		report.AverageRating = round2(ratingTotal / float64(ratedCount))
	}

	// Top 5 by rank
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rank < ranked[j].Rank
	})
	if len(ranked) > 5 {
		report.TopRanked = ranked[:5]
	} else if len(ranked) > 0 {
		report.TopRanked = ranked
	}

	return report
}

func mustRating(c *models.Course) float64 {
	r, _ := ParseNumber(c.AvgRating)
	return r
}

func (s *InsightService) Print(r *models.DatasetReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  ⛳ GOLF ATLAS DATASET\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Courses on the map     : \033[1m%s\033[0m\n", humanize.Comma(int64(r.TotalCourses)))
	fmt.Printf("  Top-100 courses        : \033[1m%d\033[0m\n", r.Top100Courses)
	fmt.Printf("  Buddy-trip hotspots    : \033[1m%d\033[0m\n", r.BuddyHotspots)
	fmt.Printf("  On-site lodging        : \033[1m%d\033[0m\n", r.WithLodging)
	fmt.Println()

	// Ratings
	fmt.Printf("\033[1;33m  Player Ratings\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.HighestRated != nil {
		fmt.Printf("  Average rating : \033[1;32m%.2f\033[0m\n", r.AverageRating)
		fmt.Printf("  Highest rated  : %s (\033[1;32m%s\033[0m)\n", truncate(r.HighestRated.Name, 36), r.HighestRated.AvgRating)
	} else {
		fmt.Printf("  No rating data available\n")
	}
	fmt.Println()

	// ── TOP RANKED ───────────────────────────────────────────────────────
	fmt.Printf("\033[1;33m  Top Ranked Courses\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopRanked) == 0 {
		fmt.Printf("  No ranked courses found\n")
	} else {
		for _, c := range r.TopRanked {
			fmt.Printf("  \033[1m#%-3d\033[0m %-40s %s\n", c.Rank, truncate(c.Name, 38), c.State)
		}
	}
	fmt.Println()

	// Courses by State
	fmt.Printf("\033[1;33m  Courses by State\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.CoursesByState) == 0 {
		fmt.Printf("  No state data\n")
	} else {
		type stateCount struct {
			state string
			count int
		}
		var states []stateCount
		for st, cnt := range r.CoursesByState {
			states = append(states, stateCount{st, cnt})
		}
		sort.Slice(states, func(i, j int) bool {
			if states[i].count != states[j].count {
				return states[i].count > states[j].count
			}
			return states[i].state < states[j].state
		})
		for _, sc := range states {
			bar := strings.Repeat("█", min(sc.count, 40))
			fmt.Printf("  %-20s %s (%d)\n", truncate(sc.state, 18), bar, sc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
