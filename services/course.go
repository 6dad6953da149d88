package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"golf-atlas/models"
	"golf-atlas/utils"
)

// courseNamespace seeds the UUIDv5 identities synthesized for rows that do
// not carry an explicit id column.
var courseNamespace = uuid.MustParse("6f1d3c52-8a0e-5b7c-9d41-2e6a4c1f0b93")

// BuildCourse maps one canonicalized row onto a Course. It returns false when
// the row has no name or no finite coordinates.
func BuildCourse(row map[string]string) (*models.Course, bool) {
	lat, latOK := ParseNumber(PickFirst(row, latitudeKeys, ""))
	lng, lngOK := ParseNumber(PickFirst(row, longitudeKeys, ""))
	name := strings.TrimSpace(PickFirst(row, nameKeys, ""))
	if !latOK || !lngOK || name == "" {
		return nil, false
	}

	c := &models.Course{
		Name:      name,
		Resort:    pick(row, resortKeys),
		City:      pick(row, cityKeys),
		State:     pick(row, stateKeys),
		Region:    pick(row, regionKeys),
		Latitude:  lat,
		Longitude: lng,

		Par:           pick(row, parKeys),
		Yardage:       pick(row, yardageKeys),
		RankText:      pick(row, rankKeys),
		AvgRating:     pick(row, ratingKeys),
		BuddyHotspot:  pick(row, buddyKeys),
		LodgingOnSite: pick(row, lodgingKeys),
		BestTime:      pick(row, bestKeys),
		CostRange:     pick(row, costKeys),
		Architect:     pick(row, architectKeys),
		Phone:         pick(row, phoneKeys),
		WebsiteURL:    pick(row, websiteKeys),
		ThumbnailURL:  pick(row, thumbnailKeys),
		LogoURL:       pick(row, logoKeys),

		Raw: row,
	}

	c.IsTop100, c.Rank = top100Status(c.RankText, pick(row, top100MarkerKeys))
	if c.RankText == "" && c.Rank > 0 {
		c.RankText = strconv.Itoa(c.Rank)
	}
	c.IsBuddyHotspot = IsAffirmative(c.BuddyHotspot)

	if id := pick(row, idKeys); id != "" {
		c.ID = id
	} else {
		c.ID = fallbackID(c)
	}
	return c, true
}

// top100Status resolves the Top-100 flag and rank. A usable rank column wins;
// the marker column is only consulted when the rank does not resolve.
func top100Status(rankText, marker string) (bool, int) {
	if rank, ok := parseRank(rankText); ok {
		return true, rank
	}
	if marker == "" {
		return false, 0
	}
	if rankText == "" {
		if rank, ok := parseRank(marker); ok {
			return true, rank
		}
	}
	return IsAffirmative(marker), 0
}

func parseRank(s string) (int, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	n, ok := ParseNumber(s)
	if !ok || n != math.Trunc(n) || n < 1 || n > 100 {
		return 0, false
	}
	return int(n), true
}

// fallbackID derives a stable identity from the fields that locate a course.
func fallbackID(c *models.Course) string {
	key := strings.ToLower(strings.Join([]string{
		c.Name,
		c.City,
		c.State,
		strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64),
	}, "|"))
	return uuid.NewSHA1(courseNamespace, []byte(key)).String()
}

func pick(row map[string]string, keys []string) string {
	return strings.TrimSpace(PickFirst(row, keys, ""))
}

// Normalizer turns parsed CSV rows into the course set.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize canonicalizes and builds every row, keeping source order. Rows
// that cannot be placed on a map are dropped and only counted.
func (n *Normalizer) Normalize(headers []string, rows []models.RawRow) ([]*models.Course, models.LoadStats) {
	stats := models.LoadStats{TotalRows: len(rows)}
	courses := make([]*models.Course, 0, len(rows))

	for i, raw := range rows {
		c, ok := BuildCourse(CanonicalRow(raw, headers))
		if !ok {
			n.logger.Debug("[normalize] Row %d dropped: missing name or coordinates", i+2)
			continue
		}
		if c.IsTop100 {
			stats.Top100++
		}
		if c.IsBuddyHotspot {
			stats.BuddyHotspots++
		}
		courses = append(courses, c)
	}

	stats.Valid = len(courses)
	stats.Dropped = stats.TotalRows - stats.Valid

	n.logger.Info("[normalize] Normalized %s → %s courses (dropped %s) • Top-100: %d",
		humanize.Comma(int64(stats.TotalRows)), humanize.Comma(int64(stats.Valid)),
		humanize.Comma(int64(stats.Dropped)), stats.Top100)
	return courses, stats
}
