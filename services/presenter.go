package services

import (
	"fmt"
	"strings"

	"golf-atlas/models"
)

// FallbackImage is shown on cards for courses without a thumbnail.
const FallbackImage = "https://images.unsplash.com/photo-1587174486073-ae5e5cff23aa?w=1200&q=80&auto=format&fit=crop"

// Marker styles understood by the map renderer.
const (
	MarkerTop100   = "top100"
	MarkerStandard = "standard"
)

const (
	maxPopupPills = 4
	maxCardMeta   = 3
	defaultBrand  = "GOLF ATLAS"
)

// MarkerView positions and styles one course pin.
type MarkerView struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Style     string  `json:"style"`
	Name      string  `json:"name"`
	Tooltip   string  `json:"tooltip,omitempty"`
}

// Pill is a value/label pair shown in the popup grid.
type Pill struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Action is a popup button.
type Action struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Kind  string `json:"kind"`
}

// PopupView is the detail payload for a course popup.
type PopupView struct {
	ID       string   `json:"id"`
	Brand    string   `json:"brand"`
	LogoURL  string   `json:"logo_url,omitempty"`
	Badge    string   `json:"badge"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Pills    []Pill   `json:"pills"`
	Lines    []string `json:"lines"`
	Actions  []Action `json:"actions"`
}

// FeaturedCard is the carousel summary of a course.
type FeaturedCard struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Subtitle string   `json:"subtitle"`
	Meta     []string `json:"meta"`
	ImageURL string   `json:"image_url"`
	AltText  string   `json:"alt"`
}

// Marker projects a course onto its map pin.
func Marker(c *models.Course) MarkerView {
	style := MarkerStandard
	if c.IsTop100 {
		style = MarkerTop100
	}
	return MarkerView{
		ID:        c.ID,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Style:     style,
		Name:      c.Name,
		Tooltip:   Location(c),
	}
}

// Markers projects every course in order.
func Markers(courses []*models.Course) []MarkerView {
	out := make([]MarkerView, 0, len(courses))
	for _, c := range courses {
		out = append(out, Marker(c))
	}
	return out
}

func rankLabel(c *models.Course) string {
	if c.Rank > 0 {
		return fmt.Sprintf("#%d", c.Rank)
	}
	return "#" + strings.TrimSpace(c.RankText)
}

// Popup builds the detail payload for a course.
func Popup(c *models.Course) PopupView {
	p := PopupView{
		ID:       c.ID,
		Brand:    firstNonEmpty(c.Resort, c.Name, defaultBrand),
		LogoURL:  c.LogoURL,
		Badge:    "Golf Atlas",
		Title:    firstNonEmpty(c.Name, "Course"),
		Subtitle: firstNonEmpty(Location(c), c.Region),
		Pills:    []Pill{},
		Lines:    []string{},
		Actions:  []Action{},
	}
	if c.IsTop100 {
		p.Badge = "Top-100"
	}

	if c.Par != "" {
		p.Pills = append(p.Pills, Pill{Value: c.Par, Label: "Par"})
	}
	if c.Yardage != "" {
		p.Pills = append(p.Pills, Pill{Value: c.Yardage, Label: "Yards"})
	}
	if c.IsTop100 && (c.Rank > 0 || c.RankText != "") {
		p.Pills = append(p.Pills, Pill{Value: rankLabel(c), Label: "Top 100"})
	}
	if c.AvgRating != "" {
		p.Pills = append(p.Pills, Pill{Value: c.AvgRating, Label: "Rating"})
	}
	if len(p.Pills) > maxPopupPills {
		p.Pills = p.Pills[:maxPopupPills]
	}

	if c.Resort != "" {
		p.Lines = append(p.Lines, "🏨 "+c.Resort)
	}
	if c.Architect != "" {
		p.Lines = append(p.Lines, "🏗️ "+c.Architect)
	}
	if c.CostRange != "" {
		p.Lines = append(p.Lines, "💰 "+c.CostRange)
	}
	if c.BestTime != "" {
		p.Lines = append(p.Lines, "🗓️ Best: "+c.BestTime)
	}

	if isWebURL(c.WebsiteURL) {
		p.Actions = append(p.Actions, Action{Label: "Website", URL: c.WebsiteURL, Kind: "primary"})
	}
	if c.Phone != "" {
		p.Actions = append(p.Actions, Action{Label: "Call", URL: "tel:" + c.Phone, Kind: "ghost"})
	}
	return p
}

// isWebURL reports whether s is an absolute http(s) link.
func isWebURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Card builds the carousel summary for a course.
func Card(c *models.Course) FeaturedCard {
	card := FeaturedCard{
		ID:       c.ID,
		Name:     firstNonEmpty(c.Resort, c.Name),
		Subtitle: Location(c),
		ImageURL: firstNonEmpty(c.ThumbnailURL, FallbackImage),
		AltText:  c.Name,
	}
	if c.Resort != "" {
		card.Subtitle = c.Name
	}

	var meta []string
	if c.IsTop100 {
		if c.Rank > 0 || c.RankText != "" {
			meta = append(meta, fmt.Sprintf("Top-100 (%s)", rankLabel(c)))
		} else {
			meta = append(meta, "Top-100")
		}
	}
	if IsAffirmative(c.LodgingOnSite) {
		meta = append(meta, "On-site lodging")
	}
	if c.BestTime != "" {
		meta = append(meta, "Best: "+c.BestTime)
	}
	if c.CostRange != "" {
		meta = append(meta, c.CostRange)
	}
	if len(meta) > maxCardMeta {
		meta = meta[:maxCardMeta]
	}
	card.Meta = append([]string{}, meta...)
	return card
}

// Cards projects a ranked list onto carousel cards.
func Cards(courses []*models.Course) []FeaturedCard {
	out := make([]FeaturedCard, 0, len(courses))
	for _, c := range courses {
		out = append(out, Card(c))
	}
	return out
}

// StatusLine is the one-line summary shown in the debug box.
func StatusLine(stats models.LoadStats, showing int, top100Only bool) string {
	if stats.Empty() {
		return EmptyDatasetMessage
	}
	line := fmt.Sprintf("Loaded %d • Showing %d", stats.Valid, showing)
	if top100Only {
		line += " • Top-100 only"
	}
	return line
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
