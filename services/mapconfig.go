package services

// MapConfig carries the renderer defaults the widget boots with.
type MapConfig struct {
	Center      [2]float64    `json:"center"`
	Zoom        int           `json:"zoom"`
	MaxZoom     int           `json:"max_zoom"`
	TileURL     string        `json:"tile_url"`
	Attribution string        `json:"attribution"`
	FocusZoom   int           `json:"focus_zoom"`
	Cluster     ClusterConfig `json:"cluster"`
	FitPadding  [2]int        `json:"fit_padding"`
}

// ClusterConfig tunes marker clustering.
type ClusterConfig struct {
	DisableClusteringAtZoom int     `json:"disable_clustering_at_zoom"`
	SpiderfyOnMaxZoom       bool    `json:"spiderfy_on_max_zoom"`
	SpiderfyDistance        float64 `json:"spiderfy_distance_multiplier"`
	ShowCoverageOnHover     bool    `json:"show_coverage_on_hover"`
	ZoomToBoundsOnClick     bool    `json:"zoom_to_bounds_on_click"`
	FitPadding              [2]int  `json:"fit_padding"`
}

// DefaultMapConfig is the contiguous-US view.
func DefaultMapConfig() MapConfig {
	return MapConfig{
		Center:      [2]float64{39.8283, -98.5795},
		Zoom:        5,
		MaxZoom:     13,
		FocusZoom:   13,
		TileURL:     "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
		Attribution: "&copy; OpenStreetMap contributors &copy; CARTO",
		Cluster: ClusterConfig{
			DisableClusteringAtZoom: 14,
			SpiderfyOnMaxZoom:       true,
			SpiderfyDistance:        2.1,
			FitPadding:              [2]int{50, 50},
		},
		FitPadding: [2]int{60, 60},
	}
}
