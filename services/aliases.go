package services

// Alias tables: for each logical field, the canonical header keys that carry
// it, in priority order. Both the legacy sheet layout and the current one are
// listed side by side; lookups never branch on a schema version.
var (
	idKeys        = []string{"id", "course_id", "uid"}
	latitudeKeys  = []string{"latitude", "lat", "course_latitude"}
	longitudeKeys = []string{"longitude", "lng", "lon", "long", "course_longitude"}

	nameKeys   = []string{"course_name", "course", "name", "golf_course", "coursefullname"}
	resortKeys = []string{"course_resort", "resort", "resort_name", "property", "destination"}
	cityKeys   = []string{"city", "town"}
	stateKeys  = []string{"state", "st", "province"}
	regionKeys = []string{"region"}

	parKeys     = []string{"par"}
	yardageKeys = []string{"yardageblack_tees", "yardage_black_tees", "yardage_black", "yardage"}

	// rankKeys carry a numeric Top-100 position; top100MarkerKeys carry a
	// yes/no flag (or, on legacy sheets, the position itself).
	rankKeys         = []string{"top_100_ranking", "top100_ranking", "top_100_rank", "top100_rank"}
	top100MarkerKeys = []string{"top_100", "top100", "is_top_100", "top_100_course", "top_100_yes_no"}

	ratingKeys  = []string{"player_reviews_avg_rating", "player_reviews_avg", "avg_rating", "rating"}
	buddyKeys   = []string{"buddies_trip_hotspot_yes_no", "buddies_trip_hotspot", "buddy_trip_hotspot"}
	lodgingKeys = []string{"lodging_on_siteyes_no", "lodging_on_site_yes_no", "lodging_on_site", "lodging"}
	bestKeys    = []string{"peak_seasonbest_time_to_visit", "best_time_to_visit", "peak_season"}
	costKeys    = []string{"cost_per_coursegreen_fee_range", "green_fee_range", "cost_range", "price_range"}

	architectKeys = []string{"architect", "designer"}
	phoneKeys     = []string{"phone", "phone_number", "contact_phone"}
	websiteKeys   = []string{"website_url", "website", "url", "course_website"}
	thumbnailKeys = []string{"thumbnail_url", "thumbnail", "image", "image_url", "photo_url"}
	logoKeys      = []string{
		"logo_urllinked",
		"logo_url",
		"course_logo_url",
		"course_logo",
		"logo",
		"logo_link",
		"course_logo_link",
	}
)
