package geo

// Box is an axis-aligned lat/lng rectangle.
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Contains reports whether p lies inside the box (edges inclusive).
func (b Box) Contains(p LatLng) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// CountryBox ties an ISO 3166-1 alpha-2 code to a rough bounding box.
type CountryBox struct {
	Code string
	Box  Box
}

// DefaultCountryBoxes covers the regions the planner routes most often.
// Boxes are checked in order, so smaller countries come before the
// neighbours whose boxes overlap them.
var DefaultCountryBoxes = []CountryBox{
	{Code: "TW", Box: Box{MinLat: 21.8, MaxLat: 25.4, MinLng: 119.3, MaxLng: 122.1}},
	{Code: "KR", Box: Box{MinLat: 33.0, MaxLat: 38.7, MinLng: 124.5, MaxLng: 129.6}},
	{Code: "JP", Box: Box{MinLat: 24.0, MaxLat: 45.6, MinLng: 122.9, MaxLng: 146.0}},
	{Code: "HK", Box: Box{MinLat: 22.1, MaxLat: 22.6, MinLng: 113.8, MaxLng: 114.5}},
	{Code: "TH", Box: Box{MinLat: 5.6, MaxLat: 20.5, MinLng: 97.3, MaxLng: 105.7}},
	{Code: "VN", Box: Box{MinLat: 8.4, MaxLat: 23.4, MinLng: 102.1, MaxLng: 109.5}},
}

// BoxResolver maps coordinates to a country code using bounding boxes.
type BoxResolver struct {
	boxes []CountryBox
}

// NewBoxResolver returns a resolver over boxes, or DefaultCountryBoxes when
// boxes is empty.
func NewBoxResolver(boxes []CountryBox) *BoxResolver {
	if len(boxes) == 0 {
		boxes = DefaultCountryBoxes
	}
	return &BoxResolver{boxes: boxes}
}

// CountryOf returns the first matching country code, or "" when unknown.
func (r *BoxResolver) CountryOf(p LatLng) string {
	for _, cb := range r.boxes {
		if cb.Box.Contains(p) {
			return cb.Code
		}
	}
	return ""
}
