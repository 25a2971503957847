package domain

// Place returned by the place-search provider.
// Parsed at the provider boundary into a typed record. ID may be empty for
// providers that do not assign stable ids.
type PlaceRecord struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Location GeoPoint `json:"location"`
	Types    []string `json:"types"`
	Rating   float64  `json:"rating,omitempty"`
	Address  string   `json:"address,omitempty"`
}

// DedupKey is the identity used to collapse duplicate place records: the
// provider id when present, otherwise the rounded-coordinate fallback.
func (p PlaceRecord) DedupKey() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Location.CoordKey()
}

// Place enriched with route-relative metrics: the cumulative distance of
// the sample point it was found from, and its offset from that point.
type ServiceRecord struct {
	PlaceRecord
	SearchPoint           GeoPoint `json:"search_point"`
	SearchPointDistanceKm float64  `json:"search_point_distance_km"`
	DistanceFromRouteKm   float64  `json:"distance_from_route_km"`
}

// Deduplicated, insertion-ordered collection of ServiceRecord.
// No two entries share a DedupKey; the first occurrence wins and later
// duplicates are dropped.
type ServiceSet struct {
	keys    map[string]struct{}
	records []ServiceRecord
}

func NewServiceSet() *ServiceSet {
	return &ServiceSet{keys: make(map[string]struct{})}
}

// Add inserts the record unless its key is already present.
// Reports whether the record was kept.
func (s *ServiceSet) Add(rec ServiceRecord) bool {
	key := rec.DedupKey()
	if _, ok := s.keys[key]; ok {
		return false
	}
	s.keys[key] = struct{}{}
	s.records = append(s.records, rec)
	return true
}

func (s *ServiceSet) Len() int { return len(s.records) }

// Records returns the retained records in insertion order.
func (s *ServiceSet) Records() []ServiceRecord {
	out := make([]ServiceRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Aggregated result of a route-wide service search.
type RouteServiceReport struct {
	Route          RouteResult      `json:"route"`
	Origin         GeoPoint         `json:"origin"`
	Destination    GeoPoint         `json:"destination"`
	Points         []SampledPoint   `json:"route_points"`
	Services       []ServiceRecord  `json:"services"`
	TotalServices  int              `json:"total_services"`
	ServicesByType map[string]int   `json:"services_by_type"`
}
