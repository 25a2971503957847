package domain

// Fixed emergency service categories. Every EmergencySummary carries all
// four keys, empty or not.
const (
	CategoryFuel24h  = "24h_gas_stations"
	CategoryRepair   = "repair_shops"
	CategoryHospital = "hospitals"
	CategoryPolice   = "police_stations"
)

// EmergencyCategories lists the fixed categories in report order.
var EmergencyCategories = []string{
	CategoryFuel24h,
	CategoryRepair,
	CategoryHospital,
	CategoryPolice,
}

// Categorized emergency services around a single point.
type EmergencySummary struct {
	Location       GeoPoint                 `json:"location"`
	SearchRadiusKm float64                  `json:"search_radius_km"`
	Services       map[string][]PlaceRecord `json:"services"`
	Counts         map[string]int           `json:"counts"`
}

// NewEmergencySummary returns a summary with every category present and
// empty.
func NewEmergencySummary(location GeoPoint, radiusKm float64) *EmergencySummary {
	s := &EmergencySummary{
		Location:       location,
		SearchRadiusKm: radiusKm,
		Services:       make(map[string][]PlaceRecord, len(EmergencyCategories)),
		Counts:         make(map[string]int, len(EmergencyCategories)),
	}
	for _, c := range EmergencyCategories {
		s.Services[c] = []PlaceRecord{}
		s.Counts[c] = 0
	}
	return s
}

// SetCategory stores one category bucket and keeps the count in sync.
func (s *EmergencySummary) SetCategory(category string, places []PlaceRecord) {
	if places == nil {
		places = []PlaceRecord{}
	}
	s.Services[category] = places
	s.Counts[category] = len(places)
}
