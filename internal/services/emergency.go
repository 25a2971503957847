package services

import (
	"context"
	"fmt"
	"strings"

	"driver-assist-service/internal/domain"
	"driver-assist-service/internal/ports"
)

// OpenNowClassifier decides whether a place is likely open around the
// clock. It is a strategy so the heuristic can evolve and be tested
// independently of the locator.
type OpenNowClassifier func(place domain.PlaceRecord) bool

const DefaultEmergencyRadiusKm = 25

// Broad query used for the 24h fuel category before classification.
var fuelSearchTypes = []string{"gas_station", "convenience_store", "restaurant"}

var (
	alwaysOpenTokens = []string{"24", "nonstop"}
	alwaysOpenChains = []string{
		"shell", "bp", "opet", "petrol ofisi", "total", "aytemiz", "lukoil",
	}
)

// DefaultOpenNowClassifier flags names containing an always-open token or
// a major fuel-chain name, case-insensitive substring match.
func DefaultOpenNowClassifier(place domain.PlaceRecord) bool {
	name := strings.ToLower(place.Name)
	for _, tok := range alwaysOpenTokens {
		if strings.Contains(name, tok) {
			return true
		}
	}
	for _, chain := range alwaysOpenChains {
		if strings.Contains(name, chain) {
			return true
		}
	}
	return false
}

type EmergencyRequest struct {
	Location domain.GeoPoint
	RadiusKm float64
	// Classifier overrides DefaultOpenNowClassifier when non-nil.
	Classifier OpenNowClassifier
}

// FindEmergencyServices assembles a categorized summary of emergency
// services around a single point: 24h fuel, repair shops, hospitals and
// police stations. All four categories are always present in the result,
// empty or not. Queries run sequentially; the first provider failure
// aborts the call.
func FindEmergencyServices(
	ctx context.Context,
	places ports.PlaceSearchProvider,
	req EmergencyRequest,
) (*domain.EmergencySummary, error) {
	if !req.Location.Valid() {
		return nil, fmt.Errorf("find emergency services: %w: location must be a valid coordinate", domain.ErrInvalidParameter)
	}

	radiusKm := req.RadiusKm
	if radiusKm == 0 {
		radiusKm = DefaultEmergencyRadiusKm
	}
	if radiusKm <= 0 {
		return nil, fmt.Errorf("find emergency services: %w: radius must be positive, got %v", domain.ErrInvalidParameter, radiusKm)
	}

	classifier := req.Classifier
	if classifier == nil {
		classifier = DefaultOpenNowClassifier
	}

	summary := domain.NewEmergencySummary(req.Location, radiusKm)
	radiusMeters := radiusKm * 1000

	fuel, err := places.SearchNearby(ctx, req.Location, radiusMeters, fuelSearchTypes)
	if err != nil {
		return nil, fmt.Errorf("find emergency services: 24h fuel search: %w", err)
	}
	open := make([]domain.PlaceRecord, 0, len(fuel))
	for _, p := range fuel {
		if classifier(p) {
			open = append(open, p)
		}
	}
	summary.SetCategory(domain.CategoryFuel24h, open)

	categories := []struct {
		name  string
		types []string
	}{
		{domain.CategoryRepair, []string{"car_repair"}},
		{domain.CategoryHospital, []string{"hospital"}},
		{domain.CategoryPolice, []string{"police"}},
	}

	for _, c := range categories {
		found, err := places.SearchNearby(ctx, req.Location, radiusMeters, c.types)
		if err != nil {
			return nil, fmt.Errorf("find emergency services: %s search: %w", c.name, err)
		}
		summary.SetCategory(c.name, found)
	}

	return summary, nil
}
