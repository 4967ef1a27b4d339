package normalize

import (
	"github.com/kimuray/pcs-gen/internal/models"
)

// CityConflict records a city code that appeared with more than one name or
// prefecture.
type CityConflict struct {
	Code  string
	First models.City
	Other models.City
}

type townKey struct {
	zipCode    string
	areaName   string
	streetName string
	cityCode   string
}

// Normalizer accumulates the three tables from a sequence of records.
// It is not safe for concurrent use.
type Normalizer struct {
	prefs  *orderedSet[models.Prefecture, models.Prefecture]
	cities *orderedSet[models.City, models.City]
	towns  *orderedSet[townKey, models.Town]

	firstCity map[string]models.City
	conflicts []CityConflict
}

// New returns an empty Normalizer.
func New() *Normalizer {
	return &Normalizer{
		prefs:     newOrderedSet[models.Prefecture, models.Prefecture](),
		cities:    newOrderedSet[models.City, models.City](),
		towns:     newOrderedSet[townKey, models.Town](),
		firstCity: make(map[string]models.City),
	}
}

// Add extracts a prefecture, a city and a town from rec and keeps each one
// that has not been seen before. Skipped records are ignored.
func (n *Normalizer) Add(rec models.Record) {
	if rec.Skip() {
		return
	}

	pref := models.Prefecture{
		ID:   rec.PrefID,
		Name: rec.PrefName,
	}
	city := models.City{
		Code:   rec.CityCode,
		Name:   rec.CityName,
		PrefID: rec.PrefID,
	}
	town := models.Town{
		ID:         uint32(n.towns.len()) + 1,
		ZipCode:    rec.ZipCode,
		AreaName:   rec.TownArea,
		StreetName: rec.Street(),
		CityCode:   city.Code,
	}

	n.prefs.add(pref, pref)

	if n.cities.add(city, city) {
		n.checkCity(city)
	}

	n.towns.add(townKey{
		zipCode:    town.ZipCode,
		areaName:   town.AreaName,
		streetName: town.StreetName,
		cityCode:   town.CityCode,
	}, town)
}

func (n *Normalizer) checkCity(city models.City) {
	first, ok := n.firstCity[city.Code]
	if !ok {
		n.firstCity[city.Code] = city
		return
	}
	n.conflicts = append(n.conflicts, CityConflict{Code: city.Code, First: first, Other: city})
}

// Tables returns the collections accumulated so far in first-seen order.
func (n *Normalizer) Tables() models.Tables {
	return models.Tables{
		Prefectures: n.prefs.values(),
		Cities:      n.cities.values(),
		Towns:       n.towns.values(),
	}
}

// Conflicts returns every city that shares its code with an earlier,
// different city.
func (n *Normalizer) Conflicts() []CityConflict {
	out := make([]CityConflict, len(n.conflicts))
	copy(out, n.conflicts)
	return out
}
