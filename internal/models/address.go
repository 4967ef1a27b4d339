package models

// Record is one row of the postal code file, decoded by column position.
type Record struct {
	AddressCode        string
	PrefCode           string
	CityCode           string
	AreaCode           string
	ZipCode            string
	CompanyFlag        string
	StopFlag           string
	PrefName           string
	PrefNameKana       string
	CityName           string
	CityNameKana       string
	TownArea           string
	TownAreaKana       string
	TownAreaSupplement string
	KyotoStreet        string
	StreetName         string
	StreetNameKana     string
	Supplement         string
	CompanyName        string
	CompanyNameKana    string
	CompanyAddress     string
	NewAddressCode     string

	// PrefID is PrefCode parsed as a number.
	PrefID uint8
	// Company is set when the row addresses a bulk mail recipient.
	Company bool
}

// Skip reports whether the record is a bulk recipient row that contributes
// no prefecture, city or town.
func (r Record) Skip() bool {
	return r.Company
}

// Street joins the street name with the Kyoto style street suffix.
func (r Record) Street() string {
	return r.StreetName + r.KyotoStreet
}

// Prefecture is a row of the prefs table.
type Prefecture struct {
	ID   uint8  `json:"id"`
	Name string `json:"name"`
}

// City is a row of the cities table. Code is the municipality code as it
// appears in the source file.
type City struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	PrefID uint8  `json:"pref_id"`
}

// Town is a row of the towns table. ID is a dense surrogate key starting at 1.
type Town struct {
	ID         uint32 `json:"id"`
	ZipCode    string `json:"zip_code"`
	AreaName   string `json:"area_name"`
	StreetName string `json:"street_name"`
	CityCode   string `json:"city_code"`
}

// Tables holds the three normalized collections in first-seen order.
type Tables struct {
	Prefectures []Prefecture `json:"prefectures"`
	Cities      []City       `json:"cities"`
	Towns       []Town       `json:"towns"`
}

// RowCounts is the number of rows stored in each table.
type RowCounts struct {
	Prefectures int `json:"prefs"`
	Cities      int `json:"cities"`
	Towns       int `json:"towns"`
}
