package decoder

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/kimuray/pcs-gen/internal/models"
)

// FieldCount is the number of columns in a postal code row.
const FieldCount = 22

// Column positions within a row.
const (
	colAddressCode = iota
	colPrefCode
	colCityCode
	colAreaCode
	colZipCode
	colCompanyFlag
	colStopFlag
	colPrefName
	colPrefNameKana
	colCityName
	colCityNameKana
	colTownArea
	colTownAreaKana
	colTownAreaSupplement
	colKyotoStreet
	colStreetName
	colStreetNameKana
	colSupplement
	colCompanyName
	colCompanyNameKana
	colCompanyAddress
	colNewAddressCode
)

var (
	ErrFieldCount = errors.New("unexpected field count")
	ErrFlagRange  = errors.New("flag must be 0 or 1")
)

// DecodeError describes a row that cannot be turned into a Record.
// Line is 1-based and zero when the row was not read from a file.
type DecodeError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *DecodeError) Error() string {
	msg := "decoder: "
	if e.Line > 0 {
		msg += fmt.Sprintf("line %d: ", e.Line)
	}
	if e.Field != "" {
		msg += fmt.Sprintf("invalid %s %q: ", e.Field, e.Value)
	}
	return msg + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode maps the positional fields of one row onto a Record.
func Decode(fields []string) (models.Record, error) {
	if len(fields) != FieldCount {
		return models.Record{}, &DecodeError{
			Err: fmt.Errorf("%w: got %d, expected %d", ErrFieldCount, len(fields), FieldCount),
		}
	}

	prefID, err := strconv.ParseUint(fields[colPrefCode], 10, 8)
	if err != nil {
		return models.Record{}, &DecodeError{Field: "prefecture code", Value: fields[colPrefCode], Err: err}
	}

	flag, err := strconv.ParseUint(fields[colCompanyFlag], 10, 8)
	if err != nil {
		return models.Record{}, &DecodeError{Field: "company flag", Value: fields[colCompanyFlag], Err: err}
	}
	if flag > 1 {
		return models.Record{}, &DecodeError{Field: "company flag", Value: fields[colCompanyFlag], Err: ErrFlagRange}
	}

	return models.Record{
		AddressCode:        fields[colAddressCode],
		PrefCode:           fields[colPrefCode],
		CityCode:           fields[colCityCode],
		AreaCode:           fields[colAreaCode],
		ZipCode:            fields[colZipCode],
		CompanyFlag:        fields[colCompanyFlag],
		StopFlag:           fields[colStopFlag],
		PrefName:           fields[colPrefName],
		PrefNameKana:       fields[colPrefNameKana],
		CityName:           fields[colCityName],
		CityNameKana:       fields[colCityNameKana],
		TownArea:           fields[colTownArea],
		TownAreaKana:       fields[colTownAreaKana],
		TownAreaSupplement: fields[colTownAreaSupplement],
		KyotoStreet:        fields[colKyotoStreet],
		StreetName:         fields[colStreetName],
		StreetNameKana:     fields[colStreetNameKana],
		Supplement:         fields[colSupplement],
		CompanyName:        fields[colCompanyName],
		CompanyNameKana:    fields[colCompanyNameKana],
		CompanyAddress:     fields[colCompanyAddress],
		NewAddressCode:     fields[colNewAddressCode],
		PrefID:             uint8(prefID),
		Company:            flag == 1,
	}, nil
}
