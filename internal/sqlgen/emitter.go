package sqlgen

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kimuray/pcs-gen/internal/models"

	"github.com/lib/pq"
)

// Dialect selects how string literals are escaped.
type Dialect string

const (
	// DialectPostgres escapes with pq.QuoteLiteral, which switches to E'' syntax
	// when the value contains a backslash.
	DialectPostgres Dialect = "postgres"
	// DialectStandard only doubles single quotes.
	DialectStandard Dialect = "standard"
)

// ParseDialect validates a dialect name.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case DialectPostgres, DialectStandard:
		return d, nil
	case "":
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("sqlgen: unsupported dialect %q", s)
}

// Column lists of the generated statements, in the order values are written.
var (
	PrefColumns = []string{"id", "name"}
	// CityColumns has no id column: cities carry no surrogate key, and the
	// header lists only the three values each tuple holds.
	CityColumns = []string{"code", "pref_id", "name"}
	// TownColumns names the second value city_code rather than city_id since
	// it holds the city's code string, not a numeric key.
	TownColumns = []string{"id", "city_code", "zip_code", "area_name", "street_name"}
)

const (
	PrefTable = "prefs"
	CityTable = "cities"
	TownTable = "towns"
)

// Emitter writes multi-row INSERT statements.
type Emitter struct {
	w     io.Writer
	quote func(string) string
}

// NewEmitter creates an Emitter writing to w.
func NewEmitter(w io.Writer, dialect Dialect) *Emitter {
	quote := quotePostgres
	if dialect == DialectStandard {
		quote = quoteStandard
	}
	return &Emitter{w: w, quote: quote}
}

// WriteAll writes the prefs, cities and towns statements in that order.
func (e *Emitter) WriteAll(tables models.Tables) error {
	if err := e.WritePrefectures(tables.Prefectures); err != nil {
		return err
	}
	if err := e.WriteCities(tables.Cities); err != nil {
		return err
	}
	return e.WriteTowns(tables.Towns)
}

// WritePrefectures writes the prefs statement: (id, 'name').
func (e *Emitter) WritePrefectures(prefs []models.Prefecture) error {
	rows := make([][]string, len(prefs))
	for i, p := range prefs {
		rows[i] = []string{strconv.FormatUint(uint64(p.ID), 10), e.quote(p.Name)}
	}
	return e.writeInsert(PrefTable, PrefColumns, rows)
}

// WriteCities writes the cities statement: ('code', pref_id, 'name').
func (e *Emitter) WriteCities(cities []models.City) error {
	rows := make([][]string, len(cities))
	for i, c := range cities {
		rows[i] = []string{e.quote(c.Code), strconv.FormatUint(uint64(c.PrefID), 10), e.quote(c.Name)}
	}
	return e.writeInsert(CityTable, CityColumns, rows)
}

// WriteTowns writes the towns statement:
// (id, 'city_code', 'zip_code', 'area_name', 'street_name').
func (e *Emitter) WriteTowns(towns []models.Town) error {
	rows := make([][]string, len(towns))
	for i, t := range towns {
		rows[i] = []string{
			strconv.FormatUint(uint64(t.ID), 10),
			e.quote(t.CityCode),
			e.quote(t.ZipCode),
			e.quote(t.AreaName),
			e.quote(t.StreetName),
		}
	}
	return e.writeInsert(TownTable, TownColumns, rows)
}

// writeInsert renders one statement. An empty table produces no output since
// an INSERT without values is not valid SQL.
func (e *Emitter) writeInsert(table string, columns []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	bw := bufio.NewWriter(e.w)
	fmt.Fprintf(bw, "INSERT INTO %s(%s) VALUES\n", table, strings.Join(columns, ", "))
	for i, row := range rows {
		bw.WriteString("(")
		bw.WriteString(strings.Join(row, ", "))
		bw.WriteString(")")
		if i == len(rows)-1 {
			bw.WriteString(";\n\n")
		} else {
			bw.WriteString(",\n")
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("sqlgen: failed to write %s: %w", table, err)
	}
	return nil
}

func quotePostgres(s string) string {
	return strings.TrimLeft(pq.QuoteLiteral(s), " ")
}

func quoteStandard(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
