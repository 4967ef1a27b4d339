// Package normalize splits flat postal code records into prefectures, cities
// and towns.
//
// Each collection keeps the first occurrence of an entity and drops later
// structurally equal ones. Towns receive a dense surrogate id at the moment
// they are first accepted, so duplicates never consume an id.
//
// A city is identified by its code, name and prefecture together. Rows that
// reuse a code with a different name are kept as separate cities and
// reported through Conflicts.
package normalize
