package directive

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Decodes raw into dest. Returns false if raw is blank or can't be decoded.
func decode(raw string, dest any) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}

	if err := json.UnmarshalFromString(raw, dest); err != nil {
		directiveLogger.Debug("Failed to decode directive, it will be ignored: "+err.Error(), nil)
		return false
	}

	return true
}

// Parses JSON encoded filter.
// Malformed filter is treated as no filter at all.
func ParseFilter(raw string) Filter {
	var f Filter
	if !decode(raw, &f) || f == nil {
		return Filter{}
	}
	return f
}

// Parses JSON encoded list of sort keys.
// Malformed sort is treated as no sort at all.
func ParseSort(raw string) Sort {
	var s Sort
	if !decode(raw, &s) || s == nil {
		return Sort{}
	}
	return s
}

// Parses JSON encoded range.
// Malformed range is treated as empty range (defaults will be used).
func ParseRange(raw string) Range {
	var r Range
	if !decode(raw, &r) || r == nil {
		return Range{}
	}
	return r
}

// Builds query from the raw values of "filter", "sort" and "range" query parameters.
func FromRaw(filter string, sort string, rng string) *Query {
	return &Query{
		Filter: ParseFilter(filter),
		Sort:   ParseSort(sort),
		Range:  ParseRange(rng),
	}
}
