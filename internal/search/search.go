// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search resolves human-readable facet values (measure, state,
// seasonal adjustment, CPI region and size class) to BLS series IDs. It is
// a pure lookup over static tables: no network access and no state.
package search

import (
	"fmt"
	"sort"
	"strings"
)

// Facets maps a facet name to its candidate values. A facet with multiple
// values is expanded: the lookup covers the Cartesian product of all
// multi-valued facets.
//
// Recognized facets: data (measure name, required), state, region,
// sizeclass, sa ("true"/"false").
type Facets map[string][]string

// Style selects how lookup labels are built.
type Style int

const (
	// Short labels name only the facets that vary across combinations.
	// With nothing varying it behaves like Full.
	Short Style = iota

	// Full labels name every facet of the combination.
	Full
)

var facetNames = map[string]bool{
	"data": true, "state": true, "region": true, "sizeclass": true, "sa": true,
}

// Lookup expands the facet combinations and resolves each to a series ID,
// keyed by a combination label ("region=northeast" or
// "data=ur,state=minnesota").
func Lookup(facets Facets, style Style) (map[string]string, error) {
	combos, err := Expand(facets)
	if err != nil {
		return nil, err
	}
	varying := varyingFacets(facets)
	if style == Full || len(varying) == 0 {
		varying = nil // label with every facet
	}
	out := make(map[string]string, len(combos))
	for _, combo := range combos {
		id, err := resolve(combo)
		if err != nil {
			return nil, err
		}
		out[label(combo, varying)] = id
	}
	return out, nil
}

// IDs resolves the facet combinations and returns only the series IDs, in
// expansion order.
func IDs(facets Facets) ([]string, error) {
	combos, err := Expand(facets)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(combos))
	for _, combo := range combos {
		id, err := resolve(combo)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Expand produces every combination of the facet values: the Cartesian
// product over all facets, deterministic in facet-name order then value
// order.
func Expand(facets Facets) ([]map[string]string, error) {
	if len(facets["data"]) == 0 {
		return nil, fmt.Errorf("facet %q is required", "data")
	}
	names := make([]string, 0, len(facets))
	for name := range facets {
		if !facetNames[name] {
			return nil, fmt.Errorf("unknown facet %q", name)
		}
		if len(facets[name]) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	combos := []map[string]string{{}}
	for _, name := range names {
		var next []map[string]string
		for _, combo := range combos {
			for _, v := range facets[name] {
				c := make(map[string]string, len(combo)+1)
				for k, val := range combo {
					c[k] = val
				}
				c[name] = strings.ToLower(strings.TrimSpace(v))
				next = append(next, c)
			}
		}
		combos = next
	}
	return combos, nil
}

// varyingFacets returns the names of facets with more than one value.
func varyingFacets(facets Facets) map[string]bool {
	varying := make(map[string]bool)
	for name, vals := range facets {
		if len(vals) > 1 {
			varying[name] = true
		}
	}
	return varying
}

// label builds the combination label from the chosen facets, sorted by
// facet name. A nil filter includes every facet.
func label(combo map[string]string, filter map[string]bool) string {
	names := make([]string, 0, len(combo))
	for name := range combo {
		if filter == nil || filter[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + combo[name]
	}
	return strings.Join(parts, ",")
}

// resolve maps one facet combination to its series ID.
func resolve(combo map[string]string) (string, error) {
	data := combo["data"]
	measure, ok := measureAliases[measureKey(data)]
	if !ok {
		return "", fmt.Errorf("unknown data measure %q", data)
	}

	fips, err := stateFIPS(combo["state"])
	if err != nil {
		return "", err
	}
	geo := "us"
	if fips != "00" {
		geo = "state"
	}

	sa := combo["sa"] != "false" // seasonally adjusted unless asked otherwise

	region, hasRegion := combo["region"]
	sizeclass, hasSizeclass := combo["sizeclass"]
	less := ""
	if measure == "cpi" {
		// Regional and size-class CPI series only exist unadjusted.
		if (hasRegion || hasSizeclass) && combo["sa"] == "true" {
			return "", fmt.Errorf("seasonally adjusted data does not exist for regional or size-class CPI series")
		}
		if hasRegion || hasSizeclass {
			sa = false
		}
		if less, err = cpiLess(data); err != nil {
			return "", err
		}
	}
	regionCode, ok := cpiRegions[region]
	if !ok {
		return "", fmt.Errorf("unknown region %q", region)
	}
	sizeCode, ok := cpiSizeClasses[sizeclass]
	if !ok {
		return "", fmt.Errorf("unknown size class %q", sizeclass)
	}

	var seas string
	switch {
	case geo == "state" || measure == "cpi":
		seas = "S"
		if !sa {
			seas = "U"
		}
	default:
		seas = "S1"
		if !sa {
			seas = "U0"
		}
	}

	format, ok := seriesFormats[geo][measure]
	if !ok {
		return "", fmt.Errorf("measure %q is not available for %s series", data, geo)
	}
	return strings.NewReplacer(
		"{seas}", seas,
		"{fips}", fips,
		"{region}", regionCode,
		"{sizeclass}", sizeCode,
		"{less}", less,
	).Replace(format), nil
}

// measureKey strips CPI qualifiers so "cpi-food-energy" resolves through
// the "cpi" templates.
func measureKey(data string) string {
	if strings.HasPrefix(data, "cpi-") {
		return "cpi"
	}
	return data
}

// cpiLess converts a qualified CPI measure name to its item exclusion
// suffix ("cpi-food-energy" -> "L1E"). Bare "cpi" has no suffix.
func cpiLess(data string) (string, error) {
	if data == "cpi" {
		return "", nil
	}
	var codes []string
	for _, part := range strings.Split(strings.TrimPrefix(data, "cpi-"), "-") {
		code, ok := cpiExclusions[part]
		if !ok {
			return "", fmt.Errorf("unknown CPI qualifier %q in %q", part, data)
		}
		codes = append(codes, code)
	}
	sort.Strings(codes)
	joined := strings.Join(codes, "")
	// Medical care has no combined exclusion series, and less-shelter
	// cannot combine with less-energy.
	if (strings.Contains(joined, "5") && len(codes) > 1) || joined == "2E" {
		return "", fmt.Errorf("no CPI series exists for %q", data)
	}
	return "L" + joined, nil
}

// stateFIPS maps a state given as a postal code or full name to its FIPS
// code. An empty state means national ("00").
func stateFIPS(state string) (string, error) {
	if state == "" {
		return "00", nil
	}
	code := strings.ToUpper(state)
	if len(state) > 2 {
		short, ok := stateNames[strings.ToLower(state)]
		if !ok {
			return "", fmt.Errorf("unknown state %q", state)
		}
		code = short
	}
	fips, ok := stateToFIPS[code]
	if !ok {
		return "", fmt.Errorf("unknown state %q", state)
	}
	return fips, nil
}
