// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

// Series ID templates per geography and measure. Placeholders are filled by
// resolve: {seas} seasonal-adjustment code, {fips} state FIPS code,
// {region} CPI region code, {sizeclass} CPI city-size code, {less} CPI
// exclusion suffix.
var seriesFormats = map[string]map[string]string{
	"us": {
		"ur":  "LN{seas}4000000",
		"emp": "LN{seas}2000000",
		"lf":  "LN{seas}1000000",
		"cpi": "CU{seas}R{region}{sizeclass}SA0{less}",
	},
	"state": {
		"ur":  "LA{seas}ST{fips}0000000000003",
		"emp": "LA{seas}ST{fips}0000000000005",
		"lf":  "LA{seas}ST{fips}0000000000006",
	},
}

// measureAliases maps accepted data names to template keys. CPI variants
// ("cpi-food-energy") resolve through the "cpi" templates.
var measureAliases = map[string]string{
	"ur":                "ur",
	"unemployment":      "ur",
	"unemployment-rate": "ur",
	"emp":               "emp",
	"employment":        "emp",
	"lf":                "lf",
	"labor-force":       "lf",
	"cpi":               "cpi",
}

// cpiRegions maps CPI census-region names to area code prefixes.
var cpiRegions = map[string]string{
	"":          "00",
	"northeast": "01",
	"midwest":   "02",
	"south":     "03",
	"west":      "04",
}

// cpiSizeClasses maps city-size classes to area code suffixes.
var cpiSizeClasses = map[string]string{
	"":  "00",
	"a": "A0",
	"b": "B0",
	"c": "C0",
}

// cpiExclusions maps CPI item qualifiers ("cpi-food-energy") to the digits
// of the SA0L item suffix.
var cpiExclusions = map[string]string{
	"food":    "1",
	"shelter": "2",
	"medical": "5",
	"energy":  "E",
}

// stateToFIPS maps two-letter postal codes to state FIPS codes.
var stateToFIPS = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06",
	"CO": "08", "CT": "09", "DE": "10", "DC": "11", "FL": "12",
	"GA": "13", "HI": "15", "ID": "16", "IL": "17", "IN": "18",
	"IA": "19", "KS": "20", "KY": "21", "LA": "22", "ME": "23",
	"MD": "24", "MA": "25", "MI": "26", "MN": "27", "MS": "28",
	"MO": "29", "MT": "30", "NE": "31", "NV": "32", "NH": "33",
	"NJ": "34", "NM": "35", "NY": "36", "NC": "37", "ND": "38",
	"OH": "39", "OK": "40", "OR": "41", "PA": "42", "RI": "44",
	"SC": "45", "SD": "46", "TN": "47", "TX": "48", "UT": "49",
	"VT": "50", "VA": "51", "WA": "53", "WV": "54", "WI": "55",
	"WY": "56", "PR": "72",
}

// stateNames maps lowercased full state names to postal codes.
var stateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT",
	"delaware": "DE", "district of columbia": "DC", "florida": "FL",
	"georgia": "GA", "hawaii": "HI", "idaho": "ID", "illinois": "IL",
	"indiana": "IN", "iowa": "IA", "kansas": "KS", "kentucky": "KY",
	"louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN",
	"mississippi": "MS", "missouri": "MO", "montana": "MT",
	"nebraska": "NE", "nevada": "NV", "new hampshire": "NH",
	"new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH",
	"oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA",
	"rhode island": "RI", "south carolina": "SC", "south dakota": "SD",
	"tennessee": "TN", "texas": "TX", "utah": "UT", "vermont": "VT",
	"virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY", "puerto rico": "PR",
}
