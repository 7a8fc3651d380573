package vin

const (
	defaultYear    = "2020"
	defaultColor   = "silver"
	defaultCountry = "Germany"

	// plateAlphabet is A-Z without I and O, then 0-9.
	plateAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ0123456789"
)

// plateRegions are the two-letter registration district prefixes.
var plateRegions = [15]string{
	"WA", "KR", "PO", "GD", "DW", "LU", "ZS", "BI", "OP", "RZ", "TK", "NO", "SK", "EL", "CB",
}

// modelYears maps VIN[9] to a production year.
var modelYears = map[byte]string{
	'A': "2010", 'B': "2011", 'C': "2012", 'D': "2013", 'E': "2014",
	'F': "2015", 'G': "2016", 'H': "2017", 'J': "2018", 'K': "2019",
	'L': "2020", 'M': "2021", 'N': "2022", 'P': "2023", 'R': "2024",
	'1': "2001", '2': "2002", '3': "2003", '4': "2004", '5': "2005",
	'6': "2006", '7': "2007", '8': "2008", '9': "2009", '0': "2000",
}

// transmissions is the primary VIN[4] gearbox table.
var transmissions = map[byte]Transmission{
	'A': TransmissionAutomatic, 'C': TransmissionAutomatic, 'T': TransmissionAutomatic, 'U': TransmissionAutomatic,
	'D': TransmissionDualClutch, 'G': TransmissionDualClutch, 'K': TransmissionDualClutch,
	'M': TransmissionManual, 'N': TransmissionManual, 'H': TransmissionManual, 'B': TransmissionManual,
	'S': TransmissionSemiAuto, 'P': TransmissionSemiAuto,
}

// driveCode is the raw category a VIN[5] character maps to.
type driveCode int

const (
	codeFront driveCode = iota + 1
	codeRear
	code4x4
	codeFrontBiased
	code4x4Biased
	codeRearBiased
)

var driveCodes = map[byte]driveCode{
	'A': codeFront, 'F': codeFront, 'K': codeFront, '1': codeFront, '2': codeFront,
	'R': codeRear, 'H': codeRear, '3': codeRear,
	'X': code4x4, 'Q': code4x4, 'W': code4x4, '4': code4x4,
	'B': codeFrontBiased, 'C': codeFrontBiased, 'D': codeFrontBiased, '5': codeFrontBiased,
	'S': code4x4Biased, 'T': code4x4Biased, '6': code4x4Biased,
	'E': codeRearBiased, 'G': codeRearBiased, '7': codeRearBiased,
}

// colors maps VIN[6] to a paint color.
var colors = map[byte]string{
	'A': "black", 'B': "white", 'C': "silver metallic", 'D': "graphite metallic",
	'E': "red", 'F': "burgundy metallic", 'G': "green", 'H': "dark green metallic",
	'I': "ivory", 'J': "blue", 'K': "navy blue metallic", 'L': "yellow",
	'M': "gold metallic", 'N': "orange", 'O': "olive", 'P': "copper metallic",
	'Q': "turquoise", 'R': "brown", 'S': "bronze metallic", 'T': "beige",
	'U': "champagne metallic", 'V': "violet", 'W': "purple metallic", 'X': "grey",
	'Y': "anthracite metallic", 'Z': "pearl white",
	'0': "black metallic", '1': "white metallic", '2': "silver", '3': "blue metallic",
	'4': "red metallic", '5': "green metallic", '6': "grey metallic", '7': "brown metallic",
	'8': "beige metallic", '9': "sky blue",
}

// regionCountries maps the first WMI character to a country.
var regionCountries = map[byte]string{
	'1': "United States", '4': "United States", '5': "United States",
	'2': "Canada", '3': "Mexico", '6': "Australia", '7': "New Zealand",
	'8': "Argentina", '9': "Brazil",
	'A': "South Africa", 'D': "Egypt", 'E': "Ethiopia", 'F': "Kenya", 'G': "Morocco",
	'H': "China", 'J': "Japan", 'K': "South Korea", 'L': "China", 'M': "India",
	'N': "Turkey", 'P': "Philippines", 'R': "Taiwan", 'S': "United Kingdom",
	'T': "Switzerland", 'U': "Romania", 'V': "France", 'W': "Germany",
	'X': "Russia", 'Y': "Sweden", 'Z': "Italy",
}

// countryOverrides force the manufacturer's true country for specific WMIs.
var countryOverrides = map[string]string{
	"WVW": "Germany", "WAU": "Germany", "WBA": "Germany", "WDB": "Germany",
	"WDD": "Germany", "WP0": "Germany", "W0L": "Germany", "XP7": "Germany",
	"VF1": "France", "VF3": "France", "VF7": "France",
	"VSS": "Spain",
	"TMB": "Czech Republic", "TMA": "Czech Republic",
	"TRU": "Hungary",
	"U5Y": "Slovakia",
	"ZFA": "Italy", "ZAR": "Italy",
	"YV1": "Sweden", "YS3": "Sweden", "LYV": "Sweden", "LPS": "Sweden",
	"JHM": "Japan", "JTD": "Japan", "JF1": "Japan",
	"KMH": "South Korea", "KNA": "South Korea",
	"SAL": "United Kingdom", "SAJ": "United Kingdom",
}
