package vin

import (
	"math"
	"strings"
)

// foldIndex folds s into an index in [0, n) with a 32-bit signed polynomial
// hash (h = h*31 + c, wrapping on every step). The absolute value is taken
// in 64 bits so math.MinInt32 stays in range. n must be positive.
func foldIndex(s string, n int) int {
	var h int32
	for i := 0; i < len(s); i++ {
		h = h*31 + int32(s[i])
	}
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return int(abs % int64(n))
}

// byteSum adds up the character codes of s.
func byteSum(s string) int {
	sum := 0
	for i := 0; i < len(s); i++ {
		sum += int(s[i])
	}
	return sum
}

func productionYear(c byte) string {
	if y, ok := modelYears[c]; ok {
		return y
	}
	return defaultYear
}

func transmission(c byte) Transmission {
	if t, ok := transmissions[c]; ok {
		return t
	}
	if c%2 == 0 {
		return TransmissionAutomatic
	}
	return TransmissionManual
}

// drive resolves VIN[5]. Ambiguous codes go to 4x4 for AWD-leaning makes,
// rear for rear-leaning makes, and the code's own bias otherwise.
func drive(c byte, t DriveTendency) Drive {
	code, ok := driveCodes[c]
	if !ok {
		return DriveFront
	}
	switch code {
	case codeFront:
		return DriveFront
	case codeRear:
		return DriveRear
	case code4x4:
		return Drive4x4
	}

	switch t {
	case TendencyAWD:
		return Drive4x4
	case TendencyRear:
		return DriveRear
	}
	switch code {
	case code4x4Biased:
		return Drive4x4
	case codeRearBiased:
		return DriveRear
	default:
		return DriveFront
	}
}

func color(c byte) string {
	if name, ok := colors[c]; ok {
		return name
	}
	return defaultColor
}

// condition is a parity heuristic over the whole VIN, not a real assessment.
func condition(v string) Condition {
	if byteSum(v)%2 == 0 {
		return ConditionUsed
	}
	return ConditionNew
}

func accidentStatus(last byte) AccidentStatus {
	if last%5 == 0 {
		return PostAccident
	}
	return AccidentFree
}

// annualMileage is the pseudo-average yearly distance, in [10000, 19999] km,
// and the raw character sum it was folded from.
func annualMileage(v string) (avg, sum int) {
	sum = byteSum(v[10:15])
	return 10000 + sum%10000, sum
}

// mileage estimates the odometer reading for a vehicle built in year.
// Vehicles younger than a year get a near-zero reading; vehicles older than
// ten years are assumed to have been driven 20% less.
func mileage(v string, year, currentYear int) int {
	age := currentYear - year
	avg, sum := annualMileage(v)

	km := float64(age * avg)
	if age < 1 {
		km = float64(sum % 10000)
	}
	if age > 10 {
		km *= 0.8
	}
	return int(math.Round(km))
}

// plate synthesizes a registration number: region prefix + 5 characters.
func plate(v string) string {
	var b strings.Builder
	b.Grow(7)
	b.WriteString(plateRegions[byteSum(v[0:4])%len(plateRegions)])
	for i := 12; i < Length; i++ {
		b.WriteByte(plateAlphabet[int(v[i])%len(plateAlphabet)])
	}
	return b.String()
}

// Country resolves the country of origin for a WMI. A full-WMI override
// wins over the first-character region table.
func (c *Catalog) Country(wmi string) string {
	if country, ok := c.CountryOverride(wmi); ok {
		return country
	}
	if len(wmi) > 0 {
		if country, ok := regionCountries[wmi[0]]; ok {
			return country
		}
	}
	return defaultCountry
}
