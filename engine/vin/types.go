// Package vin decodes 17-character Vehicle Identification Numbers into a
// deterministic vehicle profile. Lookups run against an immutable Catalog
// built once at startup; every derivation is a pure function of the VIN, so
// the same input always yields the same Vehicle.
package vin

// Length is the only accepted VIN length.
const Length = 17

// Section boundaries within a VIN.
const (
	wmiEnd = 3 // [0,3) World Manufacturer Identifier
	vdsEnd = 9 // [3,9) Vehicle Descriptor Section
	// [9,17) Vehicle Identifier Section
)

// FuelType is the fuel an engine runs on.
type FuelType string

const (
	FuelGasoline     FuelType = "Gasoline"
	FuelDiesel       FuelType = "Diesel"
	FuelHybrid       FuelType = "Hybrid"
	FuelPluginHybrid FuelType = "Plug-in hybrid"
	FuelElectric     FuelType = "Electric"
	FuelLPG          FuelType = "LPG"
)

// Transmission is the gearbox type.
type Transmission string

const (
	TransmissionAutomatic  Transmission = "Automatic"
	TransmissionDualClutch Transmission = "Automatic dual-clutch"
	TransmissionManual     Transmission = "Manual"
	TransmissionSemiAuto   Transmission = "Semi-automatic"
)

// Drive is the resolved drive type.
type Drive string

const (
	DriveFront Drive = "front"
	DriveRear  Drive = "rear"
	Drive4x4   Drive = "4x4"
)

// DriveTendency classifies a manufacturer's leaning when a drive code is ambiguous.
type DriveTendency int

const (
	TendencyNeutral DriveTendency = iota
	TendencyAWD
	TendencyRear
)

func (t DriveTendency) String() string {
	switch t {
	case TendencyNeutral:
		return "neutral"
	case TendencyAWD:
		return "awd"
	case TendencyRear:
		return "rear"
	default:
		return "unknown"
	}
}

// Condition is the crude new/used classification.
type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

// AccidentStatus reports whether the vehicle is flagged as post-accident.
type AccidentStatus string

const (
	AccidentFree AccidentStatus = "accident-free"
	PostAccident AccidentStatus = "post-accident"
)

// NoDamageRecorded is the fixed value of Vehicle.DamageStatus.
const NoDamageRecorded = "no damage recorded"

// Manufacturer is a registry entry resolved from a WMI.
type Manufacturer struct {
	Name     string        `json:"name"`
	Tendency DriveTendency `json:"-"`
}

// EngineProfile describes an engine variant.
type EngineProfile struct {
	Version        string   `json:"version"`
	Fuel           FuelType `json:"fuel_type"`
	DisplacementCC int      `json:"displacement_cc"`
	PowerHP        int      `json:"power_hp"`
}

var defaultEngine = EngineProfile{Version: "2.0", Fuel: FuelGasoline, DisplacementCC: 2000, PowerHP: 150}

// DefaultEngine returns the profile used when (manufacturer, engine code)
// has no entry.
func DefaultEngine() EngineProfile { return defaultEngine }

// Vehicle is a decoded vehicle profile. Generation and DamageStatus are
// reserved and never carry decoded data.
type Vehicle struct {
	VIN               string         `json:"vin"`
	Brand             string         `json:"brand"`
	Model             string         `json:"model"`
	Generation        string         `json:"generation"`
	Version           string         `json:"version"`
	ProductionYear    string         `json:"production_year"`
	FuelType          FuelType       `json:"fuel_type"`
	EngineSizeCC      int            `json:"engine_size_cc"`
	PowerHP           int            `json:"power_hp"`
	Transmission      Transmission   `json:"transmission"`
	Drive             Drive          `json:"drive"`
	MileageKM         int            `json:"mileage_km"`
	Color             string         `json:"color"`
	Condition         Condition      `json:"condition"`
	AccidentStatus    AccidentStatus `json:"accident_status"`
	DamageStatus      string         `json:"damage_status"`
	CountryOfOrigin   string         `json:"country_of_origin"`
	RegistrationPlate string         `json:"registration_plate"`
}
