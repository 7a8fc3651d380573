package vin

import (
	"context"
	"strconv"
	"time"

	"github.com/WessleyAI/wessley-vin/pkg/fn"
)

// Decoder turns VINs into Vehicles using a shared Catalog.
type Decoder struct {
	catalog *Catalog
	now     func() time.Time
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithClock sets the time source used for the current year in mileage estimates.
func WithClock(now func() time.Time) Option {
	return func(d *Decoder) { d.now = now }
}

// WithYear pins the current year used for mileage estimates.
func WithYear(year int) Option {
	return WithClock(func() time.Time {
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	})
}

// NewDecoder creates a Decoder. A nil catalog uses Default().
func NewDecoder(c *Catalog, opts ...Option) *Decoder {
	if c == nil {
		c = Default()
	}
	d := &Decoder{catalog: c, now: time.Now}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Catalog returns the catalog the decoder resolves against.
func (d *Decoder) Catalog() *Catalog { return d.catalog }

// Decode validates raw and derives the full vehicle profile. It fails only
// with ErrInvalidLength or ErrUnknownManufacturer; no partial Vehicle is
// ever returned.
func (d *Decoder) Decode(raw string) (Vehicle, error) {
	if len(raw) != Length {
		return Vehicle{}, NewDecodeError("vin", raw, ErrInvalidLength)
	}

	wmi := raw[:wmiEnd]
	m, ok := d.catalog.Manufacturer(wmi)
	if !ok {
		return Vehicle{}, NewDecodeError("wmi", wmi, ErrUnknownManufacturer)
	}
	models := d.catalog.models[m.Name]
	if len(models) == 0 {
		// Registered but uncatalogued manufacturers are reported the same way.
		return Vehicle{}, NewDecodeError("wmi", wmi, ErrUnknownManufacturer)
	}

	vds := raw[wmiEnd:vdsEnd]
	year := productionYear(raw[9])
	yearNum, _ := strconv.Atoi(year)
	engine := d.catalog.Engine(m.Name, vds[0:2])

	return Vehicle{
		VIN:               raw,
		Brand:             m.Name,
		Model:             models[foldIndex(raw[9:13], len(models))],
		Version:           engine.Version,
		ProductionYear:    year,
		FuelType:          engine.Fuel,
		EngineSizeCC:      engine.DisplacementCC,
		PowerHP:           engine.PowerHP,
		Transmission:      transmission(vds[1]),
		Drive:             drive(vds[2], m.Tendency),
		MileageKM:         mileage(raw, yearNum, d.now().Year()),
		Color:             color(vds[3]),
		Condition:         condition(raw),
		AccidentStatus:    accidentStatus(raw[Length-1]),
		DamageStatus:      NoDamageRecorded,
		CountryOfOrigin:   d.catalog.Country(wmi),
		RegistrationPlate: plate(raw),
	}, nil
}

// Result is Decode wrapped in an fn.Result.
func (d *Decoder) Result(raw string) fn.Result[Vehicle] {
	return fn.FromPair(d.Decode(raw))
}

// Stage exposes Decode as a pipeline stage.
func (d *Decoder) Stage() fn.Stage[string, Vehicle] {
	return func(_ context.Context, raw string) fn.Result[Vehicle] {
		return d.Result(raw)
	}
}

// DecodeAll decodes vins concurrently with at most workers goroutines,
// returning results in input order. workers <= 0 means one per VIN.
func (d *Decoder) DecodeAll(vins []string, workers int) []fn.Result[Vehicle] {
	return fn.ParMapResult(vins, workers, d.Result)
}
