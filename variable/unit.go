// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package variable

import "strconv"

// Unit is the physical unit the service reported a series in.
type Unit uint8

const (
	UnitUndefined Unit = iota
	UnitCelsius
	UnitCentimetre
	UnitCubicMetrePerCubicMetre
	UnitCubicMetrePerSecond
	UnitDegreeDirection
	UnitDimensionlessInteger
	UnitDimensionless
	UnitEuropeanAirQualityIndex
	UnitFahrenheit
	UnitFeet
	UnitFraction
	UnitGddCelsius
	UnitGeopotentialMetre
	UnitGrainsPerCubicMetre
	UnitGramPerKilogram
	UnitHectopascal
	UnitHours
	UnitInch
	UnitISO8601
	UnitJoulePerKilogram
	UnitKelvin
	UnitKilopascal
	UnitKilogramPerSquareMetre
	UnitKilometresPerHour
	UnitKnots
	UnitMegajoulePerSquareMetre
	UnitMetrePerSecondNotUnitConverted
	UnitMetrePerSecond
	UnitMetre
	UnitMicrogramsPerCubicMetre
	UnitMilesPerHour
	UnitMillimetre
	UnitPascal
	UnitPerSecond
	UnitPercentage
	UnitSeconds
	UnitUnixTime
	UnitUSAirQualityIndex
	UnitWattPerSquareMetre
	UnitWMOCode
	UnitPartsPerMillion

	numUnits
)

var unitSymbols = [numUnits]string{
	"", "°C", "cm", "m³/m³", "m³/s", "°", "", "", "EAQI", "°F", "ft", "", "GDD °C", "gpm",
	"grains/m³", "g/kg", "hPa", "h", "inch", "iso8601", "J/kg", "K", "kPa", "kg/m²", "km/h",
	"kn", "MJ/m²", "m/s", "m/s", "m", "μg/m³", "mph", "mm", "Pa", "1/s", "%", "s", "unixtime",
	"USAQI", "W/m²", "wmo code", "ppm",
}

// Symbol returns a short display symbol for the unit, or an empty string for
// dimensionless and undefined units.
func (u Unit) Symbol() string {
	if u < numUnits {
		return unitSymbols[u]
	}
	return ""
}

func (u Unit) String() string {
	if u >= numUnits {
		return "unit(" + strconv.Itoa(int(u)) + ")"
	}
	if u == UnitUndefined {
		return "undefined"
	}
	if s := unitSymbols[u]; s != "" {
		return s
	}
	return "dimensionless"
}
