// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package variable is the registry of weather variable, aggregation, unit and model codes
// used by the Open-Meteo binary response format.
//
// The numeric values are part of the wire contract. They follow the declaration order of the
// upstream schema and must never be reordered.
package variable

import "strconv"

// Variable identifies a weather variable without any altitude, depth or pressure level.
type Variable uint8

const (
	Undefined Variable = iota
	ApparentTemperature
	Cape
	CloudCover
	CloudCoverHigh
	CloudCoverLow
	CloudCoverMid
	DaylightDuration
	DewPoint
	DiffuseRadiation
	DiffuseRadiationInstant
	DirectNormalIrradiance
	DirectNormalIrradianceInstant
	DirectRadiation
	DirectRadiationInstant
	Et0FaoEvapotranspiration
	Evapotranspiration
	FreezingLevelHeight
	GrowingDegreeDays
	IsDay
	LatentHeatFlux
	LeafWetnessProbability
	LiftedIndex
	LightningPotential
	Precipitation
	PrecipitationHours
	PrecipitationProbability
	PressureMSL
	Rain
	RelativeHumidity
	Runoff
	SensibleHeatFlux
	ShortwaveRadiation
	ShortwaveRadiationInstant
	Showers
	SnowDepth
	SnowHeight
	Snowfall
	SnowfallHeight
	SnowfallWaterEquivalent
	Sunrise
	Sunset
	SoilMoisture
	SoilMoistureIndex
	SoilTemperature
	SurfacePressure
	SurfaceTemperature
	Temperature
	TerrestrialRadiation
	TerrestrialRadiationInstant
	TotalColumnIntegratedWaterVapour
	Updraft
	UVIndex
	UVIndexClearSky
	VapourPressureDeficit
	Visibility
	WeatherCode
	WindDirection
	WindGusts
	WindSpeed
	VerticalVelocity
	GeopotentialHeight
	WetBulbTemperature
	RiverDischarge
	WaveHeight
	WavePeriod
	WaveDirection
	WindWaveHeight
	WindWavePeriod
	WindWavePeakPeriod
	WindWaveDirection
	SwellWaveHeight
	SwellWavePeriod
	SwellWavePeakPeriod
	SwellWaveDirection
	PM10
	PM2p5
	Dust
	AerosolOpticalDepth
	CarbonMonoxide
	NitrogenDioxide
	Ammonia
	Ozone
	SulphurDioxide
	AlderPollen
	BirchPollen
	GrassPollen
	MugwortPollen
	OlivePollen
	RagweedPollen
	EuropeanAQI
	EuropeanAQIPM2p5
	EuropeanAQIPM10
	EuropeanAQINitrogenDioxide
	EuropeanAQIOzone
	EuropeanAQISulphurDioxide
	USAQI
	USAQIPM2p5
	USAQIPM10
	USAQINitrogenDioxide
	USAQIOzone
	USAQISulphurDioxide
	USAQICarbonMonoxide
	SunshineDuration
	ConvectiveInhibition
	ShortwaveRadiationClearSky
	GlobalTiltedIrradiance
	GlobalTiltedIrradianceInstant
	OceanCurrentVelocity
	OceanCurrentDirection
	CloudBase
	CloudTop
	MassDensity
	BoundaryLayerHeight
	SnowfallProbability
	SnowDepthWaterEquivalent
	PrecipitationType
	SeaSurfaceTemperature
	SeaLevelHeightMSL
	InvertBarometerHeight

	numVariables
)

var variableNames = [numVariables]string{
	"undefined", "apparent_temperature", "cape", "cloud_cover", "cloud_cover_high",
	"cloud_cover_low", "cloud_cover_mid", "daylight_duration", "dew_point", "diffuse_radiation",
	"diffuse_radiation_instant", "direct_normal_irradiance", "direct_normal_irradiance_instant",
	"direct_radiation", "direct_radiation_instant", "et0_fao_evapotranspiration",
	"evapotranspiration", "freezing_level_height", "growing_degree_days", "is_day",
	"latent_heat_flux", "leaf_wetness_probability", "lifted_index", "lightning_potential",
	"precipitation", "precipitation_hours", "precipitation_probability", "pressure_msl", "rain",
	"relative_humidity", "runoff", "sensible_heat_flux", "shortwave_radiation",
	"shortwave_radiation_instant", "showers", "snow_depth", "snow_height", "snowfall",
	"snowfall_height", "snowfall_water_equivalent", "sunrise", "sunset", "soil_moisture",
	"soil_moisture_index", "soil_temperature", "surface_pressure", "surface_temperature",
	"temperature", "terrestrial_radiation", "terrestrial_radiation_instant",
	"total_column_integrated_water_vapour", "updraft", "uv_index", "uv_index_clear_sky",
	"vapour_pressure_deficit", "visibility", "weather_code", "wind_direction", "wind_gusts",
	"wind_speed", "vertical_velocity", "geopotential_height", "wet_bulb_temperature",
	"river_discharge", "wave_height", "wave_period", "wave_direction", "wind_wave_height",
	"wind_wave_period", "wind_wave_peak_period", "wind_wave_direction", "swell_wave_height",
	"swell_wave_period", "swell_wave_peak_period", "swell_wave_direction", "pm10", "pm2_5",
	"dust", "aerosol_optical_depth", "carbon_monoxide", "nitrogen_dioxide", "ammonia", "ozone",
	"sulphur_dioxide", "alder_pollen", "birch_pollen", "grass_pollen", "mugwort_pollen",
	"olive_pollen", "ragweed_pollen", "european_aqi", "european_aqi_pm2_5", "european_aqi_pm10",
	"european_aqi_nitrogen_dioxide", "european_aqi_ozone", "european_aqi_sulphur_dioxide",
	"us_aqi", "us_aqi_pm2_5", "us_aqi_pm10", "us_aqi_nitrogen_dioxide", "us_aqi_ozone",
	"us_aqi_sulphur_dioxide", "us_aqi_carbon_monoxide", "sunshine_duration",
	"convective_inhibition", "shortwave_radiation_clear_sky", "global_tilted_irradiance",
	"global_tilted_irradiance_instant", "ocean_current_velocity", "ocean_current_direction",
	"cloud_base", "cloud_top", "mass_density", "boundary_layer_height", "snowfall_probability",
	"snow_depth_water_equivalent", "precipitation_type", "sea_surface_temperature",
	"sea_level_height_msl", "invert_barometer_height",
}

var variablesByName = func() map[string]Variable {
	m := make(map[string]Variable, numVariables)
	for i, name := range variableNames {
		m[name] = Variable(i)
	}
	return m
}()

// String returns the Open-Meteo base name of the variable, e.g. "wind_speed".
func (v Variable) String() string {
	if v < numVariables {
		return variableNames[v]
	}
	return "variable(" + strconv.Itoa(int(v)) + ")"
}

// Known reports whether v is part of the registry.
func (v Variable) Known() bool {
	return v > Undefined && v < numVariables
}

// Lookup returns the variable for a base name such as "temperature".
func Lookup(name string) (Variable, bool) {
	v, ok := variablesByName[name]
	if !ok || v == Undefined {
		return Undefined, false
	}
	return v, true
}
