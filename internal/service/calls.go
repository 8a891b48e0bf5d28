// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"github.com/wneessen/meteobuf/client"
)

// Calls builds the API calls for the configured locations, at most
// LocationsPerRequest coordinates per call.
func (s *Service) Calls() []client.Call {
	conf := s.config
	lats, lons, elevs := conf.Locations.Latitudes, conf.Locations.Longitudes, conf.Locations.Elevations

	size := conf.API.LocationsPerRequest
	if size <= 0 {
		size = len(lats)
	}
	var calls []client.Call
	for start := 0; start < len(lats); start += size {
		end := min(start+size, len(lats))
		params := s.baseParams()
		params[client.ParamLatitude] = lats[start:end]
		params[client.ParamLongitude] = lons[start:end]
		switch {
		case len(elevs) == 1:
			params[client.ParamElevation] = elevs[0]
		case len(elevs) > 1:
			params[client.ParamElevation] = elevs[start:end]
		}
		calls = append(calls, client.Call{URL: conf.API.URL, Params: params})
	}
	return calls
}

func (s *Service) baseParams() client.Params {
	vars := s.config.Variables
	params := client.Params{}
	for key, names := range map[string][]string{
		"current":     vars.Current,
		"minutely_15": vars.Minutely15,
		"hourly":      vars.Hourly,
		"daily":       vars.Daily,
		"models":      vars.Models,
	} {
		if len(names) > 0 {
			params[key] = names
		}
	}
	if vars.Timezone != "" {
		params["timezone"] = vars.Timezone
	}
	if vars.ForecastDays > 0 {
		params["forecast_days"] = vars.ForecastDays
	}
	if vars.PastDays > 0 {
		params["past_days"] = vars.PastDays
	}
	return params
}
