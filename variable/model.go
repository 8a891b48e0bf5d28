// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package variable

import "strconv"

// Model identifies the numerical weather model a location response was computed from.
// Only the codes below have names; other codes are passed through unchanged.
type Model uint8

const (
	ModelUndefined Model = iota
	ModelBestMatch
	ModelGFSSeamless
	ModelGFSGlobal
	ModelGFSHRRR
	ModelMeteoFranceSeamless
	ModelMeteoFranceARPEGEWorld
	ModelMeteoFranceARPEGEEurope
	ModelMeteoFranceAROMEFrance
	ModelMeteoFranceAROMEFranceHD
	ModelJMASeamless
	ModelJMAMSM
	ModelJMAGSM
	ModelMetNoSeamless
	ModelMetNoNordic
	ModelGEMSeamless
	ModelGEMGlobal
	ModelGEMRegional
	ModelGEMHRDPSContinental
	ModelICONSeamless
	ModelICONGlobal
	ModelICONEU
	ModelICOND2
	ModelECMWFIFS04
	ModelECMWFIFS025
	ModelECMWFAIFS025

	numModels
)

var modelNames = [numModels]string{
	"undefined", "best_match", "gfs_seamless", "gfs_global", "gfs_hrrr", "meteofrance_seamless",
	"meteofrance_arpege_world", "meteofrance_arpege_europe", "meteofrance_arome_france",
	"meteofrance_arome_france_hd", "jma_seamless", "jma_msm", "jma_gsm", "metno_seamless",
	"metno_nordic", "gem_seamless", "gem_global", "gem_regional", "gem_hrdps_continental",
	"icon_seamless", "icon_global", "icon_eu", "icon_d2", "ecmwf_ifs04", "ecmwf_ifs025",
	"ecmwf_aifs025",
}

func (m Model) String() string {
	if m < numModels {
		return modelNames[m]
	}
	return "model(" + strconv.Itoa(int(m)) + ")"
}
