// Package gpv parses JMA GPV (grid point value) files, which are streams
// of GRIB2 messages, and provides sample observers that print what they
// contain.
package gpv

import "strings"

// Suffix ends the name of every GRIB2 GPV file.
const Suffix = "grib2.bin"

// FileType identifies a GPV product by its file name.
type FileType int

// File types.
const (
	Unknown FileType = iota
	GSMGlobal
	GSMJapanSurface
	GSMJapanPressure
	MSMJapanSurface
	MSMJapanPressure
	EPSWGlobal
	EPSWJapan
	GWMGlobal
	CWMJapan
	EPS1Global
	EPS1MGPVGlobal
)

var fileTypes = [...]struct {
	name     string
	fragment string
}{
	Unknown:          {"UNKNOWN", ""},
	GSMGlobal:        {"GSM_GLOBAL", "_gsm_gpv_rgl_"},
	GSMJapanSurface:  {"GSM_JP_SURF", "_gsm_gpv_rjp_lsurf_"},
	GSMJapanPressure: {"GSM_JP_PALL", "_gsm_gpv_rjp_l-pall_"},
	MSMJapanSurface:  {"MSM_JP_SURF", "_msm_gpv_rjp_lsurf_"},
	MSMJapanPressure: {"MSM_JP_PALL", "_msm_gpv_rjp_l-pall_"},
	EPSWGlobal:       {"EPSW_GLOBAL", "_epsw_gpv_rgl_"},
	EPSWJapan:        {"EPSW_JP", "_epsw_gpv_rjp_"},
	GWMGlobal:        {"GWM_GLOBAL", "_gwm_gpv_rgl_"},
	CWMJapan:         {"CWM_JP", "_cwm_gpv_rjp_"},
	EPS1Global:       {"EPS1_GLOBAL", "_eps1_gpv_rgl_"},
	EPS1MGPVGlobal:   {"EPS1_MGPV_GLOBAL", "_eps1_mgpv_rgl_"},
}

func (t FileType) String() string {
	if t < 0 || int(t) >= len(fileTypes) {
		return fileTypes[Unknown].name
	}
	return fileTypes[t].name
}

// Match reports whether filename names a file of type t. The comparison
// ignores case and requires the GRIB2 suffix. Unknown matches nothing.
func (t FileType) Match(filename string) bool {
	return t.match(strings.ToLower(filename))
}

func (t FileType) match(lower string) bool {
	if t <= Unknown || int(t) >= len(fileTypes) {
		return false
	}
	return strings.HasSuffix(lower, Suffix) && strings.Contains(lower, fileTypes[t].fragment)
}

// TypeOf classifies a file name.
func TypeOf(filename string) FileType {
	lower := strings.ToLower(filename)
	for t := range fileTypes {
		if FileType(t).match(lower) {
			return FileType(t)
		}
	}
	return Unknown
}
