package tubegeom

import (
	"strconv"

	"github.com/npillmayer/schuko"
)

// Configuration keys understood by SettingsFrom.
const (
	KeyTubularSegments    = "tube.tubularsegments"
	KeyRadialSegments     = "tube.radialsegments"
	KeyMaxRadius          = "tube.maxradius"
	KeyArcLengthDivisions = "curve.arclengthdivisions"
)

// Settings collects the tunable defaults for building tubes.
type Settings struct {
	TubularSegments    int     // longitudinal divisions
	RadialSegments     int     // divisions around the circumference
	MaxRadius          float64 // radius clamp; negative disables clamping
	ArcLengthDivisions int     // samples for arc-length tables of paths
}

// DefaultSettings returns the settings used when no configuration is present.
func DefaultSettings() Settings {
	return Settings{
		TubularSegments:    10,
		RadialSegments:     8,
		MaxRadius:          1,
		ArcLengthDivisions: 200,
	}
}

// SettingsFrom reads settings from an application configuration. Keys which
// are not set, or which hold unusable values, keep their defaults. conf may
// be nil.
func SettingsFrom(conf schuko.Configuration) Settings {
	s := DefaultSettings()
	if conf == nil {
		return s
	}
	s.TubularSegments = positiveInt(conf, KeyTubularSegments, s.TubularSegments)
	s.RadialSegments = positiveInt(conf, KeyRadialSegments, s.RadialSegments)
	s.ArcLengthDivisions = positiveInt(conf, KeyArcLengthDivisions, s.ArcLengthDivisions)
	if conf.IsSet(KeyMaxRadius) {
		r, err := strconv.ParseFloat(conf.GetString(KeyMaxRadius), 64)
		if err != nil || r == 0 || !IsFinite(r) {
			tracer().Errorf("ignoring configuration %s = %q", KeyMaxRadius, conf.GetString(KeyMaxRadius))
		} else {
			s.MaxRadius = r
		}
	}
	tracer().Debugf("settings = %+v", s)
	return s
}

func positiveInt(conf schuko.Configuration, key string, deflt int) int {
	if !conf.IsSet(key) {
		return deflt
	}
	if n := conf.GetInt(key); n > 0 {
		return n
	}
	tracer().Errorf("ignoring configuration %s = %q", key, conf.GetString(key))
	return deflt
}
