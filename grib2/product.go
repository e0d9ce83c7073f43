package grib2

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/techlier/wgpv/internal/codes"
)

// scaled returns value * 10^-factor.
func scaled(value, factor int) float64 {
	if factor > 0 {
		return float64(value) / math.Pow10(factor)
	}
	return float64(value) * math.Pow10(-factor)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SurfaceDescription describes a fixed surface, e.g. "850 hPa",
// "2 m above ground" or "mean sea level".
func SurfaceDescription(s Surface) string {
	if s.ScaledValue < 0 {
		return s.Type.Description()
	}
	if s.Type.Is(codes.SurfaceIsobaric) {
		if s.ScaleFactor == -2 {
			return strconv.Itoa(s.ScaledValue) + " hPa"
		}
		return formatFloat(s.Value()) + " Pa"
	}

	parts := []string{formatFloat(s.Value())}
	for _, p := range []string{s.Type.Unit(), s.Type.Description()} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// ForecastLabel returns "anl" for an analysis and "<n> <unit> fcst"
// otherwise.
func ForecastLabel(p *ProductTemplate) string {
	if p.GeneratingProcess.Is(codes.ProcessInitialization) {
		return "anl"
	}
	return fmt.Sprintf("%d %s fcst", p.ForecastTime, strings.ToLower(p.TimeUnit.String()))
}

// Description summarizes a product as "<parameter>:<surface>:<forecast>:",
// e.g. "TMP:850 hPa:6 hour fcst:".
func Description(p *ProductTemplate) string {
	var b strings.Builder
	b.WriteString(p.ParameterNumber.String())
	b.WriteByte(':')
	b.WriteString(SurfaceDescription(p.FirstSurface))
	b.WriteByte(':')
	b.WriteString(ForecastLabel(p))
	b.WriteByte(':')
	return b.String()
}

// ForecastTime returns the time the product is valid for, ref plus the
// forecast time. Units other than hour, day and 6 hours are rejected.
func ForecastTime(ref time.Time, p *ProductTemplate) (time.Time, error) {
	n := p.ForecastTime
	switch {
	case p.TimeUnit.Is(codes.TimeUnitHour):
		return ref.Add(time.Duration(n) * time.Hour), nil
	case p.TimeUnit.Is(codes.TimeUnitDay):
		return ref.AddDate(0, 0, n), nil
	case p.TimeUnit.Is(codes.TimeUnitSixHours):
		return ref.Add(time.Duration(n) * 6 * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnsupportedTimeUnit, p.TimeUnit)
	}
}
