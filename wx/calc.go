package wx

import "math"

// ComputeFlightCategory derives the flight category from visibility and the
// ceiling. The ceiling is the lowest broken, overcast or vertical-visibility
// layer; with no such layer it defaults to 10000 ft, and missing visibility
// defaults to 10 statute miles. The worst matching category wins.
func ComputeFlightCategory(vis *Visibility, clouds []CloudLayer) FlightCategory {
	visibility := 10.0
	if vis != nil {
		visibility = vis.Value
	}
	ceiling := Ceiling(clouds)

	switch {
	case visibility < 1 || ceiling < 500:
		return CategoryLIFR
	case visibility < 3 || ceiling < 1000:
		return CategoryIFR
	case visibility <= 5 || ceiling <= 3000:
		return CategoryMVFR
	default:
		return CategoryVFR
	}
}

// Ceiling returns the lowest BKN/OVC/VV layer altitude in feet, or 10000
// when no such layer is reported.
func Ceiling(clouds []CloudLayer) int {
	ceiling := 10000
	for _, layer := range clouds {
		if layer.Coverage != "BKN" && layer.Coverage != "OVC" && layer.Coverage != "VV" {
			continue
		}
		if layer.Altitude != nil && *layer.Altitude < ceiling {
			ceiling = *layer.Altitude
		}
	}
	return ceiling
}

// PressureAltitude computes pressure altitude in feet from field elevation
// and the altimeter setting. unit is "inHg" or "hPa".
func PressureAltitude(fieldElevation int, altimeter float64, unit string) int {
	if unit == "hPa" {
		altimeter = altimeter * 0.02953
	}
	return fieldElevation + int((29.92-altimeter)*1000)
}

// DensityAltitude computes density altitude in feet from pressure altitude
// and the outside air temperature in Celsius, using the 120 ft per degree
// ISA-deviation approximation.
func DensityAltitude(pressureAltitude, temperatureC int) int {
	isaTemp := 15.0 - 2.0*float64(pressureAltitude)/1000.0
	return pressureAltitude + int(120.0*(float64(temperatureC)-isaTemp))
}

// WindComponents resolves a wind against a runway heading. Headwind is
// negative for a tailwind; crosswind is an absolute value.
func WindComponents(windDirection, windSpeed, runwayHeading int) (headwind, crosswind int) {
	angle := windDirection - runwayHeading
	if angle < 0 {
		angle = -angle
	}
	if angle > 180 {
		angle = 360 - angle
	}
	rad := float64(angle) * math.Pi / 180.0
	headwind = int(float64(windSpeed) * math.Cos(rad))
	crosswind = int(math.Abs(float64(windSpeed) * math.Sin(rad)))
	return headwind, crosswind
}

// RelativeHumidity approximates relative humidity from temperature and
// dewpoint in Celsius with the Magnus formula, clamped to 0-100 percent.
func RelativeHumidity(temperatureC, dewpointC int) int {
	const (
		a = 17.27
		b = 237.7
	)
	alphaT := a * float64(temperatureC) / (b + float64(temperatureC))
	alphaD := a * float64(dewpointC) / (b + float64(dewpointC))
	rh := 100.0 * math.Exp(alphaD-alphaT)
	if rh > 100 {
		rh = 100
	}
	if rh < 0 {
		rh = 0
	}
	return int(rh)
}

// CelsiusToFahrenheit converts whole degrees, truncating toward zero.
func CelsiusToFahrenheit(c int) int {
	return int(float64(c)*9.0/5.0 + 32.0)
}

// FahrenheitToCelsius converts whole degrees, truncating toward zero.
func FahrenheitToCelsius(f int) int {
	return int((float64(f) - 32.0) * 5.0 / 9.0)
}

// KnotsToMPH converts knots to statute miles per hour, truncating.
func KnotsToMPH(kt int) int {
	return int(float64(kt) * 1.15078)
}

// MPHToKnots converts statute miles per hour to knots, truncating.
func MPHToKnots(mph int) int {
	return int(float64(mph) / 1.15078)
}

// InHgToHPa converts inches of mercury to whole hectopascals, truncating.
func InHgToHPa(inHg float64) int {
	return int(inHg * 33.8639)
}

// HPaToInHg converts hectopascals to inches of mercury, rounded to two
// decimals.
func HPaToInHg(hPa float64) float64 {
	return math.Round(hPa*0.02953*100) / 100
}
