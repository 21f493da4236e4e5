package wx

import (
	"fmt"
	"strconv"
	"strings"
)

// DescribeWind renders a wind group as prose.
func DescribeWind(wind *Wind) string {
	if wind == nil {
		return "Wind information not available"
	}
	if wind.Speed == 0 {
		return "Calm winds"
	}

	var s string
	if wind.Variable || wind.Direction == nil {
		s = fmt.Sprintf("Variable at %d knots", wind.Speed)
	} else {
		s = fmt.Sprintf("From %03d° at %d knots", *wind.Direction, wind.Speed)
	}
	if wind.Gust != nil {
		s += fmt.Sprintf(", gusting to %d knots", *wind.Gust)
	}
	if wind.VariableFrom != nil && wind.VariableTo != nil {
		s += fmt.Sprintf(" (variable between %03d° and %03d°)", *wind.VariableFrom, *wind.VariableTo)
	}
	return s
}

// DescribeVisibility renders a visibility group as prose.
func DescribeVisibility(vis *Visibility) string {
	if vis == nil {
		return "Visibility not reported"
	}
	prefix := ""
	if vis.LessThan {
		prefix = "Less than "
	}
	value := strconv.FormatFloat(vis.Value, 'f', -1, 64)
	switch {
	case vis.Value >= 10:
		return "10 statute miles or greater (excellent)"
	case vis.Value >= 5:
		return fmt.Sprintf("%s%s statute miles (good)", prefix, value)
	case vis.Value >= 3:
		return fmt.Sprintf("%s%s statute miles (moderate)", prefix, value)
	case vis.Value >= 1:
		return fmt.Sprintf("%s%s statute miles (poor)", prefix, value)
	default:
		return fmt.Sprintf("%s%s statute miles (very poor)", prefix, value)
	}
}

// DescribeFlightCategory expands a flight category into its meaning.
func DescribeFlightCategory(category FlightCategory) string {
	switch category {
	case CategoryVFR:
		return "Visual Flight Rules - Good conditions for visual flight"
	case CategoryMVFR:
		return "Marginal VFR - Reduced visibility or ceiling, VFR flight possible but challenging"
	case CategoryIFR:
		return "Instrument Flight Rules - IFR conditions, visual flight not recommended"
	case CategoryLIFR:
		return "Low IFR - Very poor conditions, IFR flight challenging"
	default:
		return "Unknown category"
	}
}

// DescribeTemperature renders the temperature group with the spread and
// relative humidity.
func DescribeTemperature(temp *Temperature) string {
	if temp == nil {
		return "Temperature not reported"
	}
	tempF := CelsiusToFahrenheit(temp.Temperature)
	dewF := CelsiusToFahrenheit(temp.Dewpoint)
	spread := temp.Temperature - temp.Dewpoint
	rh := RelativeHumidity(temp.Temperature, temp.Dewpoint)

	s := fmt.Sprintf("%d°C (%d°F), dewpoint %d°C (%d°F)",
		temp.Temperature, tempF, temp.Dewpoint, dewF)
	s += fmt.Sprintf("\nTemperature-dewpoint spread: %d°C, relative humidity: %d%%", spread, rh)
	if spread <= 2 {
		s += " (fog or low clouds likely)"
	} else if spread <= 5 {
		s += " (high humidity)"
	}
	return s
}

// DescribeCloudLayer renders one sky-condition layer as prose.
func DescribeCloudLayer(layer CloudLayer) string {
	coverage := cloudCoverage[layer.Coverage]
	if coverage == "" {
		coverage = layer.Coverage
	}
	s := coverage
	if layer.Altitude != nil {
		s += fmt.Sprintf(" at %s", describeCloudBase(*layer.Altitude))
	}
	if layer.Type != "" {
		s += fmt.Sprintf(" (%s)", cloudTypes[layer.Type])
	}
	return s
}

func describeCloudBase(altitude int) string {
	switch {
	case altitude < 1000:
		return fmt.Sprintf("%d feet (low)", altitude)
	case altitude < 6500:
		return fmt.Sprintf("%d feet (mid-level)", altitude)
	default:
		return fmt.Sprintf("%d feet (high)", altitude)
	}
}

// DescribePhenomenon renders a present-weather group as prose, e.g. "-TSRA"
// becomes "light thunderstorm rain".
func DescribePhenomenon(p Phenomenon) string {
	var parts []string
	if word := intensityCodes[p.Intensity]; word != "" && p.Intensity != "" {
		parts = append(parts, word)
	}
	if word := descriptorCodes[p.Descriptor]; word != "" {
		parts = append(parts, word)
	}
	for _, code := range p.Precipitation {
		parts = append(parts, precipitationCodes[code])
	}
	for _, code := range p.Obscuration {
		parts = append(parts, obscurationCodes[code])
	}
	for _, code := range p.Other {
		parts = append(parts, otherCodes[code])
	}
	if len(parts) == 0 {
		return "unknown phenomenon"
	}
	return strings.Join(parts, " ")
}
