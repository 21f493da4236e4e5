package wx

import (
	"strconv"
	"strings"

	"k8s.io/utils/ptr"
)

// extractWind claims the first wind group, plus a variable-direction range
// (dddVddd) when one immediately follows it.
func extractWind(tl *tokenList) *Wind {
	i := tl.find(windRegex)
	if i < 0 {
		return nil
	}
	m := windRegex.FindStringSubmatch(tl.at(i))
	w := &Wind{Unit: m[5]}
	if m[1] == "VRB" {
		w.Variable = true
	} else {
		dir, _ := strconv.Atoi(m[1])
		w.Direction = ptr.To(dir)
	}
	w.Speed, _ = strconv.Atoi(m[2])
	if m[4] != "" {
		gust, _ := strconv.Atoi(m[4])
		w.Gust = ptr.To(gust)
	}
	tl.remove(i, 1)

	if i < tl.len() {
		if v := windVarRegex.FindStringSubmatch(tl.at(i)); v != nil {
			from, _ := strconv.Atoi(v[1])
			to, _ := strconv.Atoi(v[2])
			w.VariableFrom = ptr.To(from)
			w.VariableTo = ptr.To(to)
			tl.remove(i, 1)
		}
	}
	return w
}

// extractVisibility claims the first visibility group. Handles whole-mile,
// fractional ("1/2SM") and mixed ("1 1/2SM", two tokens) forms. An M prefix
// sets the less-than flag; a P prefix ("P6SM") collapses to 10.0.
func extractVisibility(tl *tokenList) *Visibility {
	for i := 0; i < tl.len(); i++ {
		if i+1 < tl.len() {
			if w := visWholeRegex.FindStringSubmatch(tl.at(i)); w != nil {
				if f := visFracRegex.FindStringSubmatch(tl.at(i + 1)); f != nil {
					whole, _ := strconv.Atoi(w[2])
					num, _ := strconv.Atoi(f[1])
					den, _ := strconv.Atoi(f[2])
					v := &Visibility{
						Value:    float64(whole) + float64(num)/float64(den),
						Unit:     "SM",
						LessThan: w[1] == "M",
					}
					tl.remove(i, 2)
					return v
				}
			}
		}
		m := visRegex.FindStringSubmatch(tl.at(i))
		if m == nil {
			continue
		}
		v := &Visibility{Unit: "SM", LessThan: m[2] == "M"}
		if m[1] == "P" {
			v.Value = 10.0
		} else {
			v.Value = parseVisibilityValue(m[3])
		}
		tl.remove(i, 1)
		return v
	}
	return nil
}

// parseVisibilityValue converts "2", "1/2" or "1 1/2" to statute miles.
func parseVisibilityValue(s string) float64 {
	if num, den, ok := splitFraction(s); ok {
		return float64(num) / float64(den)
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func splitFraction(s string) (int, int, bool) {
	numStr, denStr, found := strings.Cut(s, "/")
	if !found {
		return 0, 0, false
	}
	num, err1 := strconv.Atoi(numStr)
	den, err2 := strconv.Atoi(denStr)
	if err1 != nil || err2 != nil || den == 0 {
		return 0, 0, false
	}
	return num, den, true
}

// extractWeather claims every present-weather group, in textual order.
func extractWeather(tl *tokenList) []Phenomenon {
	var phenomena []Phenomenon
	for {
		i := tl.find(weatherRegex)
		if i < 0 {
			return phenomena
		}
		m := weatherRegex.FindStringSubmatch(tl.at(i))
		p := Phenomenon{Intensity: m[1], Descriptor: m[2]}
		codes := m[3]
		for j := 0; j+2 <= len(codes); j += 2 {
			code := codes[j : j+2]
			switch {
			case precipitationCodes[code] != "":
				p.Precipitation = append(p.Precipitation, code)
			case obscurationCodes[code] != "":
				p.Obscuration = append(p.Obscuration, code)
			case otherCodes[code] != "":
				p.Other = append(p.Other, code)
			}
		}
		phenomena = append(phenomena, p)
		tl.remove(i, 1)
	}
}

// extractClouds claims every sky-condition group, in textual order.
func extractClouds(tl *tokenList) []CloudLayer {
	var layers []CloudLayer
	for {
		i := tl.find(cloudRegex)
		if i < 0 {
			return layers
		}
		m := cloudRegex.FindStringSubmatch(tl.at(i))
		layer := CloudLayer{Coverage: m[1], Type: m[3]}
		if m[2] != "" {
			alt, _ := strconv.Atoi(m[2])
			layer.Altitude = ptr.To(alt * 100)
		}
		layers = append(layers, layer)
		tl.remove(i, 1)
	}
}

// extractTemperature claims the first temperature/dewpoint group. M prefixes
// negate.
func extractTemperature(tl *tokenList) *Temperature {
	i := tl.find(tempRegex)
	if i < 0 {
		return nil
	}
	m := tempRegex.FindStringSubmatch(tl.at(i))
	temp, _ := strconv.Atoi(m[2])
	dew, _ := strconv.Atoi(m[4])
	if m[1] == "M" {
		temp = -temp
	}
	if m[3] == "M" {
		dew = -dew
	}
	tl.remove(i, 1)
	return &Temperature{Temperature: temp, Dewpoint: dew}
}

// extractPressure claims the first altimeter group. A-groups are hundredths
// of inHg, Q-groups whole hectopascals.
func extractPressure(tl *tokenList) *Pressure {
	i := tl.find(pressureRegex)
	if i < 0 {
		return nil
	}
	m := pressureRegex.FindStringSubmatch(tl.at(i))
	raw, _ := strconv.Atoi(m[2])
	tl.remove(i, 1)
	if m[1] == "A" {
		return &Pressure{Value: float64(raw) / 100.0, Unit: "inHg"}
	}
	return &Pressure{Value: float64(raw), Unit: "hPa"}
}
