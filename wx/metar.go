package wx

import (
	"strconv"
	"strings"
	"time"
)

// DecodeMETAR decodes a raw METAR string. The observation day-of-month and
// time are resolved against now (UTC): a day/time later than now belongs to
// the previous month. station overrides the station identifier when the
// report lacks one; pass "" to require it in the text.
//
// Only the station identifier and the datetime group are mandatory. Every
// other field decodes to nil when absent, and unrecognized tokens are
// ignored.
func DecodeMETAR(raw string, now time.Time, station string) (*METAR, error) {
	trimmed := strings.TrimSpace(raw)
	rec := &METAR{Raw: trimmed}

	body := trimmed
	if idx := strings.Index(trimmed, "RMK"); idx >= 0 {
		body = trimmed[:idx]
		rec.Remarks = strings.TrimSpace(trimmed[idx+len("RMK"):])
	}

	tl := newTokenList(body)

	if station != "" {
		rec.Station = strings.ToUpper(station)
		if tl.len() > 0 && stationRegex.MatchString(tl.at(0)) {
			tl.remove(0, 1)
		}
	} else {
		if tl.len() == 0 || !stationRegex.MatchString(tl.at(0)) {
			return nil, &DecodeError{Report: "METAR", Kind: ErrMissingStation}
		}
		rec.Station = tl.at(0)
		tl.remove(0, 1)
	}

	rec.Auto = tl.removeAll("AUTO")
	rec.Corrected = tl.removeAll("COR")

	i := tl.find(timeRegex)
	if i < 0 {
		return nil, &DecodeError{Report: "METAR", Kind: ErrMissingDatetime}
	}
	m := timeRegex.FindStringSubmatch(tl.at(i))
	day, _ := strconv.Atoi(m[1])
	hour, _ := strconv.Atoi(m[2])
	minute, _ := strconv.Atoi(m[3])
	rec.ObservationTime = resolveObservationTime(day, hour, minute, now)
	tl.remove(i, 1)

	// CAVOK stands in for the visibility and cloud groups entirely.
	cavok := tl.removeAll("CAVOK")
	if cavok {
		rec.Visibility = &Visibility{Value: 10.0, Unit: "SM"}
	}

	rec.Wind = extractWind(tl)
	if !cavok {
		rec.Visibility = extractVisibility(tl)
	}
	rec.Weather = extractWeather(tl)
	if !cavok {
		rec.Clouds = extractClouds(tl)
	}
	rec.Temperature = extractTemperature(tl)
	rec.Pressure = extractPressure(tl)

	if rec.Remarks != "" {
		rec.RemarksData = DecodeRemarks(rec.Remarks)
	}

	rec.FlightCategory = ComputeFlightCategory(rec.Visibility, rec.Clouds)
	return rec, nil
}

// resolveObservationTime places a DDHHMM group in the month of now, stepping
// back one month (decrementing the year across January) when that would put
// the observation in the future.
func resolveObservationTime(day, hour, minute int, now time.Time) time.Time {
	now = now.UTC()
	t := time.Date(now.Year(), now.Month(), day, hour, minute, 0, 0, time.UTC)
	if t.After(now) {
		year, month := now.Year(), now.Month()
		if month == time.January {
			year, month = year-1, time.December
		} else {
			month--
		}
		t = time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	}
	return t
}
