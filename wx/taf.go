package wx

import (
	"strconv"
	"strings"
	"time"
)

// tafSegment is one slice of the TAF body: the base forecast or one change
// group, holding its raw condition tokens until extraction.
type tafSegment struct {
	indicator   string
	fmDay       int
	fmHour      int
	fmMinute    int
	probability int
	windowFrom  time.Time
	windowTo    time.Time
	toks        []string
}

// DecodeTAF decodes a raw TAF string, which may span multiple lines. The
// issue time and valid period day-of-month values are resolved against now
// (UTC). station overrides the station identifier when the report lacks one.
//
// The station identifier, the issue time and the valid period are mandatory.
// A change indicator missing its time group is a malformed-change-group
// error; condition groups inside any period are all optional.
func DecodeTAF(raw string, now time.Time, station string) (*TAF, error) {
	trimmed := strings.TrimSpace(raw)
	rec := &TAF{Raw: trimmed}

	// Amendments flag AMD near the front of the report.
	head := trimmed
	if len(head) > 20 {
		head = head[:20]
	}
	rec.Amended = strings.Contains(head, "AMD")

	tl := newTokenList(trimmed)
	if tl.len() > 0 && tl.at(0) == "TAF" {
		tl.remove(0, 1)
	}
	if tl.len() > 0 && tl.at(0) == "AMD" {
		tl.remove(0, 1)
	}

	if station != "" {
		rec.Station = strings.ToUpper(station)
		if tl.len() > 0 && stationRegex.MatchString(tl.at(0)) {
			tl.remove(0, 1)
		}
	} else {
		if tl.len() == 0 || !stationRegex.MatchString(tl.at(0)) {
			return nil, &DecodeError{Report: "TAF", Kind: ErrMissingStation}
		}
		rec.Station = tl.at(0)
		tl.remove(0, 1)
	}

	i := tl.find(timeRegex)
	if i < 0 {
		return nil, &DecodeError{Report: "TAF", Kind: ErrMissingDatetime}
	}
	m := timeRegex.FindStringSubmatch(tl.at(i))
	day, _ := strconv.Atoi(m[1])
	hour, _ := strconv.Atoi(m[2])
	minute, _ := strconv.Atoi(m[3])
	rec.IssueTime = resolveIssueTime(day, hour, minute, now)
	tl.remove(i, 1)

	i = tl.find(validRegex)
	if i < 0 {
		return nil, &DecodeError{Report: "TAF", Kind: ErrMissingValidPeriod}
	}
	rec.ValidFrom, rec.ValidTo = resolveValidPeriod(tl.at(i), rec.IssueTime)
	tl.remove(i, 1)

	segments, err := segmentTAFBody(tl.rest(), rec.IssueTime)
	if err != nil {
		return nil, err
	}

	for _, seg := range segments {
		if seg.indicator == "" && len(seg.toks) == 0 {
			continue
		}
		period := TafPeriod{ChangeIndicator: seg.indicator}
		switch seg.indicator {
		case "":
			period.From, period.To = rec.ValidFrom, rec.ValidTo
		case "FM":
			period.From = resolveFMTime(seg.fmDay, seg.fmHour, seg.fmMinute, rec.IssueTime)
			period.To = rec.ValidTo // fixed up below
		default:
			period.From, period.To = seg.windowFrom, seg.windowTo
			if seg.probability > 0 {
				p := seg.probability
				period.Probability = &p
			}
		}

		ptl := &tokenList{toks: seg.toks}
		period.Wind = extractWind(ptl)
		period.Visibility = extractVisibility(ptl)
		period.Weather = extractWeather(ptl)
		period.Clouds = extractClouds(ptl)
		rec.Periods = append(rec.Periods, period)
	}

	// An FM period runs until the next change group starts.
	for idx := range rec.Periods {
		if rec.Periods[idx].ChangeIndicator != "FM" {
			continue
		}
		if idx+1 < len(rec.Periods) {
			rec.Periods[idx].To = rec.Periods[idx+1].From
		}
	}

	return rec, nil
}

// segmentTAFBody walks the body tokens once, opening a new segment at each
// change indicator. TEMPO, BECMG and PROB groups must be followed by a
// DDHH/DDHH window; PROB may interpose a TEMPO first.
func segmentTAFBody(toks []string, issue time.Time) ([]tafSegment, error) {
	segments := []tafSegment{{}}
	cur := &segments[0]

	claimWindow := func(i int) (int, error) {
		if i+1 >= len(toks) || !validRegex.MatchString(toks[i+1]) {
			return 0, &DecodeError{Report: "TAF", Kind: ErrMalformedChangeGroup, Detail: toks[i]}
		}
		cur.windowFrom, cur.windowTo = resolveValidPeriod(toks[i+1], issue)
		return i + 1, nil
	}

	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch {
		case fmRegex.MatchString(tok):
			m := fmRegex.FindStringSubmatch(tok)
			segments = append(segments, tafSegment{indicator: "FM"})
			cur = &segments[len(segments)-1]
			cur.fmDay, _ = strconv.Atoi(m[1])
			cur.fmHour, _ = strconv.Atoi(m[2])
			cur.fmMinute, _ = strconv.Atoi(m[3])
		case tok == "TEMPO" || tok == "BECMG":
			segments = append(segments, tafSegment{indicator: tok})
			cur = &segments[len(segments)-1]
			next, err := claimWindow(i)
			if err != nil {
				return nil, err
			}
			i = next
		case probRegex.MatchString(tok):
			m := probRegex.FindStringSubmatch(tok)
			segments = append(segments, tafSegment{indicator: "PROB"})
			cur = &segments[len(segments)-1]
			cur.probability, _ = strconv.Atoi(m[1])
			if i+1 < len(toks) && toks[i+1] == "TEMPO" {
				cur.indicator = "PROBTEMPO"
				i++
			}
			next, err := claimWindow(i)
			if err != nil {
				return nil, err
			}
			i = next
		default:
			cur.toks = append(cur.toks, tok)
		}
	}
	return segments, nil
}

// resolveIssueTime places a DDHHMM issue group in the month of now. TAFs are
// issued ahead of their valid window, so up to 24 hours of future slack is
// allowed before stepping back a month.
func resolveIssueTime(day, hour, minute int, now time.Time) time.Time {
	now = now.UTC()
	t := time.Date(now.Year(), now.Month(), day, hour, minute, 0, 0, time.UTC)
	if t.After(now.Add(24 * time.Hour)) {
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

// resolveValidPeriod parses a DDHH/DDHH token against the issue month. Hour
// 24 means 00Z of the following day; an end before the start crosses into
// the next month.
func resolveValidPeriod(tok string, issue time.Time) (from, to time.Time) {
	m := validRegex.FindStringSubmatch(tok)
	fromDay, _ := strconv.Atoi(m[1])
	fromHour, _ := strconv.Atoi(m[2])
	toDay, _ := strconv.Atoi(m[3])
	toHour, _ := strconv.Atoi(m[4])

	from = resolveValidTime(fromDay, fromHour, issue)
	to = resolveValidTime(toDay, toHour, issue)
	if to.Before(from) {
		to = to.AddDate(0, 1, 0)
	}
	return from, to
}

func resolveValidTime(day, hour int, issue time.Time) time.Time {
	if hour == 24 {
		day++
		hour = 0
	}
	return time.Date(issue.Year(), issue.Month(), day, hour, 0, 0, 0, time.UTC)
}

// resolveFMTime places an FM DDHHMM group in the issue month, rolling forward
// a month when it lands before the issue time.
func resolveFMTime(day, hour, minute int, issue time.Time) time.Time {
	t := time.Date(issue.Year(), issue.Month(), day, hour, minute, 0, 0, time.UTC)
	if t.Before(issue) {
		t = t.AddDate(0, 1, 0)
	}
	return t
}
