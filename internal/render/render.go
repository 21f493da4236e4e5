// Package render prints decoded reports to the terminal with colored labels
// and narrative descriptions.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"

	"github.com/flightbrief/flightbrief/wx"
)

// Color definitions using fatih/color
var (
	labelColor   = color.New(color.FgCyan)
	sectionColor = color.New(color.FgBlue)
	dateColor    = color.New(color.FgGreen)

	// Flight category colors
	vfrColor  = color.New(color.FgGreen)
	mvfrColor = color.New(color.FgBlue)
	ifrColor  = color.New(color.FgRed)
	lifrColor = color.New(color.FgMagenta)

	// Age-based colors
	freshColor   = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	expiredColor = color.New(color.FgRed)
)

// Renderer writes decoded reports to out. The clock drives the relative-age
// annotations.
type Renderer struct {
	out   io.Writer
	clock clockwork.Clock
}

func New(out io.Writer, clock clockwork.Clock) *Renderer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Renderer{out: out, clock: clock}
}

// METAR prints a decoded METAR.
func (r *Renderer) METAR(rec *wx.METAR) {
	r.labeled("Station", rec.Station)
	r.labeled("Time", fmt.Sprintf("%s %s",
		rec.ObservationTime.Format("2006-01-02 15:04 UTC"),
		r.ageString(rec.ObservationTime)))
	if rec.Auto {
		r.labeled("Type", "automated observation")
	}
	if rec.Corrected {
		r.labeled("Type", "corrected report")
	}

	r.labeled("Wind", wx.DescribeWind(rec.Wind))
	r.labeled("Visibility", wx.DescribeVisibility(rec.Visibility))
	for _, p := range rec.Weather {
		r.labeled("Weather", wx.DescribePhenomenon(p))
	}
	if len(rec.Clouds) > 0 {
		var layers []string
		for _, layer := range rec.Clouds {
			layers = append(layers, wx.DescribeCloudLayer(layer))
		}
		r.labeled("Clouds", strings.Join(layers, ", "))
	}
	r.labeled("Temperature", wx.DescribeTemperature(rec.Temperature))
	if rec.Pressure != nil {
		r.labeled("Pressure", describePressure(rec.Pressure))
	}

	r.category(rec.FlightCategory)

	if rec.RemarksData != nil {
		r.remarks(rec.RemarksData)
	}
}

// TAF prints a decoded TAF.
func (r *Renderer) TAF(rec *wx.TAF) {
	r.labeled("Station", rec.Station)
	if rec.Amended {
		r.labeled("Type", "amended forecast")
	}
	r.labeled("Issued", fmt.Sprintf("%s %s",
		rec.IssueTime.Format("2006-01-02 15:04 UTC"),
		r.ageString(rec.IssueTime)))
	r.labeled("Valid", fmt.Sprintf("%s to %s",
		rec.ValidFrom.Format("2006-01-02 15:04 UTC"),
		rec.ValidTo.Format("2006-01-02 15:04 UTC")))

	for _, period := range rec.Periods {
		fmt.Fprintln(r.out)
		sectionColor.Fprintln(r.out, periodHeading(period))
		r.labeled("  Wind", wx.DescribeWind(period.Wind))
		r.labeled("  Visibility", wx.DescribeVisibility(period.Visibility))
		for _, p := range period.Weather {
			r.labeled("  Weather", wx.DescribePhenomenon(p))
		}
		for _, layer := range period.Clouds {
			r.labeled("  Clouds", wx.DescribeCloudLayer(layer))
		}
	}
}

func periodHeading(period wx.TafPeriod) string {
	window := fmt.Sprintf("%s - %s",
		period.From.Format("Jan 2 15:04"),
		period.To.Format("Jan 2 15:04"))

	switch period.ChangeIndicator {
	case "":
		return fmt.Sprintf("Base forecast (%s)", window)
	case "FM":
		return fmt.Sprintf("From %s", window)
	case "TEMPO":
		return fmt.Sprintf("Temporarily (%s)", window)
	case "BECMG":
		return fmt.Sprintf("Becoming (%s)", window)
	case "PROB", "PROBTEMPO":
		probability := 30
		if period.Probability != nil {
			probability = *period.Probability
		}
		return fmt.Sprintf("%d%% probability (%s)", probability, window)
	default:
		return window
	}
}

func (r *Renderer) category(category wx.FlightCategory) {
	categoryColor := vfrColor
	switch category {
	case wx.CategoryMVFR:
		categoryColor = mvfrColor
	case wx.CategoryIFR:
		categoryColor = ifrColor
	case wx.CategoryLIFR:
		categoryColor = lifrColor
	}
	labelColor.Fprint(r.out, "Category: ")
	categoryColor.Fprint(r.out, string(category))
	fmt.Fprintf(r.out, " - %s\n", wx.DescribeFlightCategory(category))
}

func (r *Renderer) remarks(data *wx.Remarks) {
	fmt.Fprintln(r.out)
	sectionColor.Fprintln(r.out, "Remarks:")

	if data.AutomatedStationType != "" {
		desc := "automated station"
		if data.AutomatedStationType == "AO2" {
			desc = "automated station with precipitation sensor"
		}
		r.labeled("  Equipment", desc)
	}
	if data.PeakWindSpeed != nil && data.PeakWindDirection != nil {
		r.labeled("  Peak wind", fmt.Sprintf("from %03d° at %d knots at :%s",
			*data.PeakWindDirection, *data.PeakWindSpeed, data.PeakWindTime))
	}
	if data.WindShiftTime != "" {
		shift := "wind shift at " + data.WindShiftTime
		if data.WindShiftFrontal {
			shift += " with frontal passage"
		}
		r.labeled("  Wind shift", shift)
	}
	if data.SeaLevelPressure != nil {
		r.labeled("  Sea level pressure", fmt.Sprintf("%.1f hPa", *data.SeaLevelPressure))
	}
	if data.TemperaturePrecise != nil && data.DewpointPrecise != nil {
		r.labeled("  Precise temperature", fmt.Sprintf("%.1f°C / %.1f°C",
			*data.TemperaturePrecise, *data.DewpointPrecise))
	}
	if data.PressureTendency != "" {
		tendency := data.PressureTendency
		if data.PressureChange != nil {
			tendency += fmt.Sprintf(" (%.1f hPa over 3 hours)", *data.PressureChange)
		}
		r.labeled("  Pressure tendency", tendency)
	}
	for _, event := range data.PrecipitationEvents {
		r.labeled("  Precipitation", describeEvent(event))
	}
	for _, event := range data.ThunderstormEvents {
		event.Type = "TS"
		r.labeled("  Thunderstorm", describeEvent(event))
	}
	if len(data.SensorStatus) > 0 {
		r.labeled("  Sensors inoperative", strings.Join(data.SensorStatus, ", "))
	}
	if data.MaintenanceNeeded {
		r.labeled("  Maintenance", "station needs maintenance")
	}
	for _, remark := range data.PlainLanguage {
		r.labeled("  Other", remark)
	}
}

func describeEvent(event wx.PrecipEvent) string {
	name := event.Type
	if desc, ok := map[string]string{
		"RA": "rain", "SN": "snow", "DZ": "drizzle", "SG": "snow grains",
		"IC": "ice crystals", "PL": "ice pellets", "GR": "hail",
		"GS": "small hail", "TS": "thunderstorm",
	}[event.Type]; ok {
		name = desc
	}

	var parts []string
	if event.Began != "" {
		parts = append(parts, "began :"+event.Began)
	}
	if event.Ended != "" {
		parts = append(parts, "ended :"+event.Ended)
	}
	return name + " " + strings.Join(parts, ", ")
}

func describePressure(p *wx.Pressure) string {
	if p.Unit == "hPa" {
		return fmt.Sprintf("%.0f hPa (%.2f inHg)", p.Value, wx.HPaToInHg(p.Value))
	}
	return fmt.Sprintf("%.2f inHg (%d hPa)", p.Value, wx.InHgToHPa(p.Value))
}

func (r *Renderer) labeled(label, value string) {
	if value == "" {
		return
	}
	labelColor.Fprintf(r.out, "%s: ", label)
	fmt.Fprintln(r.out, value)
}

// ageString renders how old a report is, colored by how stale it is.
func (r *Renderer) ageString(t time.Time) string {
	minutes := int(r.clock.Now().UTC().Sub(t).Minutes())

	var text string
	switch {
	case minutes < 0:
		text = "(in the future)"
	case minutes < 1:
		text = "(just now)"
	case minutes < 60:
		text = fmt.Sprintf("(%d minutes ago)", minutes)
	case minutes < 1440:
		hours := minutes / 60
		mins := minutes % 60
		if mins == 0 {
			text = fmt.Sprintf("(%d hours ago)", hours)
		} else {
			text = fmt.Sprintf("(%d hours, %d minutes ago)", hours, mins)
		}
	default:
		days := minutes / 1440
		hours := (minutes % 1440) / 60
		if hours == 0 {
			text = fmt.Sprintf("(%d days ago)", days)
		} else {
			text = fmt.Sprintf("(%d days, %d hours ago)", days, hours)
		}
	}

	ageColor := freshColor
	switch {
	case minutes >= 180:
		ageColor = expiredColor
	case minutes >= 60:
		ageColor = warningColor
	}
	return ageColor.Sprint(text)
}
