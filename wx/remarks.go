package wx

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PrecipEvent records a begin and/or end time for one precipitation type or
// for thunderstorm activity. Times are the raw 2- or 4-digit minute/time
// strings from the report.
type PrecipEvent struct {
	Type  string `json:"type,omitempty"`
	Began string `json:"began,omitempty"`
	Ended string `json:"ended,omitempty"`
}

// Remarks is the decoded RMK section. Each field is independent: a remark
// group that is absent or garbled leaves its field at the zero value, never
// an error.
type Remarks struct {
	AutomatedStationType string `json:"automated_station_type,omitempty"`

	PeakWindDirection *int   `json:"peak_wind_direction,omitempty"`
	PeakWindSpeed     *int   `json:"peak_wind_speed,omitempty"`
	PeakWindTime      string `json:"peak_wind_time,omitempty"`

	WindShiftTime    string `json:"wind_shift_time,omitempty"`
	WindShiftFrontal bool   `json:"wind_shift_frontal,omitempty"`

	TowerVisibility    *float64           `json:"tower_visibility,omitempty"`
	SurfaceVisibility  *float64           `json:"surface_visibility,omitempty"`
	VariableVisibility string             `json:"variable_visibility,omitempty"`
	SectorVisibility   map[string]float64 `json:"sector_visibility,omitempty"`

	LightningFrequency string   `json:"lightning_frequency,omitempty"`
	LightningTypes     []string `json:"lightning_types,omitempty"`
	LightningLocation  string   `json:"lightning_location,omitempty"`

	PrecipitationEvents []PrecipEvent `json:"precipitation_events,omitempty"`
	ThunderstormEvents  []PrecipEvent `json:"thunderstorm_events,omitempty"`

	HourlyPrecip *float64 `json:"hourly_precip,omitempty"`
	Precip6Hour  *float64 `json:"precip_6hr,omitempty"`
	Precip24Hour *float64 `json:"precip_24hr,omitempty"`

	SnowDepth             *int     `json:"snow_depth,omitempty"`
	SnowIncreasingRapidly string   `json:"snow_increasing_rapidly,omitempty"`
	WaterEquivalentSnow   *float64 `json:"water_equivalent_snow,omitempty"`

	SeaLevelPressure *float64 `json:"sea_level_pressure,omitempty"`
	PressureTendency string   `json:"pressure_tendency,omitempty"`
	PressureChange   *float64 `json:"pressure_change,omitempty"`

	TemperaturePrecise *float64 `json:"temperature_precise,omitempty"`
	DewpointPrecise    *float64 `json:"dewpoint_precise,omitempty"`
	MaxTemp6Hour       *float64 `json:"max_temp_6hr,omitempty"`
	MinTemp6Hour       *float64 `json:"min_temp_6hr,omitempty"`
	MaxTemp24Hour      *float64 `json:"max_temp_24hr,omitempty"`
	MinTemp24Hour      *float64 `json:"min_temp_24hr,omitempty"`

	SensorStatus      []string `json:"sensor_status,omitempty"`
	MaintenanceNeeded bool     `json:"maintenance_needed,omitempty"`

	PlainLanguage []string `json:"plain_language,omitempty"`
	Raw           string   `json:"raw_remarks,omitempty"`
}

// Remark group patterns. These search anywhere in the remarks text; each
// recognizer is independent of the others.
var (
	rmkAORegex          = regexp.MustCompile(`\b(AO[12])\b`)
	rmkPeakWindRegex    = regexp.MustCompile(`PK\s+WND\s+(\d{3})(\d{2,3})/(\d{2,4})`)
	rmkWindShiftRegex   = regexp.MustCompile(`WSHFT\s+(\d{2,4})(\s+FROPA)?`)
	rmkTowerVisRegex    = regexp.MustCompile(`TWR\s+VIS\s+([\d\s/]+)`)
	rmkSurfaceVisRegex  = regexp.MustCompile(`SFC\s+VIS\s+([\d\s/]+)`)
	rmkVariableVisRegex = regexp.MustCompile(`VIS\s+([\d/]+)V([\d/]+)`)
	rmkSectorVisRegex   = regexp.MustCompile(`VIS\s+([NEWS]{1,2})\s+([\d\s/]+)`)
	rmkLightningRegex   = regexp.MustCompile(`(?:(OCNL|FRQ|CONS)\s+)?(LTG|LTGIC|LTGCG|LTGCA|LTGCC)\s+(OHD|DSNT|VC|AND)?\s*([NEWS]{1,2})?`)
	rmkPrecipEventRegex = regexp.MustCompile(`\b(RA|SN|DZ|SG|IC|PL|GR|GS|TS)(?:B(\d{2,4}))?(?:E(\d{2,4}))?\b`)
	rmkPrecipStripRegex = regexp.MustCompile(`\b(?:RA|SN|DZ|SG|IC|PL|GR|GS|TS)(?:B\d{2,4}(?:E\d{2,4})?|E\d{2,4})\b`)
	rmkHourlyPrecRegex  = regexp.MustCompile(`\bP(\d{4})\b`)
	rmkPrecip6Regex     = regexp.MustCompile(`\b6(\d{4})\b`)
	rmkPrecip24Regex    = regexp.MustCompile(`\b7(\d{4})\b`)
	rmkSnowDepthRegex   = regexp.MustCompile(`\b4/(\d{3})\b`)
	rmkSnowIncrRegex    = regexp.MustCompile(`SNINCR\s+(\d+)/(\d+)`)
	rmkWaterEquivRegex  = regexp.MustCompile(`\b933(\d{3})\b`)
	rmkSLPRegex         = regexp.MustCompile(`\bSLP(\d{3})\b`)
	rmkTempPreciseRegex = regexp.MustCompile(`\bT([01])(\d{3})([01])(\d{3})\b`)
	rmkMaxTemp6Regex    = regexp.MustCompile(`\b1([01])(\d{3})\b`)
	rmkMinTemp6Regex    = regexp.MustCompile(`\b2([01])(\d{3})\b`)
	rmkTemp24Regex      = regexp.MustCompile(`\b4([01])(\d{3})([01])(\d{3})\b`)
	rmkTendencyRegex    = regexp.MustCompile(`\b5([0-8])(\d{3})\b`)
	rmkSensorRegex      = regexp.MustCompile(`\b(RVRNO|PWINO|PNO|FZRANO|TSNO|VISNO|CHINO)\b`)
	rmkMaintRegex       = regexp.MustCompile(`(^|\s)\$`)
)

// Three-hour pressure tendency descriptions, indexed by the 5appp tendency
// code.
var tendencyDescriptions = [9]string{
	"increasing then decreasing",
	"increasing then steady",
	"increasing",
	"increasing rapidly",
	"steady",
	"decreasing then increasing",
	"decreasing then steady",
	"decreasing",
	"decreasing rapidly",
}

// DecodeRemarks decodes the RMK section of a METAR. It never fails: in the
// worst case every field of the result is empty.
func DecodeRemarks(remarks string) *Remarks {
	data := &Remarks{}
	if remarks == "" {
		return data
	}
	data.Raw = remarks

	if m := rmkAORegex.FindStringSubmatch(remarks); m != nil {
		data.AutomatedStationType = m[1]
	}
	if m := rmkPeakWindRegex.FindStringSubmatch(remarks); m != nil {
		dir, _ := strconv.Atoi(m[1])
		speed, _ := strconv.Atoi(m[2])
		data.PeakWindDirection = &dir
		data.PeakWindSpeed = &speed
		data.PeakWindTime = m[3]
	}
	if m := rmkWindShiftRegex.FindStringSubmatch(remarks); m != nil {
		data.WindShiftTime = m[1]
		data.WindShiftFrontal = m[2] != ""
	}

	decodeVisibilityRemarks(remarks, data)
	decodeLightning(remarks, data)
	decodePrecipEvents(remarks, data)
	decodePrecipAmounts(remarks, data)
	decodeSnowRemarks(remarks, data)
	decodePressureRemarks(remarks, data)
	decodeTemperatureRemarks(remarks, data)

	for _, m := range rmkSensorRegex.FindAllStringSubmatch(remarks, -1) {
		data.SensorStatus = append(data.SensorStatus, m[1])
	}
	data.MaintenanceNeeded = rmkMaintRegex.MatchString(remarks)

	decodePlainLanguage(remarks, data)
	return data
}

func decodeVisibilityRemarks(remarks string, data *Remarks) {
	if m := rmkTowerVisRegex.FindStringSubmatch(remarks); m != nil {
		v := parseRemarkVisibility(m[1])
		data.TowerVisibility = &v
	}
	if m := rmkSurfaceVisRegex.FindStringSubmatch(remarks); m != nil {
		v := parseRemarkVisibility(m[1])
		data.SurfaceVisibility = &v
	}
	if m := rmkVariableVisRegex.FindStringSubmatch(remarks); m != nil {
		data.VariableVisibility = m[1] + "V" + m[2]
	}
	for _, m := range rmkSectorVisRegex.FindAllStringSubmatch(remarks, -1) {
		if data.SectorVisibility == nil {
			data.SectorVisibility = make(map[string]float64)
		}
		data.SectorVisibility[m[1]] = parseRemarkVisibility(m[2])
	}
}

func decodeLightning(remarks string, data *Remarks) {
	m := rmkLightningRegex.FindStringSubmatch(remarks)
	if m == nil {
		return
	}
	data.LightningFrequency = m[1]
	data.LightningTypes = append(data.LightningTypes, m[2])
	if m[3] != "" {
		data.LightningLocation = m[3]
	}
	if m[4] != "" {
		if data.LightningLocation != "" {
			data.LightningLocation += " " + m[4]
		} else {
			data.LightningLocation = m[4]
		}
	}
}

func decodePrecipEvents(remarks string, data *Remarks) {
	for _, m := range rmkPrecipEventRegex.FindAllStringSubmatch(remarks, -1) {
		if m[2] == "" && m[3] == "" {
			continue
		}
		event := PrecipEvent{Began: m[2], Ended: m[3]}
		if m[1] == "TS" {
			data.ThunderstormEvents = append(data.ThunderstormEvents, event)
			continue
		}
		event.Type = m[1]
		data.PrecipitationEvents = append(data.PrecipitationEvents, event)
	}
}

func decodePrecipAmounts(remarks string, data *Remarks) {
	if m := rmkHourlyPrecRegex.FindStringSubmatch(remarks); m != nil {
		v, _ := strconv.Atoi(m[1])
		amount := float64(v) / 100.0
		data.HourlyPrecip = &amount
	}
	if m := rmkPrecip6Regex.FindStringSubmatch(remarks); m != nil {
		v, _ := strconv.Atoi(m[1])
		amount := float64(v) / 100.0
		data.Precip6Hour = &amount
	}
	if m := rmkPrecip24Regex.FindStringSubmatch(remarks); m != nil {
		v, _ := strconv.Atoi(m[1])
		amount := float64(v) / 100.0
		data.Precip24Hour = &amount
	}
}

func decodeSnowRemarks(remarks string, data *Remarks) {
	if m := rmkSnowDepthRegex.FindStringSubmatch(remarks); m != nil {
		depth, _ := strconv.Atoi(m[1])
		data.SnowDepth = &depth
	}
	if m := rmkSnowIncrRegex.FindStringSubmatch(remarks); m != nil {
		data.SnowIncreasingRapidly = fmt.Sprintf("%s inches in past %s minutes", m[1], m[2])
	}
	if m := rmkWaterEquivRegex.FindStringSubmatch(remarks); m != nil {
		v, _ := strconv.Atoi(m[1])
		equiv := float64(v) / 10.0
		data.WaterEquivalentSnow = &equiv
	}
}

func decodePressureRemarks(remarks string, data *Remarks) {
	if m := rmkSLPRegex.FindStringSubmatch(remarks); m != nil {
		code, _ := strconv.Atoi(m[1])
		// SLP carries the last three digits of the hPa value in tenths;
		// codes of 500 and above fold into the 9xx range.
		var slp float64
		if code >= 500 {
			slp = 900 + float64(code)/10.0
		} else {
			slp = 1000 + float64(code)/10.0
		}
		data.SeaLevelPressure = &slp
	}
	if m := rmkTendencyRegex.FindStringSubmatch(remarks); m != nil {
		code, _ := strconv.Atoi(m[1])
		value, _ := strconv.Atoi(m[2])
		change := float64(value) / 10.0
		data.PressureChange = &change
		data.PressureTendency = tendencyDescriptions[code]
	}
}

func decodeTemperatureRemarks(remarks string, data *Remarks) {
	if m := rmkTempPreciseRegex.FindStringSubmatch(remarks); m != nil {
		temp := signedTenths(m[1], m[2])
		dew := signedTenths(m[3], m[4])
		data.TemperaturePrecise = &temp
		data.DewpointPrecise = &dew
	}
	if m := rmkMaxTemp6Regex.FindStringSubmatch(remarks); m != nil {
		v := signedTenths(m[1], m[2])
		data.MaxTemp6Hour = &v
	}
	if m := rmkMinTemp6Regex.FindStringSubmatch(remarks); m != nil {
		v := signedTenths(m[1], m[2])
		data.MinTemp6Hour = &v
	}
	if m := rmkTemp24Regex.FindStringSubmatch(remarks); m != nil {
		maxTemp := signedTenths(m[1], m[2])
		minTemp := signedTenths(m[3], m[4])
		data.MaxTemp24Hour = &maxTemp
		data.MinTemp24Hour = &minTemp
	}
}

// signedTenths decodes a sign digit (0 positive, 1 negative) plus a 3-digit
// tenths value.
func signedTenths(sign, digits string) float64 {
	v, _ := strconv.Atoi(digits)
	result := float64(v) / 10.0
	if sign == "1" {
		result = -result
	}
	return result
}

// decodePlainLanguage strips every recognized group from the remarks text;
// whatever survives is free-text commentary.
func decodePlainLanguage(remarks string, data *Remarks) {
	cleaned := remarks
	for _, re := range []*regexp.Regexp{
		rmkAORegex, rmkPeakWindRegex, rmkWindShiftRegex,
		rmkTowerVisRegex, rmkSurfaceVisRegex, rmkVariableVisRegex,
		rmkSectorVisRegex, rmkLightningRegex, rmkPrecipStripRegex,
		rmkHourlyPrecRegex, rmkPrecip6Regex, rmkPrecip24Regex,
		rmkSnowDepthRegex, rmkSnowIncrRegex, rmkWaterEquivRegex,
		rmkSLPRegex, rmkTempPreciseRegex, rmkMaxTemp6Regex,
		rmkMinTemp6Regex, rmkTemp24Regex, rmkTendencyRegex,
		rmkSensorRegex, rmkMaintRegex,
	} {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	words := strings.Fields(cleaned)
	if len(words) > 0 {
		data.PlainLanguage = []string{strings.Join(words, " ")}
	}
}

// parseRemarkVisibility converts "2", "1/2" or "1 1/2" to statute miles.
func parseRemarkVisibility(s string) float64 {
	s = strings.TrimSpace(s)
	if whole, frac, found := strings.Cut(s, " "); found {
		w, _ := strconv.Atoi(whole)
		if num, den, ok := splitFraction(strings.TrimSpace(frac)); ok {
			return float64(w) + float64(num)/float64(den)
		}
		return float64(w)
	}
	return parseVisibilityValue(s)
}
