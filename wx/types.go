package wx

import "time"

// FlightCategory classifies conditions by visibility and ceiling.
type FlightCategory string

const (
	CategoryVFR  FlightCategory = "VFR"
	CategoryMVFR FlightCategory = "MVFR"
	CategoryIFR  FlightCategory = "IFR"
	CategoryLIFR FlightCategory = "LIFR"
)

// Wind represents the wind group of a report. Direction is nil when the wind
// is variable (VRB).
type Wind struct {
	Direction    *int   `json:"direction"`
	Speed        int    `json:"speed"`
	Gust         *int   `json:"gust"`
	Variable     bool   `json:"variable"`
	VariableFrom *int   `json:"variable_from"`
	VariableTo   *int   `json:"variable_to"`
	Unit         string `json:"unit"`
}

// Visibility in statute miles. LessThan marks an M-prefixed value ("less than").
// A P-prefixed value ("greater than 6SM") is normalized to 10.0.
type Visibility struct {
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`
	LessThan bool    `json:"less_than"`
}

// CloudLayer is one layer of the sky condition. Altitude is nil for the
// no-cloud sentinels (SKC, CLR, NSC, NCD) and for layers reported without a
// height.
type CloudLayer struct {
	Coverage string `json:"coverage"`
	Altitude *int   `json:"altitude"`
	Type     string `json:"type,omitempty"`
}

// Phenomenon is one present-weather group, split into its disjoint code
// classes. Intensity is "-", "+" or "" (moderate).
type Phenomenon struct {
	Intensity     string   `json:"intensity"`
	Descriptor    string   `json:"descriptor,omitempty"`
	Precipitation []string `json:"precipitation,omitempty"`
	Obscuration   []string `json:"obscuration,omitempty"`
	Other         []string `json:"other,omitempty"`
}

// Temperature holds the temperature/dewpoint pair in whole degrees Celsius.
type Temperature struct {
	Temperature int `json:"temperature"`
	Dewpoint    int `json:"dewpoint"`
}

// Pressure is the altimeter setting. Unit is "inHg" for A-groups and "hPa"
// for Q-groups.
type Pressure struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// METAR is a decoded surface observation.
type METAR struct {
	Station         string         `json:"station"`
	ObservationTime time.Time      `json:"observation_time"`
	Raw             string         `json:"raw_text"`
	Wind            *Wind          `json:"wind"`
	Visibility      *Visibility    `json:"visibility"`
	Weather         []Phenomenon   `json:"weather,omitempty"`
	Clouds          []CloudLayer   `json:"clouds,omitempty"`
	Temperature     *Temperature   `json:"temperature"`
	Pressure        *Pressure      `json:"pressure"`
	FlightCategory  FlightCategory `json:"flight_category"`
	Auto            bool           `json:"auto"`
	Corrected       bool           `json:"corrected"`
	Remarks         string         `json:"remarks,omitempty"`
	RemarksData     *Remarks       `json:"remarks_data,omitempty"`
}

// TafPeriod is one forecast period within a TAF. ChangeIndicator is empty for
// the base forecast, else FM, TEMPO, BECMG, PROB or PROBTEMPO.
type TafPeriod struct {
	From            time.Time    `json:"from"`
	To              time.Time    `json:"to"`
	ChangeIndicator string       `json:"change_indicator,omitempty"`
	Probability     *int         `json:"probability,omitempty"`
	Wind            *Wind        `json:"wind"`
	Visibility      *Visibility  `json:"visibility"`
	Weather         []Phenomenon `json:"weather,omitempty"`
	Clouds          []CloudLayer `json:"clouds,omitempty"`
}

// TAF is a decoded terminal aerodrome forecast.
type TAF struct {
	Station   string      `json:"station"`
	IssueTime time.Time   `json:"issue_time"`
	ValidFrom time.Time   `json:"valid_from"`
	ValidTo   time.Time   `json:"valid_to"`
	Raw       string      `json:"raw_text"`
	Amended   bool        `json:"amended"`
	Periods   []TafPeriod `json:"periods"`
}
