package wx

import "regexp"

// Weather descriptor codes (the optional qualifier between intensity and phenomena)
var descriptorCodes = map[string]string{
	"MI": "shallow",
	"BC": "patches",
	"PR": "partial",
	"DR": "low drifting",
	"BL": "blowing",
	"SH": "showers",
	"TS": "thunderstorm",
	"FZ": "freezing",
}

// Precipitation phenomena codes
var precipitationCodes = map[string]string{
	"DZ": "drizzle",
	"RA": "rain",
	"SN": "snow",
	"SG": "snow grains",
	"IC": "ice crystals",
	"PL": "ice pellets",
	"GR": "hail",
	"GS": "small hail",
	"UP": "unknown precipitation",
}

// Obscuration phenomena codes
var obscurationCodes = map[string]string{
	"BR": "mist",
	"FG": "fog",
	"FU": "smoke",
	"VA": "volcanic ash",
	"DU": "widespread dust",
	"SA": "sand",
	"HZ": "haze",
	"PY": "spray",
}

// Other phenomena codes
var otherCodes = map[string]string{
	"PO": "dust whirls",
	"SQ": "squalls",
	"FC": "funnel cloud",
	"SS": "sandstorm",
	"DS": "duststorm",
}

// Cloud coverage codes, including the no-cloud sentinels
var cloudCoverage = map[string]string{
	"SKC": "sky clear",
	"CLR": "clear",
	"NSC": "no significant clouds",
	"NCD": "no clouds detected",
	"FEW": "few clouds",
	"SCT": "scattered clouds",
	"BKN": "broken clouds",
	"OVC": "overcast",
	"VV":  "vertical visibility",
}

// Convective cloud type suffixes
var cloudTypes = map[string]string{
	"CB":  "cumulonimbus",
	"TCU": "towering cumulus",
}

var intensityCodes = map[string]string{
	"-": "light",
	"+": "heavy",
	"":  "moderate",
}

// Commonly used regular expressions. Body-group patterns are anchored: each one
// must claim a whole token.
var (
	stationRegex  = regexp.MustCompile(`^[A-Z]{4}$`)
	timeRegex     = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})Z$`)
	windRegex     = regexp.MustCompile(`^(VRB|\d{3})(\d{2,3})(G(\d{2,3}))?(KT|MPS)$`)
	windVarRegex  = regexp.MustCompile(`^(\d{3})V(\d{3})$`)
	visRegex      = regexp.MustCompile(`^(P)?(M)?(\d+(?:/\d+)?)SM$`)
	visWholeRegex = regexp.MustCompile(`^(M)?(\d+)$`)
	visFracRegex  = regexp.MustCompile(`^(\d+)/(\d+)SM$`)
	weatherRegex  = regexp.MustCompile(`^([-+])?(MI|BC|PR|DR|BL|SH|TS|FZ)?((?:DZ|RA|SN|SG|IC|PL|GR|GS|UP|BR|FG|FU|VA|DU|SA|HZ|PY|PO|SQ|FC|SS|DS)+)$`)
	cloudRegex    = regexp.MustCompile(`^(SKC|CLR|NSC|NCD|FEW|SCT|BKN|OVC|VV)(\d{3})?(CB|TCU)?$`)
	tempRegex     = regexp.MustCompile(`^(M?)(\d{2})/(M?)(\d{2})$`)
	pressureRegex = regexp.MustCompile(`^(A|Q)(\d{4})$`)
	validRegex    = regexp.MustCompile(`^(\d{2})(\d{2})/(\d{2})(\d{2})$`)
	fmRegex       = regexp.MustCompile(`^FM(\d{2})(\d{2})(\d{2})$`)
	probRegex     = regexp.MustCompile(`^PROB(\d{2})$`)
)
