package wx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestExtractWind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens string
		want   *Wind
		left   int
	}{
		{
			name:   "simple",
			tokens: "18004KT",
			want:   &Wind{Direction: ptr.To(180), Speed: 4, Unit: "KT"},
		},
		{
			name:   "gusting",
			tokens: "28015G25KT",
			want:   &Wind{Direction: ptr.To(280), Speed: 15, Gust: ptr.To(25), Unit: "KT"},
		},
		{
			name:   "variable direction",
			tokens: "VRB03KT",
			want:   &Wind{Variable: true, Speed: 3, Unit: "KT"},
		},
		{
			name:   "variable range",
			tokens: "24010KT 210V280",
			want: &Wind{
				Direction:    ptr.To(240),
				Speed:        10,
				VariableFrom: ptr.To(210),
				VariableTo:   ptr.To(280),
				Unit:         "KT",
			},
		},
		{
			name:   "meters per second",
			tokens: "14003MPS",
			want:   &Wind{Direction: ptr.To(140), Speed: 3, Unit: "MPS"},
		},
		{
			name:   "calm",
			tokens: "00000KT",
			want:   &Wind{Direction: ptr.To(0), Speed: 0, Unit: "KT"},
		},
		{
			name:   "three digit speed",
			tokens: "240104G130KT",
			want:   &Wind{Direction: ptr.To(240), Speed: 104, Gust: ptr.To(130), Unit: "KT"},
		},
		{
			name:   "skips unrelated tokens",
			tokens: "10SM 18004KT",
			want:   &Wind{Direction: ptr.To(180), Speed: 4, Unit: "KT"},
			left:   1,
		},
		{
			name:   "absent",
			tokens: "10SM FEW055",
			want:   nil,
			left:   2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tl := newTokenList(tt.tokens)
			assert.Equal(t, tt.want, extractWind(tl))
			assert.Equal(t, tt.left, tl.len())
		})
	}
}

func TestExtractVisibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens string
		want   *Visibility
	}{
		{name: "whole miles", tokens: "10SM", want: &Visibility{Value: 10, Unit: "SM"}},
		{name: "fraction", tokens: "1/2SM", want: &Visibility{Value: 0.5, Unit: "SM"}},
		{name: "mixed number", tokens: "1 1/2SM", want: &Visibility{Value: 1.5, Unit: "SM"}},
		{
			name:   "less than quarter mile",
			tokens: "M1/4SM",
			want:   &Visibility{Value: 0.25, Unit: "SM", LessThan: true},
		},
		{name: "greater than six", tokens: "P6SM", want: &Visibility{Value: 10, Unit: "SM"}},
		{name: "absent", tokens: "FEW055 23/17", want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extractVisibility(newTokenList(tt.tokens)))
		})
	}
}

func TestExtractWeather(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens string
		want   []Phenomenon
	}{
		{
			name:   "thunderstorm with rain",
			tokens: "-TSRA",
			want: []Phenomenon{
				{Intensity: "-", Descriptor: "TS", Precipitation: []string{"RA"}},
			},
		},
		{
			name:   "heavy showers",
			tokens: "+SHRA",
			want: []Phenomenon{
				{Intensity: "+", Descriptor: "SH", Precipitation: []string{"RA"}},
			},
		},
		{
			name:   "obscuration only",
			tokens: "BR",
			want:   []Phenomenon{{Obscuration: []string{"BR"}}},
		},
		{
			name:   "freezing fog",
			tokens: "FZFG",
			want:   []Phenomenon{{Descriptor: "FZ", Obscuration: []string{"FG"}}},
		},
		{
			name:   "concatenated codes",
			tokens: "TSRAGR",
			want: []Phenomenon{
				{Descriptor: "TS", Precipitation: []string{"RA", "GR"}},
			},
		},
		{
			name:   "multiple groups in order",
			tokens: "-RA BR",
			want: []Phenomenon{
				{Intensity: "-", Precipitation: []string{"RA"}},
				{Obscuration: []string{"BR"}},
			},
		},
		{
			name:   "other phenomena",
			tokens: "+FC",
			want:   []Phenomenon{{Intensity: "+", Other: []string{"FC"}}},
		},
		{name: "none", tokens: "FEW055 A3012", want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extractWeather(newTokenList(tt.tokens)))
		})
	}
}

func TestExtractClouds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens string
		want   []CloudLayer
	}{
		{
			name:   "single layer",
			tokens: "FEW055",
			want:   []CloudLayer{{Coverage: "FEW", Altitude: ptr.To(5500)}},
		},
		{
			name:   "stacked layers in order",
			tokens: "FEW055 SCT193 BKN240",
			want: []CloudLayer{
				{Coverage: "FEW", Altitude: ptr.To(5500)},
				{Coverage: "SCT", Altitude: ptr.To(19300)},
				{Coverage: "BKN", Altitude: ptr.To(24000)},
			},
		},
		{
			name:   "cumulonimbus",
			tokens: "BKN025CB",
			want:   []CloudLayer{{Coverage: "BKN", Altitude: ptr.To(2500), Type: "CB"}},
		},
		{
			name:   "vertical visibility",
			tokens: "VV004",
			want:   []CloudLayer{{Coverage: "VV", Altitude: ptr.To(400)}},
		},
		{
			name:   "clear sentinel without altitude",
			tokens: "CLR",
			want:   []CloudLayer{{Coverage: "CLR"}},
		},
		{name: "none", tokens: "10SM A3012", want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extractClouds(newTokenList(tt.tokens)))
		})
	}
}

func TestExtractTemperature(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens string
		want   *Temperature
	}{
		{name: "positive pair", tokens: "23/17", want: &Temperature{Temperature: 23, Dewpoint: 17}},
		{name: "negative pair", tokens: "M03/M06", want: &Temperature{Temperature: -3, Dewpoint: -6}},
		{name: "negative dewpoint only", tokens: "02/M01", want: &Temperature{Temperature: 2, Dewpoint: -1}},
		{name: "absent", tokens: "A3012", want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extractTemperature(newTokenList(tt.tokens)))
		})
	}
}

func TestExtractPressure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens string
		want   *Pressure
	}{
		{name: "altimeter inches", tokens: "A3012", want: &Pressure{Value: 30.12, Unit: "inHg"}},
		{name: "QNH hectopascals", tokens: "Q1013", want: &Pressure{Value: 1013, Unit: "hPa"}},
		{name: "absent", tokens: "23/17", want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extractPressure(newTokenList(tt.tokens)))
		})
	}
}

func TestTokenListRemoveAll(t *testing.T) {
	t.Parallel()

	tl := newTokenList("AUTO 18004KT AUTO 10SM")
	require.True(t, tl.removeAll("AUTO"))
	assert.Equal(t, []string{"18004KT", "10SM"}, tl.rest())
	assert.False(t, tl.removeAll("AUTO"))
}
