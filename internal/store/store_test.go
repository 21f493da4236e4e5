package store

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/flightbrief/flightbrief/wx"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *clockwork.FakeClock) {
	t.Helper()
	s, err := Open(":memory:", ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	clock := clockwork.NewFakeClockAt(time.Date(2025, time.March, 15, 18, 0, 0, 0, time.UTC))
	s.SetClock(clock)
	return s, clock
}

func sampleMETAR() *wx.METAR {
	return &wx.METAR{
		Station:         "KJFK",
		ObservationTime: time.Date(2025, time.March, 15, 17, 51, 0, 0, time.UTC),
		Raw:             "KJFK 151751Z 18004KT 10SM FEW055 23/17 A3012",
		Wind:            &wx.Wind{Direction: ptr.To(180), Speed: 4, Unit: "KT"},
		Visibility:      &wx.Visibility{Value: 10, Unit: "SM"},
		Clouds:          []wx.CloudLayer{{Coverage: "FEW", Altitude: ptr.To(5500)}},
		Temperature:     &wx.Temperature{Temperature: 23, Dewpoint: 17},
		Pressure:        &wx.Pressure{Value: 30.12, Unit: "inHg"},
		FlightCategory:  wx.CategoryVFR,
	}
}

func sampleTAF() *wx.TAF {
	return &wx.TAF{
		Station:   "KJFK",
		IssueTime: time.Date(2025, time.April, 4, 11, 30, 0, 0, time.UTC),
		ValidFrom: time.Date(2025, time.April, 4, 12, 0, 0, 0, time.UTC),
		ValidTo:   time.Date(2025, time.April, 5, 18, 0, 0, 0, time.UTC),
		Raw:       "TAF KJFK 041130Z 0412/0518 18005KT P6SM SCT050",
		Periods: []wx.TafPeriod{{
			From: time.Date(2025, time.April, 4, 12, 0, 0, 0, time.UTC),
			To:   time.Date(2025, time.April, 5, 18, 0, 0, 0, time.UTC),
			Wind: &wx.Wind{Direction: ptr.To(180), Speed: 5, Unit: "KT"},
		}},
	}
}

func TestStoreMETARRoundTrip(t *testing.T) {
	s, _ := newTestStore(t, 10*time.Minute)

	require.NoError(t, s.SaveMETAR(sampleMETAR()))

	rec, cachedAt, err := s.METAR("kjfk")
	require.NoError(t, err)
	assert.Equal(t, sampleMETAR(), rec)
	assert.Equal(t, time.Date(2025, time.March, 15, 18, 0, 0, 0, time.UTC), cachedAt)
}

func TestStoreMETARNotFound(t *testing.T) {
	s, _ := newTestStore(t, 10*time.Minute)

	_, _, err := s.METAR("KLGA")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreFreshMETAR(t *testing.T) {
	s, clock := newTestStore(t, 10*time.Minute)

	require.NoError(t, s.SaveMETAR(sampleMETAR()))

	rec, err := s.FreshMETAR("KJFK")
	require.NoError(t, err)
	assert.Equal(t, "KJFK", rec.Station)

	clock.Advance(9 * time.Minute)
	_, err = s.FreshMETAR("KJFK")
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = s.FreshMETAR("KJFK")
	assert.ErrorIs(t, err, ErrNotFound)

	// Stale data is still reachable through the unconditional lookup.
	rec, _, err = s.METAR("KJFK")
	require.NoError(t, err)
	assert.Equal(t, "KJFK", rec.Station)
}

func TestStoreTAFRoundTrip(t *testing.T) {
	s, clock := newTestStore(t, 10*time.Minute)

	require.NoError(t, s.SaveTAF(sampleTAF()))

	rec, err := s.FreshTAF("KJFK")
	require.NoError(t, err)
	assert.Equal(t, sampleTAF(), rec)

	clock.Advance(time.Hour)
	_, err = s.FreshTAF("KJFK")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreReplacesExisting(t *testing.T) {
	s, _ := newTestStore(t, 10*time.Minute)

	require.NoError(t, s.SaveMETAR(sampleMETAR()))

	updated := sampleMETAR()
	updated.Raw = "KJFK 151851Z 19006KT 10SM FEW055 22/16 A3010"
	require.NoError(t, s.SaveMETAR(updated))

	rec, _, err := s.METAR("KJFK")
	require.NoError(t, err)
	assert.Equal(t, updated.Raw, rec.Raw)
}

func TestStorePrune(t *testing.T) {
	s, clock := newTestStore(t, 10*time.Minute)

	require.NoError(t, s.SaveMETAR(sampleMETAR()))
	require.NoError(t, s.SaveTAF(sampleTAF()))

	clock.Advance(25 * time.Hour)
	require.NoError(t, s.Prune(24*time.Hour))

	_, _, err := s.METAR("KJFK")
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = s.TAF("KJFK")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreStations(t *testing.T) {
	s, _ := newTestStore(t, 10*time.Minute)

	station := Station{
		ICAO:         "KJFK",
		Name:         "John F Kennedy Intl",
		Latitude:     40.6398,
		Longitude:    -73.7789,
		Elevation:    13,
		Favorite:     true,
		LastAccessed: time.Date(2025, time.March, 15, 17, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveStation(station))
	require.NoError(t, s.SaveStation(Station{ICAO: "KLGA", Name: "LaGuardia"}))

	got, err := s.Station("kjfk")
	require.NoError(t, err)
	assert.Equal(t, station, got)

	favorites, err := s.FavoriteStations()
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "KJFK", favorites[0].ICAO)

	_, err = s.Station("EGLL")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreSettings(t *testing.T) {
	s, _ := newTestStore(t, 10*time.Minute)

	// Defaults before anything is saved.
	settings, err := s.Settings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)

	settings.DefaultStations = []string{"KJFK", "KBOS"}
	settings.TemperatureUnit = "F"
	require.NoError(t, s.SaveSettings(settings))

	got, err := s.Settings()
	require.NoError(t, err)
	assert.Equal(t, settings, got)
}
