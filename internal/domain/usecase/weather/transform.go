package weather

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"weather-widget/internal/domain/entity"
	"weather-widget/internal/domain/model/external"
)

const (
	hourlyEntries = 5
	dailyEntries  = 5
	middaySample  = "12:00:00"

	hourLayout = "03:04 PM"
	dayLayout  = "Mon, 02 Jan"
)

var (
	errMissingMain    = errors.New("missing main readings")
	errMissingWeather = errors.New("missing weather condition")
	errMissingWind    = errors.New("missing wind readings")
	errMissingList    = errors.New("missing forecast list")
	errMissingCity    = errors.New("missing forecast city")
)

// Transformer turns provider responses into display records.
type Transformer struct {
	// IconBaseURL is the host and path that icon codes are appended to
	IconBaseURL string
	// Location is the zone daily labels are rendered in
	Location *time.Location
}

// IconURL returns the 2x icon image for an icon code.
func (t Transformer) IconURL(code string) string {
	return fmt.Sprintf("%s/%s@2x.png", strings.TrimRight(t.IconBaseURL, "/"), code)
}

// HourLabel renders a UTC timestamp shifted by the location's UTC offset as a 12-hour clock time.
func HourLabel(dt int64, offsetSeconds int64) string {
	return time.Unix(dt+offsetSeconds, 0).UTC().Format(hourLayout)
}

// DayLabel renders a timestamp as a short date in the transformer's zone,
// not the forecast location's.
func (t Transformer) DayLabel(dt int64) string {
	loc := t.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(dt, 0).In(loc).Format(dayLayout)
}

// floorTemperature rounds towards negative infinity, so -0.5 becomes -1.
func floorTemperature(value float64) int {
	return int(math.Floor(value))
}

// CurrentConditions extracts the current-conditions record.
func (t Transformer) CurrentConditions(resp *external.CurrentWeatherResponse) (*entity.CurrentConditions, error) {
	if resp.Main == nil {
		return nil, fmt.Errorf("current weather: %w", errMissingMain)
	}
	if len(resp.Weather) == 0 {
		return nil, fmt.Errorf("current weather: %w", errMissingWeather)
	}
	if resp.Wind == nil {
		return nil, fmt.Errorf("current weather: %w", errMissingWind)
	}

	return &entity.CurrentConditions{
		City:        resp.Name,
		Temperature: floorTemperature(resp.Main.Temp),
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed,
		Condition:   resp.Weather[0].Description,
		Icon:        t.IconURL(resp.Weather[0].Icon),
	}, nil
}

// HourlyForecast maps the first five forecast entries.
func (t Transformer) HourlyForecast(resp *external.ForecastResponse) ([]entity.HourlyEntry, error) {
	if resp.List == nil {
		return nil, fmt.Errorf("forecast: %w", errMissingList)
	}
	if resp.City == nil {
		return nil, fmt.Errorf("forecast: %w", errMissingCity)
	}

	n := min(len(resp.List), hourlyEntries)
	hourly := make([]entity.HourlyEntry, 0, n)
	for i, item := range resp.List[:n] {
		if item.Main == nil {
			return nil, fmt.Errorf("forecast entry %d: %w", i, errMissingMain)
		}
		if len(item.Weather) == 0 {
			return nil, fmt.Errorf("forecast entry %d: %w", i, errMissingWeather)
		}
		hourly = append(hourly, entity.HourlyEntry{
			Time:        HourLabel(item.Dt, resp.City.Timezone),
			Temperature: floorTemperature(item.Main.Temp),
			Icon:        t.IconURL(item.Weather[0].Icon),
		})
	}
	return hourly, nil
}

// DailyForecast keeps the first midday sample of each date label, in provider
// order, up to five days.
func (t Transformer) DailyForecast(resp *external.ForecastResponse) ([]entity.DailyEntry, error) {
	if resp.List == nil {
		return nil, fmt.Errorf("forecast: %w", errMissingList)
	}

	daily := make([]entity.DailyEntry, 0, dailyEntries)
	seen := make(map[string]struct{})
	for i, item := range resp.List {
		if !strings.Contains(item.DtTxt, middaySample) {
			continue
		}
		date := t.DayLabel(item.Dt)
		if _, ok := seen[date]; ok {
			continue
		}
		if item.Main == nil {
			return nil, fmt.Errorf("forecast entry %d: %w", i, errMissingMain)
		}
		if len(item.Weather) == 0 {
			return nil, fmt.Errorf("forecast entry %d: %w", i, errMissingWeather)
		}
		seen[date] = struct{}{}
		daily = append(daily, entity.DailyEntry{
			Date:    date,
			MinTemp: floorTemperature(item.Main.TempMin),
			MaxTemp: floorTemperature(item.Main.TempMax),
			Icon:    t.IconURL(item.Weather[0].Icon),
		})
	}

	if len(daily) > dailyEntries {
		daily = daily[:dailyEntries]
	}
	return daily, nil
}
