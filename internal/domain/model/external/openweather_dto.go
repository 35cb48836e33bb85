package external

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// CurrentWeatherResponse represents the response of the current weather endpoint (/weather)
type CurrentWeatherResponse struct {
	Name    string             `json:"name"`
	Main    *MainReadings      `json:"main"`
	Wind    *WindReadings      `json:"wind"`
	Weather []WeatherCondition `json:"weather"`
	Sys     *CurrentWeatherSys `json:"sys,omitempty"`
	Dt      int64              `json:"dt"`
	Cod     ResponseCode       `json:"cod"`
}

// CurrentWeatherSys holds country and sun times
type CurrentWeatherSys struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// MainReadings holds temperature and humidity readings in the requested units
type MainReadings struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

// WindReadings holds wind speed (m/s for metric units) and direction
type WindReadings struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

// WeatherCondition is one entry of the "weather" array
type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ForecastResponse represents the response of the 5 day / 3 hour forecast endpoint (/forecast)
type ForecastResponse struct {
	Cod  ResponseCode    `json:"cod"`
	Cnt  int             `json:"cnt"`
	List []ForecastEntry `json:"list"`
	City *ForecastCity   `json:"city"`
}

// ForecastEntry is one 3-hour forecast sample
type ForecastEntry struct {
	Dt      int64              `json:"dt"`
	DtTxt   string             `json:"dt_txt"`
	Main    *MainReadings      `json:"main"`
	Weather []WeatherCondition `json:"weather"`
	Wind    WindReadings       `json:"wind"`
}

// ForecastCity describes the forecast location; Timezone is the UTC offset in seconds
type ForecastCity struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Timezone int64  `json:"timezone"`
}

// OpenWeatherErrorResponse represents error responses from OpenWeatherMap
type OpenWeatherErrorResponse struct {
	Cod     ResponseCode `json:"cod"`
	Message string       `json:"message"`
}

// ResponseCode is the "cod" field, sent as a number by some endpoints and as a string by others
type ResponseCode string

// UnmarshalJSON accepts both 404 and "404"
func (c *ResponseCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ResponseCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = ResponseCode(n.String())
	return nil
}

// Int returns the numeric value of the code, or 0 when it is not numeric
func (c ResponseCode) Int() int {
	n, err := strconv.Atoi(string(c))
	if err != nil {
		return 0
	}
	return n
}
