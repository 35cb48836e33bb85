package entity

// CurrentConditions is the present-moment snapshot shown in the left panel.
type CurrentConditions struct {
	City        string  `json:"city"`
	Temperature int     `json:"temperature"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Condition   string  `json:"weatherCondition"`
	Icon        string  `json:"weatherIcon"`
}

// HourlyEntry is one of the first forecast samples, labelled in the location's local time.
type HourlyEntry struct {
	Time        string `json:"time"`
	Temperature int    `json:"temperature"`
	Icon        string `json:"icon"`
}

// DailyEntry is the midday sample of one calendar day.
type DailyEntry struct {
	Date    string `json:"date"`
	MinTemp int    `json:"minTemp"`
	MaxTemp int    `json:"maxTemp"`
	Icon    string `json:"icon"`
}
