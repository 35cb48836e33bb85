package view

import (
	"bytes"
	"strings"
	"testing"

	"weather-widget/internal/domain/entity"
)

func render(t *testing.T, page WidgetPage) string {
	t.Helper()
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, WidgetTemplate, page, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestRenderWidget(t *testing.T) {
	s := entity.NewWidgetState("s1")
	s.DarkMode = true
	s.LastCity = "Tirupati"
	s.Current = &entity.CurrentConditions{
		City: "Tirupati", Temperature: 28, Humidity: 62, WindSpeed: 3.6,
		Condition: "scattered clouds", Icon: "https://openweathermap.org/img/wn/03d@2x.png",
	}
	s.Hourly = []entity.HourlyEntry{{Time: "02:30 PM", Temperature: 27, Icon: "https://openweathermap.org/img/wn/04d@2x.png"}}
	s.Daily = []entity.DailyEntry{{Date: "Wed, 15 Nov", MinTemp: 18, MaxTemp: 24, Icon: "https://openweathermap.org/img/wn/10d@2x.png"}}

	out := render(t, WidgetPage{State: s, BasePath: "/weather-widget"})

	for _, want := range []string{
		`<body class="dark">`,
		`action="/weather-widget/search"`,
		`28&deg;C`,
		"scattered clouds",
		"62%",
		"3.6 m/s",
		`class="icon humidity-dark"`,
		`class="icon wind-dark"`,
		"02:30 PM",
		"Wed, 15 Nov",
		"18&deg;C / 24&deg;C",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered page is missing %q", want)
		}
	}
	if strings.Contains(out, "Loading...") {
		t.Error("placeholder rendered next to current conditions")
	}
}

func TestRenderWidgetWithoutData(t *testing.T) {
	s := entity.NewWidgetState("s1")
	s.Message = "City not found. Please enter a valid location."

	out := render(t, WidgetPage{State: s})

	if !strings.Contains(out, `<body class="light">`) || !strings.Contains(out, "Loading...") {
		t.Fatal("expected light theme with placeholder")
	}
	if !strings.Contains(out, `<p class="message">City not found. Please enter a valid location.</p>`) {
		t.Fatal("message not rendered")
	}
}

func TestRenderEscapesMessage(t *testing.T) {
	s := entity.NewWidgetState("s1")
	s.LastCity = `"><script>alert(1)</script>`

	out := render(t, WidgetPage{State: s})
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Fatal("city was not escaped")
	}
}

func TestRenderLightReadingIcons(t *testing.T) {
	s := entity.NewWidgetState("s1")
	s.Current = &entity.CurrentConditions{City: "Oslo", Temperature: 12, Humidity: 80, WindSpeed: 5.1}

	out := render(t, WidgetPage{State: s})
	if !strings.Contains(out, `class="icon humidity-light"`) || !strings.Contains(out, `class="icon wind-light"`) {
		t.Fatal("light reading icons not rendered")
	}
	if strings.Contains(out, `class="icon humidity-dark"`) || strings.Contains(out, `class="icon wind-dark"`) {
		t.Fatal("dark reading icons rendered in light mode")
	}
}
