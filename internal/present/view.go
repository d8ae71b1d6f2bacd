package present

import (
	"fmt"
	"time"

	"github.com/awaistahir/skycast/internal/forecast"
	"github.com/awaistahir/skycast/internal/weather"
)

// View receives the UI transitions of a lookup
type View interface {
	ShowLoading()
	HideLoading()
	ShowError(message string)
	HideError()
	Render(current CurrentView, cards []Card)
}

// Zoned is implemented by views that know the viewer's time zone
type Zoned interface {
	Location() *time.Location
}

// CurrentView is the current-conditions panel
type CurrentView struct {
	Location    string `json:"location"`
	Date        string `json:"date"`
	Temp        string `json:"temp"`
	Description string `json:"description"`
	FeelsLike   string `json:"feels_like"`
	Humidity    string `json:"humidity"`
	Wind        string `json:"wind"`
	Pressure    string `json:"pressure"`
	IconURL     string `json:"icon_url"`
	IconAlt     string `json:"icon_alt"`
}

// Card is one day of the forecast strip
type Card struct {
	Day         string `json:"day"`
	Date        string `json:"date"`
	IconURL     string `json:"icon_url"`
	Temp        string `json:"temp"`
	Description string `json:"description"`
	Wind        string `json:"wind"`
	Humidity    string `json:"humidity"`
}

// IconResolver maps provider icon codes to image URLs
type IconResolver interface {
	IconURL(code string) string
}

// Presenter turns weather data into view models
type Presenter struct {
	icons IconResolver
	loc   *time.Location
	now   func() time.Time
}

// NewPresenter creates a presenter formatting dates in loc (time.Local when nil)
func NewPresenter(icons IconResolver, loc *time.Location) *Presenter {
	if loc == nil {
		loc = time.Local
	}
	return &Presenter{icons: icons, loc: loc, now: time.Now}
}

// Location returns the zone used for dates
func (p *Presenter) Location() *time.Location {
	return p.loc
}

// Current builds the current-conditions panel; the date shown is today
func (p *Presenter) Current(c *weather.Current) CurrentView {
	return CurrentView{
		Location:    fmt.Sprintf("%s, %s", c.Name, c.Country),
		Date:        FormatLongDate(p.now().In(p.loc)),
		Temp:        fmt.Sprintf("%d°C", Round(c.TempC)),
		Description: Capitalize(c.Description),
		FeelsLike:   fmt.Sprintf("%d°C", Round(c.FeelsLikeC)),
		Humidity:    fmt.Sprintf("%d%%", c.Humidity),
		Wind:        fmt.Sprintf("%d km/h", WindKmh(c.WindMps)),
		Pressure:    fmt.Sprintf("%d hPa", c.PressureHPa),
		IconURL:     p.icons.IconURL(c.Icon),
		IconAlt:     c.Description,
	}
}

// Cards builds one forecast card per daily sample
func (p *Presenter) Cards(daily []forecast.Sample) []Card {
	cards := make([]Card, 0, len(daily))
	for _, s := range daily {
		t := s.Time.In(p.loc)
		cards = append(cards, Card{
			Day:         FormatDayName(t),
			Date:        FormatShortDate(t),
			IconURL:     p.icons.IconURL(s.Icon),
			Temp:        fmt.Sprintf("%d°C", Round(s.TempC)),
			Description: Capitalize(s.Description),
			Wind:        fmt.Sprintf("%d km/h", WindKmh(s.WindMps)),
			Humidity:    fmt.Sprintf("%d%%", s.Humidity),
		})
	}
	return cards
}
