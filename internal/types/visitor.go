package types

// Device types.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// Time-of-day buckets.
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeNight     = "night"
)

// Suggested themes.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

type GeoInfo struct {
	Country     string `json:"country,omitempty"`
	City        string `json:"city,omitempty"`
	Continent   string `json:"continent,omitempty"`
	Region      string `json:"region,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	IsEUCountry bool   `json:"isEUCountry"`
}

type DeviceInfo struct {
	Type    string `json:"type"`
	Browser string `json:"browser,omitempty"`
	OS      string `json:"os,omitempty"`
}

type TimeInfo struct {
	LocalHour int    `json:"localHour"`
	TimeOfDay string `json:"timeOfDay"`
	IsWeekend bool   `json:"isWeekend"`
}

type NetworkInfo struct {
	HTTPProtocol string `json:"httpProtocol"`
	Colo         string `json:"colo"`
}

// VisitorContext is derived fresh per request from headers and connection
// metadata. It is never persisted; only cache-keyed derivatives are.
type VisitorContext struct {
	Geo     GeoInfo     `json:"geo"`
	Device  DeviceInfo  `json:"device"`
	Time    TimeInfo    `json:"time"`
	Network NetworkInfo `json:"network"`
}

// UIHints is a pure derivation from VisitorContext.
type UIHints struct {
	SuggestedTheme      string `json:"suggestedTheme"`
	PreferCompactLayout bool   `json:"preferCompactLayout"`
}
