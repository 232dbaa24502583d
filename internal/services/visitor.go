package services

import (
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/folio-backend/internal/types"
)

// EU member states, ISO 3166-1 alpha-2.
var euCountries = map[string]bool{
	"AT": true, "BE": true, "BG": true, "HR": true, "CY": true, "CZ": true,
	"DK": true, "EE": true, "FI": true, "FR": true, "DE": true, "GR": true,
	"HU": true, "IE": true, "IT": true, "LV": true, "LT": true, "LU": true,
	"MT": true, "NL": true, "PL": true, "PT": true, "RO": true, "SK": true,
	"SI": true, "ES": true, "SE": true,
}

// ExtractVisitorContext derives device/geo/time/network facts from the
// request. It never fails: every field has a safe default (desktop device,
// UTC time, "unknown" colo, HTTP/1.1).
func ExtractVisitorContext(r *http.Request) types.VisitorContext {
	ctx := types.VisitorContext{
		Device:  types.DeviceInfo{Type: types.DeviceDesktop},
		Network: types.NetworkInfo{HTTPProtocol: "HTTP/1.1", Colo: "unknown"},
	}
	if r == nil {
		ctx.Time = deriveTimeInfo("", time.Now())
		return ctx
	}

	country := strings.ToUpper(strings.TrimSpace(r.Header.Get("CF-IPCountry")))
	ctx.Geo = types.GeoInfo{
		Country:     country,
		City:        strings.TrimSpace(r.Header.Get("CF-IPCity")),
		Continent:   strings.TrimSpace(r.Header.Get("CF-IPContinent")),
		Region:      strings.TrimSpace(r.Header.Get("CF-Region")),
		Timezone:    strings.TrimSpace(r.Header.Get("CF-Timezone")),
		IsEUCountry: euCountries[country],
	}

	ua := r.Header.Get("User-Agent")
	ctx.Device = types.DeviceInfo{
		Type:    classifyDevice(ua),
		Browser: detectBrowser(ua),
		OS:      detectOS(ua),
	}

	ctx.Time = deriveTimeInfo(ctx.Geo.Timezone, time.Now())

	if r.Proto != "" {
		ctx.Network.HTTPProtocol = r.Proto
	}
	if colo := coloFromRay(r.Header.Get("CF-Ray")); colo != "" {
		ctx.Network.Colo = colo
	}

	return ctx
}

// DeriveUIHints maps the visitor context to rendering hints: dark for
// evening/night, light for morning, system otherwise; compact layout on
// mobile only.
func DeriveUIHints(ctx types.VisitorContext) types.UIHints {
	theme := types.ThemeSystem
	switch ctx.Time.TimeOfDay {
	case types.TimeEvening, types.TimeNight:
		theme = types.ThemeDark
	case types.TimeMorning:
		theme = types.ThemeLight
	}
	return types.UIHints{
		SuggestedTheme:      theme,
		PreferCompactLayout: ctx.Device.Type == types.DeviceMobile,
	}
}

// ClientIP resolves the caller's address: connecting-IP header first, then
// the first entry of the forwarded-for chain, else "unknown".
func ClientIP(r *http.Request) string {
	if r == nil {
		return "unknown"
	}
	if ip := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		parts := strings.Split(fwd, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	return "unknown"
}

func classifyDevice(ua string) string {
	ua = strings.ToLower(strings.TrimSpace(ua))
	if ua == "" {
		return types.DeviceDesktop
	}

	tabletHint := strings.Contains(ua, "tablet") ||
		strings.Contains(ua, "ipad") ||
		strings.Contains(ua, "kindle") ||
		strings.Contains(ua, "silk")

	// Phone signals win over tablet signals.
	switch {
	case strings.Contains(ua, "iphone"),
		strings.Contains(ua, "ipod"),
		strings.Contains(ua, "windows phone"),
		strings.Contains(ua, "blackberry"):
		return types.DeviceMobile
	case strings.Contains(ua, "android") && strings.Contains(ua, "mobile"):
		return types.DeviceMobile
	case strings.Contains(ua, "mobile") && !tabletHint:
		return types.DeviceMobile
	}

	if tabletHint || strings.Contains(ua, "android") {
		return types.DeviceTablet
	}
	return types.DeviceDesktop
}

func detectBrowser(ua string) string {
	ua = strings.ToLower(ua)
	switch {
	case strings.Contains(ua, "edg"):
		return "Edge"
	case strings.Contains(ua, "opr") || strings.Contains(ua, "opera"):
		return "Opera"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "safari"):
		return "Safari"
	default:
		return ""
	}
}

func detectOS(ua string) string {
	ua = strings.ToLower(ua)
	switch {
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ipod"):
		return "iOS"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "mac os x"), strings.Contains(ua, "macintosh"):
		return "macOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	default:
		return ""
	}
}

func deriveTimeInfo(tz string, now time.Time) types.TimeInfo {
	local := now.UTC()
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			local = now.In(loc)
		}
	}
	hour := local.Hour()
	wd := local.Weekday()
	return types.TimeInfo{
		LocalHour: hour,
		TimeOfDay: timeOfDay(hour),
		IsWeekend: wd == time.Saturday || wd == time.Sunday,
	}
}

func timeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return types.TimeMorning
	case hour >= 12 && hour < 17:
		return types.TimeAfternoon
	case hour >= 17 && hour < 21:
		return types.TimeEvening
	default:
		return types.TimeNight
	}
}

// coloFromRay pulls the datacenter code from a CF-Ray value such as
// "8c6c2f3a4b5d6e7f-SJC".
func coloFromRay(ray string) string {
	ray = strings.TrimSpace(ray)
	if ray == "" {
		return ""
	}
	idx := strings.LastIndex(ray, "-")
	if idx < 0 || idx == len(ray)-1 {
		return ""
	}
	return strings.ToUpper(ray[idx+1:])
}
