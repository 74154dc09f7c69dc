// internal/requestinfo/requestinfo.go
//
// Per-request metadata for the analytics collaborator.
//
// Context
// -------
// Canopy does not run analytics itself, but every API request is
// enriched with a small, inert struct (user-agent fingerprint, client
// IP + geolocation, URL, timestamp) that downstream services read off
// the request context.  The structs hold no database handles or large
// buffers, so they are safe to log or JSON-encode.
//
// Dependencies
// ------------
//   • github.com/avct/uasurfer          (UA parsing)
//   • github.com/oschwald/geoip2-golang (MaxMind lookup)
//
// Notes
// -----
// • Geo lookups are optional; without InitGeo only the IP is filled.
// • Oxford commas, two spaces after periods.
package requestinfo

import (
	"context"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	surfer "github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
)

//
// Struct definitions
//

// UA holds the parsed user-agent properties.
type UA struct {
	Raw         string // entire User-Agent header
	Browser     string // "Chrome", "Firefox", "Safari", …
	Version     string // "124.0.6367"
	OS          string // "macOS", "Windows", "Android", "iOS", …
	Device      string // "Desktop", "Mobile", "Tablet", "Other"
	IsBot       bool
	PrimaryLang string // first tag from Accept-Language ("en", "es", …)
}

// Geo holds IP-based geolocation hints.  Best-effort; fields may be
// empty when the DB has no match.
type Geo struct {
	IP         net.IP
	CountryISO string // "US", "CA", "FR", …
	City       string // "Chicago", "Paris", …
}

// RequestInfo is attached to the request context by Enrich.
type RequestInfo struct {
	UA        UA
	Geo       Geo
	URL       *url.URL // pointer copy, safe for read-only access
	Timestamp time.Time
}

//
// Package-level state
//

// geoReader is a singleton MaxMind handle, safe for concurrent reads.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2-City database.  Call once from main();
// skipping it disables geo enrichment.
func InitGeo(dbPath string) error {
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoReader = r
	return nil
}

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the struct stored by Enrich, or nil when the
// middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

//
// Internal helpers
//

// parseUA converts a raw header into our UA struct using uasurfer.
func parseUA(uaHeader, acceptLang string) UA {
	u := surfer.Parse(uaHeader)

	osName := u.OS.Name.String()
	if osName == "OSMacOSX" {
		osName = "macOS"
	}

	device := "Other"
	switch u.DeviceType {
	case surfer.DeviceComputer:
		device = "Desktop"
	case surfer.DeviceTablet:
		device = "Tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		device = "Mobile"
	}

	return UA{
		Raw:         uaHeader,
		Browser:     u.Browser.Name.String(),
		Version:     versionToString(u.Browser.Version),
		OS:          osName,
		Device:      device,
		IsBot:       u.IsBot(),
		PrimaryLang: primaryLang(acceptLang),
	}
}

// versionToString renders a semantic version in dotted form while
// trimming trailing zeros, e.g. 17.0.0 → "17", 17.3.0 → "17.3".
func versionToString(v surfer.Version) string {
	if v.Major == 0 && v.Minor == 0 && v.Patch == 0 {
		return ""
	}
	if v.Patch != 0 {
		return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
	}
	if v.Minor != 0 {
		return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
	}
	return strconv.Itoa(v.Major)
}

// primaryLang extracts the first language subtag before any ";q=" rule.
func primaryLang(al string) string {
	if al == "" {
		return ""
	}
	tag := strings.TrimSpace(strings.Split(al, ",")[0])
	if i := strings.Index(tag, ";"); i != -1 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}

// lookupGeo returns best-effort Geo data using the global reader.
func lookupGeo(ip net.IP) Geo {
	if geoReader == nil || ip == nil {
		return Geo{IP: ip}
	}
	rec, err := geoReader.City(ip)
	if err != nil {
		return Geo{IP: ip}
	}
	return Geo{
		IP:         ip,
		CountryISO: rec.Country.IsoCode,
		City:       rec.City.Names["en"],
	}
}
