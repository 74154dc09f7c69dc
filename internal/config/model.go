// internal/config/model.go
//
// Typed configuration model for Canopy.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                          – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `CANOPY_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client before use, so secrets stay out of flat
// files and git history.
//
// Validation happens immediately after unmarshal; the app fails fast
// if required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not set it.
//   • Oxford commas, two spaces after periods.
package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr          string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS          bool   `koanf:"force_https"`
	ExposeResolveErrors bool   `koanf:"expose_resolve_errors"` // dev builds only
}

//
// Database section
//

// Database holds the control-plane DSN.  The password may be a
// `vault:` URI resolved at boot.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password" validate:"required"`
}

//
// Auth section
//

// Auth holds token-verification settings.  Canopy never issues
// tokens; the secret only verifies what the identity service signed.
type Auth struct {
	JWTSecret string `koanf:"jwt_secret" validate:"required"`
}

//
// Platform section
//

// Platform describes the hosted suffix used by slug resolution.
type Platform struct {
	BaseDomain  string `koanf:"base_domain"  validate:"required,hostname"`
	PanelMarker string `koanf:"panel_marker"`
}

//
// Geo section
//

// Geo points at the optional GeoLite2 database used by request
// enrichment.  Empty path disables geo lookups.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.
type Paths struct {
	Root string // CANOPY_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in
// an atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Auth     Auth     `koanf:"auth"`
	Platform Platform `koanf:"platform"`
	Geo      Geo      `koanf:"geo"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
