package config

// Config is the top-level sitenav configuration, corresponding to .sitenav.yml.
type Config struct {
	SiteDir   string `yaml:"site_dir" koanf:"site_dir"`
	OutputDir string `yaml:"output_dir" koanf:"output_dir"`
	// SiteRoot is the URL path the site is served under, e.g. "/" or "/docs/".
	SiteRoot string `yaml:"site_root" koanf:"site_root"`
	// PartialsURL, when set, is the base URL partials are fetched from
	// instead of the site directory.
	PartialsURL         string       `yaml:"partials_url" koanf:"partials_url"`
	SidebarPartial      string       `yaml:"sidebar_partial" koanf:"sidebar_partial"`
	MobilePartial       string       `yaml:"mobile_partial" koanf:"mobile_partial"`
	RewriteMobile       bool         `yaml:"rewrite_mobile" koanf:"rewrite_mobile"`
	GenerateSidebar     bool         `yaml:"generate_sidebar" koanf:"generate_sidebar"`
	ProjectName         string       `yaml:"project_name" koanf:"project_name"`
	Include             []string     `yaml:"include" koanf:"include"`
	Exclude             []string     `yaml:"exclude" koanf:"exclude"`
	Strict              bool         `yaml:"strict" koanf:"strict"`
	FetchTimeoutSeconds int          `yaml:"fetch_timeout_seconds" koanf:"fetch_timeout_seconds"`
	Server              ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds dev server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
