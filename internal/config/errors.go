package config

import "errors"

// Validation errors returned by Config.Validate. Callers can match them with
// errors.Is; Validate wraps them with the offending value where useful.
var (
	ErrEmptySiteDir        = errors.New("site_dir is required")
	ErrEmptyOutputDir      = errors.New("output_dir is required")
	ErrEmptyPartial        = errors.New("sidebar_partial and mobile_partial are required")
	ErrInvalidSiteRoot     = errors.New("site_root must start with /")
	ErrInvalidPartialsURL  = errors.New("partials_url must be an absolute http(s) URL")
	ErrInvalidFetchTimeout = errors.New("fetch_timeout_seconds must be positive")
	ErrInvalidPort         = errors.New("server.port must be between 0 and 65535")
)
