package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

// validate reports every problem at once so a bad deployment is fixed in
// one round
func (c *Config) validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	db := c.Database
	switch {
	case db.MaxOpenConns <= 0:
		fail("database.max_open_conns must be positive")
	case db.MaxIdleConns < 0:
		fail("database.max_idle_conns cannot be negative")
	case db.MaxIdleConns > db.MaxOpenConns:
		fail("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)", db.MaxIdleConns, db.MaxOpenConns)
	}

	switch c.Storage.Backend {
	case "memory":
	case "s3":
		if c.Storage.PublicBaseURL == "" {
			fail("storage.public_base_url is required for the s3 backend")
		}
	default:
		fail("storage.backend must be 's3' or 'memory', got %q", c.Storage.Backend)
	}

	switch c.Catalog.CacheBackend {
	case "memory", "none":
	case "redis":
		if !c.Redis.Enabled() {
			fail("catalog.cache_backend=redis requires redis.host")
		}
	default:
		fail("catalog.cache_backend must be 'redis', 'memory' or 'none', got %q", c.Catalog.CacheBackend)
	}

	if _, err := url.ParseRequestURI(c.Catalog.PublicOrigin); err != nil {
		fail("catalog.public_origin is not a valid URL: %w", err)
	}
	if t := c.AI.Temperature; t < 0 || t > 2 {
		fail("ai.temperature must be between 0 and 2, got %g", t)
	}
	if r := c.Telemetry.SamplingRatio; r < 0 || r > 1 {
		fail("telemetry.sampling_ratio must be between 0 and 1, got %g", r)
	}

	if c.App.IsProduction() {
		errs = append(errs, c.validateProduction()...)
	}
	return errors.Join(errs...)
}

func (c *Config) validateProduction() []error {
	var errs []error
	fail := func(msg string) { errs = append(errs, errors.New(msg)) }

	switch {
	case c.JWT.Secret == "":
		fail("jwt.secret is required in production")
	case len(c.JWT.Secret) < 32:
		fail("jwt.secret must be at least 32 characters in production")
	}
	if c.Database.Password == "" {
		fail("database.password is required in production")
	}
	if c.Database.SSLMode == "disable" {
		fail("database.sslmode cannot be 'disable' in production")
	}
	// SameSite=none without Secure is covered here as well
	if !c.Cookie.Secure {
		fail("cookie.secure must be true in production")
	}
	if slices.Contains(c.HTTP.CORSAllowOrigins, "*") {
		fail("http.cors_allow_origins cannot contain '*' in production")
	}
	if c.Storage.Backend == "memory" {
		fail("storage.backend=memory is not allowed in production")
	}
	if c.Swagger.Enabled && !c.Swagger.RequireAuth && len(c.Swagger.AllowedIPs) == 0 {
		fail("swagger endpoint must be disabled, require authentication, or have an IP allow list in production")
	}
	if c.Telemetry.DBLogFullSQL {
		fail("telemetry.db_log_full_sql must be false in production")
	}
	return errs
}
