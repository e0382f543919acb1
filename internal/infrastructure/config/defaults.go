package config

import "time"

// defaults lists every key, including those whose default is empty, so that
// CATALOG_* variables reach Unmarshal even without a config file.
var defaults = map[string]any{
	"app.name": "catalog-api",
	"app.env":  "development",
	"app.port": "8080",

	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "catalog",
	"database.sslmode":            "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,
	"database.auto_migrate":       false,

	"redis.host":     "",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"jwt.secret":                   "",
	"jwt.refresh_secret":           "",
	"jwt.issuer":                   "catalog-api",
	"jwt.access_token_expiration":  15 * time.Minute,
	"jwt.refresh_token_expiration": 7 * 24 * time.Hour,
	"jwt.max_refresh_count":        10,

	"auth.max_login_attempts": 5,
	"auth.lock_duration":      30 * time.Minute,

	"cookie.domain":    "",
	"cookie.path":      "/",
	"cookie.secure":    false,
	"cookie.same_site": "lax",

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":             15 * time.Second,
	"http.write_timeout":            30 * time.Second,
	"http.idle_timeout":             60 * time.Second,
	"http.max_header_bytes":         1 << 20,
	"http.max_body_size":            int64(1 << 20),
	"http.max_upload_size":          int64(80 << 20), // 15 images of 5MiB plus form overhead
	"http.rate_limit_enabled":       false,
	"http.rate_limit_requests":      100,
	"http.rate_limit_window":        time.Minute,
	"http.auth_rate_limit_enabled":  false,
	"http.auth_rate_limit_requests": 5,
	"http.auth_rate_limit_window":   time.Minute,
	"http.cors_allow_origins":       []string{},
	"http.cors_allow_methods":       []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
	"http.cors_allow_headers":       []string{"Content-Type", "Authorization", "X-Request-ID"},
	"http.trusted_proxies":          []string{},

	"storage.backend":           "memory",
	"storage.bucket":            "product-images",
	"storage.region":            "us-east-1",
	"storage.endpoint":          "",
	"storage.access_key_id":     "",
	"storage.secret_access_key": "",
	"storage.use_path_style":    false,
	"storage.public_base_url":   "",

	"ai.api_key":     "",
	"ai.base_url":    "https://api.openai.com/v1",
	"ai.model":       "gpt-4o-mini",
	"ai.max_tokens":  300,
	"ai.temperature": 0.7,
	"ai.timeout":     10 * time.Second,

	"catalog.public_origin": "",
	"catalog.cache_backend": "",
	"catalog.cache_ttl":     5 * time.Minute,

	"swagger.enabled":      false,
	"swagger.require_auth": false,
	"swagger.allowed_ips":  []string{},

	"telemetry.enabled":                 false,
	"telemetry.collector_endpoint":      "localhost:4317",
	"telemetry.sampling_ratio":          1.0,
	"telemetry.service_name":            "catalog-api",
	"telemetry.insecure":                false,
	"telemetry.db_trace_enabled":        false,
	"telemetry.db_log_full_sql":         false,
	"telemetry.db_slow_query_threshold": 200 * time.Millisecond,
	"telemetry.metrics_enabled":         false,
	"telemetry.metrics_interval":        time.Minute,
}

// derive fills the settings whose default depends on other settings
func (c *Config) derive() {
	if c.Catalog.PublicOrigin == "" {
		c.Catalog.PublicOrigin = "http://localhost:" + c.App.Port
	}
	if c.Catalog.CacheBackend == "" {
		c.Catalog.CacheBackend = "memory"
		if c.Redis.Enabled() {
			c.Catalog.CacheBackend = "redis"
		}
	}
}
