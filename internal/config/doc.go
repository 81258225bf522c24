// Package config manages application configuration for the Event Board API.
//
// Configuration is read from environment variables into a tagged struct.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win over the file.
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: port, environment, timeouts, CORS origins, static dir
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: shared secret, issuer and lifetime for bearer tokens
//   - RateLimitConfig: per-client request rate
//   - NotifyConfig: Redis change notifications
//   - EventsConfig: whether PUT and DELETE require a token
//
// # Environment Variables
//
//	SERVER_PORT               - HTTP port (default: 3001)
//	SERVER_ENV                - development, production or test
//	CORS_ALLOWED_ORIGINS      - comma separated origins (default: *)
//	STATIC_DIR                - directory served at / (default: ./build)
//	DB_HOST, DB_PORT          - SurrealDB address (default: localhost:8000)
//	JWT_SECRET                - shared HS256 secret (required)
//	REDIS_URL                 - enables change notifications when set
//	EVENTS_PROTECT_MUTATIONS  - require a token on PUT and DELETE
package config
