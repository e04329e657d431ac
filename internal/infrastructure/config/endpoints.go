package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Environment selects which endpoint set the gateway talks to.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
	EnvTest        Environment = "test"
)

// BuildEnv may be stamped at build time:
//
//	go build -ldflags "-X .../config.BuildEnv=production"
var BuildEnv string

// EndpointSet maps the four logical endpoints to concrete base URLs.
type EndpointSet struct {
	APIBase string
	WS      string
	MarketA string
	MarketB string
}

var endpointSets = map[Environment]EndpointSet{
	EnvDevelopment: {
		// Development intentionally points at the live API; there is no
		// locally runnable upstream.
		APIBase: "https://apii.wenturc.com",
		WS:      "wss://apii.wenturc.com",
		MarketA: "https://www.jasongjz.top/api/v1",
		MarketB: "https://prompt.614447.xyz/api",
	},
	EnvProduction: {
		APIBase: "https://apii.wenturc.com",
		WS:      "wss://apii.wenturc.com",
		MarketA: "https://www.jasongjz.top/api/v1",
		MarketB: "https://prompt.614447.xyz/api",
	},
	EnvTest: {
		APIBase: "https://apii.wenturc.com",
		WS:      "wss://apii.wenturc.com",
		MarketA: "https://www.jasongjz.top/api/v1",
		MarketB: "https://prompt.614447.xyz/api",
	},
}

// productionHosts is the hostname allow-list consulted as the last
// detection source before falling back to development.
var productionHosts = map[string]struct{}{
	"prompt.wenturc.com": {},
	"www.wenturc.com":    {},
	"wenturc.com":        {},
}

// Source is one named environment-detection input. Lookup returns "" when
// the source has nothing to say.
type Source struct {
	Name   string
	Lookup func() string
}

// DefaultSources returns the detection cascade in precedence order:
// explicit override, build-time flag, generic production marker, hosting
// platform markers, hostname allow-list.
func DefaultSources(hostname string) []Source {
	return Sources(os.Getenv, hostname)
}

// Sources builds the cascade against an arbitrary env lookup, which keeps
// resolution testable without touching the process environment.
func Sources(getenv func(string) string, hostname string) []Source {
	return []Source{
		{Name: "override", Lookup: func() string { return getenv("APP_ENV") }},
		{Name: "build-flag", Lookup: func() string { return BuildEnv }},
		{Name: "go-env", Lookup: func() string { return getenv("GO_ENV") }},
		{Name: "platform", Lookup: func() string {
			for _, marker := range []string{"VERCEL", "NETLIFY", "CF_PAGES", "GITHUB_ACTIONS"} {
				if getenv(marker) != "" {
					return string(EnvProduction)
				}
			}
			return ""
		}},
		{Name: "hostname", Lookup: func() string {
			if _, ok := productionHosts[strings.ToLower(hostname)]; ok {
				return string(EnvProduction)
			}
			return ""
		}},
	}
}

// ResolveEnvironment walks the sources in order and returns the first
// defined result, defaulting to development.
func ResolveEnvironment(sources ...Source) Environment {
	for _, src := range sources {
		if v := normalizeEnv(src.Lookup()); v != "" {
			return v
		}
	}
	return EnvDevelopment
}

// EndpointsFor always returns a complete endpoint set; unrecognised
// environments fall back to the development mapping.
func EndpointsFor(env Environment) EndpointSet {
	if set, ok := endpointSets[env]; ok {
		return set
	}
	return endpointSets[EnvDevelopment]
}

// Resolve runs the default cascade once and logs the outcome. Observability
// only; resolution never fails.
func Resolve(log zerolog.Logger) (Environment, EndpointSet) {
	hostname, _ := os.Hostname()
	env := ResolveEnvironment(DefaultSources(hostname)...)
	set := EndpointsFor(env)

	log.Info().
		Str("environment", string(env)).
		Str("api_base", set.APIBase).
		Str("ws", set.WS).
		Str("market_a", set.MarketA).
		Str("market_b", set.MarketB).
		Msg("resolved endpoint set")

	return env, set
}

func normalizeEnv(v string) Environment {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "production", "prod":
		return EnvProduction
	case "test", "testing":
		return EnvTest
	case "development", "dev":
		return EnvDevelopment
	default:
		return ""
	}
}
