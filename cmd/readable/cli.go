package main

import (
	"time"

	readablehttp "github.com/fwojciec/readable/http"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Addr      string        `default:":8000" env:"READABLE_ADDR" help:"Address to listen on"`
	Timeout   time.Duration `default:"10s" env:"READABLE_TIMEOUT" help:"Timeout for fetching a page"`
	Extractor string        `default:"readability" enum:"readability,trafilatura" env:"READABLE_EXTRACTOR" help:"Article extraction engine (readability, trafilatura)"`
	Render    bool          `env:"READABLE_RENDER" help:"Render pages in headless Chrome before extracting"`
	UserAgent string        `default:"${user_agent}" env:"READABLE_USER_AGENT" help:"User-Agent sent to article sites"`
	LogFormat string        `default:"text" enum:"text,json" env:"READABLE_LOG_FORMAT" help:"Log format (text, json)"`
	LogLevel  string        `default:"info" enum:"debug,info,warn,error" env:"READABLE_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
}

// vars are interpolated into CLI tags.
var vars = map[string]string{
	"user_agent": readablehttp.DefaultUserAgent,
}
