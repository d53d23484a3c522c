// SPDX-License-Identifier: Apache-2.0

package config

import (
	"flag"
	"time"
)

// ParseFlags parses the tokend configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-key 32-character secret key shared with the gateway
//	-frontend-url base URL used when building connection URLs
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *Config {
	var serverAddress string
	var secretKey string
	var frontendURL string
	var jsonConfigPath string
	var requestTimeout time.Duration

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&secretKey, "key", "", "32-character secret key")
	flag.StringVar(&frontendURL, "frontend-url", "", "Frontend base URL")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &Config{
		App: App{
			SecretKey:   secretKey,
			FrontendURL: frontendURL,
		},
		Server: Server{
			Address:        serverAddress,
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}
