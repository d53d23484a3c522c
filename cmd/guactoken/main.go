// SPDX-License-Identifier: Apache-2.0

// Command guactoken builds an encrypted connection token for the guacamole
// gateway and prints it (or a full connection URL) to stdout.
//
// Examples:
//
//	guactoken -protocol rdp -host 192.168.1.100 -user Administrator -password pass123
//	guactoken -protocol ssh -host 192.168.1.101 -user ubuntu -password pass123
//	guactoken -protocol vnc -host 192.168.1.102 -password vncpass -port 5901
//	guactoken -protocol rdp -host 192.168.1.100 -user Admin -password pass -output-url
//	guactoken -join CONNECTION_ID -read-only
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/bastion-tools/guactoken/internal/adapter"
	"github.com/bastion-tools/guactoken/internal/config"
	"github.com/bastion-tools/guactoken/internal/descriptor"
	"github.com/bastion-tools/guactoken/internal/logger"
	"github.com/bastion-tools/guactoken/internal/token"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// requestFlags holds the per-invocation connection parameters parsed from
// the command line. Config-level values (key, URLs) go through the config
// package instead.
type requestFlags struct {
	protocol   string
	host       string
	port       int
	user       string
	password   string
	privateKey string
	width      int
	height     int

	// Feature flags default to on but can be turned off explicitly
	// (e.g. -enable-drive=false).
	enableDrive     bool
	enableSFTP      bool
	enableRecording bool

	join     string
	readOnly bool

	outputURL bool
	verify    bool
}

func main() {
	log := logger.NewLogger("guactoken")
	log.Debug().
		Str("version", buildVersion).
		Str("date", buildDate).
		Str("commit", buildCommit).
		Msg("build info")

	req, flagCfg := parseFlags()

	cfg, err := config.GetClientConfig(flagCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	d, err := buildDescriptor(req)
	if err != nil {
		var vErr *descriptor.ValidationError
		if errors.As(err, &vErr) {
			usageError(err)
		}
		log.Fatal().Err(err).Msg("error building descriptor")
	}

	codec, err := token.NewCodec([]byte(cfg.App.SecretKey))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating codec")
	}

	tok, err := codec.Encrypt(d)
	if err != nil {
		log.Fatal().Err(err).Msg("error encrypting descriptor")
	}

	if req.verify {
		verifyToken(cfg, tok, log)
	}

	if req.outputURL {
		fmt.Printf("%s/?token=%s\n", strings.TrimRight(cfg.App.FrontendURL, "/"), url.QueryEscape(tok))
	} else {
		fmt.Println(tok)
	}
}

// parseFlags defines and parses the full CLI flag surface. It returns the
// request parameters and a config layer carrying the flag-supplied config
// values for the merge in [config.GetClientConfig].
func parseFlags() (*requestFlags, *config.Config) {
	req := &requestFlags{}
	var secretKey, frontendURL, verifyURL, jsonConfigPath string

	flag.StringVar(&secretKey, "key", "", "32-character secret key")
	flag.StringVar(&req.protocol, "protocol", "", "Connection protocol: rdp, ssh or vnc")
	flag.StringVar(&req.host, "host", "", "Remote host address")
	flag.IntVar(&req.port, "port", 0, "Remote port (VNC only)")
	flag.StringVar(&req.user, "user", "", "Username")
	flag.StringVar(&req.password, "password", "", "Password")
	flag.StringVar(&req.privateKey, "private-key", "", "SSH private key (SSH only)")
	flag.IntVar(&req.width, "width", descriptor.DefaultWidth, "Screen width")
	flag.IntVar(&req.height, "height", descriptor.DefaultHeight, "Screen height")
	flag.BoolVar(&req.enableDrive, "enable-drive", true, "Enable file transfer drive (RDP)")
	flag.BoolVar(&req.enableSFTP, "enable-sftp", true, "Enable SFTP (SSH)")
	flag.BoolVar(&req.enableRecording, "enable-recording", true, "Enable session recording")
	flag.StringVar(&req.join, "join", "", "Join existing session by connection ID")
	flag.BoolVar(&req.readOnly, "read-only", false, "Join session in read-only mode")
	flag.BoolVar(&req.outputURL, "output-url", false, "Output full connection URL instead of just token")
	flag.StringVar(&frontendURL, "frontend-url", "", "Frontend base URL")
	flag.BoolVar(&req.verify, "verify", false, "Verify the token against a running decode service")
	flag.StringVar(&verifyURL, "verify-url", "", "Decode service base URL for -verify")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return req, &config.Config{
		App: config.App{
			SecretKey:   secretKey,
			FrontendURL: frontendURL,
			VerifyURL:   verifyURL,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// buildDescriptor selects the request kind from the parsed flags and calls
// the matching builder. Join mode wins over -protocol when both are given,
// matching the historical behaviour of the tool.
func buildDescriptor(req *requestFlags) (descriptor.Descriptor, error) {
	if req.join != "" {
		return descriptor.Join(req.join, req.readOnly)
	}

	switch req.protocol {
	case "rdp":
		return descriptor.RDP(descriptor.RDPParams{
			Hostname:        req.host,
			Username:        req.user,
			Password:        req.password,
			Width:           req.width,
			Height:          req.height,
			EnableDrive:     req.enableDrive,
			EnableRecording: req.enableRecording,
		})
	case "ssh":
		return descriptor.SSH(descriptor.SSHParams{
			Hostname:        req.host,
			Username:        req.user,
			Password:        req.password,
			PrivateKey:      req.privateKey,
			EnableSFTP:      req.enableSFTP,
			EnableRecording: req.enableRecording,
		})
	case "vnc":
		return descriptor.VNC(descriptor.VNCParams{
			Hostname:        req.host,
			Password:        req.password,
			Port:            req.port,
			EnableRecording: req.enableRecording,
		})
	case "":
		return nil, &descriptor.ValidationError{Mode: "token", Missing: []string{"-protocol or -join"}}
	default:
		return nil, &descriptor.ValidationError{Mode: "token", Missing: []string{"a known -protocol (rdp, ssh or vnc)"}}
	}
}

// verifyToken posts tok to the configured decode service and exits non-zero
// if the round-trip fails.
func verifyToken(cfg *config.Config, tok string, log *logger.Logger) {
	verifyURL := cfg.App.VerifyURL
	if verifyURL == "" {
		log.Fatal().Msg("-verify requires -verify-url or GUAC_VERIFY_URL")
	}

	client := adapter.NewTokendAdapter(adapter.HTTPClientConfig{
		BaseURL: verifyURL,
		Timeout: cfg.Server.RequestTimeout,
	})

	d, err := client.Verify(context.Background(), tok)
	if err != nil {
		log.Fatal().Err(err).Msg("token verification failed")
	}

	log.Info().
		Str("protocol", d.Protocol()).
		Str("hostname", d.Hostname()).
		Msg("token verified against decode service")
}

// usageError prints a usage-style error to stderr and exits with the
// conventional flag-parse status code.
func usageError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
	fmt.Fprintln(os.Stderr, "run with -h for usage")
	os.Exit(2)
}
