// SPDX-License-Identifier: Apache-2.0

// Command tokend runs the gateway-side token decode service. It exposes the
// codec's decrypt path over HTTP so operators can inspect and verify tokens
// without touching the gateway itself.
package main

import (
	"github.com/bastion-tools/guactoken/internal/config"
	myHTTP "github.com/bastion-tools/guactoken/internal/handler/http"
	"github.com/bastion-tools/guactoken/internal/logger"
	"github.com/bastion-tools/guactoken/internal/server"
	"github.com/bastion-tools/guactoken/internal/token"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("tokend")
	log.Debug().
		Str("version", buildVersion).
		Str("date", buildDate).
		Str("commit", buildCommit).
		Msg("build info")

	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("address", cfg.Server.Address).Msg("received configs")

	codec, err := token.NewCodec([]byte(cfg.App.SecretKey))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating codec")
	}

	handler := myHTTP.NewHandler(codec, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
