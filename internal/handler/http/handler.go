// SPDX-License-Identifier: Apache-2.0

// Package http exposes the tokend endpoints: gateway-side token decoding,
// an encode endpoint for debugging, and a health probe.
package http

import (
	"github.com/bastion-tools/guactoken/internal/logger"
	"github.com/bastion-tools/guactoken/internal/token"
)

type Handler struct {
	codec *token.Codec

	logger *logger.Logger
}

func NewHandler(codec *token.Codec, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		codec:  codec,
		logger: logger,
	}
}
