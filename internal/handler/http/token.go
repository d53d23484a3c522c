// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bastion-tools/guactoken/internal/descriptor"
	"github.com/bastion-tools/guactoken/internal/logger"
	"github.com/bastion-tools/guactoken/internal/token"
)

// decodeRequest is the body of POST /api/token/decode.
type decodeRequest struct {
	Token string `json:"token"`
}

// encodeResponse is the body of POST /api/token/encode.
type encodeResponse struct {
	Token string `json:"token"`
}

// decode decrypts a token and returns the descriptor it carries. A token
// that fails any decode step yields 400 with no body beyond the error text;
// a partial descriptor is never written.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req decodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.decode").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.Token == "" {
		http.Error(w, "missing token field", http.StatusBadRequest)
		return
	}

	var d descriptor.Descriptor
	if err := h.codec.Decrypt(req.Token, &d); err != nil {
		if errors.Is(err, token.ErrDecode) {
			log.Err(err).Str("func", "*Handler.decode").Msg("token decode failed")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Err(err).Str("func", "*Handler.decode").Msg("error decrypting token")
		http.Error(w, "error decrypting token", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("protocol", d.Protocol()).
		Str("hostname", d.Hostname()).
		Msg("token decoded")

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(d); err != nil {
		log.Err(err).Str("func", "*Handler.decode").Msg("error writing response")
	}
}

// encode encrypts a descriptor posted as raw JSON and returns the resulting
// token. Debugging aid; the CLI is the normal producer of tokens.
func (h *Handler) encode(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var d descriptor.Descriptor
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		log.Err(err).Str("func", "*Handler.encode").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if _, ok := d["connection"]; !ok {
		http.Error(w, "descriptor must have a connection key", http.StatusBadRequest)
		return
	}

	tok, err := h.codec.Encrypt(d)
	if err != nil {
		log.Err(err).Str("func", "*Handler.encode").Msg("error encrypting descriptor")
		http.Error(w, "error encrypting descriptor", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(encodeResponse{Token: tok}); err != nil {
		log.Err(err).Str("func", "*Handler.encode").Msg("error writing response")
	}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
