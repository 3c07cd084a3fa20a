// Copyright (c) Huawei Technologies Co., Ltd. 2026. All rights reserved.
// qosguard licensed under the Mulan PSL v2.
// You can use this software according to the terms and conditions of the Mulan PSL v2.
// You may obtain a copy of Mulan PSL v2 at:
//     http://license.coscl.org.cn/MulanPSL2
// THIS SOFTWARE IS PROVIDED ON AN "AS IS" BASIS, WITHOUT WARRANTIES OF ANY KIND, EITHER EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO NON-INFRINGEMENT, MERCHANTABILITY OR FIT FOR A PARTICULAR
// PURPOSE.
// See the Mulan PSL v2 for more details.
// Author: qosguard team
// Create: 2026-03-19
// Description: This file contains the http handlers

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/core/registry"
	"isula.org/qosguard/pkg/core/typedef"
)

type errorResponse struct {
	Error string `json:"error"`
}

type resetResponse struct {
	Entity typedef.EntityIdentity `json:"entity"`
	Force  bool                   `json:"force"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	if !s.ctrl.Healthy() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	if !s.ctrl.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleLastTick(w http.ResponseWriter, _ *http.Request) {
	report, ok := s.ctrl.LastTick()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no tick has run yet"})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReset(force bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := typedef.EntityIdentity{Group: chi.URLParam(r, groupParam), ID: chi.URLParam(r, idParam)}
		reset := s.ctrl.ResetDetector
		if force {
			reset = s.ctrl.ForceResetDetector
		}
		if err := reset(id); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, registry.ErrUnknownEntity) {
				status = http.StatusNotFound
			}
			writeJSON(w, status, errorResponse{Error: err.Error()})
			return
		}
		log.Infof("detector of %v reset over http, force: %v", id, force)
		writeJSON(w, http.StatusOK, resetResponse{Entity: id, Force: force})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
