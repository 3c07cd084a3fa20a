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
// Create: 2026-03-10
// Description: This file defines the correction decider policies

// Package decider turns contentions into the ordered list of entities to evict
package decider

import (
	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/core/typedef"
)

// the supported policies
const (
	PolicyKillAll     = "kill-all"
	PolicySeniority   = "seniority"
	PolicyCPURecovery = "cpu-recovery"
)

// DefaultSeverity is the CPUs to recover for a contention without severity
const DefaultSeverity = 0.1

// Decider maps the contentions of one tick and the current usage to corrections
type Decider interface {
	Decide(ages api.AgeLookup, contentions typedef.Contentions, usage *typedef.Usage) (typedef.QoSCorrections, error)
}

// Option configures a decider
type Option func(*options)

type options struct {
	defaultSeverity float64
}

// WithDefaultSeverity sets the CPUs recovered for contentions without severity
func WithDefaultSeverity(sev float64) Option {
	return func(o *options) {
		o.defaultSeverity = sev
	}
}

// New returns the decider of the policy
func New(policy string, opts ...Option) (Decider, error) {
	o := &options{defaultSeverity: DefaultSeverity}
	for _, opt := range opts {
		opt(o)
	}
	switch policy {
	case PolicyKillAll:
		return &KillAll{}, nil
	case PolicySeniority:
		return &Seniority{}, nil
	case PolicyCPURecovery:
		if o.defaultSeverity <= 0 {
			return nil, errors.Errorf("defaultSeverity should be positive, got %v", o.defaultSeverity)
		}
		return &CPURecovery{DefaultSeverity: o.defaultSeverity}, nil
	default:
		return nil, errors.Errorf("unsupported decider policy %q", policy)
	}
}

func kill(id typedef.EntityIdentity) typedef.QoSCorrection {
	return typedef.QoSCorrection{Type: typedef.CorrectionKill, Target: id}
}

// evictablePool returns the valid best-effort records of u, each entity once
func evictablePool(u *typedef.Usage) []typedef.UsageRecord {
	var (
		pool []typedef.UsageRecord
		seen = make(map[typedef.EntityIdentity]struct{})
	)
	for _, r := range u.Evictable() {
		if !r.Valid() {
			continue
		}
		if _, ok := seen[r.Identity]; ok {
			continue
		}
		seen[r.Identity] = struct{}{}
		pool = append(pool, r)
	}
	return pool
}
