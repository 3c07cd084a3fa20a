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
// Create: 2026-03-08
// Description: This file implements the host overload detection

package aggregator

import (
	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/common/constant"
	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/core/detector"
	"isula.org/qosguard/pkg/core/pipeline"
	"isula.org/qosguard/pkg/core/registry"
	"isula.org/qosguard/pkg/core/typedef"
)

// Overload detects a host whose summed CPU usage exceeds the utilization threshold.
// The contention names the host as victim and its severity is the share of the host
// usage above the threshold, in [0, 1].
type Overload struct {
	pipeline.ConsumerBase
	pipeline.Producer[typedef.Contentions]
	host      typedef.EntityIdentity
	threshold float64
	detector  detector.Detector
	previous  map[typedef.EntityIdentity]*typedef.Statistics
}

// NewOverload returns a host overload detector for the named host
func NewOverload(conf *detector.Config, host string) (*Overload, error) {
	if conf == nil {
		return nil, errors.New("detector config is nil")
	}
	c := *conf
	c.Kind = detector.KindThreshold
	det, err := detector.New(&c)
	if err != nil {
		return nil, err
	}
	return &Overload{
		host:      typedef.EntityIdentity{Group: constant.HostGroup, ID: host},
		threshold: c.UtilizationThreshold,
		detector:  det,
		previous:  make(map[typedef.EntityIdentity]*typedef.Statistics),
	}, nil
}

// Host returns the identity used as victim
func (o *Overload) Host() typedef.EntityIdentity {
	return o.host
}

// Consume emits at most one contention for the host
func (o *Overload) Consume(u *typedef.Usage) error {
	if u == nil {
		return o.Emit(nil)
	}
	var (
		used    float64
		current = make(map[typedef.EntityIdentity]*typedef.Statistics, len(u.Records))
	)
	for i := range u.Records {
		rec := &u.Records[i]
		if !rec.Valid() {
			continue
		}
		current[rec.Identity] = rec.Stats
		prev, ok := o.previous[rec.Identity]
		if !ok {
			continue
		}
		rate, err := registry.CPURate(prev, rec.Stats)
		if err != nil {
			log.Debugf("overload: skip %v: %v", rec.Identity, err)
			continue
		}
		used += rate
	}
	o.previous = current

	if u.TotalCPUs <= 0 {
		log.Warnf("overload: snapshot carries no host CPU count")
		return o.Emit(nil)
	}
	d := o.detector.Process(used / u.TotalCPUs)
	if d == nil || d.NearLimit {
		return o.Emit(nil)
	}
	if typedef.CountValid(u.Evictable()) == 0 {
		log.Infof("overload: host uses %.2f of %.0f CPUs, no best-effort entity to evict", used, u.TotalCPUs)
		return o.Emit(nil)
	}
	log.Infof("overload: host uses %.2f of %.0f CPUs, threshold %.2f, severity %.4f",
		used, u.TotalCPUs, o.threshold, *d.Severity)
	return o.Emit(typedef.Contentions{{
		Type:      typedef.ContentionCPU,
		Severity:  d.Severity,
		Timestamp: u.Timestamp,
		Victim:    o.host,
	}})
}
