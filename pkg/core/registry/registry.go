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
// Create: 2026-03-07
// Description: This file implements the per-entity detector registry

// Package registry owns one detector per monitored entity
package registry

import (
	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/core/detector"
	"isula.org/qosguard/pkg/core/typedef"
	"isula.org/qosguard/pkg/metrics"
)

// ErrUnknownEntity is returned when resetting an entity without detector
var ErrUnknownEntity = errors.New("no detector for entity")

// Option customizes a Registry
type Option func(*Registry)

// WithName names the registry in logs and metrics
func WithName(name string) Option {
	return func(r *Registry) {
		r.name = name
	}
}

// WithStaleTicks drops the detector of an entity absent for k consecutive ticks, 0 keeps it forever
func WithStaleTicks(k int) Option {
	return func(r *Registry) {
		r.staleTicks = k
	}
}

// Registry maps entities to their detector and last usage record.
// It is not safe for concurrent use, callers serialize ticks.
type Registry struct {
	name       string
	conf       *detector.Config
	extractor  Extractor
	staleTicks int

	detectors map[typedef.EntityIdentity]detector.Detector
	previous  map[typedef.EntityIdentity]typedef.UsageRecord
	absent    map[typedef.EntityIdentity]int
}

// New returns a Registry creating detectors from conf
func New(conf *detector.Config, extractor Extractor, opts ...Option) (*Registry, error) {
	if extractor == nil {
		return nil, errors.New("extractor is nil")
	}
	if _, err := detector.New(conf); err != nil {
		return nil, err
	}
	c := *conf
	r := &Registry{
		name:      "registry",
		conf:      &c,
		extractor: extractor,
		detectors: make(map[typedef.EntityIdentity]detector.Detector),
		previous:  make(map[typedef.EntityIdentity]typedef.UsageRecord),
		absent:    make(map[typedef.EntityIdentity]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.staleTicks < 0 {
		return nil, errors.Errorf("staleTicks should not be negative: %d", r.staleTicks)
	}
	return r, nil
}

// Name returns the name of the registry
func (r *Registry) Name() string {
	return r.name
}

// Len returns the number of live detectors
func (r *Registry) Len() int {
	return len(r.detectors)
}

// Run processes the records of one tick and returns the contentions they confirm.
// evictable is the number of best-effort entities running in the same tick. When it is
// zero a confirmed detection cannot be corrected, so its detector is force reset and
// no contention is emitted.
func (r *Registry) Run(victims []typedef.UsageRecord, evictable int, ts float64) typedef.Contentions {
	var (
		res     typedef.Contentions
		current = make(map[typedef.EntityIdentity]typedef.UsageRecord, len(victims))
	)
	for i := range victims {
		rec := victims[i]
		if !rec.Valid() {
			log.Warnf("%s: drop usage record %q without identity or statistics", r.name, rec.Identity.String())
			metrics.RecordDroppedRecord(metrics.ReasonInvalid)
			continue
		}
		id := rec.Identity
		if _, dup := current[id]; dup {
			log.Warnf("%s: drop duplicated usage record of %v", r.name, id)
			metrics.RecordDroppedRecord(metrics.ReasonInvalid)
			continue
		}
		current[id] = rec

		det, ok := r.detectors[id]
		if !ok {
			r.newDetector(id)
			continue
		}
		prev, ok := r.previous[id]
		if !ok {
			continue
		}
		sample, err := r.extractor.Extract(prev.Stats, rec.Stats)
		if err != nil {
			log.Warnf("%s: skip %v this tick, %s extraction failed: %v", r.name, id, r.extractor.Name(), err)
			metrics.RecordDroppedRecord(metrics.ReasonExtraction)
			continue
		}
		d := det.Process(sample)
		if d == nil {
			continue
		}
		metrics.RecordDetection(d.NearLimit)
		if d.NearLimit {
			log.Infof("%s: %v is near the contention limit, sample %.4f", r.name, id, sample)
			continue
		}
		if evictable == 0 {
			log.Infof("%s: suppress contention on %v, no best-effort entity is running", r.name, id)
			metrics.RecordSuppressedFalsePositive()
			det.Reset()
			continue
		}
		res = append(res, typedef.Contention{
			Type:      typedef.ContentionCPU,
			Severity:  d.Severity,
			Timestamp: ts,
			Victim:    id,
		})
	}
	r.previous = current
	r.evictStale()
	metrics.SetDetectors(r.name, len(r.detectors))
	return res
}

// Reset clears the detection state of the entity, its sample history is kept
func (r *Registry) Reset(id typedef.EntityIdentity) error {
	det, ok := r.detectors[id]
	if !ok {
		return errors.Wrapf(ErrUnknownEntity, "reset %v", id)
	}
	det.Reset()
	return nil
}

// ForceReset replaces the detector of the entity with a fresh one
func (r *Registry) ForceReset(id typedef.EntityIdentity) error {
	if _, ok := r.detectors[id]; !ok {
		return errors.Wrapf(ErrUnknownEntity, "force reset %v", id)
	}
	r.newDetector(id)
	return nil
}

func (r *Registry) newDetector(id typedef.EntityIdentity) {
	// the config was validated in New
	det, err := detector.New(r.conf)
	if err != nil {
		log.Errorf("%s: create detector for %v: %v", r.name, id, err)
		return
	}
	r.detectors[id] = det
}

func (r *Registry) evictStale() {
	for id := range r.detectors {
		if _, ok := r.previous[id]; ok {
			delete(r.absent, id)
			continue
		}
		r.absent[id]++
		if r.staleTicks > 0 && r.absent[id] >= r.staleTicks {
			log.Infof("%s: drop detector of %v, absent for %d ticks", r.name, id, r.absent[id])
			delete(r.detectors, id)
			delete(r.absent, id)
			metrics.RecordStaleDetector()
		}
	}
}
