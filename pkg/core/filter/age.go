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
// Description: This file implements the entity age tracker

// Package filter holds usage stages placed in front of the aggregators
package filter

import (
	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/core/pipeline"
	"isula.org/qosguard/pkg/core/typedef"
)

// ErrUnknownAge is returned for an entity that was never seen
var ErrUnknownAge = errors.New("entity was never seen")

// AgeTracker remembers when each entity was first seen and passes usage through.
// It serves as age lookup when no cluster knows the start time of entities.
type AgeTracker struct {
	pipeline.ConsumerBase
	pipeline.Producer[*typedef.Usage]
	now       float64
	firstSeen map[typedef.EntityIdentity]float64
}

// NewAgeTracker returns an empty AgeTracker
func NewAgeTracker() *AgeTracker {
	return &AgeTracker{firstSeen: make(map[typedef.EntityIdentity]float64)}
}

// Consume records the entities of u, entities missing from u are forgotten
func (a *AgeTracker) Consume(u *typedef.Usage) error {
	if u == nil {
		return a.Emit(u)
	}
	seen := make(map[typedef.EntityIdentity]float64, len(u.Records))
	for i := range u.Records {
		id := u.Records[i].Identity
		if id.IsZero() {
			continue
		}
		if first, ok := a.firstSeen[id]; ok {
			seen[id] = first
			continue
		}
		seen[id] = u.Timestamp
	}
	a.firstSeen = seen
	a.now = u.Timestamp
	return a.Emit(u)
}

// Age returns the seconds between the first sighting of id and the latest snapshot
func (a *AgeTracker) Age(id typedef.EntityIdentity) (float64, error) {
	first, ok := a.firstSeen[id]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownAge, "age of %v", id)
	}
	return a.now - first, nil
}

// AgeLookups asks each lookup in turn and returns the first age found
type AgeLookups []api.AgeLookup

// Age implements api.AgeLookup
func (l AgeLookups) Age(id typedef.EntityIdentity) (float64, error) {
	err := errors.Wrapf(ErrUnknownAge, "age of %v", id)
	for _, lookup := range l {
		age, lerr := lookup.Age(id)
		if lerr == nil {
			return age, nil
		}
		err = lerr
	}
	return 0, err
}
