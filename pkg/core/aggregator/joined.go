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
// Description: This file implements the victim/aggressor joined aggregator

package aggregator

import (
	"isula.org/qosguard/pkg/core/pipeline"
	"isula.org/qosguard/pkg/core/registry"
	"isula.org/qosguard/pkg/core/typedef"
)

// Joined pairs a victim stream with an aggressor stream.
// Whichever half arrives second runs the registry on the pair and clears both halves,
// so the result does not depend on the arrival order.
type Joined struct {
	pipeline.Producer[typedef.Contentions]
	registry *registry.Registry

	victim    *typedef.Usage
	aggressor *typedef.Usage

	victimIn    *pipeline.ConsumerFunc[*typedef.Usage]
	aggressorIn *pipeline.ConsumerFunc[*typedef.Usage]
}

// NewJoined returns a joined aggregator
func NewJoined(reg *registry.Registry) *Joined {
	j := &Joined{registry: reg}
	j.victimIn = pipeline.NewConsumerFunc(func(u *typedef.Usage) error {
		j.victim = u
		return j.detect()
	})
	j.aggressorIn = pipeline.NewConsumerFunc(func(u *typedef.Usage) error {
		j.aggressor = u
		return j.detect()
	})
	return j
}

// VictimIn is the consumer of victim usage
func (j *Joined) VictimIn() pipeline.Consumer[*typedef.Usage] {
	return j.victimIn
}

// AggressorIn is the consumer of aggressor usage
func (j *Joined) AggressorIn() pipeline.Consumer[*typedef.Usage] {
	return j.aggressorIn
}

// Registry returns the driven registry
func (j *Joined) Registry() *registry.Registry {
	return j.registry
}

func (j *Joined) detect() error {
	if j.victim == nil || j.aggressor == nil {
		return nil
	}
	victim, aggressor := j.victim, j.aggressor
	j.victim, j.aggressor = nil, nil

	evictable := typedef.CountValid(aggressor.Records)
	return j.Emit(j.registry.Run(victim.Records, evictable, victim.Timestamp))
}

// Reset drops a buffered half
func (j *Joined) Reset() {
	j.victim, j.aggressor = nil, nil
}
