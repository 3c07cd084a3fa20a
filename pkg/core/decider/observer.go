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
// Create: 2026-03-11
// Description: This file implements the correction observer

package decider

import (
	"sort"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/core/pipeline"
	"isula.org/qosguard/pkg/core/typedef"
	"isula.org/qosguard/pkg/metrics"
)

// Observer joins the contentions of several producers with the latest usage
// and emits the corrections chosen by its decider once both are known for a tick
type Observer struct {
	pipeline.Producer[typedef.QoSCorrections]
	decider  Decider
	ages     api.AgeLookup
	join     *pipeline.SyncConsumer[typedef.Contentions]
	usageIn  *pipeline.ConsumerFunc[*typedef.Usage]
	cooldown int
	// blocked counts the ticks left in the cool-down period
	blocked     int
	contentions typedef.Contentions
	joined      bool
	usage       *typedef.Usage
	hasUsage    bool
}

// NewObserver returns an observer joining producers contention streams.
// After emitting corrections it ignores contentions for cooldown ticks.
func NewObserver(d Decider, ages api.AgeLookup, producers, cooldown int) *Observer {
	o := &Observer{decider: d, ages: ages, cooldown: cooldown}
	o.join = pipeline.NewSyncConsumer(producers, o.merge)
	o.usageIn = pipeline.NewConsumerFunc(o.consumeUsage)
	return o
}

// ContentionIn returns the intake of the i-th contention producer
func (o *Observer) ContentionIn(i int) pipeline.Consumer[typedef.Contentions] {
	return o.join.Input(i)
}

// UsageIn returns the intake of the usage stream
func (o *Observer) UsageIn() pipeline.Consumer[*typedef.Usage] {
	return o.usageIn
}

// Reset drops the partial state of the current tick
func (o *Observer) Reset() {
	o.join.Reset()
	o.contentions, o.joined = nil, false
	o.usage, o.hasUsage = nil, false
}

func (o *Observer) merge(batches []typedef.Contentions) error {
	var merged typedef.Contentions
	for _, b := range batches {
		merged = append(merged, b...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return severer(merged[i], merged[j])
	})
	o.contentions, o.joined = merged, true
	return o.correct()
}

func (o *Observer) consumeUsage(u *typedef.Usage) error {
	o.usage, o.hasUsage = u, true
	return o.correct()
}

// severer orders contentions by severity, contentions without severity last
func severer(a, b typedef.Contention) bool {
	if a.Severity == nil {
		return false
	}
	if b.Severity == nil {
		return true
	}
	return *a.Severity > *b.Severity
}

func (o *Observer) correct() error {
	if !o.joined || !o.hasUsage {
		return nil
	}
	contentions, usage := o.contentions, o.usage
	o.contentions, o.joined = nil, false
	o.usage, o.hasUsage = nil, false

	if o.blocked > 0 {
		o.blocked--
		log.Debugf("cooling down, %d contentions ignored, %d ticks left", len(contentions), o.blocked)
		return o.Emit(typedef.QoSCorrections{})
	}
	if len(contentions) == 0 {
		return o.Emit(typedef.QoSCorrections{})
	}
	corrections, err := o.decider.Decide(o.ages, contentions, usage)
	if err != nil {
		log.Errorf("failed to decide corrections for %d contentions: %v", len(contentions), err)
		return o.Emit(typedef.QoSCorrections{})
	}
	if len(corrections) > 0 {
		o.blocked = o.cooldown
		metrics.RecordCorrections(len(corrections))
	}
	return o.Emit(corrections)
}
