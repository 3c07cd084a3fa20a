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
// Create: 2026-03-12
// Description: This file implements the detection and correction engine

// Package engine wires usage filters, aggregators and the correction observer into one pipeline
package engine

import (
	"sync"

	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/common/util"
	"isula.org/qosguard/pkg/core/aggregator"
	"isula.org/qosguard/pkg/core/decider"
	"isula.org/qosguard/pkg/core/filter"
	"isula.org/qosguard/pkg/core/pipeline"
	"isula.org/qosguard/pkg/core/registry"
	"isula.org/qosguard/pkg/core/typedef"
	"isula.org/qosguard/pkg/metrics"
)

// Engine turns usage snapshots into contentions and corrections.
// Ticks, resets and sink registration are serialized by the engine.
type Engine struct {
	sync.Mutex
	mode     string
	inputs   []*pipeline.Producer[*typedef.Usage]
	registry *registry.Registry
	joined   *aggregator.Joined
	observer *decider.Observer

	contentionSinks []api.ContentionSink
	correctionSinks []api.CorrectionSink

	// results of the running tick
	contentions typedef.Contentions
	corrections typedef.QoSCorrections
}

// New builds the engine. Without ages, entity ages are the time since their first sighting.
func New(conf *Config, ages api.AgeLookup) (*Engine, error) {
	if conf == nil {
		return nil, errors.New("engine config is nil")
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	extractor, err := registry.NewExtractor(conf.Registry.Extractor)
	if err != nil {
		return nil, err
	}
	reg, err := registry.New(conf.Detector, extractor,
		registry.WithName(conf.Registry.Extractor), registry.WithStaleTicks(conf.Registry.StaleTicks))
	if err != nil {
		return nil, err
	}
	d, err := decider.New(conf.Decider.Policy, decider.WithDefaultSeverity(conf.Decider.DefaultSeverity))
	if err != nil {
		return nil, err
	}

	e := &Engine{mode: conf.Aggregator.Mode, registry: reg}
	streams := 1
	if e.mode == ModeJoined {
		streams = 2
	}
	// every stream passes an optional age tracker and the ignore-new filter
	var (
		sources  = make([]*pipeline.Producer[*typedef.Usage], streams)
		trackers filter.AgeLookups
	)
	for i := 0; i < streams; i++ {
		in := &pipeline.Producer[*typedef.Usage]{}
		e.inputs = append(e.inputs, in)
		sources[i] = in
		if ages == nil {
			tracker := filter.NewAgeTracker()
			in.Subscribe(tracker)
			sources[i] = &tracker.Producer
			trackers = append(trackers, tracker)
		}
	}
	if ages == nil {
		ages = trackers
	}
	if conf.Decider.IgnoreYoungerThan > 0 {
		for i := range sources {
			ignore := filter.NewIgnoreNew(ages, conf.Decider.IgnoreYoungerThan)
			sources[i].Subscribe(ignore)
			sources[i] = &ignore.Producer
		}
	}

	var producers []*pipeline.Producer[typedef.Contentions]
	switch e.mode {
	case ModeJoined:
		e.joined = aggregator.NewJoined(reg)
		sources[0].Subscribe(e.joined.VictimIn())
		sources[1].Subscribe(e.joined.AggressorIn())
		producers = append(producers, &e.joined.Producer)
	default:
		single := aggregator.NewSingle(reg)
		sources[0].Subscribe(single)
		producers = append(producers, &single.Producer)
	}
	if conf.Aggregator.HostOverload {
		overload, err := aggregator.NewOverload(conf.Detector, conf.Aggregator.Host)
		if err != nil {
			return nil, err
		}
		sources[0].Subscribe(overload)
		producers = append(producers, &overload.Producer)
	}

	e.observer = decider.NewObserver(d, ages, len(producers), conf.Detector.ContentionCooldown)
	collect := pipeline.NewConsumerFunc(func(cs typedef.Contentions) error {
		e.contentions = append(e.contentions, cs...)
		return nil
	})
	for i, p := range producers {
		p.Subscribe(e.observer.ContentionIn(i))
		p.Subscribe(collect)
	}
	// the decider chooses among the entities of the last stream, the aggressors in joined mode
	sources[streams-1].Subscribe(e.observer.UsageIn())
	e.observer.Subscribe(pipeline.NewConsumerFunc(func(cs typedef.QoSCorrections) error {
		e.corrections = cs
		return nil
	}))
	return e, nil
}

// AddContentionSink registers a consumer of the contentions of every tick
func (e *Engine) AddContentionSink(sink api.ContentionSink) {
	e.Lock()
	e.contentionSinks = append(e.contentionSinks, sink)
	e.Unlock()
}

// AddCorrectionSink registers a consumer of the corrections of every tick
func (e *Engine) AddCorrectionSink(sink api.CorrectionSink) {
	e.Lock()
	e.correctionSinks = append(e.correctionSinks, sink)
	e.Unlock()
}

// Tick delivers one usage snapshot, or the victim and aggressor snapshots in joined mode,
// and returns what the tick detected and decided.
// A failed stage halts the tick, the results produced until then are returned with the error.
func (e *Engine) Tick(u *typedef.Usage, more ...*typedef.Usage) (typedef.Contentions, typedef.QoSCorrections, error) {
	e.Lock()
	defer e.Unlock()
	snapshots := append([]*typedef.Usage{u}, more...)
	if len(snapshots) != len(e.inputs) {
		return nil, nil, errors.Errorf("%s mode takes %d snapshots, got %d", e.mode, len(e.inputs), len(snapshots))
	}

	e.contentions, e.corrections = nil, nil
	for i, in := range e.inputs {
		if err := in.Emit(snapshots[i]); err != nil {
			e.abort()
			return e.contentions, e.corrections, errors.Wrapf(err, "stream %d", i)
		}
	}
	contentions, corrections := e.contentions, e.corrections
	metrics.RecordContentions(len(contentions))
	metrics.SetDetectors(e.registry.Name(), e.registry.Len())

	var err error
	for _, sink := range e.contentionSinks {
		err = util.AppendErr(err, sink.AcceptContentions(contentions))
	}
	for _, sink := range e.correctionSinks {
		err = util.AppendErr(err, sink.AcceptCorrections(corrections))
	}
	if err != nil {
		log.Errorf("failed to deliver tick results: %v", err)
	}
	return contentions, corrections, err
}

func (e *Engine) abort() {
	e.observer.Reset()
	if e.joined != nil {
		e.joined.Reset()
	}
}

// Reset clears the detector state of id, the detector keeps its sample window
func (e *Engine) Reset(id typedef.EntityIdentity) error {
	e.Lock()
	defer e.Unlock()
	return e.registry.Reset(id)
}

// ForceReset discards the detector of id, a fresh one starts on the next sample
func (e *Engine) ForceReset(id typedef.EntityIdentity) error {
	e.Lock()
	defer e.Unlock()
	return e.registry.ForceReset(id)
}

// Detectors returns the number of live detectors
func (e *Engine) Detectors() int {
	e.Lock()
	defer e.Unlock()
	return e.registry.Len()
}
