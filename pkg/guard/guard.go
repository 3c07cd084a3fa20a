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
// Create: 2026-03-20
// Description: This file is used for the qosguard daemon

// Package guard runs the qosguard daemon
package guard

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/wait"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/common/constant"
	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/common/util"
	"isula.org/qosguard/pkg/config"
	"isula.org/qosguard/pkg/core/engine"
	"isula.org/qosguard/pkg/core/trigger"
	"isula.org/qosguard/pkg/core/typedef"
	"isula.org/qosguard/pkg/httpserver"
	"isula.org/qosguard/pkg/lib/kubernetes"
	"isula.org/qosguard/pkg/lib/schedule"
	"isula.org/qosguard/pkg/resource"
	"isula.org/qosguard/pkg/resource/manager/cadvisor"
	"isula.org/qosguard/pkg/resource/manager/common"
)

// restartDuration is the pause before the tick loop restarts after a panic
const restartDuration = 2 * time.Second

// Deps are the collaborators of the guard
type Deps struct {
	Source   api.UsageSource
	Enforcer api.Enforcer
	// Ages may be nil, entity ages are then the time since their first sighting
	Ages api.AgeLookup
	// Start runs background loops the source depends on, it may be nil
	Start func(ctx context.Context) error
	// Stop releases what Start acquired, it may be nil
	Stop func() error
}

// Guard runs the tick loop of qosguard
type Guard struct {
	conf     *config.Config
	deps     Deps
	engine   *engine.Engine
	schedule *schedule.Schedule
	server   *httpserver.Server

	mu      sync.RWMutex
	last    *typedef.TickReport
	started atomic.Bool
	ticked  atomic.Bool
}

// New builds the guard from a loaded configuration and its collaborators
func New(conf *config.Config, deps Deps) (*Guard, error) {
	if conf == nil {
		return nil, errors.New("config is nil")
	}
	if deps.Source == nil || deps.Enforcer == nil {
		return nil, errors.New("usage source and enforcer are required")
	}
	s, err := schedule.Parse(conf.Schedule)
	if err != nil {
		return nil, err
	}
	e, err := engine.New(conf.Engine, deps.Ages)
	if err != nil {
		return nil, errors.Wrap(err, "error building engine")
	}
	g := &Guard{
		conf:     conf,
		deps:     deps,
		engine:   e,
		schedule: s,
	}
	g.server = httpserver.New(g, conf.Server.Addr)
	return g, nil
}

// NewFromConfig builds the guard with the kubernetes backed collaborators
func NewFromConfig(conf *config.Config) (*Guard, error) {
	client, err := kubernetes.GetClient()
	if err != nil {
		return nil, errors.Wrap(err, "error initializing kubernetes client")
	}
	nodeName := conf.Agent.NodeName
	if nodeName == "" {
		nodeName = os.Getenv(constant.NodeNameEnvKey)
	}
	if nodeName == "" {
		return nil, errors.Errorf("node name is not set, set agent.nodeName or %s", constant.NodeNameEnvKey)
	}
	conf.Engine.Aggregator.Host = nodeName
	population := kubernetes.NewPopulation(client.Kube, nodeName)

	srcDeps := resource.Deps{
		Viewer:       population,
		Metrics:      client.Metrics,
		PerfDuration: time.Duration(conf.Source.PerfDuration) * time.Millisecond,
	}
	var manager common.Manager
	if conf.Source.Type == resource.SourceCadvisor {
		m, err := cadvisor.New(cadvisor.NewConfig())
		if err != nil {
			return nil, errors.Wrap(err, "error creating cadvisor manager")
		}
		manager, srcDeps.Cadvisor = m, m
	}
	source, err := resource.NewSource(conf.Source.Type, srcDeps)
	if err != nil {
		return nil, err
	}

	return New(conf, Deps{
		Source:   source,
		Enforcer: trigger.NewEnforcer(conf.Enforcement, population, client.Kube),
		Ages:     population,
		Start: func(ctx context.Context) error {
			if err := population.Sync(ctx); err != nil {
				log.Warnf("initial pod population sync failed: %v", err)
			}
			go population.Start(ctx, constant.DefaultPopulationPeriod)
			if manager != nil {
				return manager.Start()
			}
			return nil
		},
		Stop: func() error {
			if manager != nil {
				return manager.Stop()
			}
			return nil
		},
	})
}

// Start starts the collaborators, the http server and the tick loop
func (g *Guard) Start(ctx context.Context) error {
	if g.deps.Start != nil {
		if err := g.deps.Start(ctx); err != nil {
			return errors.Wrap(err, "error starting usage source")
		}
	}
	if err := g.server.Start(ctx); err != nil {
		return err
	}
	go g.loop(ctx)
	g.started.Store(true)
	log.Infof("qosguard started, source %s, schedule %q", g.deps.Source.Name(), g.schedule.String())
	return nil
}

// Stop shuts the http server down and releases the collaborators
func (g *Guard) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), constant.ShutdownTimeout)
	defer cancel()
	var err error
	err = util.AppendErr(err, g.server.Shutdown(ctx))
	if g.deps.Stop != nil {
		err = util.AppendErr(err, g.deps.Stop())
	}
	g.started.Store(false)
	return err
}

// loop runs ticks on the schedule until ctx is done, a panicking tick restarts the loop
func (g *Guard) loop(ctx context.Context) {
	var restartCount int64
	wait.UntilWithContext(ctx, func(ctx context.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Stackf("tick loop catch a panic: %v", err)
			}
		}()
		if restartCount > 0 {
			log.Warnf("tick loop has restart %v times", restartCount)
		}
		restartCount++
		g.runSchedule(ctx)
	}, restartDuration)
}

func (g *Guard) runSchedule(ctx context.Context) {
	for {
		now := time.Now()
		timer := time.NewTimer(g.schedule.Next(now).Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			g.Tick(ctx)
		}
	}
}

// Healthy reports whether the guard is running
func (g *Guard) Healthy() bool {
	return g.started.Load()
}

// Ready reports whether at least one tick has run
func (g *Guard) Ready() bool {
	return g.started.Load() && g.ticked.Load()
}

// LastTick returns the report of the last tick
func (g *Guard) LastTick() (*typedef.TickReport, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.last, g.last != nil
}

// ResetDetector clears the detector state of id
func (g *Guard) ResetDetector(id typedef.EntityIdentity) error {
	return g.engine.Reset(id)
}

// ForceResetDetector discards the detector of id
func (g *Guard) ForceResetDetector(id typedef.EntityIdentity) error {
	return g.engine.ForceReset(id)
}
