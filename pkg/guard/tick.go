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
// Description: This file runs one tick of the daemon

package guard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/common/constant"
	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/core/engine"
	"isula.org/qosguard/pkg/core/typedef"
	"isula.org/qosguard/pkg/metrics"
)

// Tick pulls a usage snapshot, runs the engine and enforces the corrections
func (g *Guard) Tick(ctx context.Context) *typedef.TickReport {
	report := &typedef.TickReport{
		ID:     uuid.New().String(),
		Start:  time.Now(),
		Source: g.deps.Source.Name(),
	}
	ctx = context.WithValue(ctx, log.CtxKey(constant.LogTickKey), report.ID)
	logger := log.WithCtx(ctx)

	err := g.tick(ctx, report)
	report.Duration = time.Since(report.Start)
	if err != nil {
		report.Error = err.Error()
		logger.Errorf("tick failed: %v", err)
	} else {
		logger.Debugf("tick done in %v: %d records, %d contentions, %d corrections",
			report.Duration, report.Records, len(report.Contentions), len(report.Corrections))
	}
	metrics.RecordTick(err, report.Duration.Seconds())

	g.mu.Lock()
	g.last = report
	g.mu.Unlock()
	g.ticked.Store(true)
	return report
}

func (g *Guard) tick(ctx context.Context, report *typedef.TickReport) error {
	usage, err := g.deps.Source.Pull(ctx)
	if err != nil {
		return errors.Wrapf(err, "pull usage from %s", g.deps.Source.Name())
	}
	report.Records = len(usage.Records)

	var contentions typedef.Contentions
	var corrections typedef.QoSCorrections
	if g.conf.Engine.Aggregator.Mode == engine.ModeJoined {
		contentions, corrections, err = g.engine.Tick(split(usage, false), split(usage, true))
	} else {
		contentions, corrections, err = g.engine.Tick(usage)
	}
	report.Contentions, report.Corrections = contentions, corrections
	if err != nil {
		return err
	}
	if len(corrections) == 0 {
		return nil
	}
	log.WithCtx(ctx).Infof("enforcing %d corrections: %v", len(corrections), corrections)
	return g.deps.Enforcer.Enforce(ctx, corrections)
}

// split returns the snapshot restricted to evictable or protected entities
func split(u *typedef.Usage, evictable bool) *typedef.Usage {
	part := &typedef.Usage{Timestamp: u.Timestamp, TotalCPUs: u.TotalCPUs}
	if evictable {
		part.Records = u.Evictable()
	} else {
		part.Records = u.Production()
	}
	return part
}
