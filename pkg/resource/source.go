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
// Create: 2026-03-15
// Description: This file builds usage snapshots from the pod population

// Package resource provides the usage sources of the host
package resource

import (
	"context"
	"runtime"
	"sort"
	"time"

	"github.com/pkg/errors"
	metricsclient "k8s.io/metrics/pkg/client/clientset/versioned"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/common/perf"
	"isula.org/qosguard/pkg/core/typedef"
	"isula.org/qosguard/pkg/resource/manager/common"
)

// the supported usage sources
const (
	SourceCadvisor      = "cadvisor"
	SourceCgroupfs      = "cgroupfs"
	SourceMetricsServer = "metrics-server"
)

const nanoToSecond = 1e9

// hostCPUs returns the number of CPUs of the host
var hostCPUs = runtime.NumCPU

// Deps is what the usage sources are built from
type Deps struct {
	Viewer   api.Viewer
	Cadvisor common.Manager
	Metrics  metricsclient.Interface
	// PerfDuration enables perf counting of the cgroupfs source when positive
	PerfDuration time.Duration
}

// NewSource returns the usage source of kind
func NewSource(kind string, deps Deps) (api.UsageSource, error) {
	if deps.Viewer == nil {
		return nil, errors.New("pod viewer is required")
	}
	switch kind {
	case SourceCadvisor:
		if deps.Cadvisor == nil {
			return nil, errors.New("cadvisor manager is required")
		}
		return NewCadvisorSource(deps.Viewer, deps.Cadvisor), nil
	case SourceCgroupfs:
		var opts []CgroupfsOption
		if deps.PerfDuration > 0 {
			if perf.Support(perfRoot()) {
				opts = append(opts, WithPerf(deps.PerfDuration))
			} else {
				log.Warnf("perf counting is not supported on this host, ipc is unavailable")
			}
		}
		return NewCgroupfsSource(deps.Viewer, opts...), nil
	case SourceMetricsServer:
		if deps.Metrics == nil {
			return nil, errors.New("metrics client is required")
		}
		return NewMetricsServerSource(deps.Viewer, deps.Metrics), nil
	default:
		return nil, errors.Errorf("unsupported usage source %q", kind)
	}
}

// statsFunc returns the statistics of one pod
type statsFunc func(pod *typedef.PodInfo) (*typedef.Statistics, error)

// listPods returns the pods of the viewer ordered by identity
func listPods(viewer api.Viewer) []*typedef.PodInfo {
	pods := append(viewer.ListOnlinePods(), viewer.ListOfflinePods()...)
	sort.Slice(pods, func(i, j int) bool {
		return pods[i].Identity().String() < pods[j].Identity().String()
	})
	return pods
}

// snapshot reads the statistics of every pod. A pod whose statistics cannot
// be read is kept without statistics and dropped by the detectors.
func snapshot(ctx context.Context, source string, pods []*typedef.PodInfo,
	now time.Time, stats statsFunc) (*typedef.Usage, error) {
	u := &typedef.Usage{
		Timestamp: float64(now.UnixNano()) / nanoToSecond,
		TotalCPUs: float64(hostCPUs()),
		Records:   make([]typedef.UsageRecord, 0, len(pods)),
	}
	for _, pod := range pods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := typedef.UsageRecord{Identity: pod.Identity(), Priority: pod.Priority}
		s, err := stats(pod)
		if err != nil {
			log.Warnf("%s: %v", source, err)
		} else {
			rec.Stats = s
		}
		u.Records = append(u.Records, rec)
	}
	return u, nil
}
