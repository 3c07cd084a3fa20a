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
// Description: This file implements the cgroupfs usage source

package resource

import (
	"context"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/common/perf"
	"isula.org/qosguard/pkg/common/util"
	"isula.org/qosguard/pkg/core/typedef"
)

const (
	usecToSecond = 1e6

	// cgroup v1
	cpuacctSubsys = "cpuacct"
	cpuacctUsage  = "cpuacct.usage"
	memorySubsys  = "memory"
	memoryUsage   = "memory.usage_in_bytes"

	// cgroup v2
	unifiedControllers = "cgroup.controllers"
	cpuStat            = "cpu.stat"
	cpuStatUsageKey    = "usage_usec"
	memoryCurrent      = "memory.current"

	perfEventSubsys = "perf_event"
)

// perfSampler counts the hardware events of the cgroup directory cgpath
type perfSampler func(cgpath string) (*perf.Stat, error)

// CgroupfsSource reads pod counters directly from the cgroup filesystem
type CgroupfsSource struct {
	viewer api.Viewer
	now    func() time.Time
	// sample is nil when perf counting is disabled
	sample perfSampler
	// perfTotals accumulates the sampled events into counters
	perfTotals map[typedef.EntityIdentity]*perf.Stat
}

// CgroupfsOption configures a CgroupfsSource
type CgroupfsOption func(*CgroupfsSource)

// WithPerf counts instructions and cycles of every pod for dur on each pull
func WithPerf(dur time.Duration) CgroupfsOption {
	return func(s *CgroupfsSource) {
		s.sample = func(cgpath string) (*perf.Stat, error) {
			return perf.CgroupStat(cgpath, dur)
		}
	}
}

// NewCgroupfsSource returns the source reading under util.CgroupRoot
func NewCgroupfsSource(viewer api.Viewer, opts ...CgroupfsOption) *CgroupfsSource {
	s := &CgroupfsSource{
		viewer:     viewer,
		now:        time.Now,
		perfTotals: make(map[typedef.EntityIdentity]*perf.Stat),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the name of the source
func (s *CgroupfsSource) Name() string {
	return SourceCgroupfs
}

// Pull returns the usage snapshot of the pods of the node
func (s *CgroupfsSource) Pull(ctx context.Context) (*typedef.Usage, error) {
	now := s.now()
	ts := float64(now.UnixNano()) / nanoToSecond
	read, perfSubsys := readV1, perfEventSubsys
	if unified() {
		read, perfSubsys = readV2, ""
	}
	seen := make(map[typedef.EntityIdentity]struct{})
	u, err := snapshot(ctx, s.Name(), listPods(s.viewer), now, func(pod *typedef.PodInfo) (*typedef.Statistics, error) {
		if pod.CgroupPath == "" {
			return nil, errors.Errorf("pod %v has no cgroup", pod.Identity())
		}
		stats, err := read(pod.CgroupPath)
		if err != nil {
			return nil, errors.Wrapf(err, "pod %v", pod.Identity())
		}
		stats.Timestamp = ts
		stats.CPUAllocated = pod.CPULimit
		seen[pod.Identity()] = struct{}{}
		if s.sample != nil {
			s.countPerf(pod, perfSubsys, stats)
		}
		return stats, nil
	})
	for id := range s.perfTotals {
		if _, ok := seen[id]; !ok {
			delete(s.perfTotals, id)
		}
	}
	return u, err
}

// countPerf adds the events sampled this pull to the counters of pod.
// The counters stay unavailable on failure and the ipc extractor skips the pod.
func (s *CgroupfsSource) countPerf(pod *typedef.PodInfo, subsys string, stats *typedef.Statistics) {
	id := pod.Identity()
	cgpath, err := util.CgroupFile(subsys, pod.CgroupPath, "")
	if err != nil {
		log.Warnf("%s: perf cgroup of %v: %v", s.Name(), id, err)
		return
	}
	sampled, err := s.sample(cgpath)
	if err != nil {
		log.Warnf("%s: perf of %v: %v", s.Name(), id, err)
		delete(s.perfTotals, id)
		return
	}
	total, ok := s.perfTotals[id]
	if !ok {
		total = &perf.Stat{}
		s.perfTotals[id] = total
	}
	total.Add(sampled)
	stats.Instructions, stats.Cycles, stats.PerfAvailable = total.Instructions, total.CPUCycles, true
}

// unified returns true on hosts mounting the cgroup v2 hierarchy at util.CgroupRoot
func unified() bool {
	return util.PathExist(filepath.Join(util.CgroupRoot, unifiedControllers))
}

// perfRoot returns the root cgroup directory perf events are probed on
func perfRoot() string {
	if unified() {
		return util.CgroupRoot
	}
	return filepath.Join(util.CgroupRoot, perfEventSubsys)
}

func readCgroupFile(subsys, cgroup, file string) (string, error) {
	path, err := util.CgroupFile(subsys, cgroup, file)
	if err != nil {
		return "", err
	}
	data, err := util.ReadSmallFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readV1(cgroup string) (*typedef.Statistics, error) {
	content, err := readCgroupFile(cpuacctSubsys, cgroup, cpuacctUsage)
	if err != nil {
		return nil, err
	}
	usage, err := util.ParseInt64(content)
	if err != nil {
		return nil, err
	}
	stats := &typedef.Statistics{CPUTimeSeconds: float64(usage) / nanoToSecond}
	if content, err = readCgroupFile(memorySubsys, cgroup, memoryUsage); err == nil {
		if mem, err := util.ParseInt64(content); err == nil {
			stats.MemoryBytes = uint64(mem)
		}
	}
	return stats, nil
}

func readV2(cgroup string) (*typedef.Statistics, error) {
	content, err := readCgroupFile("", cgroup, cpuStat)
	if err != nil {
		return nil, err
	}
	kv, err := util.ParseKeyValue(content)
	if err != nil {
		return nil, err
	}
	usage, ok := kv[cpuStatUsageKey]
	if !ok {
		return nil, errors.Errorf("%s has no %s", cpuStat, cpuStatUsageKey)
	}
	stats := &typedef.Statistics{CPUTimeSeconds: float64(usage) / usecToSecond}
	if content, err = readCgroupFile("", cgroup, memoryCurrent); err == nil {
		if mem, err := util.ParseInt64(content); err == nil {
			stats.MemoryBytes = uint64(mem)
		}
	}
	return stats, nil
}
