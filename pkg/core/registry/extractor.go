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
// Description: This file implements the extraction of samples from usage records

package registry

import (
	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/core/typedef"
)

// names of the built-in extractors
const (
	ExtractorCPUUsage       = "cpu-usage"
	ExtractorCPUUtilization = "cpu-utilization"
	ExtractorIPC            = "ipc"
)

// Extractor derives one sample from two successive records of the same entity
type Extractor interface {
	Name() string
	Extract(prev, cur *typedef.Statistics) (float64, error)
}

// NewExtractor returns the built-in extractor registered under name
func NewExtractor(name string) (Extractor, error) {
	switch name {
	case ExtractorCPUUsage:
		return cpuUsage{}, nil
	case ExtractorCPUUtilization:
		return cpuUtilization{}, nil
	case ExtractorIPC:
		return ipc{}, nil
	default:
		return nil, errors.Errorf("unknown extractor %q", name)
	}
}

// CPURate returns the cores used between two records
func CPURate(prev, cur *typedef.Statistics) (float64, error) {
	dt := cur.Timestamp - prev.Timestamp
	if dt <= 0 {
		return 0, errors.Errorf("timestamp did not advance: %v -> %v", prev.Timestamp, cur.Timestamp)
	}
	used := cur.CPUTimeSeconds - prev.CPUTimeSeconds
	if used < 0 {
		return 0, errors.Errorf("cpu time went backwards: %v -> %v", prev.CPUTimeSeconds, cur.CPUTimeSeconds)
	}
	return used / dt, nil
}

// cpuUsage is the CPU rate in cores
type cpuUsage struct{}

func (cpuUsage) Name() string {
	return ExtractorCPUUsage
}

func (cpuUsage) Extract(prev, cur *typedef.Statistics) (float64, error) {
	return CPURate(prev, cur)
}

// cpuUtilization is the CPU rate relative to the CPU allocation
type cpuUtilization struct{}

func (cpuUtilization) Name() string {
	return ExtractorCPUUtilization
}

func (cpuUtilization) Extract(prev, cur *typedef.Statistics) (float64, error) {
	if cur.CPUAllocated <= 0 {
		return 0, errors.New("cpu allocation is unknown")
	}
	rate, err := CPURate(prev, cur)
	if err != nil {
		return 0, err
	}
	return rate / cur.CPUAllocated, nil
}

// ipc is the instructions retired per cycle
type ipc struct{}

func (ipc) Name() string {
	return ExtractorIPC
}

func (ipc) Extract(prev, cur *typedef.Statistics) (float64, error) {
	if !prev.PerfAvailable || !cur.PerfAvailable {
		return 0, errors.New("perf counters are not available")
	}
	if cur.Cycles <= prev.Cycles || cur.Instructions < prev.Instructions {
		return 0, errors.Errorf("perf counters did not advance: cycles %d -> %d", prev.Cycles, cur.Cycles)
	}
	return float64(cur.Instructions-prev.Instructions) / float64(cur.Cycles-prev.Cycles), nil
}
