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
// Create: 2026-03-14
// Description: This file converts cadvisor statistics into usage statistics

// Package analyze turns collected cgroup statistics into entity statistics
package analyze

import (
	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/core/typedef"
	"isula.org/qosguard/pkg/resource/manager/common"
)

const nanoToSecond = 1e9

// Analyzer reads pod statistics from a Manager
type Analyzer struct {
	common.Manager
	opt common.GetOption
}

// NewResourceAnalyzer returns an analyzer reading the newest sample of each pod
func NewResourceAnalyzer(manager common.Manager) *Analyzer {
	return &Analyzer{Manager: manager, opt: common.LatestOption()}
}

// Statistics returns the newest statistics of the pod cgroup
func (a *Analyzer) Statistics(pod *typedef.PodInfo) (*typedef.Statistics, error) {
	cgroup := "/" + pod.CgroupPath
	infos, err := a.GetCgroupStats(cgroup, a.opt)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get statistics of %v", cgroup)
	}
	info, ok := infos[cgroup]
	if !ok || len(info.Stats) == 0 {
		return nil, errors.Errorf("no statistics of %v collected", cgroup)
	}
	latest := info.Stats[len(info.Stats)-1]
	if latest.Cpu == nil {
		return nil, errors.Errorf("no cpu statistics of %v", cgroup)
	}
	stats := &typedef.Statistics{
		Timestamp:      float64(latest.Timestamp.UnixNano()) / nanoToSecond,
		CPUTimeSeconds: float64(latest.Cpu.Usage.Total) / nanoToSecond,
		CPUAllocated:   pod.CPULimit,
	}
	if latest.Memory != nil {
		stats.MemoryBytes = latest.Memory.WorkingSet
	}
	return stats, nil
}
