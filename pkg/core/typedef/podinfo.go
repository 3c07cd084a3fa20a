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
// Create: 2026-03-04
// Description: This file defines PodInfo, the cached view of a pod

package typedef

import "time"

// PodInfo represents pod
type PodInfo struct {
	Name       string    `json:"name"`
	Namespace  string    `json:"namespace"`
	UID        string    `json:"uid"`
	CgroupPath string    `json:"cgroupPath"`
	Priority   Priority  `json:"priority"`
	CPULimit   float64   `json:"cpuLimit,omitempty"`
	StartTime  time.Time `json:"startTime,omitempty"`
}

// NewPodInfo creates the PodInfo instance
func NewPodInfo(pod *RawPod) *PodInfo {
	info := &PodInfo{
		Name:       pod.Name,
		Namespace:  pod.Namespace,
		UID:        pod.ID(),
		CgroupPath: pod.CgroupPath(),
		Priority:   pod.Priority(),
		CPULimit:   pod.CPULimit(),
	}
	if start, ok := pod.StartTime(); ok {
		info.StartTime = start
	} else {
		info.StartTime = pod.CreationTimestamp.Time
	}
	return info
}

// Identity returns the entity identity of the pod
func (pod *PodInfo) Identity() EntityIdentity {
	return EntityIdentity{Group: pod.Namespace, ID: pod.Name}
}

// Age returns the seconds elapsed since the pod started
func (pod *PodInfo) Age(now time.Time) float64 {
	if pod.StartTime.IsZero() {
		return 0
	}
	return now.Sub(pod.StartTime).Seconds()
}

// DeepCopy returns deepcopy object
func (pod *PodInfo) DeepCopy() *PodInfo {
	if pod == nil {
		return nil
	}
	copied := *pod
	return &copied
}
