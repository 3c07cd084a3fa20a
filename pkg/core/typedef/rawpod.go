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
// Description: This file defines RawPod which wraps the kubernetes pod

package typedef

import (
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"

	"isula.org/qosguard/pkg/common/constant"
	"isula.org/qosguard/pkg/core/typedef/cgroup"
)

const (
	configHashAnnotationKey = "kubernetes.io/config.hash"
	// RUNNING means the Pod is in the running phase
	RUNNING = corev1.PodRunning
)

// RawPod represents kubernetes pod structure
type RawPod corev1.Pod

// ExtractPodInfo returns podInfo from RawPod
func (pod *RawPod) ExtractPodInfo() *PodInfo {
	if pod == nil {
		return nil
	}
	return NewPodInfo(pod)
}

// Running returns true when pod is in the running phase
func (pod *RawPod) Running() bool {
	if pod == nil {
		return false
	}
	return pod.Status.Phase == RUNNING
}

// ID returns the unique identity of pod
func (pod *RawPod) ID() string {
	if pod == nil {
		return ""
	}
	return string(pod.UID)
}

// Identity returns the entity identity of pod
func (pod *RawPod) Identity() EntityIdentity {
	return EntityIdentity{Group: pod.Namespace, ID: pod.Name}
}

// Priority returns PriorityBestEffort for offline pods.
// A pod is offline when it is annotated preemptable or has the BestEffort QoS class.
func (pod *RawPod) Priority() Priority {
	if pod.Annotations[constant.PriorityAnnotationKey] == "true" ||
		pod.Status.QOSClass == corev1.PodQOSBestEffort {
		return PriorityBestEffort
	}
	return PriorityProduction
}

// CgroupPath returns cgroup path of raw pod
func (pod *RawPod) CgroupPath() string {
	id := string(pod.UID)
	if configHash := pod.Annotations[configHashAnnotationKey]; configHash != "" {
		id = configHash
	}

	switch pod.Status.QOSClass {
	case corev1.PodQOSGuaranteed:
		return cgroup.PodCgroupPath("", id)
	case corev1.PodQOSBurstable, corev1.PodQOSBestEffort:
		return cgroup.PodCgroupPath(strings.ToLower(string(pod.Status.QOSClass)), id)
	default:
		return ""
	}
}

// CPULimit returns the sum of the container CPU limits in cores, 0 if any container is unlimited
func (pod *RawPod) CPULimit() float64 {
	var total float64
	for _, c := range pod.Spec.Containers {
		q, ok := c.Resources.Limits[corev1.ResourceCPU]
		if !ok {
			return 0
		}
		total += float64(q.MilliValue()) / 1000
	}
	return total
}

// StartTime returns the time the pod was acknowledged by the kubelet
func (pod *RawPod) StartTime() (time.Time, bool) {
	if pod.Status.StartTime == nil {
		return time.Time{}, false
	}
	return pod.Status.StartTime.Time, true
}
