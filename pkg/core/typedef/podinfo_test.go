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
// Description: This file is used for testing pod info

package typedef

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"isula.org/qosguard/pkg/common/constant"
)

func newRawPod(name string, qos corev1.PodQOSClass, annotations map[string]string) *RawPod {
	return &RawPod{
		ObjectMeta: metav1.ObjectMeta{
			Name:        name,
			Namespace:   "default",
			UID:         types.UID("uid-" + name),
			Annotations: annotations,
		},
		Status: corev1.PodStatus{QOSClass: qos, Phase: corev1.PodRunning},
	}
}

// TestRawPodPriority tests the offline classification of pods
func TestRawPodPriority(t *testing.T) {
	tests := []struct {
		name string
		pod  *RawPod
		want Priority
	}{
		{
			name: "TC1-guaranteed pod is production",
			pod:  newRawPod("web", corev1.PodQOSGuaranteed, nil),
			want: PriorityProduction,
		},
		{
			name: "TC2-besteffort pod is evictable",
			pod:  newRawPod("batch", corev1.PodQOSBestEffort, nil),
			want: PriorityBestEffort,
		},
		{
			name: "TC3-preemptable burstable pod is evictable",
			pod: newRawPod("spark", corev1.PodQOSBurstable,
				map[string]string{constant.PriorityAnnotationKey: "true"}),
			want: PriorityBestEffort,
		},
		{
			name: "TC4-annotation false keeps production",
			pod: newRawPod("db", corev1.PodQOSBurstable,
				map[string]string{constant.PriorityAnnotationKey: "false"}),
			want: PriorityProduction,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pod.Priority())
		})
	}
}

// TestRawPodCgroupPath tests CgroupPath
func TestRawPodCgroupPath(t *testing.T) {
	pod := newRawPod("web", corev1.PodQOSGuaranteed, nil)
	pod.UID = "123"
	assert.Equal(t, "kubepods/pod123", pod.CgroupPath())
	pod.Status.QOSClass = corev1.PodQOSBurstable
	assert.Equal(t, "kubepods/burstable/pod123", pod.CgroupPath())
	pod.Status.QOSClass = corev1.PodQOSBestEffort
	pod.Annotations = map[string]string{configHashAnnotationKey: "abc"}
	assert.Equal(t, "kubepods/besteffort/podabc", pod.CgroupPath())
	pod.Status.QOSClass = ""
	assert.Equal(t, "", pod.CgroupPath())
}

// TestNewPodInfo tests the extraction of PodInfo
func TestNewPodInfo(t *testing.T) {
	start := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	pod := newRawPod("batch", corev1.PodQOSBurstable, nil)
	pod.Status.StartTime = &metav1.Time{Time: start}
	pod.Spec.Containers = []corev1.Container{
		{Resources: corev1.ResourceRequirements{Limits: corev1.ResourceList{
			corev1.ResourceCPU: resource.MustParse("500m")}}},
		{Resources: corev1.ResourceRequirements{Limits: corev1.ResourceList{
			corev1.ResourceCPU: resource.MustParse("2")}}},
	}

	info := pod.ExtractPodInfo()
	assert.Equal(t, EntityIdentity{Group: "default", ID: "batch"}, info.Identity())
	assert.Equal(t, 2.5, info.CPULimit)
	assert.Equal(t, 90.0, info.Age(start.Add(90*time.Second)))

	copied := info.DeepCopy()
	copied.Name = "other"
	assert.Equal(t, "batch", info.Name)

	pod.Spec.Containers = append(pod.Spec.Containers, corev1.Container{})
	assert.Equal(t, 0.0, pod.CPULimit())
}
