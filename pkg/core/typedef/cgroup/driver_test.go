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
// Create: 2026-03-21
// Description: This file tests the cgroup drivers

package cgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isula.org/qosguard/pkg/core/typedef/cgroup/cgroupfs"
	"isula.org/qosguard/pkg/core/typedef/cgroup/systemd"
)

// TestPodCgroupPath tests the pod cgroup paths of both drivers
func TestPodCgroupPath(t *testing.T) {
	const id = "b895995a-e7e5-413e-9bc1-3c3895b3f233"
	tests := []struct {
		name     string
		driver   string
		qosClass string
		want     string
	}{
		{
			name:   "TC1-cgroupfs guaranteed",
			driver: cgroupfs.Name,
			want:   "kubepods/pod" + id,
		},
		{
			name:     "TC2-cgroupfs burstable",
			driver:   cgroupfs.Name,
			qosClass: "burstable",
			want:     "kubepods/burstable/pod" + id,
		},
		{
			name:   "TC3-systemd guaranteed",
			driver: systemd.Name,
			want:   "kubepods.slice/kubepods-podb895995a_e7e5_413e_9bc1_3c3895b3f233.slice",
		},
		{
			name:     "TC4-systemd besteffort",
			driver:   systemd.Name,
			qosClass: "besteffort",
			want: "kubepods.slice/kubepods-besteffort.slice/" +
				"kubepods-besteffort-podb895995a_e7e5_413e_9bc1_3c3895b3f233.slice",
		},
	}
	defer func() { require.NoError(t, SetDriver(cgroupfs.Name)) }()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, SetDriver(tt.driver))
			assert.Equal(t, tt.driver, Type())
			assert.Equal(t, tt.want, PodCgroupPath(tt.qosClass, id))
		})
	}
}

// TestSetDriver tests that unknown drivers are rejected
func TestSetDriver(t *testing.T) {
	assert.Error(t, SetDriver("cgroupv3"))
	assert.Equal(t, cgroupfs.Name, Type())
	_, err := NewDriver("")
	assert.Error(t, err)
}
