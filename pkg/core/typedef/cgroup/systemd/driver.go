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
// Description: This file is used for systemd cgroup driver

// Package systemd names pod cgroups the way the systemd driver does
package systemd

import (
	"path/filepath"
	"strings"

	"isula.org/qosguard/pkg/common/constant"
)

// Name is the name of the driver
const Name = "systemd"

const sliceSuffix = ".slice"

// Driver is the systemd cgroup driver
type Driver struct{}

// Name returns the name of the driver
func (d *Driver) Name() string {
	return Name
}

// PodCgroupPath returns the cgroup path of a pod
func (d *Driver) PodCgroupPath(qosClass string, id string) string {
	// Burstable: kubepods.slice/kubepods-burstable.slice/kubepods-burstable-podb895995a_e7e5_413e_9bc1_3c3895b3f233.slice
	// BestEffort: kubepods.slice/kubepods-besteffort.slice/kubepods-besteffort-podb895995a_e7e5_413e_9bc1_3c3895b3f233.slice
	// Guaranteed: kubepods.slice/kubepods-podb895995a_e7e5_413e_9bc1_3c3895b3f233.slice
	var (
		prefix  = constant.KubepodsCgroup
		podPath = constant.KubepodsCgroup + sliceSuffix
	)
	if qosClass != "" {
		podPath = filepath.Join(podPath, constant.KubepodsCgroup+"-"+qosClass+sliceSuffix)
		prefix = prefix + "-" + qosClass
	}
	return filepath.Join(podPath,
		prefix+"-"+constant.PodCgroupNamePrefix+strings.ReplaceAll(id, "-", "_")+sliceSuffix)
}
