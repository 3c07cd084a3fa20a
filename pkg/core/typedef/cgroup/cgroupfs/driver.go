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
// Description: This file is used for cgroupfs driver

// Package cgroupfs names pod cgroups the way the cgroupfs driver does
package cgroupfs

import (
	"path/filepath"

	"isula.org/qosguard/pkg/common/constant"
)

// Name is the name of the driver
const Name = "cgroupfs"

// Driver is the cgroupfs cgroup driver
type Driver struct{}

// Name returns the name of the driver
func (d *Driver) Name() string {
	return Name
}

// PodCgroupPath returns the cgroup path of a pod
func (d *Driver) PodCgroupPath(qosClass string, id string) string {
	// Burstable: kubepods/burstable/pod34152897-dbaf-11ea-8cb9-0653660051c3
	// BestEffort: kubepods/besteffort/pod34152897-dbaf-11ea-8cb9-0653660051c3
	// Guaranteed: kubepods/pod34152897-dbaf-11ea-8cb9-0653660051c3
	return filepath.Join(constant.KubepodsCgroup, qosClass, constant.PodCgroupNamePrefix+id)
}
