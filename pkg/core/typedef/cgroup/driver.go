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
// Description: This file selects how pod cgroup paths are named

// Package cgroup names the cgroups of pods for the cgroup driver of the kubelet
package cgroup

import (
	"sync"

	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/core/typedef/cgroup/cgroupfs"
	"isula.org/qosguard/pkg/core/typedef/cgroup/systemd"
)

// Driver is the interface of cgroup methods
type Driver interface {
	Name() string
	PodCgroupPath(qosClass string, id string) string
}

var (
	driverLock sync.RWMutex
	driver     Driver = &cgroupfs.Driver{}
)

// NewDriver returns the driver named driverTyp, only systemd and cgroupfs are supported
func NewDriver(driverTyp string) (Driver, error) {
	switch driverTyp {
	case systemd.Name:
		return &systemd.Driver{}, nil
	case cgroupfs.Name:
		return &cgroupfs.Driver{}, nil
	}
	return nil, errors.Errorf("invalid driver type: %v", driverTyp)
}

// SetDriver sets the global cgroup driver
func SetDriver(driverTyp string) error {
	d, err := NewDriver(driverTyp)
	if err != nil {
		return err
	}
	driverLock.Lock()
	driver = d
	driverLock.Unlock()
	return nil
}

// Type returns the driver type
func Type() string {
	driverLock.RLock()
	defer driverLock.RUnlock()
	return driver.Name()
}

// PodCgroupPath returns the cgroup path of a pod relative to the cgroup root of a subsystem.
// qosClass is empty for guaranteed pods.
func PodCgroupPath(qosClass, id string) string {
	driverLock.RLock()
	defer driverLock.RUnlock()
	return driver.PodCgroupPath(qosClass, id)
}
