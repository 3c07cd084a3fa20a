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
// Description: This file wraps the embedded cadvisor manager

// Package cadvisor runs an embedded cadvisor manager for pod cgroups
package cadvisor

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/cadvisor/container"
	"github.com/google/cadvisor/manager"
	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/resource/manager/common"
)

const (
	perfEventsFile  = "/sys/kernel/debug/tracing/events/raw_syscalls/sys_enter"
	resctrlInterval = time.Second
)

// only pod cgroups are watched
var rawCgroupPrefixWhiteList = []string{"/kubepods"}

// Manager is the cadvisor manager
type Manager struct {
	sync.RWMutex
	manager.Manager
}

// New creates the cadvisor manager, it collects once started
func New(conf *Config) (*Manager, error) {
	m, err := manager.New(conf.MemCache, conf.SysFs, conf.HousekeepingConfig,
		conf.IncludeMetrics, http.DefaultClient, rawCgroupPrefixWhiteList,
		[]string{}, perfEventsFile, resctrlInterval)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cadvisor manager")
	}
	return &Manager{Manager: m}, nil
}

// Start starts cadvisor manager
func (m *Manager) Start() error {
	m.Lock()
	defer m.Unlock()
	return m.Manager.Start()
}

// Stop stops cadvisor and clears the registered handler factories
func (m *Manager) Stop() error {
	m.Lock()
	defer m.Unlock()
	if err := m.Manager.Stop(); err != nil {
		return err
	}
	container.ClearContainerHandlerFactories()
	return nil
}

// GetCgroupStats returns the v2 statistics of the cgroup name
func (m *Manager) GetCgroupStats(name string, opt common.GetOption) (map[string]common.CgroupStats, error) {
	m.RLock()
	defer m.RUnlock()
	infos, err := m.GetContainerInfoV2(name, opt.CadvisorV2RequestOptions)
	if err != nil {
		return nil, err
	}
	res := make(map[string]common.CgroupStats, len(infos))
	for cgroup, info := range infos {
		res[cgroup] = common.CgroupStats{ContainerInfo: info}
	}
	return res, nil
}
