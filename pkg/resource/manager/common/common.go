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
// Description: This file defines the statistics manager interface

// Package common defines what usage sources need from a statistics manager
package common

import (
	v2 "github.com/google/cadvisor/info/v2"
)

// CgroupStats is the statistics history of one cgroup, oldest first
type CgroupStats struct {
	v2.ContainerInfo
}

// GetOption selects the statistics returned by a Manager
type GetOption struct {
	CadvisorV2RequestOptions v2.RequestOptions
}

// Manager collects cgroup statistics in the background
type Manager interface {
	Start() error
	Stop() error
	GetCgroupStats(name string, opt GetOption) (map[string]CgroupStats, error)
}

// LatestOption asks for the newest sample of a cgroup only
func LatestOption() GetOption {
	return GetOption{CadvisorV2RequestOptions: v2.RequestOptions{
		IdType:    v2.TypeName,
		Count:     1,
		Recursive: false,
	}}
}
