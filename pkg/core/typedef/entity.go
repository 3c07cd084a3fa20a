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
// Description: This file defines the identity of monitored entities

// Package typedef defines core struct and methods for qosguard
package typedef

// EntityIdentity identifies one monitored entity across ticks.
// For pods Group is the namespace and ID the pod name.
type EntityIdentity struct {
	Group string `json:"group"`
	ID    string `json:"id"`
}

// String returns group/id
func (e EntityIdentity) String() string {
	return e.Group + "/" + e.ID
}

// IsZero returns true when the identity does not name any entity, both parts are required
func (e EntityIdentity) IsZero() bool {
	return e.Group == "" || e.ID == ""
}

// Priority is the scheduling class of an entity
type Priority int

const (
	// PriorityProduction marks latency-critical entities which are protected
	PriorityProduction Priority = iota
	// PriorityBestEffort marks lower-priority entities which may be evicted
	PriorityBestEffort
)

// String returns the name of the priority
func (p Priority) String() string {
	if p == PriorityBestEffort {
		return "best-effort"
	}
	return "production"
}

// Evictable returns true if entities of this priority may be evicted
func (p Priority) Evictable() bool {
	return p == PriorityBestEffort
}
