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
// Create: 2026-03-08
// Description: This file implements the single source contention aggregator

// Package aggregator drives detector registries with usage snapshots and emits contentions
package aggregator

import (
	"isula.org/qosguard/pkg/core/pipeline"
	"isula.org/qosguard/pkg/core/registry"
	"isula.org/qosguard/pkg/core/typedef"
)

// Single runs the registry on the production entities of one usage stream.
// Best-effort entities of the same snapshot are the evictable population.
type Single struct {
	pipeline.ConsumerBase
	pipeline.Producer[typedef.Contentions]
	registry *registry.Registry
}

// NewSingle returns a single source aggregator
func NewSingle(reg *registry.Registry) *Single {
	return &Single{registry: reg}
}

// Consume runs one tick and emits its contentions, possibly none
func (s *Single) Consume(u *typedef.Usage) error {
	if u == nil {
		return s.Emit(nil)
	}
	contentions := s.registry.Run(u.Production(), typedef.CountValid(u.Evictable()), u.Timestamp)
	return s.Emit(contentions)
}

// Registry returns the driven registry
func (s *Single) Registry() *registry.Registry {
	return s.registry
}
