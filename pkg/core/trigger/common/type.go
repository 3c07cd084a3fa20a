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
// Create: 2026-03-16
// Description: This file defines the trigger interfaces

package common

import "context"

type (
	// Factor is the key of the values passed between triggers in the context
	Factor uint8
)

const (
	// TARGETS carries the typedef.QoSCorrections to carry out
	TARGETS Factor = iota
	// TARGETPODS carries the map[typedef.EntityIdentity]*typedef.PodInfo of pods to act on
	TARGETPODS
)

// Descriptor defines methods for describing triggers
type Descriptor interface {
	Name() string
}

// Executor runs one stage and returns the context of the following stages
type Executor interface {
	Execute(context.Context) (context.Context, error)
}

// Setter chains triggers
type Setter interface {
	SetNext(...Trigger) Trigger
}

// Trigger interface defines the trigger methods
type Trigger interface {
	Descriptor
	Setter
	Activate(context.Context) error
}
