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
// Description: This file contains important interfaces used in the project

// Package api is interface collection
package api

import (
	"context"

	"isula.org/qosguard/pkg/core/typedef"
)

// UsageSource pulls the usage snapshot of the host
type UsageSource interface {
	Name() string
	Pull(ctx context.Context) (*typedef.Usage, error)
}

// AgeLookup returns the age in seconds of an entity
type AgeLookup interface {
	Age(id typedef.EntityIdentity) (float64, error)
}

// ContentionSink accepts the contentions of a tick
type ContentionSink interface {
	AcceptContentions(typedef.Contentions) error
}

// CorrectionSink accepts the corrections of a tick
type CorrectionSink interface {
	AcceptCorrections(typedef.QoSCorrections) error
}

// Enforcer carries out corrections on the host
type Enforcer interface {
	Enforce(ctx context.Context, corrections typedef.QoSCorrections) error
}

// Viewer collect on/offline pods info
type Viewer interface {
	ListOnlinePods() []*typedef.PodInfo
	ListOfflinePods() []*typedef.PodInfo
	GetPod(id typedef.EntityIdentity) (*typedef.PodInfo, bool)
}

// ConfigParser is a configuration parser for different languages
type ConfigParser interface {
	ParseConfig(data []byte) (map[string]interface{}, error)
	UnmarshalSubConfig(data interface{}, v interface{}) error
}
