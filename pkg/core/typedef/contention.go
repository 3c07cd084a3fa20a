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
// Description: This file defines detections, contentions and corrections

package typedef

// Detection is produced by a detector when a deviation is confirmed,
// or as a near limit advisory which carries no severity
type Detection struct {
	Severity  *float64
	NearLimit bool
}

// ContentionType is the resource under contention
type ContentionType string

// ContentionCPU is the only contention type
const ContentionCPU ContentionType = "CPU"

// Contention reports that Victim suffers from resource contention
type Contention struct {
	Type      ContentionType  `json:"type"`
	Severity  *float64        `json:"severity,omitempty"`
	Timestamp float64         `json:"timestamp"`
	Victim    EntityIdentity  `json:"victim"`
	Aggressor *EntityIdentity `json:"aggressor,omitempty"`
}

// Contentions is the batch of contentions of one tick
type Contentions []Contention

// CorrectionType is the action of a correction
type CorrectionType string

// CorrectionKill evicts the target
const CorrectionKill CorrectionType = "KILL"

// QoSCorrection is an eviction decision
type QoSCorrection struct {
	Type   CorrectionType `json:"type"`
	Target EntityIdentity `json:"target"`
}

// QoSCorrections is the ordered correction list of one tick
type QoSCorrections []QoSCorrection

// Float64 returns a pointer to v
func Float64(v float64) *float64 {
	return &v
}
