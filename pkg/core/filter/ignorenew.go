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
// Description: This file implements the filter of newly started entities

package filter

import (
	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/core/pipeline"
	"isula.org/qosguard/pkg/core/typedef"
	"isula.org/qosguard/pkg/metrics"
)

// IgnoreNew drops entities younger than a minimum age from usage snapshots.
// Entities whose age cannot be looked up are dropped as well.
type IgnoreNew struct {
	pipeline.ConsumerBase
	pipeline.Producer[*typedef.Usage]
	ages   api.AgeLookup
	minAge float64
}

// NewIgnoreNew returns the filter, minAge is in seconds
func NewIgnoreNew(ages api.AgeLookup, minAge float64) *IgnoreNew {
	return &IgnoreNew{ages: ages, minAge: minAge}
}

// Consume emits a copy of u without the young entities, the snapshot itself is not changed
func (f *IgnoreNew) Consume(u *typedef.Usage) error {
	if u == nil || f.minAge <= 0 {
		return f.Emit(u)
	}
	filtered := &typedef.Usage{Timestamp: u.Timestamp, TotalCPUs: u.TotalCPUs}
	for _, rec := range u.Records {
		age, err := f.ages.Age(rec.Identity)
		if err != nil {
			log.Debugf("ignore %v: %v", rec.Identity, err)
			metrics.RecordDroppedRecord(metrics.ReasonTooYoung)
			continue
		}
		if age < f.minAge {
			log.Debugf("ignore %v, started %.0fs ago", rec.Identity, age)
			metrics.RecordDroppedRecord(metrics.ReasonTooYoung)
			continue
		}
		filtered.Records = append(filtered.Records, rec)
	}
	return f.Emit(filtered)
}
