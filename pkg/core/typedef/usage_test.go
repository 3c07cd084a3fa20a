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
// Description: This file is used for testing usage snapshots

package typedef

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestUsage tests the partition and copy of usage snapshots
func TestUsage(t *testing.T) {
	web := EntityIdentity{Group: "default", ID: "web"}
	batch := EntityIdentity{Group: "default", ID: "batch"}
	u := &Usage{
		Timestamp: 10,
		TotalCPUs: 8,
		Records: []UsageRecord{
			{Identity: web, Stats: &Statistics{CPUTimeSeconds: 1}},
			{Identity: batch, Priority: PriorityBestEffort, Stats: &Statistics{CPUTimeSeconds: 2}},
			{Identity: EntityIdentity{Group: "default"}},
		},
	}
	assert.Len(t, u.Production(), 2)
	assert.Equal(t, []UsageRecord{u.Records[1]}, u.Evictable())

	assert.True(t, u.Records[0].Valid())
	assert.False(t, u.Records[2].Valid())
	assert.False(t, (&UsageRecord{Identity: web}).Valid())
	assert.False(t, (&UsageRecord{Identity: EntityIdentity{ID: "web"}, Stats: &Statistics{}}).Valid())
	assert.Equal(t, 2, CountValid(u.Records))
	assert.Equal(t, 0, CountValid(nil))

	copied := u.DeepCopy()
	copied.Records[0].Stats.CPUTimeSeconds = 100
	assert.Equal(t, 1.0, u.Records[0].Stats.CPUTimeSeconds)
	assert.Nil(t, (*Usage)(nil).Evictable())
	assert.Equal(t, "default/web", web.String())
	assert.Equal(t, "best-effort", PriorityBestEffort.String())
}
