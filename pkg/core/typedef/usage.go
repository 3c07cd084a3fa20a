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
// Description: This file defines usage snapshots

package typedef

// Statistics is the raw counters and gauges of one entity at one tick
type Statistics struct {
	// Timestamp is the sampling time in seconds
	Timestamp float64 `json:"timestamp"`
	// CPUTimeSeconds is the cumulative CPU time consumed
	CPUTimeSeconds float64 `json:"cpuTimeSeconds"`
	// CPUAllocated is the CPU limit in cores, 0 when unlimited or unknown
	CPUAllocated float64 `json:"cpuAllocated,omitempty"`
	// Instructions and Cycles are cumulative perf counters, valid when PerfAvailable
	Instructions  uint64 `json:"instructions,omitempty"`
	Cycles        uint64 `json:"cycles,omitempty"`
	PerfAvailable bool   `json:"perfAvailable,omitempty"`
	// MemoryBytes is the working set
	MemoryBytes uint64 `json:"memoryBytes,omitempty"`
}

// UsageRecord is the statistics snapshot of one entity
type UsageRecord struct {
	Identity EntityIdentity `json:"identity"`
	Priority Priority       `json:"priority"`
	Stats    *Statistics    `json:"stats,omitempty"`
}

// Valid returns true if the record names an entity and carries statistics
func (r *UsageRecord) Valid() bool {
	return r != nil && !r.Identity.IsZero() && r.Stats != nil
}

// CountValid returns the number of valid records
func CountValid(records []UsageRecord) int {
	var n int
	for i := range records {
		if records[i].Valid() {
			n++
		}
	}
	return n
}

// Usage is the snapshot of all entities of the host at one tick
type Usage struct {
	// Timestamp is the snapshot time in seconds
	Timestamp float64 `json:"timestamp"`
	// TotalCPUs is the number of CPUs of the host
	TotalCPUs float64       `json:"totalCPUs"`
	Records   []UsageRecord `json:"records"`
}

// Production returns the records of protected entities
func (u *Usage) Production() []UsageRecord {
	return u.filter(false)
}

// Evictable returns the records of best-effort entities
func (u *Usage) Evictable() []UsageRecord {
	return u.filter(true)
}

func (u *Usage) filter(evictable bool) []UsageRecord {
	if u == nil {
		return nil
	}
	var res []UsageRecord
	for _, r := range u.Records {
		if r.Priority.Evictable() == evictable {
			res = append(res, r)
		}
	}
	return res
}

// DeepCopy returns deepcopy object
func (u *Usage) DeepCopy() *Usage {
	if u == nil {
		return nil
	}
	copied := &Usage{Timestamp: u.Timestamp, TotalCPUs: u.TotalCPUs, Records: make([]UsageRecord, len(u.Records))}
	for i, r := range u.Records {
		copied.Records[i] = r
		if r.Stats != nil {
			stats := *r.Stats
			copied.Records[i].Stats = &stats
		}
	}
	return copied
}
