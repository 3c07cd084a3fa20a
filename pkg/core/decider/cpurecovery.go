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
// Create: 2026-03-10
// Description: This file implements the cpu recovery decider

package decider

import (
	"sort"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/core/typedef"
)

// CPURecovery reads severity as the CPUs a victim needs back and evicts the
// best-effort entities with the largest CPU allocation until that is covered
type CPURecovery struct {
	DefaultSeverity float64
}

// Decide implements Decider
func (d *CPURecovery) Decide(_ api.AgeLookup, contentions typedef.Contentions,
	u *typedef.Usage) (typedef.QoSCorrections, error) {
	pool := evictablePool(u)
	sort.SliceStable(pool, func(i, j int) bool {
		return allocated(pool[i]) > allocated(pool[j])
	})

	var (
		res       typedef.QoSCorrections
		corrected = make(map[typedef.EntityIdentity]struct{})
		balance   float64
	)
	for _, c := range contentions {
		if _, ok := corrected[c.Victim]; ok {
			continue
		}
		if c.Type != typedef.ContentionCPU {
			log.Errorf("unsupported contention type %v of %v", c.Type, c.Victim)
			continue
		}
		if c.Aggressor != nil {
			pool = removeEntity(pool, *c.Aggressor, func() {
				res = append(res, kill(*c.Aggressor))
			})
			continue
		}
		demand := d.DefaultSeverity
		if c.Severity != nil {
			demand = *c.Severity
		}
		demand += balance
		for len(pool) > 0 && demand > 0 && allocated(pool[0]) > 0 {
			demand -= allocated(pool[0])
			log.Infof("mark %v using %.2f cpus for eviction", pool[0].Identity, allocated(pool[0]))
			res = append(res, kill(pool[0].Identity))
			pool = pool[1:]
		}
		if demand > 0 {
			log.Infof("evictable entities can not recover %.2f cpus for %v", demand, c.Victim)
			break
		}
		balance = demand
		corrected[c.Victim] = struct{}{}
	}
	return res, nil
}

func allocated(r typedef.UsageRecord) float64 {
	if r.Stats == nil {
		return 0
	}
	return r.Stats.CPUAllocated
}

func removeEntity(pool []typedef.UsageRecord, id typedef.EntityIdentity, found func()) []typedef.UsageRecord {
	for i := range pool {
		if pool[i].Identity == id {
			found()
			return append(pool[:i:i], pool[i+1:]...)
		}
	}
	return pool
}
