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
// Description: This file implements the seniority decider

package decider

import (
	"math"
	"sort"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/core/typedef"
)

// Seniority evicts named aggressors, then a share of the remaining best-effort
// entities given by the mean anonymous severity, youngest first
type Seniority struct{}

type agedEntity struct {
	id  typedef.EntityIdentity
	age float64
}

// Decide implements Decider
func (*Seniority) Decide(ages api.AgeLookup, contentions typedef.Contentions,
	u *typedef.Usage) (typedef.QoSCorrections, error) {
	var (
		res       typedef.QoSCorrections
		pool      = make(map[typedef.EntityIdentity]struct{})
		sum       float64
		anonymous int
	)
	for _, r := range evictablePool(u) {
		pool[r.Identity] = struct{}{}
	}
	for _, c := range contentions {
		if c.Aggressor == nil {
			anonymous++
			if c.Severity != nil {
				sum += *c.Severity
			}
			continue
		}
		if _, ok := pool[*c.Aggressor]; !ok {
			log.Debugf("aggressor %v of %v is not evictable", *c.Aggressor, c.Victim)
			continue
		}
		delete(pool, *c.Aggressor)
		res = append(res, kill(*c.Aggressor))
	}

	var mean float64
	if anonymous > 0 {
		mean = sum / float64(anonymous)
	}
	product := float64(len(pool)) * mean
	killCount := int(math.Floor(product))
	if product > 0 && killCount == 0 {
		killCount = 1
	}

	remaining := make([]agedEntity, 0, len(pool))
	for _, r := range evictablePool(u) {
		if _, ok := pool[r.Identity]; !ok {
			continue
		}
		age, err := ages.Age(r.Identity)
		if err != nil {
			log.Warnf("skip %v: %v", r.Identity, err)
			continue
		}
		remaining = append(remaining, agedEntity{id: r.Identity, age: age})
	}
	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].age < remaining[j].age
	})
	if killCount > len(remaining) {
		killCount = len(remaining)
	}
	for _, e := range remaining[:killCount] {
		log.Infof("mark %v aged %.0fs for eviction", e.id, e.age)
		res = append(res, kill(e.id))
	}
	return res, nil
}
