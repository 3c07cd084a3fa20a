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
// Description: This file implements the kill-all decider

package decider

import (
	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/core/typedef"
)

// KillAll evicts every best-effort entity regardless of the contentions
type KillAll struct{}

// Decide implements Decider
func (*KillAll) Decide(_ api.AgeLookup, _ typedef.Contentions, u *typedef.Usage) (typedef.QoSCorrections, error) {
	var res typedef.QoSCorrections
	for _, r := range evictablePool(u) {
		res = append(res, kill(r.Identity))
	}
	return res, nil
}
