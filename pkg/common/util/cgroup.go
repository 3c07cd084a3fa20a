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
// Create: 2026-03-03
// Description: cgroup path helpers

package util

import (
	securejoin "github.com/cyphar/filepath-securejoin"

	"isula.org/qosguard/pkg/common/constant"
)

// CgroupRoot is the unique cgroup mount point globally
var CgroupRoot = constant.DefaultCgroupRoot

// CgroupFile returns the path of file under the relative cgroup path of subsys.
// An empty subsys addresses the unified hierarchy. The result never escapes CgroupRoot.
func CgroupFile(subsys, relativePath, file string) (string, error) {
	dir, err := securejoin.SecureJoin(CgroupRoot, subsys)
	if err != nil {
		return "", err
	}
	if dir, err = securejoin.SecureJoin(dir, relativePath); err != nil {
		return "", err
	}
	return securejoin.SecureJoin(dir, file)
}
