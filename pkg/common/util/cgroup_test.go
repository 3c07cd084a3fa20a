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
// Create: 2026-03-03
// Description: This file is used for testing cgroup path helpers

package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCgroupFile tests CgroupFile
func TestCgroupFile(t *testing.T) {
	old := CgroupRoot
	CgroupRoot = t.TempDir()
	defer func() { CgroupRoot = old }()

	tests := []struct {
		name     string
		subsys   string
		relative string
		file     string
		want     string
	}{
		{
			name:     "TC1-cgroup v1 cpuacct",
			subsys:   "cpuacct",
			relative: "kubepods/besteffort/pod123",
			file:     "cpuacct.usage",
			want:     filepath.Join(CgroupRoot, "cpuacct/kubepods/besteffort/pod123/cpuacct.usage"),
		},
		{
			name:     "TC2-unified hierarchy",
			relative: "kubepods/pod123",
			file:     "cpu.stat",
			want:     filepath.Join(CgroupRoot, "kubepods/pod123/cpu.stat"),
		},
		{
			name:     "TC3-escaping path stays under root",
			subsys:   "cpuacct",
			relative: "../../../etc",
			file:     "passwd",
			want:     filepath.Join(CgroupRoot, "cpuacct/etc/passwd"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CgroupFile(tt.subsys, tt.relative, tt.file)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
