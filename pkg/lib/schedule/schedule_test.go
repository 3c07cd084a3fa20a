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
// Create: 2026-03-18
// Description: This file tests the tick schedule parser

package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	after := time.Date(2026, 3, 18, 7, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		spec    string
		want    time.Time
		wantErr bool
	}{
		{
			name: "TC1-every descriptor",
			spec: "@every 10s",
			want: after.Add(10 * time.Second),
		},
		{
			name: "TC2-five fields",
			spec: "30 7 * * *",
			want: time.Date(2026, 3, 18, 7, 30, 0, 0, time.UTC),
		},
		{
			name: "TC3-seconds field",
			spec: "*/15 * * * * *",
			want: after.Add(15 * time.Second),
		},
		{
			name: "TC4-explicit time zone",
			spec: "CRON_TZ=UTC 0 8 * * *",
			want: time.Date(2026, 3, 18, 8, 0, 0, 0, time.UTC),
		},
		{
			name:    "TC5-empty",
			spec:    "  ",
			wantErr: true,
		},
		{
			name:    "TC6-malformed",
			spec:    "invalid",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(s.Next(after)), "got %v", s.Next(after))
			assert.Equal(t, tt.spec, s.String())
		})
	}
}
