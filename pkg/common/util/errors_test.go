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
// Description: This file is used for testing error helpers

package util

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// TestAppendErr tests AppendErr
func TestAppendErr(t *testing.T) {
	errA, errB, errC := errors.New("a"), errors.New("b"), errors.New("c")
	tests := []struct {
		name    string
		origin  error
		err     error
		wantNil bool
		wantLen int
	}{
		{
			name:    "TC1-both nil",
			wantNil: true,
		},
		{
			name:    "TC2-only origin",
			origin:  errA,
			wantLen: 1,
		},
		{
			name:    "TC3-only new error",
			err:     errB,
			wantLen: 1,
		},
		{
			name:    "TC4-two plain errors",
			origin:  errA,
			err:     errB,
			wantLen: 2,
		},
		{
			name:    "TC5-append to an aggregate",
			origin:  utilerrors.NewAggregate([]error{errA, errB}),
			err:     errC,
			wantLen: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendErr(tt.origin, tt.err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			assert.Error(t, got)
			if agg, ok := got.(utilerrors.Aggregate); ok {
				assert.Len(t, agg.Errors(), tt.wantLen)
				return
			}
			assert.Equal(t, 1, tt.wantLen)
		})
	}
}

// TestAddErrorPrefix tests AddErrorPrefix
func TestAddErrorPrefix(t *testing.T) {
	cause := errors.New("permission denied")
	got := AddErrorPrefix(cause, "evict default/web")
	assert.EqualError(t, got, "evict default/web: permission denied")
	assert.Equal(t, cause, errors.Cause(got))
	assert.Nil(t, AddErrorPrefix(nil, "x"))
}
