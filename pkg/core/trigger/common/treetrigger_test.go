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
// Create: 2026-03-16
// Description: This file tests the tree trigger

package common

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type ctxKey string

type funcExecutor func(context.Context) (context.Context, error)

func (f funcExecutor) Execute(ctx context.Context) (context.Context, error) {
	return f(ctx)
}

func stage(name string, f funcExecutor) *TreeTrigger {
	t := NewTreeTrigger(name)
	t.SetExecutor(f)
	return t
}

// TestTreeTrigger tests the chaining of enforcement stages
func TestTreeTrigger(t *testing.T) {
	var visited []string
	record := func(name string) funcExecutor {
		return func(ctx context.Context) (context.Context, error) {
			visited = append(visited, name+"="+ctx.Value(ctxKey("k")).(string))
			return context.WithValue(ctx, ctxKey("k"), name), nil
		}
	}
	fail := func(context.Context) (context.Context, error) {
		return nil, errors.New("boom")
	}

	tests := []struct {
		name    string
		root    func() Trigger
		want    []string
		wantErr string
	}{
		{
			name: "TC1-stages see the context of the previous one",
			root: func() Trigger {
				return stage("resolve", record("resolve")).SetNext(
					stage("evict", record("evict")))
			},
			want: []string{"resolve=in", "evict=resolve"},
		},
		{
			name: "TC2-failed branch does not stop its sibling",
			root: func() Trigger {
				return stage("resolve", record("resolve")).SetNext(
					stage("protect", fail).SetNext(stage("never", record("never"))),
					stage("report", record("report")))
			},
			want:    []string{"resolve=in", "report=resolve"},
			wantErr: "resolve: stage protect: boom",
		},
		{
			name:    "TC3-stage without executor",
			root:    func() Trigger { return NewTreeTrigger("empty") },
			wantErr: "stage empty has no executor",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visited = nil
			err := tt.root().Activate(context.WithValue(context.Background(), ctxKey("k"), "in"))
			assert.Equal(t, tt.want, visited)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
