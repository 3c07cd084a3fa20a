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
// Create: 2026-03-08
// Description: This file is used for testing usage filters

package filter

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isula.org/qosguard/pkg/core/pipeline"
	"isula.org/qosguard/pkg/core/typedef"
)

var (
	web   = typedef.EntityIdentity{Group: "default", ID: "web"}
	batch = typedef.EntityIdentity{Group: "offline", ID: "batch"}
)

func usage(ts float64, ids ...typedef.EntityIdentity) *typedef.Usage {
	u := &typedef.Usage{Timestamp: ts, TotalCPUs: 4}
	for _, id := range ids {
		u.Records = append(u.Records, typedef.UsageRecord{Identity: id, Stats: &typedef.Statistics{Timestamp: ts}})
	}
	return u
}

// TestAgeTracker tests first sighting bookkeeping
func TestAgeTracker(t *testing.T) {
	a := NewAgeTracker()
	var passed int
	a.Subscribe(pipeline.NewConsumerFunc(func(*typedef.Usage) error {
		passed++
		return nil
	}))

	require.NoError(t, a.Consume(usage(100, web)))
	require.NoError(t, a.Consume(usage(110, web, batch)))
	require.NoError(t, a.Consume(usage(130, web, batch)))
	assert.Equal(t, 3, passed)

	age, err := a.Age(web)
	assert.NoError(t, err)
	assert.Equal(t, 30.0, age)
	age, err = a.Age(batch)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, age)

	// a vanished entity starts over when it comes back
	require.NoError(t, a.Consume(usage(140, web)))
	_, err = a.Age(batch)
	assert.True(t, errors.Is(err, ErrUnknownAge))
	require.NoError(t, a.Consume(usage(150, web, batch)))
	age, err = a.Age(batch)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, age)
}

type staticAges map[typedef.EntityIdentity]float64

func (s staticAges) Age(id typedef.EntityIdentity) (float64, error) {
	age, ok := s[id]
	if !ok {
		return 0, errors.New("unknown")
	}
	return age, nil
}

// TestIgnoreNew tests the filter of young entities
func TestIgnoreNew(t *testing.T) {
	unknown := typedef.EntityIdentity{Group: "default", ID: "unknown"}
	tests := []struct {
		name   string
		minAge float64
		want   []typedef.EntityIdentity
	}{
		{name: "TC1-disabled", minAge: 0, want: []typedef.EntityIdentity{web, batch, unknown}},
		{name: "TC2-young entity dropped", minAge: 60, want: []typedef.EntityIdentity{web}},
		{name: "TC3-every entity too young", minAge: 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewIgnoreNew(staticAges{web: 600, batch: 30}, tt.minAge)
			var got []typedef.EntityIdentity
			f.Subscribe(pipeline.NewConsumerFunc(func(u *typedef.Usage) error {
				assert.Equal(t, 4.0, u.TotalCPUs)
				for _, r := range u.Records {
					got = append(got, r.Identity)
				}
				return nil
			}))
			in := usage(10, web, batch, unknown)
			require.NoError(t, f.Consume(in))
			assert.Equal(t, tt.want, got)
			assert.Len(t, in.Records, 3)
		})
	}
}

// TestAgeLookups tests chained age lookups
func TestAgeLookups(t *testing.T) {
	l := AgeLookups{staticAges{web: 10}, staticAges{web: 20, batch: 30}}
	age, err := l.Age(web)
	assert.NoError(t, err)
	assert.Equal(t, 10.0, age)
	age, err = l.Age(batch)
	assert.NoError(t, err)
	assert.Equal(t, 30.0, age)
	_, err = l.Age(typedef.EntityIdentity{Group: "x", ID: "y"})
	assert.Error(t, err)
	_, err = AgeLookups{}.Age(web)
	assert.True(t, errors.Is(err, ErrUnknownAge))
}
