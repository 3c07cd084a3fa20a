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
// Create: 2026-03-07
// Description: This file is used for testing the detector registry

package registry

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isula.org/qosguard/pkg/core/detector"
	"isula.org/qosguard/pkg/core/typedef"
)

var (
	web   = typedef.EntityIdentity{Group: "default", ID: "web"}
	cache = typedef.EntityIdentity{Group: "default", ID: "cache"}
)

func testConfig() *detector.Config {
	conf := detector.NewConfig()
	conf.WindowSize = 4
	conf.MaxCheckpoints = 3
	conf.FractionalThreshold = 0.5
	conf.Quorum = 0.5
	return conf
}

func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	ex, err := NewExtractor(ExtractorCPUUsage)
	require.NoError(t, err)
	r, err := New(testConfig(), ex, opts...)
	require.NoError(t, err)
	return r
}

func record(id typedef.EntityIdentity, ts, cpu float64) typedef.UsageRecord {
	return typedef.UsageRecord{
		Identity: id,
		Stats:    &typedef.Statistics{Timestamp: ts, CPUTimeSeconds: cpu},
	}
}

// cpuAt is the cumulative CPU time of an entity using one core until tick 10 and 0.4 afterwards
func cpuAt(tick int) float64 {
	if tick <= 10 {
		return float64(tick)
	}
	return 10 + 0.4*float64(tick-10)
}

// TestRegistryDetectsDrop tests that a sustained CPU drop becomes a contention
func TestRegistryDetectsDrop(t *testing.T) {
	r := newTestRegistry(t)
	for tick := 0; tick <= 10; tick++ {
		got := r.Run([]typedef.UsageRecord{record(web, float64(tick), cpuAt(tick))}, 1, float64(tick))
		assert.Empty(t, got, "tick %d", tick)
	}
	got := r.Run([]typedef.UsageRecord{record(web, 11, cpuAt(11))}, 1, 11)
	require.Len(t, got, 1)
	assert.Equal(t, typedef.ContentionCPU, got[0].Type)
	assert.Equal(t, web, got[0].Victim)
	assert.Nil(t, got[0].Aggressor)
	assert.Equal(t, 11.0, got[0].Timestamp)
	require.NotNil(t, got[0].Severity)
	assert.InDelta(t, 0.6, *got[0].Severity, 1e-9)
	assert.Equal(t, 1, r.Len())
}

// TestRegistrySuppressesFalsePositive tests the reset of a detection when nothing is evictable
func TestRegistrySuppressesFalsePositive(t *testing.T) {
	r := newTestRegistry(t)
	for tick := 0; tick <= 10; tick++ {
		r.Run([]typedef.UsageRecord{record(web, float64(tick), cpuAt(tick))}, 0, float64(tick))
	}
	det := r.detectors[web]
	require.NotNil(t, det)
	assert.Empty(t, r.Run([]typedef.UsageRecord{record(web, 11, cpuAt(11))}, 0, 11))
	assert.Same(t, det, r.detectors[web])
	// the drop is still in the sample window and is reported once an entity can be evicted
	for tick := 12; tick < 20; tick++ {
		got := r.Run([]typedef.UsageRecord{record(web, float64(tick), cpuAt(tick))}, 1, float64(tick))
		require.Len(t, got, 1, "tick %d", tick)
		assert.Equal(t, web, got[0].Victim)
		require.NotNil(t, got[0].Severity)
		assert.InDelta(t, 0.6, *got[0].Severity, 1e-9)
	}
	assert.Same(t, det, r.detectors[web])
}

// TestRegistryRecordHandling tests malformed records, extraction failures and vanished entities
func TestRegistryRecordHandling(t *testing.T) {
	tests := []struct {
		name  string
		ticks [][]typedef.UsageRecord
		want  int
	}{
		{
			name: "TC1-records without identity or statistics are dropped",
			ticks: [][]typedef.UsageRecord{
				{record(typedef.EntityIdentity{Group: "default"}, 0, 0), {Identity: web}},
			},
			want: 0,
		},
		{
			name: "TC2-first sighting creates the detector",
			ticks: [][]typedef.UsageRecord{
				{record(web, 0, 0), record(cache, 0, 0)},
			},
			want: 2,
		},
		{
			name: "TC3-duplicated record is dropped",
			ticks: [][]typedef.UsageRecord{
				{record(web, 0, 0), record(web, 0, 5)},
			},
			want: 1,
		},
		{
			name: "TC4-vanished entity keeps its detector",
			ticks: [][]typedef.UsageRecord{
				{record(web, 0, 0), record(cache, 0, 0)},
				{record(web, 1, 1)},
				{record(web, 2, 2)},
			},
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry(t)
			for i, tick := range tt.ticks {
				assert.Empty(t, r.Run(tick, 1, float64(i)))
			}
			assert.Equal(t, tt.want, r.Len())
		})
	}
}

// fakeDetector records the samples it is fed
type fakeDetector struct {
	samples []float64
	resets  int
}

func (f *fakeDetector) Process(s float64) *typedef.Detection {
	f.samples = append(f.samples, s)
	return nil
}

func (f *fakeDetector) Reset() {
	f.resets++
}

// TestRegistrySamples tests which ticks feed a sample into the detector
func TestRegistrySamples(t *testing.T) {
	r := newTestRegistry(t)
	r.Run([]typedef.UsageRecord{record(web, 0, 0)}, 1, 0)
	fake := &fakeDetector{}
	r.detectors[web] = fake

	r.Run([]typedef.UsageRecord{record(web, 1, 2)}, 1, 1)
	// timestamp did not advance, skipped and retried next tick
	r.Run([]typedef.UsageRecord{record(web, 1, 3)}, 1, 2)
	r.Run([]typedef.UsageRecord{record(web, 3, 5)}, 1, 3)
	// absent tick drops the previous record
	r.Run(nil, 1, 4)
	r.Run([]typedef.UsageRecord{record(web, 5, 6)}, 1, 5)
	r.Run([]typedef.UsageRecord{record(web, 6, 8)}, 1, 6)

	assert.Equal(t, []float64{2, 1, 2}, fake.samples)
	assert.NoError(t, r.Reset(web))
	assert.Equal(t, 1, fake.resets)
}

// TestRegistryReset tests Reset and ForceReset
func TestRegistryReset(t *testing.T) {
	r := newTestRegistry(t)
	r.Run([]typedef.UsageRecord{record(web, 0, 0)}, 1, 0)
	fake := &fakeDetector{}
	r.detectors[web] = fake

	assert.NoError(t, r.Reset(web))
	assert.Equal(t, 1, fake.resets)
	assert.NoError(t, r.ForceReset(web))
	assert.NotSame(t, fake, r.detectors[web])

	err := r.Reset(cache)
	assert.True(t, errors.Is(err, ErrUnknownEntity))
	err = r.ForceReset(cache)
	assert.True(t, errors.Is(err, ErrUnknownEntity))
}

// TestRegistryStaleTicks tests the opt-in eviction of stale detectors
func TestRegistryStaleTicks(t *testing.T) {
	tests := []struct {
		name       string
		staleTicks int
		want       int
	}{
		{name: "TC1-detectors are kept by default", staleTicks: 0, want: 2},
		{name: "TC2-absent for two ticks", staleTicks: 2, want: 1},
		{name: "TC3-absent less than the limit", staleTicks: 3, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry(t, WithStaleTicks(tt.staleTicks), WithName("victims"))
			r.Run([]typedef.UsageRecord{record(web, 0, 0), record(cache, 0, 0)}, 1, 0)
			r.Run([]typedef.UsageRecord{record(web, 1, 1)}, 1, 1)
			r.Run([]typedef.UsageRecord{record(web, 2, 2)}, 1, 2)
			assert.Equal(t, tt.want, r.Len())
			assert.Equal(t, "victims", r.Name())
		})
	}
}

// TestNew tests the construction of registries
func TestNew(t *testing.T) {
	ex, err := NewExtractor(ExtractorIPC)
	require.NoError(t, err)
	_, err = New(testConfig(), nil)
	assert.Error(t, err)
	bad := testConfig()
	bad.Quorum = 0
	_, err = New(bad, ex)
	assert.Error(t, err)
	_, err = New(testConfig(), ex, WithStaleTicks(-1))
	assert.Error(t, err)
	_, err = NewExtractor("memory")
	assert.Error(t, err)
}
