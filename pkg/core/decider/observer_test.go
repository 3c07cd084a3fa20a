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
// Create: 2026-03-11
// Description: This file is used for testing the correction observer

package decider

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/core/pipeline"
	"isula.org/qosguard/pkg/core/typedef"
)

type recordingDecider struct {
	calls []typedef.Contentions
	err   error
}

func (d *recordingDecider) Decide(_ api.AgeLookup, cs typedef.Contentions,
	u *typedef.Usage) (typedef.QoSCorrections, error) {
	d.calls = append(d.calls, cs)
	if d.err != nil {
		return nil, d.err
	}
	return (&KillAll{}).Decide(nil, cs, u)
}

func newTestObserver(d Decider, producers, cooldown int) (*Observer, *[]typedef.QoSCorrections) {
	o := NewObserver(d, populationAges, producers, cooldown)
	var out []typedef.QoSCorrections
	o.Subscribe(pipeline.NewConsumerFunc(func(cs typedef.QoSCorrections) error {
		out = append(out, cs)
		return nil
	}))
	return o, &out
}

// TestObserverJoin tests that corrections are emitted once contentions and usage are known
func TestObserverJoin(t *testing.T) {
	d := &recordingDecider{}
	o, out := newTestObserver(d, 2, 0)

	require.NoError(t, o.ContentionIn(0).Consume(typedef.Contentions{anonymous("web", typedef.Float64(0.2))}))
	require.NoError(t, o.UsageIn().Consume(population))
	assert.Empty(t, *out)
	require.NoError(t, o.ContentionIn(1).Consume(typedef.Contentions{
		anonymous("db", nil),
		anonymous("cache", typedef.Float64(0.9)),
	}))
	require.Len(t, *out, 1)
	assert.Equal(t, []string{"b1", "b2", "b3", "b4"}, targets((*out)[0]))

	require.Len(t, d.calls, 1)
	var victims []string
	for _, c := range d.calls[0] {
		victims = append(victims, c.Victim.ID)
	}
	assert.Equal(t, []string{"cache", "web", "db"}, victims)

	// usage arriving last triggers the decision as well
	require.NoError(t, o.ContentionIn(1).Consume(typedef.Contentions{}))
	require.NoError(t, o.ContentionIn(0).Consume(typedef.Contentions{anonymous("web", nil)}))
	assert.Len(t, *out, 1)
	require.NoError(t, o.UsageIn().Consume(population))
	assert.Len(t, *out, 2)
}

// TestObserverEmptyContentions tests that ticks without contentions emit empty batches
func TestObserverEmptyContentions(t *testing.T) {
	d := &recordingDecider{}
	o, out := newTestObserver(d, 1, 0)
	require.NoError(t, o.UsageIn().Consume(population))
	require.NoError(t, o.ContentionIn(0).Consume(nil))
	require.Len(t, *out, 1)
	assert.Empty(t, (*out)[0])
	assert.Empty(t, d.calls)
}

// TestObserverDecideFailure tests that a failing decider yields an empty batch
func TestObserverDecideFailure(t *testing.T) {
	d := &recordingDecider{err: errors.New("broken")}
	o, out := newTestObserver(d, 1, 0)
	require.NoError(t, o.UsageIn().Consume(population))
	require.NoError(t, o.ContentionIn(0).Consume(typedef.Contentions{anonymous("web", nil)}))
	require.Len(t, *out, 1)
	assert.Empty(t, (*out)[0])
}

// TestObserverCooldown tests that contentions are ignored after corrections
func TestObserverCooldown(t *testing.T) {
	d := &recordingDecider{}
	o, out := newTestObserver(d, 1, 2)
	tick := func() typedef.QoSCorrections {
		require.NoError(t, o.UsageIn().Consume(population))
		require.NoError(t, o.ContentionIn(0).Consume(typedef.Contentions{anonymous("web", nil)}))
		return (*out)[len(*out)-1]
	}
	assert.Len(t, tick(), 4)
	assert.Empty(t, tick())
	assert.Empty(t, tick())
	assert.Len(t, tick(), 4)
	assert.Len(t, d.calls, 2)
}

// TestObserverReset tests that a partial tick is discarded
func TestObserverReset(t *testing.T) {
	d := &recordingDecider{}
	o, out := newTestObserver(d, 2, 0)
	require.NoError(t, o.ContentionIn(0).Consume(typedef.Contentions{anonymous("web", nil)}))
	require.NoError(t, o.UsageIn().Consume(population))
	o.Reset()
	require.NoError(t, o.ContentionIn(1).Consume(typedef.Contentions{}))
	assert.Empty(t, *out)
	require.NoError(t, o.ContentionIn(0).Consume(typedef.Contentions{}))
	require.NoError(t, o.UsageIn().Consume(population))
	require.Len(t, *out, 1)
	assert.Empty(t, (*out)[0])
}
