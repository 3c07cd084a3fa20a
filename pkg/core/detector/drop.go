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
// Create: 2026-03-06
// Description: This file implements the signal drop detector

package detector

import (
	"math"
	"math/bits"

	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/common/util"
	"isula.org/qosguard/pkg/core/typedef"
)

// checkpointBuffer holds the votes of one sample, fill counts the checkpoints that voted
type checkpointBuffer struct {
	exceeded []bool
	fill     int
}

func newCheckpointBuffer(capacity int) checkpointBuffer {
	return checkpointBuffer{exceeded: make([]bool, capacity)}
}

func (b *checkpointBuffer) push(exceeded bool) {
	if b.fill == len(b.exceeded) {
		return
	}
	b.exceeded[b.fill] = exceeded
	b.fill++
}

func (b *checkpointBuffer) count() int {
	var n int
	for _, e := range b.exceeded[:b.fill] {
		if e {
			n++
		}
	}
	return n
}

func (b *checkpointBuffer) clear() {
	b.fill = 0
}

// dropDetector compares every sample with checkpoints taken 1, 2, 4 ... samples ago.
// A drop is confirmed when a quorum of checkpoints sees a fractional drop above the
// threshold. The level before the drop is then frozen and every sample below it keeps
// being reported until the signal returns near that level or Reset is called.
type dropDetector struct {
	conf     *Config
	lags     []int
	required int

	window []float64
	head   int
	fill   int

	smoothed float64
	seeded   bool

	votes     checkpointBuffer
	frozen    bool
	reference float64
}

func newDropDetector(conf *Config) *dropDetector {
	k := bits.Len(uint(conf.WindowSize))
	if k > conf.MaxCheckpoints {
		k = conf.MaxCheckpoints
	}
	lags := make([]int, k)
	for i := range lags {
		lags[i] = 1 << uint(i)
	}
	required := int(math.Floor(conf.Quorum * float64(k)))
	if required < 1 {
		required = 1
	}
	return &dropDetector{
		conf:     conf,
		lags:     lags,
		required: required,
		window:   make([]float64, conf.WindowSize),
		votes:    newCheckpointBuffer(k),
	}
}

// Process feeds one sample
func (d *dropDetector) Process(in float64) *typedef.Detection {
	s := d.smooth(in)
	defer d.push(s)

	if d.frozen {
		if det := d.track(s); det != nil {
			return det
		}
	}
	return d.vote(s)
}

// Reset resumes voting. The sample window is kept.
func (d *dropDetector) Reset() {
	d.frozen = false
	d.reference = 0
	d.votes.clear()
}

func (d *dropDetector) smooth(in float64) float64 {
	if d.conf.Alpha >= 1 {
		return in
	}
	if !d.seeded {
		d.smoothed, d.seeded = in, true
		return in
	}
	d.smoothed = d.conf.Alpha*in + (1-d.conf.Alpha)*d.smoothed
	return d.smoothed
}

func (d *dropDetector) push(s float64) {
	d.window[d.head] = s
	d.head = (d.head + 1) % len(d.window)
	if d.fill < len(d.window) {
		d.fill++
	}
}

// sampleAt returns the sample pushed lag samples ago
func (d *dropDetector) sampleAt(lag int) (float64, bool) {
	if lag > d.fill {
		return 0, false
	}
	size := len(d.window)
	return d.window[(d.head-lag+size)%size], true
}

// track reports a detection while s stays below the frozen reference
func (d *dropDetector) track(s float64) *typedef.Detection {
	recovery := d.reference - d.conf.NearFraction*d.reference
	if s < recovery {
		return d.detection(util.Clamp((d.reference-s)/d.reference, 0, 1))
	}
	log.Debugf("signal %.4f returned to %.4f, drop tracking cleared", s, recovery)
	d.Reset()
	return nil
}

func (d *dropDetector) vote(s float64) *typedef.Detection {
	var (
		voted    int
		dropSum  float64
		refSum   float64
		nearDrop = math.Inf(-1)
	)
	d.votes.clear()
	for _, lag := range d.lags {
		ref, ok := d.sampleAt(lag)
		if !ok {
			break
		}
		if ref <= 0 {
			d.votes.push(false)
			continue
		}
		drop := (ref - s) / ref
		exceeded := drop >= d.conf.FractionalThreshold
		d.votes.push(exceeded)
		if exceeded {
			voted++
			dropSum += drop
			refSum += ref
		} else if drop > nearDrop {
			nearDrop = drop
		}
	}

	if d.votes.fill >= d.required && d.votes.count() >= d.required {
		d.frozen = true
		d.reference = refSum / float64(voted)
		log.Debugf("drop confirmed by %d/%d checkpoints, reference %.4f", voted, len(d.lags), d.reference)
		return d.detection(util.Clamp(dropSum/float64(voted), 0, 1))
	}

	nearLimit := d.conf.FractionalThreshold * (1 - d.conf.NearFraction)
	if nearDrop >= nearLimit && nearDrop < d.conf.FractionalThreshold {
		return &typedef.Detection{NearLimit: true}
	}
	return nil
}

func (d *dropDetector) detection(derived float64) *typedef.Detection {
	severity := derived
	if d.conf.overrideSeverity() {
		severity = d.conf.SeverityFraction
	}
	return &typedef.Detection{Severity: typedef.Float64(severity)}
}
