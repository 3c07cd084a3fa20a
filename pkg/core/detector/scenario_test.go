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
// Description: This file generates deterministic signals for detector tests

package detector

// signal is a sampled test signal, one value per tick
type signal []float64

// constSignal returns n ticks of value v
func constSignal(n int, v float64) signal {
	s := make(signal, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// add shifts every tick from start on by delta
func (s signal) add(start int, delta float64) signal {
	for i := start; i < len(s); i++ {
		s[i] += delta
	}
	return s
}

// ramp adds step per tick for ticks ticks from start on, the last level is kept afterwards
func (s signal) ramp(start int, step float64, ticks int) signal {
	for i := start; i < len(s); i++ {
		n := i - start + 1
		if n > ticks {
			n = ticks
		}
		s[i] += step * float64(n)
	}
	return s
}

// symmetricNoise is a zero mean pattern bounded by one
var symmetricNoise = []float64{0, 0, -0.5, 0.5, -1, 1, -0.5, 0.5, 0, 0, 0.5, -0.5, 1, -1, 0.5, -0.5}

// noise adds symmetric noise bounded by amplitude
func (s signal) noise(amplitude float64) signal {
	for i := range s {
		s[i] += amplitude * symmetricNoise[i%len(symmetricNoise)]
	}
	return s
}
