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
// Description: This file defines the prometheus metrics of qosguard

// Package metrics holds the prometheus collectors of qosguard
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "qosguard"

// reasons a usage record is dropped for a tick
const (
	ReasonInvalid    = "invalid"
	ReasonExtraction = "extraction"
	ReasonTooYoung   = "too_young"
)

// eviction outcomes
const (
	EvictionSucceeded = "evicted"
	EvictionFailed    = "failed"
	EvictionDryRun    = "dry_run"
	EvictionForbidden = "forbidden"
)

var (
	ticksTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total number of ticks, partitioned by result.",
		},
		[]string{"result"},
	)
	tickDuration = promauto.With(prometheus.DefaultRegisterer).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Duration of a tick from usage pull to enforcement.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	recordsDroppedTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "usage_records_dropped_total",
			Help:      "Total number of usage records skipped for a tick.",
		},
		[]string{"reason"},
	)
	detectionsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detections_total",
			Help:      "Total number of detections, near limit advisories included.",
		},
		[]string{"near_limit"},
	)
	falsePositivesTotal = promauto.With(prometheus.DefaultRegisterer).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "false_positives_suppressed_total",
			Help:      "Total number of detections suppressed because no best-effort entity was running.",
		},
	)
	staleDetectorsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_detectors_evicted_total",
			Help:      "Total number of detectors dropped after their entity vanished.",
		},
	)
	detectors = promauto.With(prometheus.DefaultRegisterer).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "detectors",
			Help:      "Number of live detectors per registry.",
		},
		[]string{"registry"},
	)
	contentionsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contentions_total",
			Help:      "Total number of contentions emitted.",
		},
	)
	correctionsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "corrections_total",
			Help:      "Total number of corrections decided.",
		},
	)
	evictionsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Total number of evictions, partitioned by outcome.",
		},
		[]string{"result"},
	)
)

// RecordTick counts a finished tick and observes its duration
func RecordTick(err error, seconds float64) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ticksTotal.WithLabelValues(result).Inc()
	tickDuration.Observe(seconds)
}

// RecordDroppedRecord counts a usage record skipped for the given reason
func RecordDroppedRecord(reason string) {
	recordsDroppedTotal.WithLabelValues(reason).Inc()
}

// RecordDetection counts a detection
func RecordDetection(nearLimit bool) {
	label := "false"
	if nearLimit {
		label = "true"
	}
	detectionsTotal.WithLabelValues(label).Inc()
}

// RecordSuppressedFalsePositive counts a suppressed detection
func RecordSuppressedFalsePositive() {
	falsePositivesTotal.Inc()
}

// RecordStaleDetector counts a dropped stale detector
func RecordStaleDetector() {
	staleDetectorsTotal.Inc()
}

// SetDetectors sets the number of live detectors of a registry
func SetDetectors(registry string, n int) {
	detectors.WithLabelValues(registry).Set(float64(n))
}

// RecordContentions counts emitted contentions
func RecordContentions(n int) {
	contentionsTotal.Add(float64(n))
}

// RecordCorrections counts decided corrections
func RecordCorrections(n int) {
	correctionsTotal.Add(float64(n))
}

// RecordEviction counts one eviction outcome
func RecordEviction(result string) {
	evictionsTotal.WithLabelValues(result).Inc()
}
