/*
 * metrics.go, part of gopackmol.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package run

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for solver runs.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RunsStarted  prometheus.Counter
	RunsFinished *prometheus.CounterVec
	RunDuration  prometheus.Histogram
	OutputBytes  prometheus.Counter
	Running      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// registers with the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		RunsStarted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "gopackmol",
			Name:      "runs_started_total",
			Help:      "Solver processes started",
		}),
		RunsFinished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gopackmol",
			Name:      "runs_finished_total",
			Help:      "Solver runs by outcome",
		}, []string{"outcome"}),
		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gopackmol",
			Name:      "run_duration_seconds",
			Help:      "Wall time of solver runs",
			Buckets:   prometheus.ExponentialBuckets(0.1, 4, 8),
		}),
		OutputBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "gopackmol",
			Name:      "output_bytes_total",
			Help:      "Bytes of solver output delivered to subscribers",
		}),
		Running: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "gopackmol",
			Name:      "running",
			Help:      "1 while a solver process is running",
		}),
	}
}

func (m *Metrics) started() {
	if m == nil {
		return
	}
	m.RunsStarted.Inc()
	m.Running.Set(1)
}

func (m *Metrics) output(n int) {
	if m == nil {
		return
	}
	m.OutputBytes.Add(float64(n))
}

func (m *Metrics) finished(c Completion) {
	if m == nil {
		return
	}
	m.Running.Set(0)
	m.RunDuration.Observe(c.Duration.Seconds())
	m.RunsFinished.WithLabelValues(outcome(c)).Inc()
}

func outcome(c Completion) string {
	switch {
	case c.Aborted:
		return "aborted"
	case c.Err != nil:
		return "failed"
	}
	return "completed"
}
