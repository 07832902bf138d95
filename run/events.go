/*
 * events.go, part of gopackmol.
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

import "time"

// Handle identifies a launched run.
type Handle struct {
	RunID     string
	InputPath string //the file bound to the solver standard input
	PID       int
	Started   time.Time
}

// Completion is delivered once per run, after all the output of the run.
type Completion struct {
	RunID    string
	ExitCode int //-1 if the process was killed
	Aborted  bool
	Err      error //nil on a zero exit code
	Duration time.Duration
}

// Subscriber receives the events of the runs of an Orchestrator. The calls for
// one Orchestrator never overlap. The chunk slice belongs to the subscriber.
type Subscriber interface {
	OutputChunk(chunk []byte)
	Completion(c Completion)
}

// SubscriberFuncs adapts a pair of functions to the Subscriber interface.
// Nil functions are ignored.
type SubscriberFuncs struct {
	OnChunk      func([]byte)
	OnCompletion func(Completion)
}

func (s SubscriberFuncs) OutputChunk(chunk []byte) {
	if s.OnChunk != nil {
		s.OnChunk(chunk)
	}
}

func (s SubscriberFuncs) Completion(c Completion) {
	if s.OnCompletion != nil {
		s.OnCompletion(c)
	}
}
