/*
 * state.go, part of gopackmol.
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

import "fmt"

// State is the state of the solver process owned by an Orchestrator.
type State int32

const (
	Idle State = iota
	Launching
	Running
	Completed
	Aborted
)

var stateNames = [...]string{"idle", "launching", "running", "completed", "aborted"}

func (s State) String() string {
	if s < Idle || s > Aborted {
		return fmt.Sprintf("State(%d)", int32(s))
	}
	return stateNames[s]
}

// Busy reports whether a process is being launched or is running.
func (s State) Busy() bool {
	return s == Launching || s == Running
}

// Terminal reports whether s is the final state of a run.
func (s State) Terminal() bool {
	return s == Completed || s == Aborted
}
