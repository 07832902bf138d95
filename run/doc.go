/*
 * doc.go, part of gopackmol.
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

// Package run launches the Packmol solver on a given input and follows it
// until it ends.
//
// An Orchestrator runs at most one solver process at a time. Launch returns
// as soon as the process has started; the output of the solver is then
// delivered to the registered Subscribers, chunk by chunk and in the order it
// was produced, followed by exactly one Completion. Cancel kills the process.
package run
