/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package core provides the automaton engine used to scan byte
// streams.  An automaton is a Graph of States, and each State has an
// ordered list of Transitions.
//
// The primary type is Graph, and the primary method is Walk().  A
// Transition has a Comparator that classifies one input byte, a
// destination State (given as a Handle into the Graph), and an
// optional Action.
//
// The structure of a Graph is allowed to be nondeterministic in the
// sense that more than one Transition of a State can match the same
// byte.  For example, a State might have an Exact transition for '<'
// followed by an Everything transition.  Step() resolves that
// ambiguity deterministically: Transitions are considered in the
// order they were added, and the first one that matches wins.
// Therefore specific Transitions must be added before general ones.
// The engine can't check that discipline.  Tests should.
//
// Actions do not pick destinations.  An Action only updates the
// caller's Accumulators (the current record ID and the queue of
// flagged IDs).  The Graph never owns Accumulators, so a compiled
// Graph can be shared by independent scans.
//
// To use this package, make a Graph with NewGraph(), add States and
// Transitions, and then Compile() it.  After that the Graph is
// read-only.  Then Walk() it over an io.ByteReader.
//
// A byte that no Transition matches is fatal to a Walk.  A well-built
// Graph gives every State an Everything transition, so that case
// indicates a construction bug rather than bad input.
package core
