// Copyright 2024 The AutoPas-Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS-IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package autopas is an auto-tuning particle container framework for
// short-range pairwise-interaction simulations (molecular dynamics,
// smoothed particle hydrodynamics).
//
// Given a fixed simulation box, a cutoff radius, and a user-supplied
// pairwise functor, the package transparently selects and executes the
// best-performing combination of spatial container, traversal, data
// layout and Newton-3 optimization by timing candidate configurations
// and re-evaluating periodically.
//
// The package does not own the time integration loop, does not model
// long-range forces, and does not perform inter-process communication.
// Callers drive the simulation loop and hand particles in and out
// through the AutoPas façade (see AutoPas).
package autopas
