/*
 * MIT License
 *
 * Copyright (c) 2026 FairGo Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package state implements the device lifecycle state machine: the fixed
// transition graph of spec section 4.1, the bounded StateQueue external
// code rendezvous on, and the StateMachine that drains the queue and
// invokes per-state hooks, one entry at a time, never starting a later
// state's hook before an earlier one has returned.
package state

// State is one node of the device lifecycle graph.
type State uint8

const (
	Idle State = iota
	Error
	InitializingDevice
	Initialized
	Binding
	Bound
	Connecting
	DeviceReady
	InitializingTask
	Ready
	Running
	ResettingTask
	ResettingDevice
	Exiting
)

var stateNames = [...]string{
	"Idle", "Error", "InitializingDevice", "Initialized", "Binding", "Bound",
	"Connecting", "DeviceReady", "InitializingTask", "Ready", "Running",
	"ResettingTask", "ResettingDevice", "Exiting",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// Transition is a requested move between states.
type Transition uint8

const (
	Auto Transition = iota
	InitDevice
	CompleteInit
	Bind
	Connect
	InitTask
	Run
	Stop
	ResetTask
	ResetDevice
	End
	ErrorFound
)

var transitionNames = [...]string{
	"Auto", "InitDevice", "CompleteInit", "Bind", "Connect", "InitTask",
	"Run", "Stop", "ResetTask", "ResetDevice", "End", "ErrorFound",
}

func (t Transition) String() string {
	if int(t) < len(transitionNames) {
		return transitionNames[t]
	}
	return "Unknown"
}

// edge is a (source, transition) pair; graph maps it to the destination
// state. ErrorFound is valid from any state but Exiting and is checked
// separately.
type edge struct {
	from State
	tr   Transition
}

// graph is the directed transition graph of spec section 4.1, reproduced
// exactly. Auto-transitions are the state machine's own internal
// completions, generated immediately after the hook for their source
// state returns; autoGraph gives the one allowed for each such source.
var graph = map[edge]State{
	{Idle, InitDevice}:               InitializingDevice,
	{InitializingDevice, CompleteInit}: Initialized,
	{Initialized, Bind}:              Binding,
	{Bound, Connect}:                 Connecting,
	{DeviceReady, InitTask}:          InitializingTask,
	{Ready, Run}:                     Running,
	{Running, Stop}:                  Ready,
	{Ready, ResetTask}:               ResettingTask,
	{DeviceReady, ResetDevice}:       ResettingDevice,
	{Idle, End}:                      Exiting,
	{Error, End}:                     Exiting,
}

var autoGraph = map[State]State{
	Binding:         Bound,
	Connecting:      DeviceReady,
	InitializingTask: Ready,
	ResettingTask:   DeviceReady,
	ResettingDevice: Idle,
}

// Next reports the destination of (from, tr) per the transition graph.
// ErrorFound is legal from any state other than Exiting and always moves
// to Error. Auto is only legal from a state that has an entry in
// autoGraph; all other (from, tr) pairs not present in graph are
// rejected.
func Next(from State, tr Transition) (State, bool) {
	if tr == ErrorFound {
		if from == Exiting {
			return 0, false
		}
		return Error, true
	}
	if tr == Auto {
		to, ok := autoGraph[from]
		return to, ok
	}
	to, ok := graph[edge{from, tr}]
	return to, ok
}

// IsAutoPending reports whether from has a pending internal completion,
// i.e. whether the state machine should enqueue Auto itself once the
// entry hook for from returns.
func IsAutoPending(from State) bool {
	_, ok := autoGraph[from]
	return ok
}
