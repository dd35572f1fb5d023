// Package engine contains the simulation loop and its subsystems.
//
// ARCHITECTURAL RULE: systems do NOT call each other directly. The Stepper
// emits StepTick events to the event log; the Engine dispatches every new
// event to the subscribed systems in a fixed order. The whole run is
// synchronous: one step is fully processed before the next begins.
package engine
