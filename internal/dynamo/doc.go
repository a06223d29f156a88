// Package dynamo provides the core data model shared by every part of the
// drop simulator.
//
// The package defines the plain value types that flow between the
// integrator, the frame stepper and the outer collaborators:
//
//   - [Params]: physical parameters of a drop (mass, height, drag, ...)
//   - [State]: position, velocity and acceleration of the falling body
//   - [DataPoint]: one decimated trajectory sample
//   - [Integrator]: pure state advance interface
//   - [Metric]: observer accumulating a scalar over a run
//
// # Example
//
//	p := dynamo.DefaultParams()
//	s := dynamo.InitialState(p)
//	s = integrators.NewSemiImplicitEuler().Step(s, p, 0.01)
//
// # Value Semantics
//
// State and Params are small structs passed by value. A State handed to a
// reader is a snapshot; nothing in this module keeps a pointer into it.
package dynamo
