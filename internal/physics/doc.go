// Package physics provides the force model of a body falling through air.
//
// All functions are pure and operate on [dynamo.Params] values:
//
//   - [GravityForce], [DragForce], [Acceleration]: the forces acting on the body
//   - [TerminalVelocity]: the asymptotic speed where drag balances weight
//   - [Energy]: mechanical energy relative to the ground plane
//   - [VacuumHeight], [VacuumFallTime], [VacuumImpactSpeed]: closed forms for
//     the drag-free case, used as references by tests and the compare command
//
// # Sign Convention
//
// Height grows upward and velocities are signed, so a falling body has a
// negative velocity and gravity contributes a negative force:
//
//	a := physics.Acceleration(p, s.V)
//	if vt, ok := physics.TerminalVelocity(p); ok {
//	    fmt.Printf("terminal velocity %.1f m/s\n", vt)
//	}
package physics
