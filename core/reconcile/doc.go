// Package reconcile computes the operations that bring a remote project store
// into agreement with a locally cached copy of the same project.
//
// Local always wins: a document that differs between the two sides is
// rewritten wholesale from the local copy, a document missing locally is
// deleted remotely, and a document missing remotely is written.
//
// # Architecture
//
// The package is split into four pure, synchronous pieces:
//
// 1. Equal: deep structural equality over decoded document values
//    (maps, sets, slices, structs and primitives).
//
// 2. Classify: maps a document to its EntityKind. Project records overload
//    their "type" field with the project template kind, so the whole
//    ProjectType set is treated as a synonym for EntityProject.
//
// 3. Flatten: merges a Snapshot (project, design system, elements, assets)
//    into a single ordered id -> document map.
//
// 4. Reconcile: diffs two flattened snapshots and returns the deletes
//    followed by the writes.
//
// On top of the engine, Plan and ApplyPlan hand the operation list to a
// store that implements Applier, using batch calls when available.
//
// # Determinism
//
// Go maps carry no insertion order, so flattening orders documents as:
// project, design system, elements by id, assets by id. Reconcile emits
// deletes in remote flattened order and writes in local flattened order.
//
// # Usage Example
//
//	ops, err := reconcile.Reconcile(local, remote)
//	if err != nil {
//	    return err
//	}
//	plan := reconcile.BuildPlan(local.ProjectID(), ops)
//	executed, err := reconcile.ApplyPlan(ctx, store, plan, reconcile.ApplyOptions{Confirmed: true})
package reconcile
