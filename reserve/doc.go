// Package reserve provides resource reservation with at-most-one-
// claimant semantics, the collaborator action implementations consult
// to avoid two agents racing for the same target. The planner and the
// plan state machine never touch reservations.
//
// Three managers are provided:
//
//   - MemoryManager: in-process, for single-process simulations.
//   - RedisManager: SETNX-based claims with an optional TTL, for
//     simulations spread across processes sharing a Redis instance.
//   - EtcdManager: lease-backed claims that expire automatically when a
//     process dies, for deployments already running etcd.
//
// All managers are re-entrant for the holding agent: TryReserve on a
// resource you already hold reports success, and IsAvailableFor treats
// your own claim as available.
package reserve
