// Package events is the wallet SDK's in-process notification core.
//
// A Dispatcher maps each Category to an ordered set of Listeners. Emit builds
// an Event and calls every listener of that category synchronously:
//
//   - Subscriptions are keyed by *Listener identity and are idempotent.
//   - Emit delivers to a snapshot taken when it is called; changes made by
//     listeners during delivery take effect from the next Emit.
//   - A listener that panics is recovered; its siblings still run and the
//     panic never reaches the caller of Emit.
//   - SubscribeOnce listeners fire at most once.
//
// There is no queue, history or replay. Events that nobody listens to are
// dropped.
package events
