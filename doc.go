// Package energyaware implements a cache eviction [Scorer] for memory
// systems backed by a write-asymmetric persistent technology
// (high write energy, low read energy, non-volatile — e.g. phase-change
// memory).
//
// Classic recency/frequency policies treat every eviction as equally
// cheap. On a write-asymmetric backing store that is wrong twice over:
// evicting a dirty line pays a write-back at the elevated write energy,
// and evicting a write-hot line invites paying it again soon. The scorer
// blends both classic and energy signals into one eviction-desirability
// score per line and selects the highest-scoring candidate of an
// eviction-set as victim.
//
// Glossary and invariants:
//
//   - Eviction-set
//
//     The fixed group of candidate slots competing for replacement on a
//     given miss, typically the ways of one set-associative cache set.
//
//   - Slot
//
//     An index into the scorer's arena of [LineMetadata] records.
//     One record per slot; records are never shared or aliased.
//
//   - Saturating counter
//
//     A fixed-width counter clamping at its bounds instead of wrapping.
//     Per-line access and write counts never overflow or underflow.
//
//   - Dirty line
//
//     A line holding data not yet written back. Carries a pending
//     write-back obligation priced at the backing store's write energy.
//
//   - Cached cost
//
//     Every mutating operation recomputes the line's score immediately,
//     so a stale score never persists across calls. Victim selection
//     still recomputes every candidate: recency depends on the clock,
//     which advances independently of touches.
//
// Score factors, each normalized to [0,1] before weighting:
//
//   - recency: elapsed fraction of logical time since the last touch.
//
//   - frequency: inverse normalized access count.
//
//   - write intensity: normalized write count.
//
//   - dirtiness: the pending write-back obligation.
//
//   - utilization: inverse fraction of the block actually referenced
//     (sub-block spatial locality).
//
// plus an unnormalized energy estimate: one tenth of the projected
// future access energy, minus one fifth of the write-back energy owed
// if the line is dirty. The final score clamps at zero.
//
// Lifecycle per line:
//
//	Invalid → Reset → Valid → {Touch, RecordWrite,
//	    RecordUtilization, SetDirty}* → Invalidate → Invalid
//
// Calling any mutating operation other than Reset on an invalid slot is
// a caller error the engine does not detect.
//
// The engine holds no locks, never blocks, and reads logical time only
// through the [Clock] supplied at construction; a multi-banked
// controller must guard each eviction-set externally.
//
// [Scorer] is one variant of the [Policy] capability interface; [New]
// selects a variant by [Kind] at configuration time ([KindLRU] provides
// a recency-only baseline over the same contract).
package energyaware
