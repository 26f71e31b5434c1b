/*
Package predecessor rewrites raw predecessor declarations so they point at the
nodes that actually exist after micro-batch explosion.

Records declare predecessors against record task ids. Once a task has been
split into batches, its id no longer names a node, and a batch of a split task
should usually wait on the same-position batch of its predecessor rather than on
the whole predecessor. Resolution runs three steps per task, in record order:

 1. Batch-aware rewrite. For a batch `T-n` and each raw predecessor P, the
    counterpart `P-n` is considered. If it exists and the flow map confirms
    that T's predecessor collection is the counterpart's parent collection, T
    depends on `P-n` alone. If no counterpart exists and P is not a plain task,
    T inherits the recorded predecessors of its current predecessors, one
    level up the chain.

 2. The batch size of T is cleared.

 3. Explosion substitution. Every predecessor that was split is replaced by all
    of its batches, so a dependent waits on the whole exploded set.

A task whose rewrite cannot complete is reported as Degraded and keeps no
predecessors; every other task is still resolved.
*/
package predecessor
