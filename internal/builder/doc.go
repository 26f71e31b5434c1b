/*
Package builder turns a set of production records into a validated plan: a
dependency graph of tasks ready to be handed to a scheduler.

Construction is a multi-phase process over a single Context value that carries
the state between phases explicitly:

 1. Resources: every resource schedule is normalized into usable windows
    relative to the plan's reference instant (package availability).

 2. Groups: resource-group records are expanded into groups of the normalized
    resources (package resourcegroup).

 3. Tasks: task records are validated and tasks that declare a micro-batch size
    are exploded into batches (package batch). This phase records the raw
    predecessor map, the flow map and the exploded-set map. Every record is
    validated before the first task is added, so a configuration error leaves
    no partial state behind.

 4. Predecessors: the raw predecessor map is rewritten against the explosion
    (package predecessor). Failures are kept per task as outcomes.

 5. Assembly: resolved ids are turned into task references, cycles are
    rejected, and the tasks are ordered by id (package assembler).

Upon successful completion the builder returns a *Plan whose task list is the
input of the scheduler.
*/
package builder
