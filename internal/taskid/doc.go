/*
Package taskid provides the structured identifier used for every task in the
graph.

A task is either a plain task, named by the id it carries in the source
records, or a batch produced by micro-batch explosion. Batches are written as
`{base}-{n}` with n starting at 1. The string form is what the predecessor,
flow and exploded-set maps are keyed by, but the structure is never recovered
by splitting a string: a record id may itself contain hyphens (`ORD-12`),
so the batch index always travels alongside the base id.
*/
package taskid
