/*
Package logging builds the structured loggers used across the module.

New returns a *zap.Logger configured from Config: a level, an encoding
(console or json) and an output. Outputs are stderr, stdout, a file rotated
with lumberjack, or "host", which forwards every entry to the host runtime's
logging capability over waPC so guest code can log without owning a file
descriptor.
*/
package logging
