// Package scenarios loads the selection scenarios in data-files and replays them against
// anything that implements Target: a local component in unit tests, or a remote component in
// the contract test suite.
//
// A scenario file is YAML or JSON. It may declare "constants", whose values replace <name>
// placeholders, and "parameters", which turn one file into several scenarios. Parameters are
// either a list of objects, each producing one scenario, or a list of lists, in which case
// every combination is produced.
package scenarios
