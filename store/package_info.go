// Package store persists the selection of a component so that a new component with the same
// persistence ID starts with it. What is stored is the ordered list of selected item values;
// keys are never stored, because they are only meaningful to the component that issued them.
package store
