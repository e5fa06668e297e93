// Package component assembles the selection pieces into the two server-side selection
// components, RadioButtonGroup and ListSelect, together with the data providers that feed
// them items.
package component
