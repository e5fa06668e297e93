// Package keymapper assigns opaque string keys to data items so that the items can be referenced
// by a remote client without exposing their identity or serialized form.
//
// A KeyMapper is owned by a single component and is not safe for concurrent use.
package keymapper
