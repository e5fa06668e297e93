package keymapper

import (
	"reflect"

	"github.com/uisync/selection-harness/framework/helpers"

	"golang.org/x/exp/maps"
)

// Option configures a KeyMapper in NewKeyMapper.
type Option[T comparable] helpers.ConfigOption[KeyMapper[T]]

type optionGenerator[T comparable] struct {
	generator KeyGenerator
}

func (o optionGenerator[T]) Configure(k *KeyMapper[T]) error {
	k.generator = o.generator
	return nil
}

// WithGenerator replaces the default sequential key generator.
func WithGenerator[T comparable](generator KeyGenerator) Option[T] {
	return optionGenerator[T]{generator}
}

type optionValidator[T comparable] struct {
	validate func(T) error
}

func (o optionValidator[T]) Configure(k *KeyMapper[T]) error {
	k.validate = o.validate
	return nil
}

// WithValidator adds a check that every item must pass before it is registered. If the function
// returns an error that is not already an InvalidItemError, it is wrapped in one.
func WithValidator[T comparable](validate func(T) error) Option[T] {
	return optionValidator[T]{validate}
}

// KeyMapper is a bidirectional mapping between items and keys.
//
// Keys are stable for as long as the item stays registered: calling Key twice for the same item
// returns the same key. Removing an item frees its key; the next Key call for that item allocates a
// new one, which is never equal to any other live key.
type KeyMapper[T comparable] struct {
	keyToItem map[string]T
	itemToKey map[T]string
	generator KeyGenerator
	validate  func(T) error
}

// NewKeyMapper creates an empty KeyMapper.
func NewKeyMapper[T comparable](options ...Option[T]) *KeyMapper[T] {
	k := &KeyMapper[T]{
		keyToItem: make(map[string]T),
		itemToKey: make(map[T]string),
		generator: &SequentialKeys{},
	}
	_ = helpers.ApplyOptions(k, options...)
	return k
}

// Key returns the key for an item, registering the item first if necessary.
func (k *KeyMapper[T]) Key(item T) (string, error) {
	if !isComparable(item) {
		return "", InvalidItemError{Reason: "item is not comparable"}
	}
	if key, ok := k.itemToKey[item]; ok {
		return key, nil
	}
	if err := k.checkItem(item); err != nil {
		return "", err
	}
	key := k.generator.NextKey()
	for {
		if _, taken := k.keyToItem[key]; !taken && key != "" {
			break
		}
		key = k.generator.NextKey()
	}
	k.keyToItem[key] = item
	k.itemToKey[item] = key
	return key, nil
}

// Item returns the item registered for a key, or an UnknownKeyError.
func (k *KeyMapper[T]) Item(key string) (T, error) {
	item, ok := k.keyToItem[key]
	if !ok {
		var empty T
		return empty, UnknownKeyError{Key: key}
	}
	return item, nil
}

// Validate reports whether Key would accept the item, without registering it.
func (k *KeyMapper[T]) Validate(item T) error {
	if !isComparable(item) {
		return InvalidItemError{Reason: "item is not comparable"}
	}
	if k.Has(item) {
		return nil
	}
	return k.checkItem(item)
}

// Has returns true if the item is currently registered.
func (k *KeyMapper[T]) Has(item T) bool {
	if !isComparable(item) {
		return false
	}
	_, ok := k.itemToKey[item]
	return ok
}

// ContainsKey returns true if the key currently refers to an item.
func (k *KeyMapper[T]) ContainsKey(key string) bool {
	_, ok := k.keyToItem[key]
	return ok
}

// Remove deregisters an item. It is a no-op if the item was not registered.
func (k *KeyMapper[T]) Remove(item T) {
	if !isComparable(item) {
		return
	}
	if key, ok := k.itemToKey[item]; ok {
		delete(k.itemToKey, item)
		delete(k.keyToItem, key)
	}
}

// RemoveAll deregisters every item.
func (k *KeyMapper[T]) RemoveAll() {
	maps.Clear(k.keyToItem)
	maps.Clear(k.itemToKey)
}

// Len returns the number of registered items.
func (k *KeyMapper[T]) Len() int {
	return len(k.keyToItem)
}

func (k *KeyMapper[T]) checkItem(item T) error {
	if isNil(item) {
		return InvalidItemError{Reason: "nil item"}
	}
	if k.validate != nil {
		if err := k.validate(item); err != nil {
			if _, ok := err.(InvalidItemError); ok { //nolint:errorlint
				return err
			}
			return InvalidItemError{Reason: err.Error()}
		}
	}
	return nil
}

func isNil(item interface{}) bool {
	v := reflect.ValueOf(item)
	if !v.IsValid() {
		return true
	}
	switch v.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.Map, reflect.Slice, reflect.Func:
		return v.IsNil()
	}
	return false
}

// An interface-typed T can hold a dynamic value such as a slice, which would panic as a map key.
func isComparable(item interface{}) bool {
	v := reflect.ValueOf(item)
	return !v.IsValid() || v.Comparable()
}
