package types

import (
	"bytes"
	"sort"

	"github.com/meverselabs/swaprelay/common"
)

// EachAllAddressUint64 iterates the map in ascending address order
func EachAllAddressUint64(m map[common.Address]uint64, fn func(key common.Address, value uint64) error) error {
	keys := make([]common.Address, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})
	for _, k := range keys {
		if err := fn(k, m[k]); err != nil {
			return err
		}
	}
	return nil
}

// EachAllStringBytes iterates the map in ascending key order
func EachAllStringBytes(m map[string][]byte, fn func(key string, value []byte) error) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := fn(k, m[k]); err != nil {
			return err
		}
	}
	return nil
}

// EachAllStringBool iterates the map in ascending key order
func EachAllStringBool(m map[string]bool, fn func(key string, value bool) error) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := fn(k, m[k]); err != nil {
			return err
		}
	}
	return nil
}
