package workload

// KeyValueTarget adapts an engine whose Insert/Remove carry a separate
// value (the leaf tree and range tree) to Target by storing the key as
// its own value, so the same workload driver can stress all three
// engines.
type KeyValueTarget struct {
	InsertFunc   func(key, value int) bool
	RemoveFunc   func(key int) bool
	ContainsFunc func(key int) bool
}

func (a KeyValueTarget) Insert(key int) bool   { return a.InsertFunc(key, key) }
func (a KeyValueTarget) Remove(key int) bool   { return a.RemoveFunc(key) }
func (a KeyValueTarget) Contains(key int) bool { return a.ContainsFunc(key) }
