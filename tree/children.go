package tree

import (
	"iter"
	"slices"

	"github.com/dendrascience/wad-tree/util"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Children is the ordered child collection of a Parent. Insertion order is
// kept until a sort pass reorders it.
type Children struct {
	m *orderedmap.OrderedMap[Key, Item]
}

func newChildren() *Children {
	return &Children{m: orderedmap.New[Key, Item]()}
}

func (c *Children) Get(key Key) (Item, bool) {
	return c.m.Get(key)
}

// Lookup finds a child by its displayed name. A name that reads like a hash
// literal also matches the unresolved file it names. When a resolved item
// carries that same literal as its name, the resolved item wins and the
// unresolved file is reachable only through Get(HashKey(...)) or its ID.
func (c *Children) Lookup(name string) (Item, bool) {
	if item, ok := c.m.Get(NameKey(name)); ok {
		return item, true
	}
	if !util.IsHashLiteral(name) {
		return nil, false
	}
	hash, err := util.ParseHash(name)
	if err != nil {
		return nil, false
	}
	return c.m.Get(HashKey(hash))
}

func (c *Children) Len() int {
	return c.m.Len()
}

// All yields key/item pairs in order.
func (c *Children) All() iter.Seq2[Key, Item] {
	return func(yield func(Key, Item) bool) {
		for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Keys returns a snapshot of the keys in order.
func (c *Children) Keys() []Key {
	keys := make([]Key, 0, c.m.Len())
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Items returns a snapshot of the items in order.
func (c *Children) Items() []Item {
	items := make([]Item, 0, c.m.Len())
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		items = append(items, pair.Value)
	}
	return items
}

func (c *Children) set(key Key, item Item) {
	c.m.Set(key, item)
}

func (c *Children) delete(key Key) (Item, bool) {
	return c.m.Delete(key)
}

// sortFunc reorders the collection with a stable sort.
func (c *Children) sortFunc(cmp func(a, b Item) int) {
	items := c.Items()
	if slices.IsSortedFunc(items, cmp) {
		return
	}
	slices.SortStableFunc(items, cmp)
	sorted := orderedmap.New[Key, Item](orderedmap.WithCapacity[Key, Item](len(items)))
	for _, it := range items {
		sorted.Set(it.Key(), it)
	}
	c.m = sorted
}
