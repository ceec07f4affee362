package goreflect_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/inspector"
	"github.com/go-theft-auto/inspector/goreflect"
)

type Inventory struct {
	Items  []string            `inspect:"edit"`
	Keys   map[string]struct{} `inspect:"edit"`
	Counts map[int]string      `inspect:"edit"`
}

func containerField(t *testing.T, p *goreflect.Provider, name string, inv *Inventory) (*inspector.Field, unsafe.Pointer) {
	t.Helper()
	f := fieldByName(t, p.TypeOf(Inventory{}), name)
	return f, unsafe.Add(unsafe.Pointer(inv), f.Offset)
}

func TestArrayOperations(t *testing.T) {
	p := goreflect.New()
	inv := &Inventory{Items: []string{"a", "b", "c"}}
	f, ptr := containerField(t, p, "Items", inv)

	assert.Equal(t, 3, p.Len(f, ptr))
	assert.Equal(t, unsafe.Pointer(&inv.Items[1]), p.Index(f, ptr, 1))
	assert.Nil(t, p.Index(f, ptr, 3))
	assert.Nil(t, p.Index(f, ptr, -1))

	p.Insert(f, ptr, 1)
	assert.Equal(t, []string{"a", "", "b", "c"}, inv.Items)
	p.Insert(f, ptr, 4)
	assert.Equal(t, []string{"a", "", "b", "c", ""}, inv.Items)
	p.Insert(f, ptr, 9)
	assert.Len(t, inv.Items, 5)

	p.Remove(f, ptr, 0)
	assert.Equal(t, []string{"", "b", "c", ""}, inv.Items)
	p.Remove(f, ptr, 4)
	assert.Len(t, inv.Items, 4)

	p.Clear(f, ptr)
	assert.Empty(t, inv.Items)
}

func TestInsertDoesNotAlias(t *testing.T) {
	p := goreflect.New()
	backing := make([]string, 1, 8)
	a := &Inventory{Items: backing}
	b := &Inventory{Items: backing}
	f, pa := containerField(t, p, "Items", a)
	_, pb := containerField(t, p, "Items", b)

	p.Insert(f, pa, 1)
	p.Insert(f, pb, 1)
	a.Items[1] = "mine"
	assert.Equal(t, "", b.Items[1])
}

func TestMapEntriesAreSortedCopies(t *testing.T) {
	p := goreflect.New()
	inv := &Inventory{Counts: map[int]string{3: "c", 1: "a", 2: "b"}}
	f, ptr := containerField(t, p, "Counts", inv)

	entries := p.Entries(f, ptr)
	require.Len(t, entries, 3)
	var keys []int
	for _, e := range entries {
		keys = append(keys, *(*int)(e.Key))
	}
	assert.Equal(t, []int{1, 2, 3}, keys)

	*(*string)(entries[0].Value) = "changed"
	assert.Equal(t, "a", inv.Counts[1])
	p.StoreEntry(f, ptr, entries[0])
	assert.Equal(t, "changed", inv.Counts[1])

	*(*int)(entries[1].Key) = 7
	p.StoreEntry(f, ptr, entries[1])
	assert.Equal(t, map[int]string{1: "changed", 7: "b", 3: "c"}, inv.Counts)

	p.Delete(f, ptr, entries[2])
	assert.Equal(t, map[int]string{1: "changed", 7: "b"}, inv.Counts)
}

func TestSetEntries(t *testing.T) {
	p := goreflect.New()
	inv := &Inventory{}
	f, ptr := containerField(t, p, "Keys", inv)

	assert.Equal(t, 0, p.Len(f, ptr))
	assert.Empty(t, p.Entries(f, ptr))
	assert.True(t, p.AddDefault(f, ptr))
	assert.False(t, p.AddDefault(f, ptr))
	assert.Equal(t, map[string]struct{}{"": {}}, inv.Keys)

	entries := p.Entries(f, ptr)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Value)
	*(*string)(entries[0].Key) = "door"
	p.StoreEntry(f, ptr, entries[0])
	assert.Equal(t, map[string]struct{}{"door": {}}, inv.Keys)

	p.Clear(f, ptr)
	assert.Empty(t, inv.Keys)
}

func TestSetEditOntoExistingElementIsDropped(t *testing.T) {
	p := goreflect.New()
	inv := &Inventory{Keys: map[string]struct{}{"door": {}, "gate": {}}}
	f, ptr := containerField(t, p, "Keys", inv)

	entries := p.Entries(f, ptr)
	require.Len(t, entries, 2)
	*(*string)(entries[0].Key) = "gate"
	p.StoreEntry(f, ptr, entries[0])
	assert.Equal(t, map[string]struct{}{"door": {}, "gate": {}}, inv.Keys)

	*(*string)(entries[0].Key) = "hatch"
	p.StoreEntry(f, ptr, entries[0])
	assert.Equal(t, map[string]struct{}{"hatch": {}, "gate": {}}, inv.Keys)
}

func TestAddDefaultKeepsExistingValue(t *testing.T) {
	p := goreflect.New()
	inv := &Inventory{Counts: map[int]string{0: "zero"}}
	f, ptr := containerField(t, p, "Counts", inv)

	assert.False(t, p.AddDefault(f, ptr))
	assert.Equal(t, "zero", inv.Counts[0])
}
