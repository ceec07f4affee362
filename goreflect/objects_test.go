package goreflect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/inspector"
	"github.com/go-theft-auto/inspector/goreflect"
)

func TestObjects(t *testing.T) {
	p := goreflect.New()
	hero := &Pawn{}

	obj := p.Object(hero, "Hero")
	assert.Equal(t, "Hero", obj.Name)
	assert.Equal(t, "Hero", obj.Path)
	assert.Equal(t, "Pawn", obj.Type.Name)

	again := p.Object(hero, "")
	assert.Equal(t, "Hero", again.Name)

	assert.True(t, p.Object(nil, "x").IsNone())
	assert.True(t, p.Object((*Pawn)(nil), "x").IsNone())
	assert.True(t, p.Object(Pawn{}, "x").IsNone())

	objs := p.Objects(hero, &Spawner{})
	require.Len(t, objs, 2)
	assert.Equal(t, "Hero", objs[0].Name)
	assert.Equal(t, "Spawner", objs[1].Type.Name)

	p.Forget(hero)
	assert.Empty(t, p.Object(hero, "").Name)
}

func TestNewObject(t *testing.T) {
	p := goreflect.New()
	pawn := p.TypeOf(Pawn{})
	owner := p.Object(&Spawner{}, "Level.Spawner")

	first := p.NewObject(pawn, owner)
	second := p.NewObject(pawn, inspector.Object{})
	assert.Equal(t, "Pawn_0", first.Name)
	assert.Equal(t, "Level.Spawner.Pawn_0", first.Path)
	assert.Equal(t, "Pawn_1", second.Name)
	assert.Equal(t, "Pawn_1", second.Path)
	assert.NotEqual(t, first.Ptr, second.Ptr)
	assert.Same(t, pawn, first.Type)

	assert.True(t, p.NewObject(&inspector.Type{Name: "Unknown"}, owner).IsNone())
}

func TestAssets(t *testing.T) {
	p := goreflect.New()
	actor := p.TypeOf(Actor{})
	pawn := p.TypeOf(Pawn{})
	p.AddAsset("Zed", &Pawn{})
	p.AddAsset("alpha", &Actor{})
	p.AddAsset("Bob", &Pawn{})

	var names []string
	for _, a := range p.Assets(pawn) {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Bob", "Zed"}, names)
	assert.Len(t, p.Assets(actor), 3)
	assert.Len(t, p.Assets(nil), 3)

	obj, ok := p.ResolvePath("Bob")
	require.True(t, ok)
	assert.Equal(t, "Bob", obj.Name)
	_, ok = p.ResolvePath("missing")
	assert.False(t, ok)
}

func TestInstances(t *testing.T) {
	a, b := &Pawn{}, &Pawn{}
	in := goreflect.Instances(a, b, nil)
	require.Len(t, in, 3)
	assert.NotNil(t, in[0])
	assert.NotEqual(t, in[0], in[1])
	assert.Nil(t, in[2])
}
