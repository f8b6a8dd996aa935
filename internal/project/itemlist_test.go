package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/penv/internal/notify"
)

func names(l *ItemList) []string {
	var out []string
	for _, item := range l.Items() {
		out = append(out, item.Name())
	}
	return out
}

func TestItemList_AddRejects(t *testing.T) {
	env := newTestEnv(t)
	p := New("P", WithEnv(env.Env))
	f := NewFile("a", "a")
	mustAdd(t, p.Items(), f)

	assert.ErrorIs(t, p.Items().Add(nil), ErrNilItem)
	var typedNil *File
	assert.ErrorIs(t, p.Items().Add(typedNil), ErrNilItem)
	assert.ErrorIs(t, p.Items().Add(f), ErrItemAttached)
	assert.ErrorIs(t, p.Items().Insert(5, NewFile("b", "b")), ErrIndexOutOfRange)
	assert.Equal(t, 1, p.Items().Len())

	env.log.AssertLogged(t, warnLevel, "add rejected")
}

func TestItemList_AddRejectsCycle(t *testing.T) {
	d := NewDirectory("d", "d")
	child := NewDirectory("child", "child")
	mustAdd(t, d.Items(), child)

	s := NewSubProject("s")
	inner := NewDirectory("inner", "inner")
	mustAdd(t, s.Items(), inner)

	lk := NewLinkedItems("lk")

	tests := []struct {
		name string
		list *ItemList
		item Item
	}{
		{"directory into itself", d.Items(), d},
		{"directory into descendant", child.Items(), d},
		{"subproject into itself", s.Items(), s},
		{"subproject into descendant", inner.Items(), s},
		{"linked items into itself", lk.Items(), lk},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.list.Len()
			assert.ErrorIs(t, tt.list.Add(tt.item), ErrCycle)
			assert.Equal(t, before, tt.list.Len())
			assert.Nil(t, tt.item.List())
		})
	}
}

func TestItemList_InsertAndOrder(t *testing.T) {
	p := New("P")
	l := p.Items()
	mustAdd(t, l, NewFile("a", "a"), NewFile("c", "c"))
	require.NoError(t, l.Insert(1, NewFile("b", "b")))
	require.NoError(t, l.Insert(0, NewFile("first", "")))

	assert.Equal(t, []string{"first", "a", "b", "c"}, names(l))
	assert.Equal(t, 2, l.IndexOf(l.Find("b")))
	assert.Nil(t, l.Find("zzz"))
	assert.Nil(t, l.At(-1))
	assert.Nil(t, l.At(4))
	assert.Equal(t, -1, l.IndexOf(NewFile("a", "a")))
}

// Scenario C: Remove shrinks the list by one and keeps the order.
func TestItemList_Remove(t *testing.T) {
	p := New("P")
	l := p.Items()
	mustAdd(t, l, NewFile("a", ""), NewFile("b", ""), NewFile("c", ""), NewFile("d", ""))
	p.SetModified(false)

	removed, err := l.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Name())
	assert.Nil(t, removed.List())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"a", "c", "d"}, names(l))
	assert.True(t, p.IsModified())

	_, err = l.Remove(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, 3, l.Len())

	require.NoError(t, l.Add(removed), "removed item can be re-added")
}

func TestItemList_Owner(t *testing.T) {
	p := New("P")
	d := NewDirectory("d", "d")
	mustAdd(t, p.Items(), d)

	assert.Same(t, p, p.Items().OwnerProject())
	assert.Nil(t, p.Items().OwnerItem())
	assert.Equal(t, Item(d), d.Items().OwnerItem())
	assert.Nil(t, d.Items().OwnerProject())
	assert.Same(t, p, d.Items().Project())
	assert.Equal(t, Entity(d), d.Items().Owner())
}

func TestItemList_MoveProjectItem(t *testing.T) {
	ws := NewWorkspace("W")
	p1, p2 := New("P1"), New("P2")
	require.NoError(t, ws.Projects().Add(p1))
	require.NoError(t, ws.Projects().Add(p2))

	a, b := NewFile("a", "a"), NewFile("b", "b")
	mustAdd(t, p1.Items(), a, b)
	p1.SetModified(false)
	p2.SetModified(false)
	ws.SetModified(false)

	rec := &notify.Recorder{}
	require.NoError(t, p1.Items().MoveProjectItem(0, p2, rec))

	assert.Equal(t, []string{"b"}, names(p1.Items()))
	assert.Equal(t, []string{"a"}, names(p2.Items()))
	assert.Same(t, p2.Items(), a.List())
	assert.Same(t, p2, a.Project())
	assert.True(t, p1.IsModified())
	assert.True(t, p2.IsModified())
	assert.False(t, ws.IsModified(), "item moves never mark the workspace")

	ev, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, TopicItemMoved, ev.Topic)
	assert.Equal(t, ItemMoved{Item: a, From: p1.Items(), To: p2.Items()}, ev.Payload)
}

func TestItemList_MoveIntoContainers(t *testing.T) {
	p := New("P")
	d := NewDirectory("d", "d")
	li := NewLinkedItems("l")
	s := NewSubProject("s")
	f := NewFile("f", "f")
	mustAdd(t, p.Items(), d, li, s, f)

	for _, dst := range []Container{d, li, s} {
		require.NoError(t, f.MoveTo(dst, nil))
		assert.Same(t, dst.Items(), f.List())
		assert.Equal(t, 1, dst.Items().Len())
	}
	assert.Same(t, s.Embedded(), f.Project())
	assert.Equal(t, Entity(s), f.Parent())

	require.NoError(t, f.MoveTo(p, nil))
	assert.Equal(t, 0, s.Items().Len())
	assert.Same(t, p.Items(), f.List())
}

func TestItemList_MoveRejects(t *testing.T) {
	env := newTestEnv(t)
	p := New("P", WithEnv(env.Env))
	f := NewFile("f", "f")
	other := NewFile("g", "g")
	mustAdd(t, p.Items(), f, other)
	p.SetModified(false)
	rec := &notify.Recorder{}

	tests := []struct {
		name string
		dst  Entity
		want error
	}{
		{"same owner", p, ErrSameDestination},
		{"file", other, ErrInvalidDestination},
		{"nil", nil, ErrInvalidDestination},
		{"workspace", NewWorkspace("W"), ErrInvalidDestination},
		{"typed nil project", (*Project)(nil), ErrInvalidDestination},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Items().MoveProjectItem(0, tt.dst, rec)
			assert.ErrorIs(t, err, tt.want)
			assert.Same(t, p.Items(), f.List())
			assert.Equal(t, []string{"f", "g"}, names(p.Items()))
			assert.False(t, p.IsModified(), "state is unchanged")
		})
	}

	assert.ErrorIs(t, p.Items().MoveProjectItem(2, New("Q"), rec), ErrIndexOutOfRange)
	assert.Empty(t, rec.Events())
	env.log.AssertLogged(t, warnLevel, "move rejected")
}

func TestItemList_MoveRejectsCycle(t *testing.T) {
	p := New("P")
	d := NewDirectory("d", "d")
	inner := NewDirectory("inner", "inner")
	s := NewSubProject("s")
	deep := NewLinkedItems("deep")
	mustAdd(t, p.Items(), d, s)
	mustAdd(t, d.Items(), inner)
	mustAdd(t, s.Items(), deep)

	assert.ErrorIs(t, d.MoveTo(d, nil), ErrCycle)
	assert.ErrorIs(t, d.MoveTo(inner, nil), ErrCycle)
	assert.ErrorIs(t, s.MoveTo(s, nil), ErrCycle)
	assert.ErrorIs(t, s.MoveTo(deep, nil), ErrCycle)

	assert.Same(t, p.Items(), d.List())
	assert.Same(t, p.Items(), s.List())

	require.NoError(t, inner.MoveTo(s, nil), "moving a child out is fine")
	assert.Same(t, s.Items(), inner.List())
}

func TestItemList_CopyProjectItem(t *testing.T) {
	p1, p2 := New("P1"), New("P2")
	f := NewFile("a", "a")
	f.SetWindowID("w1")
	f.Properties().Set("k", "v")
	mustAdd(t, p1.Items(), f)
	p1.SetModified(false)
	p2.SetModified(false)

	rec := &notify.Recorder{}
	require.NoError(t, p1.Items().CopyProjectItem(0, p2, rec))

	assert.Equal(t, 1, p1.Items().Len())
	assert.Same(t, f, p1.Items().At(0))
	assert.Same(t, p1.Items(), f.List())
	assert.False(t, p1.IsModified(), "source untouched")
	assert.True(t, p2.IsModified())

	require.Equal(t, 1, p2.Items().Len())
	c := p2.Items().At(0)
	assert.NotSame(t, f, c)
	assert.NotEqual(t, f.ID(), c.ID())
	assert.Equal(t, "a", c.Name())
	assert.Equal(t, "a", c.Path())
	assert.Empty(t, c.WindowID())
	assert.Same(t, p2.Items(), c.List())
	assert.True(t, f.Properties().Equal(c.Properties()))

	ev, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, TopicItemCopied, ev.Topic)
	assert.Equal(t, ItemCopied{Source: f, Copy: c, To: p2.Items()}, ev.Payload)

	assert.ErrorIs(t, p1.Items().CopyProjectItem(0, p1, nil), ErrSameDestination)
	assert.ErrorIs(t, p1.Items().CopyProjectItem(0, f, nil), ErrInvalidDestination)
	assert.ErrorIs(t, p1.Items().CopyProjectItem(-1, p2, nil), ErrIndexOutOfRange)
	assert.False(t, p1.IsModified())
}

func TestItemList_CopyDirectoryIntoItself(t *testing.T) {
	p := New("P")
	d := NewDirectory("d", "d")
	mustAdd(t, p.Items(), d)
	mustAdd(t, d.Items(), NewFile("x", "x"))

	assert.ErrorIs(t, d.CopyTo(d, nil), ErrCycle)
	assert.Equal(t, 1, d.Items().Len())

	require.NoError(t, d.Items().At(0).CopyTo(p, nil))
	assert.Equal(t, []string{"d", "x"}, names(p.Items()))
}

func TestItemList_ModifiedPropagatesThroughContainers(t *testing.T) {
	root := New("root")
	d := NewDirectory("d", "d")
	li := NewLinkedItems("l")
	s := NewSubProject("s")
	inner := NewSubProject("inner")
	f := NewFile("f", "f")
	mustAdd(t, root.Items(), d)
	mustAdd(t, d.Items(), li)
	mustAdd(t, li.Items(), s)
	mustAdd(t, s.Items(), inner)
	mustAdd(t, inner.Items(), f)

	reset := func() {
		for _, p := range []*Project{root, s.Embedded(), inner.Embedded()} {
			p.SetModified(false)
		}
	}

	reset()
	f.SetName("g")
	assert.True(t, inner.Embedded().IsModified())
	assert.True(t, s.Embedded().IsModified())
	assert.True(t, root.IsModified())

	reset()
	li.SetMainName("s")
	assert.True(t, root.IsModified())
	assert.False(t, s.Embedded().IsModified(), "marking never descends")

	reset()
	f.SetName("h")
	inner.Items().Modified(false)
	assert.False(t, inner.Embedded().IsModified())
	assert.True(t, s.Embedded().IsModified(), "clearing affects the nearest project only")
	assert.True(t, root.IsModified())
}

func TestItemList_Walk(t *testing.T) {
	p := New("P")
	d := NewDirectory("d", "d")
	s := NewSubProject("s")
	mustAdd(t, p.Items(), d, s, NewFile("z", "z"))
	mustAdd(t, d.Items(), NewFile("a", "a"), NewFile("b", "b"))
	mustAdd(t, s.Items(), NewFile("c", "c"))

	var visited []string
	p.Items().Walk(func(item Item, depth int) bool {
		visited = append(visited, item.Name())
		return item.Name() != "s"
	})
	assert.Equal(t, []string{"d", "a", "b", "s", "z"}, visited)
}

func TestItemList_CreateProjectItem(t *testing.T) {
	env := newTestEnv(t)
	p := New("P", WithEnv(env.Env))

	for typeName, kind := range map[string]Kind{
		TypeFile:        KindFile,
		TypeDirectory:   KindDirectory,
		TypeLinkedItems: KindLinkedItems,
		TypeSubProject:  KindSubProject,
	} {
		item, err := p.Items().CreateProjectItem(typeName)
		require.NoError(t, err)
		assert.Equal(t, kind, item.Kind())
		assert.Nil(t, item.List())
	}

	_, err := p.Items().CreateProjectItem("symlink")
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, 0, p.Items().Len())
	env.log.AssertLogged(t, warnLevel, "create rejected")
}
