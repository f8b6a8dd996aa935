package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSavedWorkspace(t *testing.T, env *testEnv) *Workspace {
	t.Helper()
	ws := NewWorkspace("W", WithPath("/ws/w.penvws"), WithEnv(env.Env))
	ws.SetProperty("theme", "dark")

	p1 := New("P1", WithPath("/ws/p1/p1.penvprj"))
	p2 := New("P2", WithPath("/elsewhere/p2.penvprj"))
	require.NoError(t, ws.Projects().Add(p1))
	require.NoError(t, ws.Projects().Add(p2))
	mustAdd(t, p1.Items(), NewFile("a.txt", "a.txt"))
	mustAdd(t, p2.Items(), NewDirectory("src", "src"))

	require.NoError(t, ws.SaveAll())
	return ws
}

func TestWorkspace_SaveWritesRelativeReferences(t *testing.T) {
	env := newTestEnv(t)
	ws := newSavedWorkspace(t, env)

	assert.False(t, ws.IsWorkspaceOrProjectModified())

	doc := env.read(t, "/ws/w.penvws")
	assert.Contains(t, doc, "workspace:")
	assert.Contains(t, doc, "path: p1/p1.penvprj")
	assert.Contains(t, doc, "path: ../elsewhere/p2.penvprj")
	assert.Contains(t, doc, "theme: dark")
	assert.True(t, env.mem.Exists("/ws/p1/p1.penvprj"))
	assert.True(t, env.mem.Exists("/elsewhere/p2.penvprj"))
}

func TestWorkspace_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	orig := newSavedWorkspace(t, env)

	ws := NewWorkspace("", WithPath("/ws/w.penvws"), WithEnv(env.Env))
	require.NoError(t, ws.Load())

	assert.Equal(t, "W", ws.Name())
	assert.Equal(t, []string{"theme=dark"}, propList(ws.Properties()))
	assert.False(t, ws.IsWorkspaceOrProjectModified())
	require.Equal(t, 2, ws.Projects().Len())

	for i, want := range orig.Projects().Projects() {
		got := ws.Projects().At(i)
		assert.Equal(t, want.Name(), got.Name())
		assert.Equal(t, want.Path(), got.Path())
		assert.Equal(t, snapshot(want.Items()), snapshot(got.Items()))
		assert.Same(t, ws, got.Workspace())
	}
	assert.Equal(t, "/ws/p1/a.txt", ws.Projects().At(0).Items().At(0).GetPath())
}

func TestWorkspace_LoadSkipsBrokenProjects(t *testing.T) {
	env := newTestEnv(t)
	doc := `workspace:
  name: W
  projects:
    - name: good
      path: good/good.penvprj
    - name: missing
      path: missing/missing.penvprj
    - name: broken
      path: broken.penvprj
    - name: nopath
`
	require.NoError(t, env.mem.AddFile("/ws/w.penvws", doc))
	require.NoError(t, env.mem.AddFile("/ws/good/good.penvprj", "project:\n  name: good\n"))
	require.NoError(t, env.mem.AddFile("/ws/broken.penvprj", "items: []\n"))

	ws := NewWorkspace("", WithPath("/ws/w.penvws"), WithEnv(env.Env))
	require.NoError(t, ws.Load())

	require.Equal(t, 1, ws.Projects().Len())
	assert.Equal(t, "good", ws.Projects().At(0).Name())
	assert.Len(t, env.log.FilterMessage("project skipped").All(), 3)
	assert.False(t, ws.IsModified())
}

func TestWorkspace_LoadErrors(t *testing.T) {
	env := newTestEnv(t)

	err := NewWorkspace("W", WithPath("/none.penvws"), WithEnv(env.Env)).Load()
	assert.True(t, IsNotFound(err))

	require.NoError(t, env.mem.AddFile("/bad.penvws", "project:\n  name: P\n"))
	err = NewWorkspace("W", WithPath("/bad.penvws"), WithEnv(env.Env)).Load()
	assert.True(t, IsMalformed(err))

	assert.ErrorIs(t, NewWorkspace("W").Load(), ErrNoPath)
	assert.ErrorIs(t, NewWorkspace("W").Save(), ErrNoPath)
}

func TestWorkspace_SaveSkipsPathlessProjects(t *testing.T) {
	env := newTestEnv(t)
	ws := NewWorkspace("W", WithPath("/ws/w.penvws"), WithEnv(env.Env))
	require.NoError(t, ws.Projects().Add(New("scratch")))
	require.NoError(t, ws.Projects().Add(New("kept", WithPath("/ws/kept.penvprj"))))

	require.NoError(t, ws.Save())
	env.log.AssertLogged(t, warnLevel, "project not referenced")

	doc := env.read(t, "/ws/w.penvws")
	assert.NotContains(t, doc, "scratch")
	assert.Contains(t, doc, "path: kept.penvprj")
}

func TestWorkspace_RelativeProjectPathFollowsWorkspace(t *testing.T) {
	env := newTestEnv(t)
	ws := NewWorkspace("W", WithPath("/ws/w.penvws"), WithEnv(env.Env))
	p := New("P3", WithPath("p3/p3.penvprj"))
	require.NoError(t, ws.Projects().Add(p))
	f := NewFile("a.txt", "a.txt")
	mustAdd(t, p.Items(), f)

	assert.Equal(t, "/ws/p3", p.Dir())
	assert.Equal(t, "/ws/p3/a.txt", f.GetPath())

	require.NoError(t, ws.SaveAll())
	assert.True(t, env.mem.Exists("/ws/p3/p3.penvprj"))
	assert.False(t, env.mem.Exists("/p3/p3.penvprj"))
	assert.Contains(t, env.read(t, "/ws/w.penvws"), "path: p3/p3.penvprj")

	loaded := NewWorkspace("", WithPath("/ws/w.penvws"), WithEnv(env.Env))
	require.NoError(t, loaded.Load())
	require.Equal(t, 1, loaded.Projects().Len())
	got := loaded.Projects().At(0)
	assert.Equal(t, "P3", got.Name())
	assert.Equal(t, snapshot(p.Items()), snapshot(got.Items()))
}

func TestWorkspace_SaveAllReportsFailures(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.mem.AddFile("/blocked", "a file, not a directory"))

	ws := NewWorkspace("W", WithPath("/ws/w.penvws"), WithEnv(env.Env))
	bad := New("bad", WithPath("/blocked/bad.penvprj"))
	good := New("good", WithPath("/ws/good.penvprj"))
	require.NoError(t, ws.Projects().Add(bad))
	require.NoError(t, ws.Projects().Add(good))
	bad.SetModified(true)
	good.SetModified(true)

	err := ws.SaveAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `project "bad"`)
	assert.True(t, bad.IsModified())
	assert.False(t, good.IsModified())
	assert.False(t, ws.IsModified())
}

func TestWorkspace_ModifiedFlags(t *testing.T) {
	ws := NewWorkspace("W")
	assert.False(t, ws.IsWorkspaceOrProjectModified())

	ws.SetName("W2")
	assert.True(t, ws.IsModified())
	ws.SetModified(false)

	p := New("P")
	require.NoError(t, ws.Projects().Add(p))
	ws.SetModified(false)

	mustAdd(t, p.Items(), NewFile("a", "a"))
	assert.False(t, ws.IsModified())
	assert.True(t, ws.IsWorkspaceOrProjectModified())
}

func TestWorkspaceList(t *testing.T) {
	env := newTestEnv(t)
	l := NewWorkspaceList(WithEnv(env.Env))
	w1, w2 := NewWorkspace("one"), NewWorkspace("two")

	require.NoError(t, l.Add(w1))
	require.NoError(t, l.Add(w2))
	assert.Same(t, w1, l.Active())
	assert.Same(t, w2, l.Find("two"))
	assert.Equal(t, 2, l.Len())

	assert.ErrorIs(t, l.Add(nil), ErrNilWorkspace)
	assert.ErrorIs(t, l.Add(w1), ErrWorkspaceAttached)
	assert.ErrorIs(t, l.SetActive(NewWorkspace("stranger")), ErrNotInList)
	env.log.AssertLogged(t, warnLevel, "activate rejected")

	require.NoError(t, l.SetActive(w2))
	assert.Same(t, w2, l.Active())

	removed, err := l.Remove(1)
	require.NoError(t, err)
	assert.Same(t, w2, removed)
	assert.Nil(t, l.Active())
	assert.Nil(t, w2.List())
	assert.Equal(t, []*Workspace{w1}, l.Workspaces())

	_, err = l.Remove(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestWorkspaceList_ModifiedAndSaveAll(t *testing.T) {
	env := newTestEnv(t)
	l := NewWorkspaceList(WithEnv(env.Env))
	clean := NewWorkspace("clean")
	dirty := NewWorkspace("dirty", WithPath("/d/dirty.penvws"))
	require.NoError(t, l.Add(clean))
	require.NoError(t, l.Add(dirty))
	assert.False(t, l.IsWorkspaceOrProjectModified())

	p := New("P", WithPath("/d/p.penvprj"))
	require.NoError(t, dirty.Projects().Add(p))
	mustAdd(t, p.Items(), NewFile("f", "f"))
	assert.True(t, l.IsWorkspaceOrProjectModified())

	require.NoError(t, l.SaveAll(), "clean workspace without a path is not saved")
	assert.False(t, l.IsWorkspaceOrProjectModified())
	assert.True(t, env.mem.Exists("/d/dirty.penvws"))
	assert.True(t, env.mem.Exists("/d/p.penvprj"))
}
