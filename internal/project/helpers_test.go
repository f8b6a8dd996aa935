package project

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/dshills/penv/internal/logging"
	"github.com/dshills/penv/internal/project/vfs"
	"github.com/dshills/penv/internal/props"
)

const warnLevel = zapcore.WarnLevel

type testEnv struct {
	*Env
	mem     *vfs.MemFS
	log     *logging.TestLogger
	editors EditorMap
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := vfs.NewMemFS()
	log := logging.NewTestLogger()
	editors := EditorMap{}
	return &testEnv{
		Env:     NewEnv(WithFS(mem), WithLogger(log.Logger), WithEditors(editors)),
		mem:     mem,
		log:     log,
		editors: editors,
	}
}

func (e *testEnv) read(t *testing.T, path string) string {
	t.Helper()
	data, err := e.mem.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

type fakeEditor struct {
	saved  []string
	loaded []string
	err    error
}

func (e *fakeEditor) Save(path string) error {
	e.saved = append(e.saved, path)
	return e.err
}

func (e *fakeEditor) Load(path string) error {
	e.loaded = append(e.loaded, path)
	return e.err
}

// snapshot flattens a tree into one line per item for structural comparison.
func snapshot(l *ItemList) []string {
	var out []string
	l.Walk(func(item Item, depth int) bool {
		line := fmt.Sprintf("%s%s %q path=%q virtual=%t class=%q props=%v",
			strings.Repeat("  ", depth),
			item.Kind(), item.Name(), item.Path(),
			item.IsVirtual(), item.WindowClass(), propList(item.Properties()))
		if li, ok := item.(*LinkedItems); ok {
			line += " main=" + li.MainName()
		}
		out = append(out, line)
		return true
	})
	return out
}

// mustAdd attaches items to l or fails the test.
func mustAdd(t *testing.T, l *ItemList, items ...Item) {
	t.Helper()
	for _, item := range items {
		if err := l.Add(item); err != nil {
			t.Fatalf("add %s: %v", item.Name(), err)
		}
	}
}

// propList renders s as key=value pairs in insertion order.
func propList(s *props.Set) []string {
	var out []string
	for _, k := range s.Keys() {
		v, _ := s.Get(k)
		out = append(out, k+"="+v)
	}
	return out
}
