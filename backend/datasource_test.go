package backend

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func makeTestDatasource(t *testing.T) *Datasource {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ds, err := NewDatasource(ctx, log.New(io.Discard), ModelOptions{})
	if err != nil {
		t.Fatalf("failed creating datasource: %v", err)
	}
	t.Cleanup(func() {
		ds.Close()
	})
	return ds
}

// awaitSession reads sessions until one matches or the timeout passes.
func awaitSession(t *testing.T, sessions <-chan Session, match func(Session) bool) Session {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s := <-sessions:
			if match(s) {
				return s
			}
		case <-timeout:
			t.Fatalf("timed out waiting for session")
			return Session{}
		}
	}
}

func TestDatasourceLoad(t *testing.T) {
	ds := makeTestDatasource(t)
	path := filepath.Join(t.TempDir(), "tour.csv")
	if err := os.WriteFile(path, []byte("x,y\n0,1\n1,2\n"), 0o644); err != nil {
		t.Fatalf("failed writing tour: %v", err)
	}
	sessions := ds.Sessions(context.Background())
	id := ds.Load(path)
	s := awaitSession(t, sessions, func(s Session) bool { return !s.Loading })
	if s.ID != id {
		t.Errorf("expected session %q, got %q", id, s.ID)
	}
	if s.Err != nil {
		t.Fatalf("expected load to succeed, got: %v", s.Err)
	}
	if s.Table.Len() != 2 || s.Model == nil || len(s.Model.Y) != 1 {
		t.Errorf("expected a table with 2 rows and a chart, got %+v", s)
	}

	// Late subscribers get the current session first.
	ctx, cancel := context.WithCancel(context.Background())
	late := ds.Sessions(ctx)
	select {
	case s := <-late:
		if s.ID != id {
			t.Errorf("expected current session %q, got %q", id, s.ID)
		}
	default:
		t.Errorf("expected the current session to be ready")
	}
	cancel()
	awaitClosed(t, late)
}

func awaitClosed(t *testing.T, sessions <-chan Session) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-sessions:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatalf("expected the channel to be closed")
		}
	}
}

func TestDatasourceReload(t *testing.T) {
	ds := makeTestDatasource(t)
	path := filepath.Join(t.TempDir(), "tour.csv")
	if err := os.WriteFile(path, []byte("x,y\n0,1\n"), 0o644); err != nil {
		t.Fatalf("failed writing tour: %v", err)
	}
	sessions := ds.Sessions(context.Background())
	ds.Load(path)
	awaitSession(t, sessions, func(s Session) bool { return !s.Loading })

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("failed opening tour: %v", err)
	}
	if _, err := f.WriteString("1,5\n2,6\n"); err != nil {
		t.Fatalf("failed appending to tour: %v", err)
	}
	f.Close()

	s := awaitSession(t, sessions, func(s Session) bool {
		return s.Revision > 0 && s.Table.Len() == 3
	})
	if s.Err != nil {
		t.Errorf("expected reload to succeed, got: %v", s.Err)
	}
}

func TestDatasourceErrors(t *testing.T) {
	ds := makeTestDatasource(t)
	sessions := ds.Sessions(context.Background())
	ds.Load(filepath.Join(t.TempDir(), "missing.csv"))
	s := awaitSession(t, sessions, func(s Session) bool { return !s.Loading })
	if s.Err == nil {
		t.Errorf("expected loading a missing file to fail")
	}

	ds.LoadFromStream("stdin", io.NopCloser(strings.NewReader("x,y\n0,1\n")))
	s = awaitSession(t, sessions, func(s Session) bool { return !s.Loading })
	if s.Err != nil || s.Table.Len() != 1 {
		t.Errorf("expected stream to load one row, got %v", s.Err)
	}
}

func TestDatasourceSetOptions(t *testing.T) {
	ds := makeTestDatasource(t)
	sessions := ds.Sessions(context.Background())
	ds.LoadFromStream("stdin", io.NopCloser(strings.NewReader("x,y,z\n0,1,2\n")))
	awaitSession(t, sessions, func(s Session) bool { return !s.Loading })

	ds.SetOptions(ModelOptions{Series: map[string]SeriesOptions{"y": {Hidden: true}}})
	s := awaitSession(t, sessions, func(s Session) bool { return s.Model != nil && len(s.Model.Y) == 1 })
	if s.Model.Y[0].Label != "z" {
		t.Errorf("expected only z to be shown, got %q", s.Model.Y[0].Label)
	}
	if _, ok := ds.Options().Series["y"]; !ok {
		t.Errorf("expected options to be kept")
	}
}
