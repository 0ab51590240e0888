package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/tourchart/chart"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Session is one loaded tour file together with the chart built from it.
type Session struct {
	ID   string
	Path string
	// Loading is set while the first read of the file is in progress.
	Loading bool
	Table   *Table
	Model   *chart.Model
	Err     error
	// Revision counts the reloads caused by changes to the file.
	Revision int
}

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

type datasourceState struct {
	session Session
	opts    ModelOptions
	// dir is the watched directory of the session file.
	dir string
}

// Datasource loads tour files and reloads them when they change on disk.
// Every change of the current session is published to all subscribers.
type Datasource struct {
	logger     *log.Logger
	watcher    *fsnotify.Watcher
	appCtx     context.Context
	generation atomic.Uint64
	state      RWBox[datasourceState]

	subsLock sync.Mutex
	subs     map[chan Session]struct{}
}

func NewDatasource(appCtx context.Context, logger *log.Logger, opts ModelOptions) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	ds := &Datasource{
		logger:  logger,
		watcher: watcher,
		appCtx:  appCtx,
		subs:    map[chan Session]struct{}{},
	}
	ds.state.t.opts = opts
	go ds.watch()
	return ds, nil
}

// Sessions returns a channel which receives the current session and then
// every change of it. Slow readers only see the latest value. The channel
// is closed when ctx is done.
func (d *Datasource) Sessions(ctx context.Context) <-chan Session {
	out := make(chan Session, 1)
	d.subsLock.Lock()
	d.state.Read(func(s *datasourceState) {
		if s.session.ID != "" {
			out <- s.session
		}
	})
	d.subs[out] = struct{}{}
	d.subsLock.Unlock()
	go func() {
		<-ctx.Done()
		d.subsLock.Lock()
		defer d.subsLock.Unlock()
		delete(d.subs, out)
		close(out)
	}()
	return out
}

// Current returns the current session.
func (d *Datasource) Current() Session {
	var session Session
	d.state.Read(func(s *datasourceState) {
		session = s.session
	})
	return session
}

// publish sends session to every subscriber. The caller must hold
// subsLock.
func (d *Datasource) publish(session Session) {
	for ch := range d.subs {
		select {
		case <-ch:
		default:
		}
		ch <- session
	}
}

func generateSessionID() string {
	return strings.Replace(time.Now().UTC().Format("20060102150405.000000000"), ".", "", 1)
}

// Load starts reading the file at path in the background and returns the
// ID of the new session. Loads which are overtaken by a later load are
// dropped.
func (d *Datasource) Load(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	id := generateSessionID()
	gen := d.generation.Add(1)
	d.watchDir(filepath.Dir(path))
	d.commit(gen, func(s *datasourceState) {
		s.session = Session{ID: id, Path: path, Loading: true}
	})
	go d.read(gen, false, func() (*Table, error) {
		return ReadFile(path)
	})
	return id
}

// LoadFromStream reads a session from r. Such sessions are never reloaded.
func (d *Datasource) LoadFromStream(name string, r io.ReadCloser) string {
	id := generateSessionID()
	gen := d.generation.Add(1)
	d.commit(gen, func(s *datasourceState) {
		s.session = Session{ID: id, Path: name, Loading: true}
	})
	go d.read(gen, false, func() (_ *Table, err error) {
		defer func() {
			err = errors.Join(err, r.Close())
		}()
		return ReadCSV(r)
	})
	return id
}

// LoadFromFile asks the user for a file and loads it. Files with a name
// on disk are followed for changes.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) (string, error) {
	file, err := expl.ChooseFile(".csv", ".xlsx")
	if err != nil {
		return "", err
	}
	if f, ok := file.(interface{ Name() string }); ok && f.Name() != "" {
		file.Close()
		return d.Load(f.Name()), nil
	}
	return d.LoadFromStream("", file), nil
}

// SetOptions rebuilds the chart of the current session with new options.
func (d *Datasource) SetOptions(opts ModelOptions) {
	d.subsLock.Lock()
	defer d.subsLock.Unlock()
	var session Session
	d.state.Write(func(s *datasourceState) {
		s.opts = opts
		if s.session.Table != nil {
			// A failed build keeps showing the previous chart.
			m, err := BuildModel(s.session.Table, opts)
			if err == nil {
				s.session.Model = m
			}
			s.session.Err = err
		}
		session = s.session
	})
	if session.ID != "" {
		d.publish(session)
	}
}

// Options returns the options used for building charts.
func (d *Datasource) Options() ModelOptions {
	var opts ModelOptions
	d.state.Read(func(s *datasourceState) {
		opts = s.opts
	})
	return opts
}

func (d *Datasource) read(gen uint64, reloaded bool, readTable func() (*Table, error)) {
	start := time.Now()
	table, err := readTable()
	d.commit(gen, func(s *datasourceState) {
		s.session.Loading = false
		if reloaded {
			s.session.Revision++
		}
		if err != nil {
			s.session.Err = err
			return
		}
		s.session.Table = table
		s.session.Model, s.session.Err = BuildModel(table, s.opts)
	})
	if err != nil {
		d.logger.Error("failed loading session", "gen", gen, "err", err)
		return
	}
	d.logger.Debug("loaded session", "gen", gen, "rows", table.Len(), "skipped", table.Skipped, "took", time.Since(start))
}

// commit applies f to the state unless a newer load has started since gen
// was taken, and publishes the resulting session.
func (d *Datasource) commit(gen uint64, f func(*datasourceState)) {
	d.subsLock.Lock()
	defer d.subsLock.Unlock()
	var session Session
	stale := false
	d.state.Write(func(s *datasourceState) {
		if gen != d.generation.Load() {
			stale = true
			return
		}
		f(s)
		session = s.session
	})
	if stale {
		d.logger.Debug("dropping stale load", "gen", gen)
		return
	}
	d.publish(session)
}

func (d *Datasource) watchDir(dir string) {
	var previous string
	d.state.Write(func(s *datasourceState) {
		previous, s.dir = s.dir, dir
	})
	if previous == dir {
		return
	}
	if previous != "" {
		if err := d.watcher.Remove(previous); err != nil {
			d.logger.Debug("failed removing watch", "dir", previous, "err", err)
		}
	}
	if err := d.watcher.Add(dir); err != nil {
		d.logger.Error("failed watching directory", "dir", dir, "err", err)
	}
}

// watch reloads the current session whenever its file is written or
// replaced.
func (d *Datasource) watch() {
	for {
		select {
		case <-d.appCtx.Done():
			return
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			d.reload(filepath.Clean(ev.Name))
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			d.logger.Error("file watcher failed", "err", err)
		}
	}
}

func (d *Datasource) reload(path string) {
	if d.Current().Path != path {
		return
	}
	gen := d.generation.Add(1)
	d.logger.Debug("reloading session", "path", path, "gen", gen)
	go d.read(gen, true, func() (*Table, error) {
		return ReadFile(path)
	})
}

// Close stops following file changes.
func (d *Datasource) Close() error {
	return d.watcher.Close()
}
