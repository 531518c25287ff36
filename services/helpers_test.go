package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/database"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.SetOutput(io.Discard)

	db, err := gorm.Open(sqlite.Open(":memory:"), config.GormConfig("silent"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

type fakeRoute struct {
	status int
	body   interface{}
}

// fakeRemote is an httptest server that answers canned JSON per
// "METHOD /path" and counts every hit.
type fakeRemote struct {
	mu      sync.Mutex
	routes  map[string]fakeRoute
	hits    map[string]int
	calls   []string
	bodies  map[string][]byte
	headers map[string]http.Header
	server  *httptest.Server

	delay    time.Duration
	inFlight int32
	peak     int32
}

func newFakeRemote(t *testing.T) *fakeRemote {
	t.Helper()
	f := &fakeRemote{
		routes:  make(map[string]fakeRoute),
		hits:    make(map[string]int),
		bodies:  make(map[string][]byte),
		headers: make(map[string]http.Header),
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		body, _ := io.ReadAll(r.Body)

		n := atomic.AddInt32(&f.inFlight, 1)
		defer atomic.AddInt32(&f.inFlight, -1)
		for {
			p := atomic.LoadInt32(&f.peak)
			if n <= p || atomic.CompareAndSwapInt32(&f.peak, p, n) {
				break
			}
		}
		if f.delay > 0 {
			time.Sleep(f.delay)
		}

		f.mu.Lock()
		f.hits[key]++
		f.calls = append(f.calls, key)
		f.bodies[key] = body
		f.headers[key] = r.Header.Clone()
		route, ok := f.routes[key]
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
			return
		}
		w.WriteHeader(route.status)
		json.NewEncoder(w).Encode(route.body)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeRemote) on(method, path string, status int, body interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = fakeRoute{status: status, body: body}
}

// data answers 200 with {"data": v}.
func (f *fakeRemote) data(method, path string, v interface{}) {
	f.on(method, path, http.StatusOK, map[string]interface{}{"data": v})
}

func (f *fakeRemote) hitCount(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[method+" "+path]
}

// sequence returns every "METHOD /path" received, in arrival order.
func (f *fakeRemote) sequence() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRemote) peakInFlight() int32 {
	return atomic.LoadInt32(&f.peak)
}

func (f *fakeRemote) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.hits {
		n += c
	}
	return n
}

func (f *fakeRemote) lastBody(method, path string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[method+" "+path]
}

func (f *fakeRemote) lastHeader(method, path string) http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.headers[method+" "+path]
}

func (f *fakeRemote) client() *RemoteClient {
	return NewRemoteClient(f.server.URL, 0)
}

// switchProbe is a connectivity probe the test can flip.
type switchProbe struct {
	mu     sync.Mutex
	online bool
}

func (p *switchProbe) Reachable(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.online
}

func (p *switchProbe) set(online bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online = online
}

type recordedEvent struct {
	event string
	data  interface{}
}

type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *eventRecorder) Broadcast(event string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{event: event, data: data})
}

func (r *eventRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		out = append(out, e.event)
	}
	return out
}

type testEnv struct {
	db      *gorm.DB
	remote  *fakeRemote
	probe   *switchProbe
	session *MemorySessionStore
	events  *eventRecorder
	svc     *SyncService
}

func newTestEnv(t *testing.T, online bool) *testEnv {
	t.Helper()
	env := &testEnv{
		db:      setupTestDB(t),
		remote:  newFakeRemote(t),
		probe:   &switchProbe{online: online},
		session: NewMemorySessionStore(),
		events:  &eventRecorder{},
	}
	client := env.remote.client()
	env.svc = NewSyncService(env.db, client, env.probe, env.session)
	env.svc.Outbox = NewOutbox(env.db, client, env.probe, 3)
	env.svc.Events = env.events
	return env
}
