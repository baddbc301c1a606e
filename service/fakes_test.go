package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

var errUnavailable = errors.New("unavailable")

type memMazeRepo struct {
	records map[uuid.UUID]*dmn.MazeRecord
	saveErr error
	loads   int
}

func newMemMazeRepo() *memMazeRepo {
	return &memMazeRepo{records: map[uuid.UUID]*dmn.MazeRecord{}}
}

func (r *memMazeRepo) Save(_ context.Context, record *dmn.MazeRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records[record.ID] = record
	return nil
}

func (r *memMazeRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	r.loads++
	record, ok := r.records[id]
	if !ok {
		return nil, dmn.ErrMazeNotFound
	}
	return record, nil
}

type memCache struct {
	records map[uuid.UUID]*dmn.MazeRecord
	getErr  error
	setErr  error
}

func newMemCache() *memCache {
	return &memCache{records: map[uuid.UUID]*dmn.MazeRecord{}}
}

func (c *memCache) Get(_ context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.records[id], nil
}

func (c *memCache) Set(_ context.Context, record *dmn.MazeRecord) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.records[record.ID] = record
	return nil
}

type scored struct {
	member string
	score  float64
}

type memQueue struct {
	queues map[string][]scored
	err    error
}

func newMemQueue() *memQueue {
	return &memQueue{queues: map[string][]scored{}}
}

func (q *memQueue) Enqueue(_ context.Context, key string, score float64, member string, limit int64) error {
	if q.err != nil {
		return q.err
	}
	entries := append(q.queues[key], scored{member: member, score: score})
	sort.Slice(entries, func(a, b int) bool { return entries[a].score > entries[b].score })
	if int64(len(entries)) > limit {
		entries = entries[:limit]
	}
	q.queues[key] = entries
	return nil
}

func (q *memQueue) Tops(_ context.Context, key string, amount int64) ([]string, error) {
	if q.err != nil {
		return nil, q.err
	}
	var members []string
	for _, e := range q.queues[key] {
		if int64(len(members)) == amount {
			break
		}
		members = append(members, e.member)
	}
	return members, nil
}

func (q *memQueue) Count(_ context.Context, key string) int64 {
	return int64(len(q.queues[key]))
}

type recordingLogger struct {
	sync.Mutex
	lines []string
}

func (l *recordingLogger) Info(msg string)    { l.add("INFO " + msg) }
func (l *recordingLogger) Warning(msg string) { l.add("WARNING " + msg) }
func (l *recordingLogger) Error(msg string)   { l.add("ERROR " + msg) }

func (l *recordingLogger) add(line string) {
	l.Lock()
	defer l.Unlock()
	l.lines = append(l.lines, line)
}

type memUserRepo struct {
	users map[string]*dmn.User
}

func (r *memUserRepo) Save(user *dmn.User) error {
	if _, taken := r.users[user.Username]; taken {
		return errors.New("username conflict")
	}
	r.users[user.Username] = user
	return nil
}

func (r *memUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, dmn.ErrUserNotFound
}

func (r *memUserRepo) ByUsername(username string) (*dmn.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, dmn.ErrUserNotFound
	}
	return u, nil
}

type stubTokenizer struct {
	claims map[string]interface{}
	exp    time.Duration
}

func (s *stubTokenizer) Generate(claims map[string]interface{}, exp time.Duration) (string, error) {
	s.claims, s.exp = claims, exp
	return "token", nil
}

func (s *stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return s.claims, nil
}
