package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats summarises scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats covers one update system. Frames in which the system's
// conditions failed count as skips, not executions.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	SkipCount      int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type scheduledSystem struct {
	system     System
	name       string
	conditions []Condition
	set        *systemSet
	queries    []queryExecutor

	executions    int64
	skips         int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

// systemSet shares one evaluation of its conditions per frame between all
// of its members, so a member that changes state cannot switch off the
// members after it mid-frame.
type systemSet struct {
	conditions []Condition
	frame      int64
	allowed    bool
}

type queryExecutor interface {
	Execute()
}

type storageBinder interface {
	Init(storage *Storage)
}

// Scheduler runs startup systems once and update systems every frame, in
// registration order.
type Scheduler struct {
	storage *Storage
	startup []*scheduledSystem
	systems []*scheduledSystem
	started bool
	frames  int64
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// RegisterStartup adds a system that runs once, at the start of the first
// Once call. Its commands are flushed before the first update system runs.
func (s *Scheduler) RegisterStartup(system System) {
	s.startup = append(s.startup, s.prepare(system, nil))
}

// Register adds an update system.
func (s *Scheduler) Register(system System, opts ...RegisterOption) {
	s.systems = append(s.systems, s.prepare(system, opts))
}

// RegisterSet adds update systems gated together. The conditions given by
// opts are evaluated once per frame, before the first member runs.
func (s *Scheduler) RegisterSet(systems []System, opts ...RegisterOption) {
	probe := &scheduledSystem{}
	for _, opt := range opts {
		opt(probe)
	}
	set := &systemSet{conditions: probe.conditions, frame: -1}
	for _, system := range systems {
		sys := s.prepare(system, nil)
		sys.set = set
		s.systems = append(s.systems, sys)
	}
}

func (s *Scheduler) prepare(system System, opts []RegisterOption) *scheduledSystem {
	sys := &scheduledSystem{
		system:      system,
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
		queries:     s.bindFields(system),
	}
	for _, opt := range opts {
		opt(sys)
	}
	return sys
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// bindFields initialises Query and Singleton fields of a struct system and
// returns the queries that need refreshing before each run.
func (s *Scheduler) bindFields(system System) []queryExecutor {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var queries []queryExecutor
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		isQuery := strings.HasPrefix(typeName, "Query[")
		if !isQuery && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}

		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			panic("Init method not found on field: " + v.Type().Field(i).Name)
		}
		binder.Init(s.storage)

		if isQuery {
			queries = append(queries, field.Addr().Interface().(queryExecutor))
		}
	}
	return queries
}

// Once runs one frame with the given delta time in seconds.
func (s *Scheduler) Once(dt float64) {
	if !s.started {
		s.started = true
		frame := newUpdateFrame(0, s.storage)
		for _, sys := range s.startup {
			s.run(sys, frame)
		}
		frame.Commands.Flush(s.storage)
	}

	frame := newUpdateFrame(dt, s.storage)
	for _, sys := range s.systems {
		if !s.allowed(sys) {
			sys.skips++
			continue
		}
		s.run(sys, frame)
	}
	frame.Commands.Flush(s.storage)
	s.frames++
}

func (s *Scheduler) allowed(sys *scheduledSystem) bool {
	if set := sys.set; set != nil {
		if set.frame != s.frames {
			set.frame = s.frames
			set.allowed = holds(set.conditions, s.storage)
		}
		if !set.allowed {
			return false
		}
	}
	return holds(sys.conditions, s.storage)
}

func holds(conditions []Condition, storage *Storage) bool {
	for _, cond := range conditions {
		if !cond(storage) {
			return false
		}
	}
	return true
}

func (s *Scheduler) run(sys *scheduledSystem, frame *UpdateFrame) {
	for _, q := range sys.queries {
		q.Execute()
	}

	start := time.Now()
	sys.system.Execute(frame)
	d := time.Since(start)

	sys.executions++
	sys.lastDuration = d
	sys.totalDuration += d
	sys.minDuration = min(sys.minDuration, d)
	sys.maxDuration = max(sys.maxDuration, d)
}

// Run calls Once on every tick of interval until ctx is cancelled, passing
// the measured time between ticks as the delta.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// GetStats reports statistics for update systems only.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, sys := range s.systems {
		var avg time.Duration
		if sys.executions > 0 {
			avg = sys.totalDuration / time.Duration(sys.executions)
		}
		stats.Systems[i] = SystemStats{
			Name:           sys.name,
			ExecutionCount: sys.executions,
			SkipCount:      sys.skips,
			MinDuration:    sys.minDuration,
			MaxDuration:    sys.maxDuration,
			AvgDuration:    avg,
			LastDuration:   sys.lastDuration,
			TotalDuration:  sys.totalDuration,
		}
		stats.TotalExecutions += sys.executions
	}
	return stats
}
