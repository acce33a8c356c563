package main

import (
	"cmp"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/lazyengine/ecs"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Entities   int
	Instances  int
	Components int
	Systems    int

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
	Registry       *ecs.RegistryStats
	SystemStats    []*ecs.SystemManagerStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// memoryRow is one line of the memory table: a counter sampled before and
// after the run.
type memoryRow struct {
	Name       string
	Start, End uint64
}

func (m memoryRow) Delta() int64 {
	return int64(m.End) - int64(m.Start)
}

func (r *Report) MemoryRows() []memoryRow {
	s, e := &r.MemStatsStart, &r.MemStatsEnd
	return []memoryRow{
		{"Heap Alloc", s.HeapAlloc, e.HeapAlloc},
		{"Total Alloc", s.TotalAlloc, e.TotalAlloc},
		{"Sys", s.Sys, e.Sys},
		{"Heap Objects", s.HeapObjects, e.HeapObjects},
		{"Num GC", uint64(s.NumGC), uint64(e.NumGC)},
	}
}

// GCPause is the stop-the-world time accumulated during the run.
func (r *Report) GCPause() time.Duration {
	return time.Duration(r.MemStatsEnd.PauseTotalNs - r.MemStatsStart.PauseTotalNs)
}

const reportTemplate = `# lazyengine stress run

| setting | value |
|---|---|
| duration | {{.Duration}} |
| instances | {{.Instances}} |
| entities / instance | {{.Entities}} |
| component types | {{.Components}} |
| systems | {{.Systems}} |

## Frame time

{{.TotalUpdates}} registry updates in {{.TotalTime}}: avg {{.UpdateTime.Avg}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}.
{{with .Registry}}
## Instances
{{range .Instances}}- #{{.Id}} {{.Tag}}: {{.EntityCount}} entities, {{.SystemCount}} systems, {{len .Components}} component types
{{end}}{{end}}
{{- range $i, $s := .SystemStats}}
### Slowest systems, instance {{inc $i}}
{{range slowest $s 5}}- {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}}, {{.ExecutionCount}} runs
{{end}}{{end}}
## Memory

| counter | start | end | delta |
|---|---|---|---|
{{range .MemoryRows}}| {{.Name}} | {{.Start}} | {{.End}} | {{.Delta}} |
{{end}}
{{- if .GCPauseMetrics}}
GC paused for {{.GCPause}} across {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}} cycles.
{{end}}`

var reportFuncs = template.FuncMap{
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"inc": func(i int) int {
		return i + 1
	},
	"slowest": slowestSystems,
}

// slowestSystems returns up to n systems ordered by average duration,
// slowest first.
func slowestSystems(stats *ecs.SystemManagerStats, n int) []ecs.SystemStats {
	systems := slices.Clone(stats.Systems)
	slices.SortStableFunc(systems, func(a, b ecs.SystemStats) int {
		return cmp.Compare(b.AvgDuration, a.AvgDuration)
	})
	return systems[:min(n, len(systems))]
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
