package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/rowbreak/sim"
)

type Report struct {
	// Configuration
	Games      int
	Difficulty int
	Seed       uint64
	BotEvery   uint64

	// Results
	Scores        []int
	TotalFrames   int64
	TotalSteps    int64
	TotalThrows   int
	SimulatedTime time.Duration
	TotalTime     time.Duration
	FrameTime     Stats
	Systems       []sim.SystemStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
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
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// BestScore returns the highest score, or 0 without games.
func (r *Report) BestScore() int {
	if len(r.Scores) == 0 {
		return 0
	}
	return slices.Max(r.Scores)
}

// MeanScore returns the average score, or 0 without games.
func (r *Report) MeanScore() float64 {
	if len(r.Scores) == 0 {
		return 0
	}
	total := 0
	for _, s := range r.Scores {
		total += s
	}
	return float64(total) / float64(len(r.Scores))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Row Break Bench Report

## Configuration
- **Games:** {{.Games}}
- **Difficulty:** {{.Difficulty}}
- **Seed:** {{.Seed}}
- **Bot Throws Every:** {{.BotEvery}} steps

## Play
- **Best Score:** {{.BestScore}}
- **Mean Score:** {{printf "%.1f" .MeanScore}}
- **Throws:** {{.TotalThrows}}
- **Simulated Time:** {{.SimulatedTime}}

## Performance Results
- **Total Frames:** {{.TotalFrames}}
- **Total Steps:** {{.TotalSteps}}
- **Wall Time:** {{.TotalTime}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}
{{range .Systems}}
- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}{{end}}

## Memory Usage
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc: delta {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MB
- Num GC:      delta {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- GC Pause:    {{ns .MemStatsEnd.PauseTotalNs}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
