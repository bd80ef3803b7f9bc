package solver

import (
	"io"

	"gopkg.in/yaml.v3"
)

// IterationLog is one YAML document in the convergence log; a stream of
// these makes regret decay easy to plot.
type IterationLog struct {
	Iteration    int     `yaml:"iteration"`
	InfoSets     int     `yaml:"infosets"`
	AvgAbsRegret float64 `yaml:"avg_abs_regret"`
}

func writeIterationLog(w io.Writer, entry IterationLog) {
	out, err := yaml.Marshal(entry)
	if err != nil {
		return
	}
	w.Write([]byte("---\n"))
	w.Write(out)
}
