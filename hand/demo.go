package hand

import (
	"context"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/juruen/rmscribe/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"
)

const (
	BiasFixed      = "fixed"
	BiasVerseDecay = "verse-decay"

	StyleNone     = "none"
	StyleFixed    = "fixed"
	StylePerVerse = "per-verse"
)

// BiasPolicy assigns a bias to every line of a demo text.
type BiasPolicy struct {
	Policy string  `yaml:"policy"`
	Value  float64 `yaml:"value"`
}

// StylePolicy assigns a style id to every line of a demo text.
type StylePolicy struct {
	Policy string `yaml:"policy"`
	ID     int    `yaml:"id"`
}

// DemoJob is one text of the demo file.
type DemoJob struct {
	Name   string      `yaml:"name"`
	Text   string      `yaml:"text"`
	Bias   BiasPolicy  `yaml:"bias"`
	Style  StylePolicy `yaml:"style"`
	Output string      `yaml:"output"`
}

type demoFile struct {
	Jobs []DemoJob `yaml:"jobs"`
}

// LoadDemo reads a demo file. Outputs default to <dir>/<name>.svg.
func LoadDemo(path, dir string) ([]DemoJob, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "can't read demo file")
	}
	var f demoFile
	if err := yaml.UnmarshalStrict(b, &f); err != nil {
		return nil, errors.Wrapf(err, "can't parse %s", path)
	}
	for i := range f.Jobs {
		j := &f.Jobs[i]
		if j.Name == "" {
			return nil, fmt.Errorf("demo job %d has no name", i)
		}
		if j.Output == "" {
			j.Output = filepath.Join(dir, j.Name+".svg")
		}
	}
	return f.Jobs, nil
}

// verses numbers each line by the count of blank lines before or at it.
func verses(lines []string) []int {
	out := make([]int, len(lines))
	v := 0
	for i, l := range lines {
		if l == "" {
			v++
		}
		out[i] = v
	}
	return out
}

// Biases applies the policy: fixed uses Value for every line,
// verse-decay gives Value x (last verse - verse), so the first verse is
// the most legible and the last one the most varied.
func (p BiasPolicy) Biases(lines []string) ([]float64, error) {
	out := make([]float64, len(lines))
	switch p.Policy {
	case "", BiasFixed:
		for i := range out {
			out[i] = p.Value
		}
	case BiasVerseDecay:
		vs := verses(lines)
		last := 0
		if len(vs) > 0 {
			last = vs[len(vs)-1]
		}
		for i, v := range vs {
			out[i] = p.Value * float64(last-v)
		}
	default:
		return nil, fmt.Errorf("unknown bias policy %q", p.Policy)
	}
	return out, nil
}

// Styles applies the policy: none writes unprimed, fixed uses ID for
// every line, per-verse uses ID + verse number.
func (p StylePolicy) Styles(lines []string) ([]int, error) {
	switch p.Policy {
	case "", StyleNone:
		return nil, nil
	case StyleFixed:
		out := make([]int, len(lines))
		for i := range out {
			out[i] = p.ID
		}
		return out, nil
	case StylePerVerse:
		out := verses(lines)
		for i := range out {
			out[i] += p.ID
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown style policy %q", p.Policy)
}

// Job expands the policies into a pipeline job.
func (d DemoJob) Job() (Job, error) {
	lines := strings.Split(strings.TrimRight(d.Text, "\n"), "\n")
	biases, err := d.Bias.Biases(lines)
	if err != nil {
		return Job{}, errors.Wrap(err, d.Name)
	}
	ids, err := d.Style.Styles(lines)
	if err != nil {
		return Job{}, errors.Wrap(err, d.Name)
	}
	return Job{Lines: lines, Biases: biases, Styles: ids, Output: d.Output}, nil
}

// RunDemo writes every demo job. Jobs share only the read-only model and
// style library, so up to parallelism of them run at once. The first
// failure cancels the rest.
func RunDemo(ctx context.Context, h *Hand, jobs []DemoJob, parallelism int) error {
	if parallelism < 1 {
		parallelism = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for _, d := range jobs {
		d := d
		g.Go(func() error {
			job, err := d.Job()
			if err != nil {
				return err
			}
			log.Info.Printf("demo %s: %d lines", d.Name, len(job.Lines))
			return errors.Wrapf(h.Write(ctx, job), "demo %s", d.Name)
		})
	}
	return g.Wait()
}
