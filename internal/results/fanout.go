package results

import (
	"context"
	"errors"
	"fmt"

	"github.com/park285/Cheese-Checkers/pkg/checkersdto"
)

type namedSink struct {
	name string
	sink Sink
}

// Fanout forwards each result to every sink under a single game id. All
// sinks are tried; failures are joined into one error.
type Fanout struct {
	sinks []namedSink
}

func NewFanout() *Fanout { return &Fanout{} }

// Add registers s under name. Nil sinks are ignored.
func (f *Fanout) Add(name string, s Sink) *Fanout {
	if s != nil {
		f.sinks = append(f.sinks, namedSink{name: name, sink: s})
	}
	return f
}

func (f *Fanout) Len() int { return len(f.sinks) }

func (f *Fanout) Record(ctx context.Context, res *checkersdto.MatchResult) error {
	res, err := normalize(res)
	if err != nil {
		return err
	}
	var errs []error
	for _, ns := range f.sinks {
		if err := ns.sink.Record(ctx, res); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ns.name, err))
		}
	}
	return errors.Join(errs...)
}
