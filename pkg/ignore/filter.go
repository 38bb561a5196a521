// Package ignore drops paths that must not be tracked.
//
// A Filter asks one or more oracles about each prefix of a path, shortest
// first. The first prefix any oracle rejects drops the whole path, so a
// rule that ignores a directory excludes everything beneath it and deeper
// prefixes are never queried.
package ignore

import (
	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/rs/zerolog"
)

// Oracle answers whether a home-relative, slash-separated path is excluded.
type Oracle interface {
	IsIgnored(path string) (bool, error)
}

// OracleFunc adapts a function to Oracle.
type OracleFunc func(path string) (bool, error)

// IsIgnored calls f(path).
func (f OracleFunc) IsIgnored(path string) (bool, error) { return f(path) }

// Reason names why a path was dropped.
type Reason string

const (
	ReasonIgnored   Reason = "ignored"
	ReasonProtected Reason = "protected"
)

// Rule pairs an oracle with the reason reported when it matches.
type Rule struct {
	Reason Reason
	Oracle Oracle
}

// Dropped records a path removed by the filter and the prefix that caused it.
type Dropped struct {
	Path   types.TrackedPath
	Prefix string
	Reason Reason
}

// Filter applies rules to path sets.
type Filter struct {
	rules  []Rule
	logger zerolog.Logger
}

// NewFilter returns a filter over rules. Rules with a nil oracle are skipped.
func NewFilter(rules ...Rule) *Filter {
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Oracle != nil {
			kept = append(kept, r)
		}
	}
	return &Filter{rules: kept, logger: logging.GetLogger("ignore")}
}

type verdict struct {
	ignored bool
	reason  Reason
}

// Apply returns the paths in set that no rule excludes, in their original
// order, plus one Dropped entry per excluded path. An oracle error aborts.
func (f *Filter) Apply(set *types.PathSet) (*types.PathSet, []Dropped, error) {
	kept := types.NewPathSet()
	var dropped []Dropped
	cache := make(map[string]verdict)

	for _, p := range set.Paths() {
		d, err := f.check(p, cache)
		if err != nil {
			return nil, nil, err
		}
		if d != nil {
			f.logger.Info().
				Str("path", p.String()).
				Str("prefix", d.Prefix).
				Str("reason", string(d.Reason)).
				Msgf("%s is ignored", d.Prefix)
			dropped = append(dropped, *d)
			continue
		}
		kept.Add(p)
	}
	return kept, dropped, nil
}

// Excluded reports whether a single path would be dropped.
func (f *Filter) Excluded(p types.TrackedPath) (bool, error) {
	d, err := f.check(p, make(map[string]verdict))
	return d != nil, err
}

func (f *Filter) check(p types.TrackedPath, cache map[string]verdict) (*Dropped, error) {
	for _, prefix := range p.Prefixes() {
		v, ok := cache[prefix]
		if !ok {
			var err error
			v, err = f.query(prefix)
			if err != nil {
				return nil, err
			}
			cache[prefix] = v
		}
		if v.ignored {
			return &Dropped{Path: p, Prefix: prefix, Reason: v.reason}, nil
		}
	}
	return nil, nil
}

func (f *Filter) query(prefix string) (verdict, error) {
	for _, r := range f.rules {
		ignored, err := r.Oracle.IsIgnored(prefix)
		if err != nil {
			return verdict{}, errors.Wrapf(err, errors.ErrInternal, "ignore check failed for %s", prefix).
				WithDetail("path", prefix)
		}
		if ignored {
			return verdict{ignored: true, reason: r.Reason}, nil
		}
	}
	return verdict{}, nil
}
