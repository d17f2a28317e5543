package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrMalformedData is returned when the reference document cannot be
// turned into a Catalog. Without reference data nothing can be resolved,
// so callers treat it as fatal.
var ErrMalformedData = errors.New("malformed reference data")

// Options control how strictly a document is accepted.
type Options struct {
	// Strict turns every consistency finding into ErrMalformedData.
	Strict bool
}

type document struct {
	BaseGroups []*BaseGroup `json:"base_groups"`
}

var documentSchema = mustSchema(schemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compiling reference data schema: %v", err))
	}
	return s
}

// LoadFile reads and parses the reference document at path.
func LoadFile(path string, opts Options) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference data %s: %w", path, err)
	}
	defer f.Close()

	c, err := Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return c, nil
}

// Load parses a reference document into a Catalog.
//
// The document is first validated against the JSON schema of the dataset,
// then decoded and checked for structural invariants (1-2 ranges per tier,
// min <= max, the same number of ranges in every tier of an affix).
// Consistency findings are logged and kept on the Catalog.
func Load(r io.Reader, opts Options) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading reference data: %w", err)
	}

	res, err := documentSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrMalformedData, strings.Join(msgs, "; "))
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	var affixes, tiers int
	for gi, g := range doc.BaseGroups {
		if g == nil {
			return nil, fmt.Errorf("%w: base_groups[%d] is null", ErrMalformedData, gi)
		}
		for _, a := range g.Affixes() {
			if err := validateAffix(a); err != nil {
				return nil, fmt.Errorf("%w: base group %q: %v", ErrMalformedData, g.LookupKey(), err)
			}
			affixes++
			tiers += len(a.Tiers)
		}
	}

	c := &Catalog{groups: doc.BaseGroups}
	c.findings = c.Check()

	for _, f := range c.findings {
		slog.Warn("reference data finding",
			"kind", f.Kind.String(),
			"base_group", f.BaseGroup,
			"detail", f.Detail)
	}
	if opts.Strict && len(c.findings) > 0 {
		return nil, fmt.Errorf("%w: %d consistency findings, first: %s",
			ErrMalformedData, len(c.findings), c.findings[0])
	}

	slog.Info("loaded reference data",
		"base_groups", len(c.groups),
		"affixes", affixes,
		"tiers", tiers)
	return c, nil
}

func validateAffix(a *Affix) error {
	if a == nil {
		return fmt.Errorf("null affix")
	}
	want := -1
	for ti, t := range a.Tiers {
		if t == nil {
			return fmt.Errorf("affix %q: tier %d is null", a.Description, ti)
		}
		if n := len(t.Values); n < 1 || n > 2 {
			return fmt.Errorf("affix %q tier %q: %d value ranges, want 1 or 2", a.Description, t.Name, n)
		}
		if want >= 0 && len(t.Values) != want {
			return fmt.Errorf("affix %q tier %q: %d value ranges, other tiers have %d",
				a.Description, t.Name, len(t.Values), want)
		}
		want = len(t.Values)
		for _, v := range t.Values {
			if v.Min > v.Max {
				return fmt.Errorf("affix %q tier %q: min %d > max %d", a.Description, t.Name, v.Min, v.Max)
			}
		}
	}
	return nil
}
