package engine

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// On-disk shape of a threshold override file. Absent bounds stay nil,
// meaning unbounded in that direction.
type tableFile struct {
	Tables map[string]struct {
		Gates []struct {
			Phase         string   `koanf:"phase"`
			MaxPain       *int     `koanf:"max_pain"`
			MinLSI        *float64 `koanf:"min_lsi"`
			MinRFD        *float64 `koanf:"min_rfd"`
			Unconditional bool     `koanf:"unconditional"`
		} `koanf:"gates"`
		Alerts []struct {
			Code     string   `koanf:"code"`
			Severity string   `koanf:"severity"`
			Message  string   `koanf:"message"`
			MinPain  *int     `koanf:"min_pain"`
			MaxPain  *int     `koanf:"max_pain"`
			MaxLSI   *float64 `koanf:"max_lsi"`
			MaxRFD   *float64 `koanf:"max_rfd"`
		} `koanf:"alerts"`
	} `koanf:"tables"`
}

// LoadTables reads a YAML threshold file and overlays it on the
// built-in defaults: an injury type present in the file replaces its
// default table wholesale, everything else keeps the defaults. This is
// the configuration collaborator's single load at process start;
// malformed input here should abort startup.
func LoadTables(_ context.Context, path string) (map[types.InjuryType]Table, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read threshold file %s: %w", path, err)
	}

	var tf tableFile
	if err := k.UnmarshalWithConf("", &tf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("parse threshold file %s: %w", path, err)
	}

	tables := DefaultTables()
	for name, spec := range tf.Tables {
		injury, ok := types.ParseInjuryType(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown injury type %q in %s", ErrMalformedTable, name, path)
		}

		t := Table{Injury: injury}
		for _, g := range spec.Gates {
			phase, ok := types.ParsePhase(g.Phase)
			if !ok {
				return nil, fmt.Errorf("%w: unknown phase %q for %q in %s", ErrMalformedTable, g.Phase, name, path)
			}
			t.Gates = append(t.Gates, PhaseGate{
				Phase:         phase,
				MaxPain:       g.MaxPain,
				MinLSI:        g.MinLSI,
				MinRFD:        g.MinRFD,
				Unconditional: g.Unconditional,
			})
		}
		for _, r := range spec.Alerts {
			t.Alerts = append(t.Alerts, AlertRule{
				Code:     r.Code,
				Severity: types.Severity(r.Severity),
				Message:  r.Message,
				MinPain:  r.MinPain,
				MaxPain:  r.MaxPain,
				MaxLSI:   r.MaxLSI,
				MaxRFD:   r.MaxRFD,
			})
		}
		if err := t.validate(); err != nil {
			return nil, err
		}
		tables[injury] = t
	}
	return tables, nil
}
