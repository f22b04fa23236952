package level

import "fmt"

// levelFile is the on-disk YAML layout
type levelFile struct {
	Name  string     `yaml:"name"`
	Start *[2]int    `yaml:"start,omitempty,flow"`
	Paths []pathFile `yaml:"paths"`
	Links [][][2]int `yaml:"links,omitempty"`
}

type pathFile struct {
	Closed bool       `yaml:"closed"`
	Knots  []knotFile `yaml:"knots"`
}

type knotFile struct {
	Pos   [3]float64 `yaml:"pos,flow"`
	Kind  string     `yaml:"kind,omitempty"`
	Coins *int       `yaml:"coins,omitempty"`
	Pause *bool      `yaml:"pause,omitempty"`
	Skip  int        `yaml:"skip,omitempty"`
}

// meta applies kind defaults: blue/red reward or cost coins, star spaces pause
func (k knotFile) meta() (Meta, error) {
	kind := Kind(k.Kind)
	if kind == "" {
		kind = KindPlain
	}
	coins, ok := defaultCoins[kind]
	if !ok {
		return Meta{}, fmt.Errorf("unknown kind %q", k.Kind)
	}
	if k.Coins != nil {
		coins = *k.Coins
	}
	pause := kind == KindStar
	if k.Pause != nil {
		pause = *k.Pause
	}
	if k.Skip < 0 {
		return Meta{}, fmt.Errorf("negative skip %d", k.Skip)
	}
	return Meta{
		Kind:          kind,
		Coins:         coins,
		PauseOnEntry:  pause,
		SkipStepCount: k.Skip,
	}, nil
}
