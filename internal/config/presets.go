package config

var Presets = map[string]*Config{
	"calm": {
		Count: 10, Speed: 100, Sort: "none", Transition: "smooth",
	},
	"lively": {
		Count: 10, Speed: 700, Sort: "none", Transition: "smooth", Autoplay: true,
	},
	"frantic": {
		Count: 20, Speed: 900, Sort: "none", Transition: "smooth", Autoplay: true,
	},
	"leaderboard": {
		Count: 12, Speed: 600, Sort: "descending", Transition: "smooth", Autoplay: true,
	},
	"classic": {
		Count: 10, Speed: 500, Sort: "none", Transition: "pop",
	},
}

// GetPreset returns a copy of the named preset layered over the defaults.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Count = p.Count
	cfg.Speed = p.Speed
	cfg.Sort = p.Sort
	cfg.Transition = p.Transition
	cfg.Autoplay = p.Autoplay
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
