package scene

import (
	"errors"
	"fmt"

	"shapefield/internal/commands"
	"shapefield/internal/config"
	"shapefield/internal/geometry"
	"shapefield/internal/pointer"
	"shapefield/internal/shape"
)

var errOneOf = errors.New("exactly one flag is required")

// RegisterCommands adds the runtime controls to r. config --save writes to configPath.
func (s *Scene) RegisterCommands(r *commands.Registry, configPath string) {
	{
		fs := commands.NewFlagSet("loop")
		run := fs.Bool("run", false, "start the animation")
		stop := fs.Bool("stop", false, "stop the animation")
		toggle := fs.Bool("toggle", false, "flip the animation")
		r.Register("loop", "--run | --stop | --toggle", fs, func() error {
			switch {
			case exactlyOne(*run, *stop, *toggle) != nil:
				return fmt.Errorf("loop: %w", errOneOf)
			case *run:
				s.Loop.Start()
			case *stop:
				s.Loop.Stop()
			default:
				s.Loop.Toggle()
			}
			s.logf("loop: running=%t", s.Loop.Running())
			return nil
		})
	}
	{
		fs := commands.NewFlagSet("recolor")
		policy := fs.String("policy", "", "position or speed")
		r.Register("recolor", "--policy position|speed", fs, func() error {
			if err := s.SetRecolorPolicy(*policy); err != nil {
				return err
			}
			s.logf("recolor: policy=%s", s.Config.RecolorPolicy)
			return nil
		})
	}
	{
		fs := commands.NewFlagSet("collide")
		on := fs.Bool("on", false, "enable shape-to-shape collisions")
		off := fs.Bool("off", false, "disable shape-to-shape collisions")
		r.Register("collide", "--on | --off", fs, func() error {
			if exactlyOne(*on, *off) != nil {
				return fmt.Errorf("collide: %w", errOneOf)
			}
			s.SetCollisions(*on)
			s.logf("collide: enabled=%t", *on)
			return nil
		})
	}
	{
		fs := commands.NewFlagSet("click")
		policy := fs.String("policy", "", "boost or toggle")
		r.Register("click", "--policy boost|toggle", fs, func() error {
			p, err := pointer.ParseClickPolicy(*policy)
			if err != nil {
				return err
			}
			if err := s.SetClickPolicy(p); err != nil {
				return err
			}
			s.logf("click: policy=%s", p)
			return nil
		})
	}
	{
		fs := commands.NewFlagSet("spawn")
		kind := fs.String("kind", "", "shape kind, drawn from the pool when empty")
		count := fs.Int("count", 1, "number of shapes to add")
		clone := fs.Bool("clone", false, "duplicate the picked shape")
		r.Register("spawn", "[--kind name] [--count n] | --clone", fs, func() error {
			if *clone {
				if *kind != "" {
					return errors.New("spawn: --clone takes no --kind")
				}
				src := s.Picked()
				if src == nil {
					return errors.New("spawn: nothing picked to clone")
				}
				sh, err := s.Duplicate(src)
				if err != nil {
					return fmt.Errorf("spawn: %w", err)
				}
				s.logf("spawn: cloned %s", sh)
				return nil
			}
			if *count < 1 {
				return fmt.Errorf("spawn: --count %d must be positive", *count)
			}
			var opts []shape.Option
			if *kind != "" {
				k, err := geometry.ParseKind(*kind)
				if err != nil {
					return fmt.Errorf("spawn: %w", err)
				}
				opts = append(opts, shape.WithKind(k))
			}
			for i := 0; i < *count; i++ {
				if _, err := s.Spawn(opts...); err != nil {
					return fmt.Errorf("spawn: %w", err)
				}
			}
			s.logf("spawn: %d added, %d in scene", *count, len(s.World.Shapes))
			return nil
		})
	}
	s.registerToggle(r, "fps", &s.Config.ShowFPS)
	s.registerToggle(r, "memalloc", &s.Config.ShowMemAlloc)
	{
		fs := commands.NewFlagSet("config")
		save := fs.Bool("save", false, "write the current settings")
		r.Register("config", "--save", fs, func() error {
			if !*save {
				return fmt.Errorf("config: %w", errOneOf)
			}
			if err := config.Save(configPath, s.Config); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			s.logf("config: saved to %s", configPath)
			return nil
		})
	}
}

// registerToggle adds a --show | --hide command flipping an overlay flag.
func (s *Scene) registerToggle(r *commands.Registry, name string, flag *bool) {
	fs := commands.NewFlagSet(name)
	show := fs.Bool("show", false, "show the overlay")
	hide := fs.Bool("hide", false, "hide the overlay")
	r.Register(name, "--show | --hide", fs, func() error {
		if exactlyOne(*show, *hide) != nil {
			return fmt.Errorf("%s: %w", name, errOneOf)
		}
		*flag = *show
		return nil
	})
}

func exactlyOne(flags ...bool) error {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	if n != 1 {
		return errOneOf
	}
	return nil
}
