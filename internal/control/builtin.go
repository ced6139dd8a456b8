package control

import (
	"errors"
	"flag"
	"fmt"
	"strconv"

	"github.com/chewxy/math32"

	"mirror-scene/internal/bezier"
	"mirror-scene/internal/camera"
	"mirror-scene/internal/commands"
	"mirror-scene/internal/config"
)

var errUsage = errors.New("usage")

func usage(name, u string) error {
	return fmt.Errorf("%s: %w: cmd %s %s", name, errUsage, name, u)
}

func (c *Controls) registry() *commands.Registry {
	r := commands.NewRegistry()

	r.Register("curve", "--show|--hide", func(fs *flag.FlagSet) commands.RunFunc {
		show := fs.Bool("show", false, "show the lamp path")
		hide := fs.Bool("hide", false, "hide the lamp path")
		return func([]string) error {
			if *show == *hide {
				return usage("curve", "--show|--hide")
			}
			c.Path.SetVisible(*show)
			return nil
		}
	})

	r.Register("lamp", "[--speed S] [--pause|--resume] [--reset]", func(fs *flag.FlagSet) commands.RunFunc {
		speed := fs.Float64("speed", 0, "segments per second")
		pause := fs.Bool("pause", false, "stop the lamp")
		resume := fs.Bool("resume", false, "restart the lamp")
		reset := fs.Bool("reset", false, "move the lamp to the start of the path")
		return func([]string) error {
			if *pause && *resume {
				return usage("lamp", "[--speed S] [--pause|--resume] [--reset]")
			}
			if commands.IsSet(fs, "speed") {
				s := float32(*speed)
				if math32.IsNaN(s) || math32.IsInf(s, 0) {
					return fmt.Errorf("lamp: speed %v: %w", *speed, config.ErrInvalid)
				}
				c.Lamp.Speed = s
			}
			if *pause {
				c.Lamp.Paused = true
			}
			if *resume {
				c.Lamp.Paused = false
			}
			if *reset {
				c.Lamp.Reset()
			}
			c.Log.Logf("lamp: speed %.3f paused %t u %.3f", c.Lamp.Speed, c.Lamp.Paused, c.Lamp.U)
			return nil
		}
	})

	r.Simple("cam", "birds|follow|trackball|free", func(args []string) error {
		if len(args) != 1 {
			return usage("cam", "birds|follow|trackball|free")
		}
		m, err := camera.ParseMode(args[0])
		if err != nil {
			return err
		}
		c.Rig.Mode = m
		return nil
	})

	r.Simple("envmap", "dynamic|static", func(args []string) error {
		if len(args) != 1 || (args[0] != "dynamic" && args[0] != "static") {
			return usage("envmap", "dynamic|static")
		}
		dynamic := args[0] == "dynamic"
		if c.SetEnvSource != nil {
			if err := c.SetEnvSource(dynamic); err != nil {
				return fmt.Errorf("envmap: %w", err)
			}
		}
		c.Prefs.EnvMap.Dynamic = dynamic
		return nil
	})

	r.Simple("samples", "N", func(args []string) error {
		if len(args) != 1 {
			return usage("samples", "N")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("samples: %q: %w", args[0], config.ErrInvalid)
		}
		c.Prefs.Path.Samples = n
		return nil
	})

	r.Simple("path", "default|load FILE", func(args []string) error {
		switch {
		case len(args) == 1 && args[0] == "default":
			c.Path.SetSegments(bezier.DefaultClosedLoop())
			c.Prefs.Path.File = ""
		case len(args) == 2 && args[0] == "load":
			if err := c.loadPath(args[1]); err != nil {
				return fmt.Errorf("path: %w", err)
			}
			c.Prefs.Path.File = args[1]
		default:
			return usage("path", "default|load FILE")
		}
		c.Log.Logf("path: %d segments", c.Path.SegmentCount())
		return nil
	})

	r.Simple("light", "R G B", func(args []string) error {
		if len(args) != 3 {
			return usage("light", "R G B")
		}
		var rgb [3]float32
		for i, a := range args {
			v, err := strconv.ParseFloat(a, 32)
			if err != nil || v < 0 {
				return fmt.Errorf("light: %q: %w", a, config.ErrInvalid)
			}
			rgb[i] = float32(v)
		}
		c.Lamp.Color = rgb
		return nil
	})

	r.Register("material", "--on|--off", func(fs *flag.FlagSet) commands.RunFunc {
		on := fs.Bool("on", false, "shade untextured meshes with their material color")
		off := fs.Bool("off", false, "shade untextured meshes with their normals")
		return func([]string) error {
			if *on == *off {
				return usage("material", "--on|--off")
			}
			c.Prefs.Render.UseMaterial = *on
			if c.SetUseMaterial != nil {
				c.SetUseMaterial(*on)
			}
			return nil
		}
	})

	r.Register("hud", "--show|--hide", func(fs *flag.FlagSet) commands.RunFunc {
		show := fs.Bool("show", false, "draw the debug overlay")
		hide := fs.Bool("hide", false, "hide the debug overlay")
		return func([]string) error {
			if *show == *hide {
				return usage("hud", "--show|--hide")
			}
			c.Prefs.Window.HUD = *show
			return nil
		}
	})

	r.Simple("save", "", func([]string) error {
		p := c.Snapshot()
		if err := config.Save(c.ConfigPath, p); err != nil {
			return err
		}
		*c.Prefs = p
		c.Log.Logf("saved %s", c.ConfigPath)
		return nil
	})

	r.Simple("help", "", func([]string) error {
		for _, line := range r.Help() {
			c.Log.Log("cmd " + line)
		}
		return nil
	})

	return r
}
