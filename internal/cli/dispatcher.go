package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"strconv"
	"strings"

	"mediarelay/internal/api"
	"mediarelay/internal/relay"
	"mediarelay/pkg/logging"
)

// Group names commands that are not tied to a capability interface.
const GroupDevice = "Device"

// CommandSpec describes one command understood by the Dispatcher.
type CommandSpec struct {
	Name    string
	Group   string // capability name, or GroupDevice
	Usage   string // argument synopsis, e.g. "<seconds>"
	Help    string
	MinArgs int
	MaxArgs int
	run     func(ctx context.Context, f *relay.Facade, args []string) (string, error)
}

// Dispatcher runs parsed commands against a Facade and writes their output.
type Dispatcher struct {
	facade *relay.Facade
	out    io.Writer
	specs  map[string]CommandSpec
}

// NewDispatcher creates a Dispatcher writing command output to out.
func NewDispatcher(f *relay.Facade, out io.Writer) *Dispatcher {
	d := &Dispatcher{facade: f, out: out, specs: make(map[string]CommandSpec)}
	for _, spec := range commandSpecs() {
		d.specs[spec.Name] = spec
	}
	return d
}

// Commands returns every known command sorted by group, then name.
func Commands() []CommandSpec {
	specs := commandSpecs()
	sort.SliceStable(specs, func(i, j int) bool {
		if specs[i].Group != specs[j].Group {
			return specs[i].Group < specs[j].Group
		}
		return specs[i].Name < specs[j].Name
	})
	return specs
}

// Run executes cmds in order and stops at the first failure.
func (d *Dispatcher) Run(ctx context.Context, cmds []Command) error {
	for _, cmd := range cmds {
		if err := d.RunOne(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

// RunOne executes a single command.
func (d *Dispatcher) RunOne(ctx context.Context, cmd Command) error {
	spec, ok := d.specs[cmd.Name]
	if !ok {
		return &UnknownCommandError{Name: cmd.Name}
	}
	if n := len(cmd.Args); n < spec.MinArgs || n > spec.MaxArgs {
		return fmt.Errorf("%s: expected %s, got %d argument(s)", cmd.Name, argCount(spec), n)
	}

	logging.Debug("CLI", "Running %s", cmd)
	output, err := spec.run(ctx, d.facade, cmd.Args)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	if output != "" {
		fmt.Fprintln(d.out, output)
	}
	return nil
}

func argCount(spec CommandSpec) string {
	switch {
	case spec.MinArgs == spec.MaxArgs:
		return fmt.Sprintf("%d argument(s)", spec.MinArgs)
	default:
		return fmt.Sprintf("%d to %d arguments", spec.MinArgs, spec.MaxArgs)
	}
}

// UnknownCommandError is returned for commands the Dispatcher does not know.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q (see 'mediarelay commands')", e.Name)
}

// navigation builds a remote control command taking an optional input action.
func navigation(name, help string, press func(api.RemoteControl, context.Context, api.InputAction) error) CommandSpec {
	return CommandSpec{
		Name: name, Group: api.CapabilityRemoteControl, Usage: "[action]", Help: help, MaxArgs: 1,
		run: func(ctx context.Context, f *relay.Facade, args []string) (string, error) {
			action := api.InputActionSingleTap
			if len(args) == 1 {
				var err error
				if action, err = ParseInputAction(args[0]); err != nil {
					return "", err
				}
			}
			return "", press(f.RemoteControl(), ctx, action)
		},
	}
}

// button builds a remote control command without arguments.
func button(name, help string, press func(api.RemoteControl, context.Context) error) CommandSpec {
	return CommandSpec{
		Name: name, Group: api.CapabilityRemoteControl, Help: help,
		run: func(ctx context.Context, f *relay.Facade, _ []string) (string, error) {
			return "", press(f.RemoteControl(), ctx)
		},
	}
}

// power builds turn_on/turn_off with an optional await flag.
func power(name, help string, turn func(*relay.PowerBridge, context.Context, bool) error) CommandSpec {
	return CommandSpec{
		Name: name, Group: api.CapabilityPower, Usage: "[await]", Help: help, MaxArgs: 1,
		run: func(ctx context.Context, f *relay.Facade, args []string) (string, error) {
			await := false
			if len(args) == 1 {
				var err error
				if await, err = strconv.ParseBool(args[0]); err != nil {
					return "", fmt.Errorf("invalid await flag %q", args[0])
				}
			}
			return "", turn(f.Power(), ctx, await)
		},
	}
}

func commandSpecs() []CommandSpec {
	return []CommandSpec{
		navigation("up", "Press key up", api.RemoteControl.Up),
		navigation("down", "Press key down", api.RemoteControl.Down),
		navigation("left", "Press key left", api.RemoteControl.Left),
		navigation("right", "Press key right", api.RemoteControl.Right),
		navigation("select", "Press key select", api.RemoteControl.Select),
		navigation("menu", "Press key menu", api.RemoteControl.Menu),
		navigation("home", "Press key home", api.RemoteControl.Home),
		button("home_hold", "Hold key home", api.RemoteControl.HomeHold),
		button("top_menu", "Go to main menu", api.RemoteControl.TopMenu),
		button("play", "Press key play", api.RemoteControl.Play),
		button("play_pause", "Toggle between play and pause", api.RemoteControl.PlayPause),
		button("pause", "Press key pause", api.RemoteControl.Pause),
		button("stop", "Press key stop", api.RemoteControl.Stop),
		button("next", "Press key next", api.RemoteControl.Next),
		button("previous", "Press key previous", api.RemoteControl.Previous),
		button("volume_up", "Press key volume up", api.RemoteControl.VolumeUp),
		button("volume_down", "Press key volume down", api.RemoteControl.VolumeDown),
		button("suspend", "Suspend the device", api.RemoteControl.Suspend),
		button("wakeup", "Wake up the device", api.RemoteControl.WakeUp),
		button("skip_forward", "Skip forward a time interval", api.RemoteControl.SkipForward),
		button("skip_backward", "Skip backward a time interval", api.RemoteControl.SkipBackward),
		{
			Name: "set_position", Group: api.CapabilityRemoteControl, Usage: "<seconds>",
			Help: "Seek in the current playing media", MinArgs: 1, MaxArgs: 1,
			run: func(ctx context.Context, f *relay.Facade, args []string) (string, error) {
				pos, err := strconv.Atoi(args[0])
				if err != nil {
					return "", fmt.Errorf("invalid position %q", args[0])
				}
				return "", f.RemoteControl().SetPosition(ctx, pos)
			},
		},
		{
			Name: "set_shuffle", Group: api.CapabilityRemoteControl, Usage: "<off|albums|songs>",
			Help: "Change shuffle state", MinArgs: 1, MaxArgs: 1,
			run: func(ctx context.Context, f *relay.Facade, args []string) (string, error) {
				state, err := ParseShuffleState(args[0])
				if err != nil {
					return "", err
				}
				return "", f.RemoteControl().SetShuffle(ctx, state)
			},
		},
		{
			Name: "set_repeat", Group: api.CapabilityRemoteControl, Usage: "<off|track|all>",
			Help: "Change repeat state", MinArgs: 1, MaxArgs: 1,
			run: func(ctx context.Context, f *relay.Facade, args []string) (string, error) {
				state, err := ParseRepeatState(args[0])
				if err != nil {
					return "", err
				}
				return "", f.RemoteControl().SetRepeat(ctx, state)
			},
		},

		{
			Name: "device_id", Group: api.CapabilityMetadata, Help: "Print the unique device identifier",
			run: func(_ context.Context, f *relay.Facade, _ []string) (string, error) {
				return f.Metadata().DeviceID(), nil
			},
		},
		{
			Name: "artwork", Group: api.CapabilityMetadata, Usage: "[width[,height]]",
			Help: "Print information about the artwork of what is playing", MaxArgs: 2,
			run: func(ctx context.Context, f *relay.Facade, args []string) (string, error) {
				size := api.DefaultArtworkSize
				if len(args) > 0 {
					var err error
					if size, err = parseArtworkSize(args); err != nil {
						return "", err
					}
				}
				art, err := f.Metadata().Artwork(ctx, size)
				if err != nil {
					return "", err
				}
				if art == nil {
					return "No artwork is currently available.", nil
				}
				return fmt.Sprintf("Artwork: %s %dx%d (%d bytes)", art.MimeType, art.Width, art.Height, len(art.Bytes)), nil
			},
		},
		{
			Name: "artwork_id", Group: api.CapabilityMetadata, Help: "Print the identifier of the current artwork",
			run: func(_ context.Context, f *relay.Facade, _ []string) (string, error) {
				return f.Metadata().ArtworkID(), nil
			},
		},
		{
			Name: "playing", Group: api.CapabilityMetadata, Help: "Print what is currently playing",
			run: func(ctx context.Context, f *relay.Facade, _ []string) (string, error) {
				playing, err := f.Metadata().Playing(ctx)
				if err != nil {
					return "", err
				}
				return playing.String(), nil
			},
		},
		{
			Name: "app", Group: api.CapabilityMetadata, Help: "Print the app playing something",
			run: func(_ context.Context, f *relay.Facade, _ []string) (string, error) {
				app := f.Metadata().App()
				if app == nil {
					return "App: None", nil
				}
				return app.String(), nil
			},
		},

		{
			Name: "power_state", Group: api.CapabilityPower, Help: "Print the current power state",
			run: func(_ context.Context, f *relay.Facade, _ []string) (string, error) {
				return "Power state: " + f.Power().PowerState().String(), nil
			},
		},
		power("turn_on", "Turn the device on", (*relay.PowerBridge).TurnOn),
		power("turn_off", "Turn the device off", (*relay.PowerBridge).TurnOff),

		{
			Name: "play_url", Group: api.CapabilityStream, Usage: "<url>[,start_position]",
			Help: "Play media from a URL", MinArgs: 1, MaxArgs: 2,
			run: func(ctx context.Context, f *relay.Facade, args []string) (string, error) {
				var opts api.PlayURLOptions
				if len(args) == 2 {
					start, err := strconv.Atoi(args[1])
					if err != nil {
						return "", fmt.Errorf("invalid start position %q", args[1])
					}
					opts.StartPosition = start
				}
				return "", f.Stream().PlayURL(ctx, args[0], opts)
			},
		},
		{
			Name: "stream_close", Group: api.CapabilityStream, Help: "Stop the current stream",
			run: func(_ context.Context, f *relay.Facade, _ []string) (string, error) {
				return "", f.Stream().Close()
			},
		},

		{
			Name: "app_list", Group: api.CapabilityApps, Help: "List installed apps",
			run: func(ctx context.Context, f *relay.Facade, _ []string) (string, error) {
				apps, err := f.Apps().AppList(ctx)
				if err != nil {
					return "", err
				}
				lines := make([]string, 0, len(apps))
				for _, app := range apps {
					lines = append(lines, app.String())
				}
				return strings.Join(lines, "\n"), nil
			},
		},
		{
			Name: "launch_app", Group: api.CapabilityApps, Usage: "<bundle id>",
			Help: "Launch an app", MinArgs: 1, MaxArgs: 1,
			run: func(ctx context.Context, f *relay.Facade, args []string) (string, error) {
				return "", f.Apps().LaunchApp(ctx, args[0])
			},
		},

		{
			Name: "device_info", Group: GroupDevice, Help: "Print general device information",
			run: func(_ context.Context, f *relay.Facade, _ []string) (string, error) {
				return f.DeviceInfo().String(), nil
			},
		},
		{
			Name: "service", Group: GroupDevice, Help: "Print the main service used to reach the device",
			run: func(_ context.Context, f *relay.Facade, _ []string) (string, error) {
				svc, err := f.Service()
				if err != nil {
					return "", err
				}
				return svc.String(), nil
			},
		},
		{
			Name: "protocols", Group: GroupDevice, Help: "Print the active protocols in priority order",
			run: func(_ context.Context, f *relay.Facade, _ []string) (string, error) {
				added := f.Protocols()
				var names []string
				for _, p := range f.Priorities() {
					if slices.Contains(added, p) {
						names = append(names, p.String())
					}
				}
				for _, p := range added {
					if !f.Priorities().Contains(p) {
						names = append(names, p.String())
					}
				}
				return strings.Join(names, ", "), nil
			},
		},
	}
}

func parseArtworkSize(args []string) (api.ArtworkSize, error) {
	var size api.ArtworkSize
	dims := []*int{&size.Width, &size.Height}
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 0 {
			return api.ArtworkSize{}, fmt.Errorf("invalid artwork dimension %q", arg)
		}
		*dims[i] = v
	}
	return size, nil
}
