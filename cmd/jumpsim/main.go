package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/milk9111/jumpctl/input"
	"github.com/milk9111/jumpctl/levels"
	"github.com/milk9111/jumpctl/prefabs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var CLI struct {
	Debug  bool   `help:"Whether to enable debug logging."`
	Level  string `help:"Level in levels/ (basename, .tmx optional)." default:"practice"`
	Spec   string `help:"Controller spec in prefabs/." default:"controller.yaml"`
	Probe  string `help:"Override ground_check.probe (sensor, box, resolv)."`
	Format string `help:"Output format." enum:"table,yaml" default:"table"`

	Run struct {
		Script   string  `arg:"" help:"Input script in prefabs/scripts."`
		Duration float64 `help:"Seconds to simulate." default:"3"`
		Every    int     `help:"Print every Nth fixed step." default:"1"`
	} `cmd:"" help:"Print the player's trajectory per fixed step under a scripted input."`

	Apex struct {
		MaxHold float64 `help:"Longest jump hold to try, in seconds." default:"0.4"`
		Samples int     `help:"Number of hold durations between 0 and max-hold." default:"9"`
	} `cmd:"" help:"Sweep jump hold time and report the apex height of each jump."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("jumpsim"),
		kong.Description("headless jump controller simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	spec, lvl, err := loadInputs(CLI.Spec, CLI.Level, CLI.Probe)
	if err != nil {
		writeError(err)
	}

	switch ctx.Command() {
	case "run <script>":
		err = runCommand(os.Stdout, spec, lvl, CLI.Run.Script, CLI.Run.Duration, CLI.Run.Every, CLI.Format)
	case "apex":
		err = apexCommand(os.Stdout, spec, lvl, CLI.Apex.MaxHold, CLI.Apex.Samples, CLI.Format)
	}
	if err != nil {
		writeError(err)
	}
}

func loadInputs(specName, levelName, probe string) (prefabs.ControllerSpec, *levels.Level, error) {
	spec, err := prefabs.LoadControllerSpec(specName)
	if err != nil {
		return spec, nil, err
	}
	if probe != "" {
		spec.GroundCheck.Probe = probe
		if err := spec.Validate(); err != nil {
			return spec, nil, err
		}
	}
	lvl, err := levels.Load(levelName)
	if err != nil {
		return spec, nil, err
	}
	return spec, lvl, nil
}

func runCommand(out io.Writer, spec prefabs.ControllerSpec, lvl *levels.Level, scriptName string, duration float64, every int, format string) error {
	script, err := input.LoadScript(scriptName)
	if err != nil {
		return err
	}
	s, err := newSim(spec, lvl, script, log.Logger)
	if err != nil {
		return err
	}

	floorY := lvl.SpawnY - spec.Body.Height/2
	if every < 1 {
		every = 1
	}
	steps := int(duration / s.step)
	samples := make([]Sample, 0, steps/every+1)
	for i := 0; i < steps; i++ {
		s.tick()
		if i%every == 0 {
			samples = append(samples, s.sample(floorY))
		}
	}
	if err := script.Err(); err != nil {
		return err
	}
	log.Info().Str("script", scriptName).Int("steps", steps).Msg("run complete")

	if format == "yaml" {
		return yaml.NewEncoder(out).Encode(samples)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "step\tt\tx\theight\tvx\tvy\tground\tcoyote\tbuffer\thold\t")
	for _, r := range samples {
		fmt.Fprintf(tw, "%d\t%.3f\t%.1f\t%.1f\t%.1f\t%.1f\t%v\t%.3f\t%.3f\t%.3f\t\n",
			r.Step, r.Time, r.X, r.Height, r.VX, r.VY, r.Grounded, r.Coyote, r.Buffer, r.Hold)
	}
	return tw.Flush()
}

func apexCommand(out io.Writer, spec prefabs.ControllerSpec, lvl *levels.Level, maxHold float64, samples int, format string) error {
	results, err := sweepApex(spec, lvl, maxHold, samples, log.Logger)
	if err != nil {
		return err
	}

	if format == "yaml" {
		return yaml.NewEncoder(out).Encode(results)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "hold\tapex\tair\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%.3f\t%.1f\t%.3f\t\n", r.Hold, r.Apex, r.AirTime)
	}
	return tw.Flush()
}
