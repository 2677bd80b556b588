package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsekit/phaseogram/internal/phaseogram"
	"github.com/pulsekit/phaseogram/internal/pipeline"
	"github.com/pulsekit/phaseogram/internal/util"
	"github.com/pulsekit/phaseogram/internal/watch"
)

var (
	// Binning
	ntoa  int
	nbins int

	// Energy filter
	emin float64
	emax float64

	// Output
	outfile string

	// Optional inputs
	radioProfile string
	weightColumn string

	// Time selection
	tmin float64

	// Display
	scaleName string

	// System and debugging
	debug     bool
	watchMode bool

	rootCmd = &cobra.Command{
		Use:   "phaseogram [flags] EVENT_FILE",
		Short: "Fold pulsar event files into a 2-d phaseogram",
		Long: `phaseogram reads an event file containing pulse phases and makes a
two-panel figure: a time-vs-phase intensity map plus the phase-folded
summed pulse profile with error bars.

Examples:
  phaseogram events.json                          # default binning, show counts
  phaseogram -n 30 -b 64 events.json              # 30 sub-integrations, 64 phase bins
  phaseogram -e 0.5 -x 8.0 -o out.pdf events.json # energy cut, PDF output
  phaseogram -w NET_WEIGHT -s sqrt events.json    # weighted folding, sqrt z-scale
  phaseogram -r radio.txt events.json             # overplot a radio profile`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runPhaseogram,
	}
)

func init() {
	rootCmd.Flags().IntVarP(&ntoa, "ntoa", "n", 60,
		"Number of sub-integrations between TSTART and TSTOP")
	rootCmd.Flags().IntVarP(&nbins, "nbins", "b", 32,
		"Number of bins in each profile")
	rootCmd.Flags().Float64VarP(&emin, "emin", "e", 0.3,
		"Minimum energy to include (keV)")
	rootCmd.Flags().Float64VarP(&emax, "emax", "x", 12.0,
		"Maximum energy to include (keV)")
	rootCmd.Flags().StringVarP(&outfile, "outfile", "o", "",
		"File name for the plot; type comes from the extension")
	rootCmd.Flags().StringVarP(&radioProfile, "radio", "r", "",
		"Radio profile to overplot (two-column text)")
	rootCmd.Flags().StringVarP(&weightColumn, "weights", "w", "",
		"Event column to use as photon weight")
	rootCmd.Flags().Float64VarP(&tmin, "tmin", "t", 0.0,
		"Minimum time to include (MJD); 0 means unset")
	rootCmd.Flags().StringVarP(&scaleName, "scale", "s", "linear",
		"Scaling for the z-axis of the phaseogram: 'linear', 'log', 'sqrt', 'squared'")

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false,
		"Re-render whenever the event file changes (requires --outfile)")
}

func runPhaseogram(cmd *cobra.Command, args []string) error {
	util.InitLogger(debug)
	defer util.SyncLogger()

	scale, err := phaseogram.ParseScale(scaleName)
	if err != nil {
		util.LogErrorf("Your selection for the scaling of the z-axis of the phaseogram %q is not understood", scaleName)
		util.LogError("Please select from the following options: 'linear' [default option], 'log', 'sqrt', 'squared'")
		return err
	}

	if watchMode && outfile == "" {
		return fmt.Errorf("--watch requires --outfile")
	}

	config := &pipeline.Config{
		EventPath: args[0],
		OutPath:   outfile,
		RadioPath: radioProfile,
		WeightCol: weightColumn,
		Segments:  ntoa,
		PhaseBins: nbins,
		EMin:      emin,
		EMax:      emax,
		TMin:      tmin,
		Scale:     scale,
	}

	p := pipeline.New(config)
	if err := p.Run(); err != nil {
		return err
	}
	if !watchMode {
		return nil
	}
	return watchLoop(p, config.EventPath)
}

// watchLoop re-runs the pipeline on every change to the event file until
// interrupted. Change bursts are debounced so a half-written file is not
// read mid-copy.
func watchLoop(p *pipeline.Pipeline, eventPath string) error {
	w, err := watch.New(eventPath)
	if err != nil {
		return err
	}
	defer w.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	util.LogInfof("watching %s for changes; Ctrl-C to exit", eventPath)
	for {
		select {
		case <-w.Events():
			time.Sleep(200 * time.Millisecond)
			drain(w.Events())
			if err := p.Run(); err != nil {
				util.LogErrorf("re-render failed: %v", err)
			}
		case <-interrupt:
			util.LogInfo("interrupted, exiting watch mode")
			return nil
		}
	}
}

func drain(ch <-chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
