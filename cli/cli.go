package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"weatherlookup/helper"
	"weatherlookup/manager"
	"weatherlookup/view"
)

// Factory builds the controller for one command invocation.
type Factory func() *manager.Manager

type settings struct {
	unit   string
	output string
	view   view.Options
}

func New(newManager Factory, viewOptions view.Options, defaultUnit helper.Unit) (*cobra.Command, error) {
	if newManager == nil {
		return nil, errors.New("cli: nil manager factory")
	}

	s := &settings{view: viewOptions}

	cmd := &cobra.Command{
		Use:           "weather",
		Short:         "CLI application for looking up the current weather of a city",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := helper.ParseUnit(s.unit); err != nil {
				return err
			}
			if s.output != "text" && s.output != "json" {
				return fmt.Errorf("unknown output %q", s.output)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&s.unit, "unit", "u", defaultUnit.String(), "temperature unit, C or F")
	cmd.PersistentFlags().StringVarP(&s.output, "output", "o", "text", "output format, text or json")

	cmd.AddCommand(
		newCurrentCommand(newManager, s),
		newSuggestCommand(newManager, s),
		newInteractiveCommand(newManager, s),
	)

	return cmd, nil
}

// open builds a controller with the unit chosen on the command line.
func (s *settings) open(newManager Factory) *manager.Manager {
	m := newManager()
	unit, _ := helper.ParseUnit(s.unit)
	m.SetUnit(unit)
	return m
}

func (s *settings) render(w io.Writer, state manager.State) error {
	if s.output == "json" {
		return view.RenderJSON(w, state, s.view)
	}
	return view.Render(w, state, s.view)
}

func newCurrentCommand(newManager Factory, s *settings) *cobra.Command {
	var (
		lat, lon float64
		name     string
	)

	cmd := &cobra.Command{
		Use:   "current [city]",
		Short: "Show the current weather for a city or for coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			byCoordinates := cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon")
			if byCoordinates && len(args) > 0 {
				return errors.New("give either a city or --lat/--lon, not both")
			}
			if byCoordinates && !(cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon")) {
				return errors.New("--lat and --lon must be used together")
			}

			m := s.open(newManager)
			defer m.Close()

			var err error
			if byCoordinates {
				err = m.Fetch(cmd.Context(), manager.Query{Coordinates: &manager.Coordinates{Lat: lat, Lon: lon}}, name)
			} else {
				m.SetQuery(strings.Join(args, " "))
				err = m.Search(cmd.Context())
			}

			if renderErr := s.render(cmd.OutOrStdout(), m.State()); renderErr != nil {
				return renderErr
			}

			return err
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	cmd.Flags().StringVar(&name, "name", "", "display name used instead of the one reported by the API")

	return cmd
}

func newSuggestCommand(newManager Factory, s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <query>",
		Short: "List locations matching a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := s.open(newManager)
			defer m.Close()

			m.SetQuery(strings.Join(args, " "))
			m.SuggestNow(cmd.Context())

			state := m.State()
			if s.output == "json" {
				return view.RenderJSON(cmd.OutOrStdout(), manager.State{Suggestions: state.Suggestions}, s.view)
			}

			for _, location := range state.Suggestions {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%g,%g\n", location.DisplayName(), location.Lat, location.Lon); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
