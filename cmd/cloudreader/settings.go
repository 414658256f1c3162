package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/justyntemme/cloudreader/internal/config"
	"github.com/justyntemme/cloudreader/pkg/models"
)

// ErrUnknownSetting is returned by settings set for keys it does not know
var ErrUnknownSetting = errors.New("unknown setting")

func init() { //nolint: gochecknoinits
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd, configCmd)
}

var (
	settingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Show or change the reading settings",
		Args:  cobra.NoArgs,
		RunE:  showSettings,
	}

	settingsShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the reading settings",
		Args:  cobra.NoArgs,
		RunE:  showSettings,
	}

	settingsSetCmd = &cobra.Command{
		Use:       "set <theme|fontSize|lineHeight|fontFamily> <value>",
		Short:     "Change one reading setting",
		Args:      cobra.ExactArgs(2), //nolint:mnd
		ValidArgs: []string{"theme", "fontSize", "lineHeight", "fontFamily"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := setSetting(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			printSettings(cmd, rs)
			return nil
		},
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := config.Dump(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
)

func showSettings(cmd *cobra.Command, _ []string) error {
	printSettings(cmd, svc.Preferences.Current())
	return nil
}

func printSettings(cmd *cobra.Command, rs models.ReaderSettings) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "theme:      %s\n", rs.Theme)
	fmt.Fprintf(out, "fontSize:   %g\n", rs.FontSize)
	fmt.Fprintf(out, "lineHeight: %g\n", rs.LineHeight)
	fmt.Fprintf(out, "fontFamily: %s\n", rs.FontFamily)
}

// setSetting stores one setting. Values are stored as given, without the
// clamping the reader's controls apply.
func setSetting(cmd *cobra.Command, key, value string) (models.ReaderSettings, error) {
	ctx := cmd.Context()
	prefs := svc.Preferences

	switch key {
	case "theme":
		return prefs.SetTheme(ctx, value)
	case "fontFamily":
		return prefs.SetFontFamily(ctx, value)
	case "fontSize", "lineHeight":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return prefs.Current(), errors.Wrapf(err, "invalid %s %q", key, value)
		}
		if key == "fontSize" {
			return prefs.SetFontSize(ctx, f)
		}
		return prefs.SetLineHeight(ctx, f)
	default:
		return prefs.Current(), errors.Wrap(ErrUnknownSetting, key)
	}
}
