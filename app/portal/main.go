package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"studentportal/config"
	"studentportal/portal/client"
	"studentportal/portal/dashboard"
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Student registration portal",
	Long: `Interactive terminal portal for the student registration service.

The Register page collects a registration and submits it. The Dashboard page
lists every stored registration, refreshed on an interval, with summary
statistics and a detail view.

Keys:
  ctrl+t  switch between Register and Dashboard
  ctrl+s  submit the registration
  ctrl+c  quit`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all registrations and summary statistics",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Submit a registration without the interactive form",
	Long: `Submits one registration through the same field rules as the form.

Example:
  portal register --set fullName="Ann Lee" --set email=ann@x.io --set course=B.Sc \
    --skill HTML --skill CSS --profile-pic ./me.png`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", client.DefaultBaseURL, "registration service base URL")
	flags.Duration("poll-interval", dashboard.DefaultInterval, "dashboard refresh interval")
	flags.String("locale", "", "locale for dates (defaults to LC_ALL, LC_TIME or LANG)")
	flags.String("log-file", "", "write logs to this file (rotated)")
	_ = viper.BindPFlags(flags)

	viper.SetEnvPrefix("PORTAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	registerCmd.Flags().StringArray("set", nil, "field value as name=value (repeatable)")
	registerCmd.Flags().StringArray("skill", nil, "check a skill option (repeatable)")
	registerCmd.Flags().String("profile-pic", "", "profile picture file; only its name is sent")

	rootCmd.AddCommand(listCmd, registerCmd)
}

func apiURL() string {
	return viper.GetString("api-url")
}

func pollInterval() time.Duration {
	d := viper.GetDuration("poll-interval")
	if d <= 0 {
		return dashboard.DefaultInterval
	}
	return d
}

func locale() dashboard.Locale {
	name := viper.GetString("locale")
	if name == "" {
		name = dashboard.EnvLocale()
	}
	return dashboard.NewLocale(name)
}

// newLogger never writes to stdout: the interactive portal owns the terminal.
func newLogger(interactive bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	switch path := viper.GetString("log-file"); {
	case path != "":
		log.SetOutput(config.NewRotatingWriter(path))
	case interactive:
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}
	return log
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
