package main

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"studentportal/portal/client"
	"studentportal/portal/dashboard"
	"studentportal/portal/form"
	"studentportal/portal/ui"
)

func runInteractive(cmd *cobra.Command, args []string) error {
	log := newLogger(true)
	c := client.New(apiURL())

	poller := dashboard.NewPoller(c, pollInterval())
	results := poller.Start(cmd.Context())
	defer poller.Stop()

	log.WithField("api", apiURL()).Info("portal started")
	model := ui.New(ui.Options{
		Registrar: c,
		Results:   results,
		Locale:    locale(),
		Logger:    log,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("portal: %w", err)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	log := newLogger(false)
	students, err := client.New(apiURL()).List(cmd.Context())
	if err != nil {
		log.WithError(err).Error("Error fetching students")
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, dashboard.RenderTable(students, locale()))
	if len(students) > 0 {
		fmt.Fprintln(out, dashboard.RenderStats(dashboard.Compute(students)))
	}
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	log := newLogger(false)

	sets, _ := cmd.Flags().GetStringArray("set")
	skills, _ := cmd.Flags().GetStringArray("skill")
	pic, _ := cmd.Flags().GetString("profile-pic")

	pending, err := collect(form.NewPending(form.RegistrationFields), sets, skills, pic)
	if err != nil {
		return err
	}
	if errs := pending.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(cmd.ErrOrStderr(), e.Error())
		}
		return errors.New("registration not submitted")
	}

	ack, err := client.New(apiURL()).Register(cmd.Context(), pending.Payload())
	if err != nil {
		log.WithError(err).Error("Error submitting registration")
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ack.Message)
	if ack.Error != "" {
		return errors.New(ack.Error)
	}
	return nil
}

// collect applies command-line values to p: --set values first, then skills in the order given,
// then the profile picture.
func collect(p form.Pending, sets, skills []string, pic string) (form.Pending, error) {
	var err error
	for _, kv := range sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return p, fmt.Errorf("--set %q: expected name=value", kv)
		}
		if p, err = p.Apply(form.Edit{Name: name, Value: value}); err != nil {
			return p, err
		}
	}
	for _, s := range skills {
		if p, err = p.Apply(form.Edit{Name: "skills", Value: s, Checked: true}); err != nil {
			return p, err
		}
	}
	if pic != "" {
		h, err := form.OpenFile(pic)
		if err != nil {
			return p, err
		}
		if p, err = p.Apply(form.Edit{Name: "profilePic", File: h}); err != nil {
			return p, err
		}
	}
	return p, nil
}
